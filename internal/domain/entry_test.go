package domain

import (
	"testing"

	"github.com/luckdraw/backend/internal/entity"
	"github.com/luckdraw/backend/internal/model"
	"github.com/luckdraw/backend/internal/repository"
	"github.com/luckdraw/backend/pkg/errorx"
	"github.com/luckdraw/backend/pkg/testutil"
	"github.com/luckdraw/backend/pkg/xcontext"

	"github.com/stretchr/testify/require"
)

func newEntryDomain() *entryDomain {
	return NewEntryDomain(
		repository.NewEntryRepository(),
		repository.NewOrganizationRepository(nil),
		repository.NewMemberRepository(),
	)
}

func Test_entryDomain_Submit(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newEntryDomain()

	resp, err := domain.Submit(ctx, &model.SubmitEntryRequest{
		OrganizationSlug: "joes-salon",
		Name:             "Dave",
		Email:            "dave@example.com",
		Feedback:         "Nice place.",
	})
	require.NoError(t, err)
	require.False(t, resp.Entry.IsWinner)

	var result entity.Entry
	tx := xcontext.DB(ctx).Take(&result, "id=?", resp.Entry.ID)
	require.NoError(t, tx.Error)
	require.Equal(t, testutil.Organization1ID, result.OrganizationID)
	require.Equal(t, "dave@example.com", result.Email)
}

func Test_entryDomain_Submit_duplicatedEmail(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newEntryDomain()

	_, err := domain.Submit(ctx, &model.SubmitEntryRequest{
		OrganizationSlug: "joes-salon",
		Name:             "Alice Again",
		Email:            "alice@example.com",
		Feedback:         "Entering twice.",
	})
	require.Error(t, err)

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.AlreadyExists, errx.Code)

	// The same address may enter the draw of another organization.
	_, err = domain.Submit(ctx, &model.SubmitEntryRequest{
		OrganizationSlug: "corner-cafe",
		Name:             "Alice",
		Email:            "alice@example.com",
		Feedback:         "Nice coffee.",
	})
	require.NoError(t, err)
}

func Test_entryDomain_Submit_unknownSlug(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newEntryDomain()

	_, err := domain.Submit(ctx, &model.SubmitEntryRequest{
		OrganizationSlug: "no-such-org",
		Name:             "Dave",
		Email:            "dave@example.com",
		Feedback:         "Hello.",
	})
	require.Error(t, err)

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.NotFound, errx.Code)
}

func Test_entryDomain_Get_scopedToOrganization(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Member1ID)
	testutil.CreateFixtureDb(ctx)
	domain := newEntryDomain()

	resp, err := domain.Get(ctx, &model.GetEntryRequest{ID: testutil.Entry1ID})
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", resp.Entry.Email)

	// Member2 belongs to another organization and must not see this entry.
	ctx2 := xcontext.WithRequestUserID(ctx, testutil.Member2ID)
	_, err = domain.Get(ctx2, &model.GetEntryRequest{ID: testutil.Entry1ID})
	require.Error(t, err)

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.NotFound, errx.Code)
}

func Test_entryDomain_GetList(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Member1ID)
	testutil.CreateFixtureDb(ctx)
	domain := newEntryDomain()

	resp, err := domain.GetList(ctx, &model.GetEntriesRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Entries, 3)
	require.Equal(t, int64(3), resp.Total)

	resp, err = domain.GetList(ctx, &model.GetEntriesRequest{Offset: 1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, resp.Entries, 1)
	require.Equal(t, int64(3), resp.Total)

	_, err = domain.GetList(ctx, &model.GetEntriesRequest{Limit: 1000})
	require.Error(t, err)

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)
}

func Test_entryDomain_GetList_requiresAuth(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newEntryDomain()

	_, err := domain.GetList(ctx, &model.GetEntriesRequest{})
	require.Error(t, err)

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.Unauthenticated, errx.Code)
}

func Test_entryDomain_Update_partial(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Member1ID)
	testutil.CreateFixtureDb(ctx)
	domain := newEntryDomain()

	newName := "Alice B."
	resp, err := domain.Update(ctx, &model.UpdateEntryRequest{
		ID:   testutil.Entry1ID,
		Name: &newName,
	})
	require.NoError(t, err)
	require.Equal(t, "Alice B.", resp.Entry.Name)

	// Fields without a value keep their current content.
	require.Equal(t, "alice@example.com", resp.Entry.Email)
	require.Equal(t, "Great haircut, will come back!", resp.Entry.Feedback)
}

func Test_entryDomain_Update_duplicatedEmail(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Member1ID)
	testutil.CreateFixtureDb(ctx)
	domain := newEntryDomain()

	takenEmail := "bob@example.com"
	_, err := domain.Update(ctx, &model.UpdateEntryRequest{
		ID:    testutil.Entry1ID,
		Email: &takenEmail,
	})
	require.Error(t, err)

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.AlreadyExists, errx.Code)
}

func Test_entryDomain_Delete_freesEmail(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Member1ID)
	testutil.CreateFixtureDb(ctx)
	domain := newEntryDomain()

	_, err := domain.Delete(ctx, &model.DeleteEntryRequest{ID: testutil.Entry1ID})
	require.NoError(t, err)

	_, err = domain.Get(ctx, &model.GetEntryRequest{ID: testutil.Entry1ID})
	require.Error(t, err)

	// The address can enter the draw again after the deletion.
	_, err = domain.Submit(ctx, &model.SubmitEntryRequest{
		OrganizationSlug: "joes-salon",
		Name:             "Alice",
		Email:            "alice@example.com",
		Feedback:         "Back again.",
	})
	require.NoError(t, err)
}
