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

func Test_authDomain_Register(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := NewAuthDomain(repository.NewMemberRepository(), repository.NewOrganizationRepository(nil))

	resp, err := domain.Register(ctx, &model.RegisterRequest{
		Email:            "owner3@example.com",
		Password:         "long-enough-password",
		OrganizationName: "Bella's Bakery!",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)
	require.Equal(t, "bellas-bakery", resp.Organization.Slug)
	require.Equal(t, entity.DefaultPrimaryColor, resp.Organization.PrimaryColor)

	var member entity.Member
	tx := xcontext.DB(ctx).Take(&member, "email=?", "owner3@example.com")
	require.NoError(t, tx.Error)
	require.Equal(t, resp.Organization.ID, member.OrganizationID)
	require.NotEqual(t, "long-enough-password", member.HashedPassword)
}

func Test_authDomain_Register_slugCollision(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := NewAuthDomain(repository.NewMemberRepository(), repository.NewOrganizationRepository(nil))

	// The fixture already owns the joes-salon slug.
	resp, err := domain.Register(ctx, &model.RegisterRequest{
		Email:            "owner3@example.com",
		Password:         "long-enough-password",
		OrganizationName: "Joe's Salon",
	})
	require.NoError(t, err)
	require.Equal(t, "joes-salon-1", resp.Organization.Slug)

	resp, err = domain.Register(ctx, &model.RegisterRequest{
		Email:            "owner4@example.com",
		Password:         "long-enough-password",
		OrganizationName: "Joe's Salon",
	})
	require.NoError(t, err)
	require.Equal(t, "joes-salon-2", resp.Organization.Slug)
}

func Test_authDomain_Register_duplicatedEmail(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := NewAuthDomain(repository.NewMemberRepository(), repository.NewOrganizationRepository(nil))

	_, err := domain.Register(ctx, &model.RegisterRequest{
		Email:            testutil.Member1Email,
		Password:         "long-enough-password",
		OrganizationName: "Another Business",
	})
	require.Error(t, err)

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.AlreadyExists, errx.Code)

	// The organization created before the member must not survive the
	// rollback.
	var count int64
	tx := xcontext.DB(ctx).Model(&entity.Organization{}).
		Where("name=?", "Another Business").Count(&count)
	require.NoError(t, tx.Error)
	require.Zero(t, count)
}

func Test_authDomain_Register_invalidInput(t *testing.T) {
	ctx := testutil.MockContext()
	domain := NewAuthDomain(repository.NewMemberRepository(), repository.NewOrganizationRepository(nil))

	_, err := domain.Register(ctx, &model.RegisterRequest{
		Email:            "not-an-email",
		Password:         "long-enough-password",
		OrganizationName: "Some Business",
	})
	require.Error(t, err)

	_, err = domain.Register(ctx, &model.RegisterRequest{
		Email:            "owner@example.com",
		Password:         "short",
		OrganizationName: "Some Business",
	})
	require.Error(t, err)
}

func Test_authDomain_Login(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := NewAuthDomain(repository.NewMemberRepository(), repository.NewOrganizationRepository(nil))

	resp, err := domain.Login(ctx, &model.LoginRequest{
		Email:    testutil.Member1Email,
		Password: testutil.Member1Password,
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)
	require.Equal(t, testutil.Organization1ID, resp.Organization.ID)

	info, err := xcontext.TokenEngine(ctx).Verify(resp.AccessToken)
	require.NoError(t, err)
	require.Equal(t, testutil.Member1ID, info.ID)
	require.Equal(t, testutil.Organization1ID, info.OrganizationID)
}

func Test_authDomain_Login_wrongPassword(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := NewAuthDomain(repository.NewMemberRepository(), repository.NewOrganizationRepository(nil))

	_, err := domain.Login(ctx, &model.LoginRequest{
		Email:    testutil.Member1Email,
		Password: "wrong-password",
	})
	require.Error(t, err)

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.Unauthenticated, errx.Code)

	_, err = domain.Login(ctx, &model.LoginRequest{
		Email:    "nobody@example.com",
		Password: "wrong-password",
	})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.Unauthenticated, errx.Code)
}
