package domain

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/luckdraw/backend/internal/entity"
	"github.com/luckdraw/backend/internal/model"
	"github.com/luckdraw/backend/internal/repository"
	"github.com/luckdraw/backend/pkg/errorx"
	"github.com/luckdraw/backend/pkg/mailer"
	"github.com/luckdraw/backend/pkg/testutil"
	"github.com/luckdraw/backend/pkg/xcontext"

	"github.com/stretchr/testify/require"
)

func newNotificationDomain(m mailer.Mailer) *notificationDomain {
	return NewNotificationDomain(
		repository.NewEntryRepository(),
		repository.NewPrizeRepository(),
		repository.NewOrganizationRepository(nil),
		repository.NewMemberRepository(),
		m,
	)
}

func Test_notificationDomain_NotifyWinner(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Member1ID)
	testutil.CreateFixtureDb(ctx)

	var sentTo, sentSubject, sentBody string
	mockMailer := &testutil.MockMailer{
		SendFunc: func(_ context.Context, toAddress, subject, htmlBody string) (string, error) {
			sentTo = toAddress
			sentSubject = subject
			sentBody = htmlBody
			return "<message-id@test>", nil
		},
	}
	domain := newNotificationDomain(mockMailer)

	resp, err := domain.NotifyWinner(ctx, &model.NotifyWinnerRequest{EntryID: testutil.Entry3ID, SendNow: true})
	require.NoError(t, err)
	require.Equal(t, "carol@example.com", resp.Recipient)
	require.Equal(t, "<message-id@test>", resp.MessageID)
	require.NotEmpty(t, resp.NotifiedAt)

	require.Equal(t, "carol@example.com", sentTo)
	require.Contains(t, sentSubject, "1st")
	require.Contains(t, sentBody, "Carol")
	require.Contains(t, sentBody, "Free haircut for a year")
	require.Contains(t, sentBody, entity.DefaultPrimaryColor)

	var result entity.Entry
	tx := xcontext.DB(ctx).Take(&result, "id=?", testutil.Entry3ID)
	require.NoError(t, tx.Error)
	require.True(t, result.IsNotified)
	require.True(t, result.NotifiedAt.Valid)
}

func Test_notificationDomain_NotifyWinner_deferred(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Member1ID)
	testutil.CreateFixtureDb(ctx)

	mockMailer := &testutil.MockMailer{
		SendFunc: func(_ context.Context, toAddress, subject, htmlBody string) (string, error) {
			return "<message-id@test>", nil
		},
	}
	domain := newNotificationDomain(mockMailer)

	// Without send_now the call only validates, nothing is delivered and the
	// entry stays untouched.
	resp, err := domain.NotifyWinner(ctx, &model.NotifyWinnerRequest{EntryID: testutil.Entry3ID})
	require.NoError(t, err)
	require.True(t, resp.Queued)
	require.Equal(t, "carol@example.com", resp.Recipient)
	require.Empty(t, resp.MessageID)
	require.Empty(t, resp.NotifiedAt)
	require.Zero(t, mockMailer.SentCount)

	var result entity.Entry
	tx := xcontext.DB(ctx).Take(&result, "id=?", testutil.Entry3ID)
	require.NoError(t, tx.Error)
	require.False(t, result.IsNotified)
	require.False(t, result.NotifiedAt.Valid)

	// A later call with send_now delivers for real.
	resp, err = domain.NotifyWinner(ctx, &model.NotifyWinnerRequest{EntryID: testutil.Entry3ID, SendNow: true})
	require.NoError(t, err)
	require.False(t, resp.Queued)
	require.Equal(t, 1, mockMailer.SentCount)
}

func Test_notificationDomain_NotifyWinner_onlyOnce(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Member1ID)
	testutil.CreateFixtureDb(ctx)

	mockMailer := &testutil.MockMailer{
		SendFunc: func(_ context.Context, toAddress, subject, htmlBody string) (string, error) {
			return "<message-id@test>", nil
		},
	}
	domain := newNotificationDomain(mockMailer)

	_, err := domain.NotifyWinner(ctx, &model.NotifyWinnerRequest{EntryID: testutil.Entry3ID, SendNow: true})
	require.NoError(t, err)

	_, err = domain.NotifyWinner(ctx, &model.NotifyWinnerRequest{EntryID: testutil.Entry3ID, SendNow: true})
	require.Error(t, err)

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.AlreadyNotified, errx.Code)
	require.Equal(t, 1, mockMailer.SentCount)
}

func Test_notificationDomain_NotifyWinner_notAWinner(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Member1ID)
	testutil.CreateFixtureDb(ctx)
	domain := newNotificationDomain(&testutil.MockMailer{})

	_, err := domain.NotifyWinner(ctx, &model.NotifyWinnerRequest{EntryID: testutil.Entry1ID, SendNow: true})
	require.Error(t, err)

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.NotAWinner, errx.Code)
}

func Test_notificationDomain_NotifyWinner_mailNotConfigured(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Member1ID)
	testutil.CreateFixtureDb(ctx)
	domain := newNotificationDomain(nil)

	_, err := domain.NotifyWinner(ctx, &model.NotifyWinnerRequest{EntryID: testutil.Entry3ID, SendNow: true})
	require.Error(t, err)

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.MailNotConfigured, errx.Code)
}

func Test_notificationDomain_NotifyWinner_deliveryFailure(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Member1ID)
	testutil.CreateFixtureDb(ctx)

	mockMailer := &testutil.MockMailer{
		SendFunc: func(_ context.Context, toAddress, subject, htmlBody string) (string, error) {
			return "", errors.New("smtp connection refused")
		},
	}
	domain := newNotificationDomain(mockMailer)

	_, err := domain.NotifyWinner(ctx, &model.NotifyWinnerRequest{EntryID: testutil.Entry3ID, SendNow: true})
	require.Error(t, err)

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.DeliveryFailed, errx.Code)

	// A failed delivery rolls the notified mark back so the mail can be
	// retried.
	var result entity.Entry
	tx := xcontext.DB(ctx).Take(&result, "id=?", testutil.Entry3ID)
	require.NoError(t, tx.Error)
	require.False(t, result.IsNotified)
}

func Test_notificationDomain_NotifyWinner_missingPrize(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Member1ID)
	testutil.CreateFixtureDb(ctx)

	// Remove the prize of first place, the mail falls back to a generic name.
	err := repository.NewPrizeRepository().DeleteByID(ctx, testutil.Organization1ID, testutil.Prize1ID)
	require.NoError(t, err)

	var sentBody string
	mockMailer := &testutil.MockMailer{
		SendFunc: func(_ context.Context, toAddress, subject, htmlBody string) (string, error) {
			sentBody = htmlBody
			return "<message-id@test>", nil
		},
	}
	domain := newNotificationDomain(mockMailer)

	_, err = domain.NotifyWinner(ctx, &model.NotifyWinnerRequest{EntryID: testutil.Entry3ID, SendNow: true})
	require.NoError(t, err)
	require.True(t, strings.Contains(sentBody, "a special prize"))
}

func Test_ordinal(t *testing.T) {
	require.Equal(t, "1st", ordinal(1))
	require.Equal(t, "2nd", ordinal(2))
	require.Equal(t, "3rd", ordinal(3))
	require.Equal(t, "4th", ordinal(4))
	require.Equal(t, "11th", ordinal(11))
	require.Equal(t, "12th", ordinal(12))
	require.Equal(t, "13th", ordinal(13))
	require.Equal(t, "21st", ordinal(21))
	require.Equal(t, "22nd", ordinal(22))
	require.Equal(t, "103rd", ordinal(103))
}
