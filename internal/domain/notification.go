package domain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"time"

	"github.com/luckdraw/backend/internal/model"
	"github.com/luckdraw/backend/internal/repository"
	"github.com/luckdraw/backend/pkg/errorx"
	"github.com/luckdraw/backend/pkg/mailer"
	"github.com/luckdraw/backend/pkg/xcontext"
	"gorm.io/gorm"
)

const winnerMailTemplate = `
<div style="font-family:Arial,Helvetica,sans-serif;max-width:600px;margin:0 auto">
  <div style="background-color:{{.PrimaryColor}};padding:24px;text-align:center">
    <h1 style="color:#ffffff;margin:0">{{.OrganizationName}}</h1>
  </div>
  <div style="padding:24px">
    <p>Hi {{.WinnerName}},</p>
    <p>Great news! Your feedback entry was drawn as the <b>{{.PlaceOrdinal}} place</b> winner
    and you won <b>{{.PrizeName}}</b>.</p>
    {{if .PrizeLink}}<p><a href="{{.PrizeLink}}" style="color:{{.PrimaryColor}}">See your prize</a></p>{{end}}
    <p>We will contact you at this address with the details.</p>
    <p>Thanks for taking part!</p>
  </div>
</div>
`

var winnerMail = template.Must(template.New("winner_mail").Parse(winnerMailTemplate))

type winnerMailData struct {
	OrganizationName string
	PrimaryColor     string
	WinnerName       string
	PlaceOrdinal     string
	PrizeName        string
	PrizeLink        string
}

type NotificationDomain interface {
	NotifyWinner(context.Context, *model.NotifyWinnerRequest) (*model.NotifyWinnerResponse, error)
}

type notificationDomain struct {
	entryRepo        repository.EntryRepository
	prizeRepo        repository.PrizeRepository
	organizationRepo repository.OrganizationRepository
	memberRepo       repository.MemberRepository
	mailer           mailer.Mailer
}

func NewNotificationDomain(
	entryRepo repository.EntryRepository,
	prizeRepo repository.PrizeRepository,
	organizationRepo repository.OrganizationRepository,
	memberRepo repository.MemberRepository,
	mailer mailer.Mailer,
) *notificationDomain {
	return &notificationDomain{
		entryRepo:        entryRepo,
		prizeRepo:        prizeRepo,
		organizationRepo: organizationRepo,
		memberRepo:       memberRepo,
		mailer:           mailer,
	}
}

// NotifyWinner sends the congratulation mail exactly once per entry. The
// entry is marked notified with a guarded update inside a transaction before
// sending, so a concurrent call loses the guard and a failed delivery rolls
// the mark back.
func (d *notificationDomain) NotifyWinner(
	ctx context.Context, req *model.NotifyWinnerRequest,
) (*model.NotifyWinnerResponse, error) {
	organizationID, err := requestOrganizationID(ctx, d.memberRepo)
	if err != nil {
		return nil, err
	}

	entry, err := d.entryRepo.GetByID(ctx, organizationID, req.EntryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found entry")
		}

		xcontext.Logger(ctx).Errorf("Cannot get entry: %v", err)
		return nil, errorx.Unknown
	}

	if !entry.IsWinner {
		return nil, errorx.New(errorx.NotAWinner, "This entry has not won a prize")
	}

	if entry.IsNotified {
		return nil, errorx.New(errorx.AlreadyNotified, "This winner was already notified")
	}

	// A deferred notification only validates, nothing is sent or persisted
	// until a later call with send_now.
	if !req.SendNow {
		return &model.NotifyWinnerResponse{
			Recipient: entry.Email,
			Queued:    true,
		}, nil
	}

	if d.mailer == nil {
		return nil, errorx.New(errorx.MailNotConfigured, "Mail is not configured")
	}

	organization, err := d.organizationRepo.GetByID(ctx, organizationID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get organization: %v", err)
		return nil, errorx.Unknown
	}

	place := int(entry.WinnerPlace.Int64)
	subject, body, err := d.composeWinnerMail(ctx, organization.Name, organization.PrimaryColor, entry.Name, organizationID, place)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot compose winner mail: %v", err)
		return nil, errorx.Unknown
	}

	notifiedAt := time.Now()

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	err = d.entryRepo.CheckAndMarkNotified(ctx, organizationID, entry.ID, notifiedAt)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.AlreadyNotified, "This winner was already notified")
		}

		xcontext.Logger(ctx).Errorf("Cannot mark entry as notified: %v", err)
		return nil, errorx.Unknown
	}

	messageID, err := d.mailer.Send(ctx, entry.Email, subject, body)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot deliver winner mail: %v", err)
		return nil, errorx.New(errorx.DeliveryFailed, "Cannot deliver the mail to %s", entry.Email)
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.NotifyWinnerResponse{
		Recipient:  entry.Email,
		MessageID:  messageID,
		NotifiedAt: notifiedAt.Format(model.DefaultTimeLayout),
	}, nil
}

func (d *notificationDomain) composeWinnerMail(
	ctx context.Context, organizationName, primaryColor, winnerName, organizationID string, place int,
) (string, string, error) {
	prizeName := "a special prize"
	prizeLink := ""
	prize, err := d.prizeRepo.GetByPlace(ctx, organizationID, place)
	if err == nil {
		prizeName = prize.Name
		prizeLink = prize.Link
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", "", err
	}

	if primaryColor == "" {
		primaryColor = "#7c3aed"
	}

	subject := fmt.Sprintf("🎉 Congratulations! You won the %s Prize!", ordinal(place))

	var body bytes.Buffer
	err = winnerMail.Execute(&body, winnerMailData{
		OrganizationName: organizationName,
		PrimaryColor:     primaryColor,
		WinnerName:       winnerName,
		PlaceOrdinal:     ordinal(place),
		PrizeName:        prizeName,
		PrizeLink:        prizeLink,
	})
	if err != nil {
		return "", "", err
	}

	return subject, body.String(), nil
}

func ordinal(n int) string {
	suffix := "th"
	if n%100 < 11 || n%100 > 13 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}

	return fmt.Sprintf("%d%s", n, suffix)
}
