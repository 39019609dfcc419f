package domain

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/luckdraw/backend/internal/model"
	"github.com/luckdraw/backend/internal/repository"
	"github.com/luckdraw/backend/pkg/errorx"
	"github.com/luckdraw/backend/pkg/pubsub"
	"github.com/luckdraw/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type DrawDomain interface {
	Draw(context.Context, *model.DrawEntryRequest) (*model.DrawEntryResponse, error)
	AssignWinner(context.Context, *model.AssignWinnerRequest) (*model.AssignWinnerResponse, error)
}

type drawDomain struct {
	entryRepo  repository.EntryRepository
	memberRepo repository.MemberRepository
	publisher  pubsub.Publisher
}

func NewDrawDomain(
	entryRepo repository.EntryRepository,
	memberRepo repository.MemberRepository,
	publisher pubsub.Publisher,
) *drawDomain {
	return &drawDomain{
		entryRepo:  entryRepo,
		memberRepo: memberRepo,
		publisher:  publisher,
	}
}

// Draw picks a uniformly random entry that has not won yet. It only proposes
// a candidate, nothing is persisted until AssignWinner confirms it.
func (d *drawDomain) Draw(
	ctx context.Context, req *model.DrawEntryRequest,
) (*model.DrawEntryResponse, error) {
	organizationID, err := requestOrganizationID(ctx, d.memberRepo)
	if err != nil {
		return nil, err
	}

	entry, err := d.entryRepo.GetRandomNonWinner(ctx, organizationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "No eligible entries left to draw")
		}

		xcontext.Logger(ctx).Errorf("Cannot draw an entry: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DrawEntryResponse{Entry: model.ConvertEntry(entry)}, nil
}

// AssignWinner confirms a drawn entry as the winner of a prize place. An
// occupied place rejects the assignment rather than replacing the previous
// winner, the caller must delete or reassign explicitly.
func (d *drawDomain) AssignWinner(
	ctx context.Context, req *model.AssignWinnerRequest,
) (*model.AssignWinnerResponse, error) {
	organizationID, err := requestOrganizationID(ctx, d.memberRepo)
	if err != nil {
		return nil, err
	}

	if req.Place < 1 {
		return nil, errorx.New(errorx.BadRequest, "Place must be positive")
	}

	err = d.entryRepo.CheckAndAssignWinner(ctx, organizationID, req.EntryID, req.Place)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errorx.New(errorx.PlaceAlreadyWon, "Place %d already has a winner", req.Place)
		}

		if errors.Is(err, gorm.ErrRecordNotFound) {
			entry, getErr := d.entryRepo.GetByID(ctx, organizationID, req.EntryID)
			if getErr != nil {
				return nil, errorx.New(errorx.NotFound, "Not found entry")
			}

			if entry.IsWinner {
				return nil, errorx.New(errorx.BadRequest, "This entry has already won a place")
			}

			return nil, errorx.Unknown
		}

		xcontext.Logger(ctx).Errorf("Cannot assign winner: %v", err)
		return nil, errorx.Unknown
	}

	entry, err := d.entryRepo.GetByID(ctx, organizationID, req.EntryID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get entry: %v", err)
		return nil, errorx.Unknown
	}

	d.publishWinnerEvent(ctx, organizationID, entry.ID, req.Place)

	return &model.AssignWinnerResponse{Entry: model.ConvertEntry(entry)}, nil
}

// publishWinnerEvent is best effort, a broker outage must not undo an
// assignment that is already committed.
func (d *drawDomain) publishWinnerEvent(ctx context.Context, organizationID, entryID string, place int) {
	if d.publisher == nil {
		return
	}

	b, err := json.Marshal(map[string]any{
		"organization_id": organizationID,
		"entry_id":        entryID,
		"place":           place,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot marshal winner event: %v", err)
		return
	}

	topic := xcontext.Configs(ctx).Kafka.WinnerTopic
	err = d.publisher.Publish(ctx, topic, &pubsub.Pack{Key: []byte(organizationID), Msg: b})
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot publish winner event: %v", err)
	}
}
