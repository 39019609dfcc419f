package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/luckdraw/backend/internal/entity"
	"github.com/luckdraw/backend/internal/model"
	"github.com/luckdraw/backend/internal/repository"
	"github.com/luckdraw/backend/pkg/errorx"
	"github.com/luckdraw/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type EntryDomain interface {
	Submit(context.Context, *model.SubmitEntryRequest) (*model.SubmitEntryResponse, error)
	Get(context.Context, *model.GetEntryRequest) (*model.GetEntryResponse, error)
	GetList(context.Context, *model.GetEntriesRequest) (*model.GetEntriesResponse, error)
	Update(context.Context, *model.UpdateEntryRequest) (*model.UpdateEntryResponse, error)
	Delete(context.Context, *model.DeleteEntryRequest) (*model.DeleteEntryResponse, error)
}

type entryDomain struct {
	entryRepo        repository.EntryRepository
	organizationRepo repository.OrganizationRepository
	memberRepo       repository.MemberRepository
}

func NewEntryDomain(
	entryRepo repository.EntryRepository,
	organizationRepo repository.OrganizationRepository,
	memberRepo repository.MemberRepository,
) *entryDomain {
	return &entryDomain{
		entryRepo:        entryRepo,
		organizationRepo: organizationRepo,
		memberRepo:       memberRepo,
	}
}

// Submit is the public endpoint a customer uses to enter the draw of the
// organization identified by slug. The unique index on (organization_id,
// email) rejects a second submission with the same address.
func (d *entryDomain) Submit(
	ctx context.Context, req *model.SubmitEntryRequest,
) (*model.SubmitEntryResponse, error) {
	if req.Name == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty name")
	}

	if err := checkEmail(req.Email); err != nil {
		return nil, err
	}

	if req.Feedback == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty feedback")
	}

	organization, err := d.organizationRepo.GetBySlug(ctx, req.OrganizationSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found organization")
		}

		xcontext.Logger(ctx).Errorf("Cannot get organization: %v", err)
		return nil, errorx.Unknown
	}

	entry := &entity.Entry{
		Base:           entity.Base{ID: uuid.NewString()},
		OrganizationID: organization.ID,
		Name:           req.Name,
		Email:          req.Email,
		Feedback:       req.Feedback,
	}

	if err := d.entryRepo.Create(ctx, entry); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errorx.New(errorx.AlreadyExists, "This email has already entered the draw")
		}

		xcontext.Logger(ctx).Errorf("Cannot create entry: %v", err)
		return nil, errorx.Unknown
	}

	return &model.SubmitEntryResponse{Entry: model.ConvertEntry(entry)}, nil
}

func (d *entryDomain) Get(
	ctx context.Context, req *model.GetEntryRequest,
) (*model.GetEntryResponse, error) {
	organizationID, err := requestOrganizationID(ctx, d.memberRepo)
	if err != nil {
		return nil, err
	}

	entry, err := d.entryRepo.GetByID(ctx, organizationID, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found entry")
		}

		xcontext.Logger(ctx).Errorf("Cannot get entry: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetEntryResponse{Entry: model.ConvertEntry(entry)}, nil
}

func (d *entryDomain) GetList(
	ctx context.Context, req *model.GetEntriesRequest,
) (*model.GetEntriesResponse, error) {
	organizationID, err := requestOrganizationID(ctx, d.memberRepo)
	if err != nil {
		return nil, err
	}

	if req.Offset < 0 {
		return nil, errorx.New(errorx.BadRequest, "Not allow a negative offset")
	}

	apiCfg := xcontext.Configs(ctx).ApiServer
	if req.Limit == 0 {
		req.Limit = apiCfg.DefaultLimit
	}

	if req.Limit < 0 {
		return nil, errorx.New(errorx.BadRequest, "Not allow a negative limit")
	}

	if req.Limit > apiCfg.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Exceeded the maximum limit of %d", apiCfg.MaxLimit)
	}

	entries, err := d.entryRepo.GetList(ctx, organizationID, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get entries: %v", err)
		return nil, errorx.Unknown
	}

	total, err := d.entryRepo.Count(ctx, organizationID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count entries: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetEntriesResponse{
		Entries: model.ConvertEntries(entries),
		Total:   total,
	}, nil
}

// Update applies only the fields present in the request. A nil pointer means
// the field keeps its current value.
func (d *entryDomain) Update(
	ctx context.Context, req *model.UpdateEntryRequest,
) (*model.UpdateEntryResponse, error) {
	organizationID, err := requestOrganizationID(ctx, d.memberRepo)
	if err != nil {
		return nil, err
	}

	changes := map[string]any{}
	if req.Name != nil {
		if *req.Name == "" {
			return nil, errorx.New(errorx.BadRequest, "Not allow an empty name")
		}

		changes["name"] = *req.Name
	}

	if req.Email != nil {
		if err := checkEmail(*req.Email); err != nil {
			return nil, err
		}

		changes["email"] = *req.Email
	}

	if req.Feedback != nil {
		if *req.Feedback == "" {
			return nil, errorx.New(errorx.BadRequest, "Not allow an empty feedback")
		}

		changes["feedback"] = *req.Feedback
	}

	if _, err := d.entryRepo.GetByID(ctx, organizationID, req.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found entry")
		}

		xcontext.Logger(ctx).Errorf("Cannot get entry: %v", err)
		return nil, errorx.Unknown
	}

	if len(changes) > 0 {
		if err := d.entryRepo.UpdateByID(ctx, organizationID, req.ID, changes); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, errorx.New(errorx.AlreadyExists, "This email has already entered the draw")
			}

			xcontext.Logger(ctx).Errorf("Cannot update entry: %v", err)
			return nil, errorx.Unknown
		}
	}

	entry, err := d.entryRepo.GetByID(ctx, organizationID, req.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get entry: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateEntryResponse{Entry: model.ConvertEntry(entry)}, nil
}

func (d *entryDomain) Delete(
	ctx context.Context, req *model.DeleteEntryRequest,
) (*model.DeleteEntryResponse, error) {
	organizationID, err := requestOrganizationID(ctx, d.memberRepo)
	if err != nil {
		return nil, err
	}

	if err := d.entryRepo.DeleteByID(ctx, organizationID, req.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found entry")
		}

		xcontext.Logger(ctx).Errorf("Cannot delete entry: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteEntryResponse{}, nil
}
