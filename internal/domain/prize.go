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

type PrizeDomain interface {
	Create(context.Context, *model.CreatePrizeRequest) (*model.CreatePrizeResponse, error)
	GetList(context.Context, *model.GetPrizesRequest) (*model.GetPrizesResponse, error)
	GetBySlug(context.Context, *model.GetPrizesBySlugRequest) (*model.GetPrizesBySlugResponse, error)
	Update(context.Context, *model.UpdatePrizeRequest) (*model.UpdatePrizeResponse, error)
	Delete(context.Context, *model.DeletePrizeRequest) (*model.DeletePrizeResponse, error)
}

type prizeDomain struct {
	prizeRepo        repository.PrizeRepository
	organizationRepo repository.OrganizationRepository
	memberRepo       repository.MemberRepository
}

func NewPrizeDomain(
	prizeRepo repository.PrizeRepository,
	organizationRepo repository.OrganizationRepository,
	memberRepo repository.MemberRepository,
) *prizeDomain {
	return &prizeDomain{
		prizeRepo:        prizeRepo,
		organizationRepo: organizationRepo,
		memberRepo:       memberRepo,
	}
}

func (d *prizeDomain) Create(
	ctx context.Context, req *model.CreatePrizeRequest,
) (*model.CreatePrizeResponse, error) {
	organizationID, err := requestOrganizationID(ctx, d.memberRepo)
	if err != nil {
		return nil, err
	}

	if req.Place < 1 {
		return nil, errorx.New(errorx.BadRequest, "Place must be positive")
	}

	if req.Name == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty name")
	}

	prize := &entity.Prize{
		Base:           entity.Base{ID: uuid.NewString()},
		OrganizationID: organizationID,
		Place:          req.Place,
		Name:           req.Name,
		Description:    req.Description,
		ImageURL:       req.ImageURL,
		Link:           req.Link,
	}

	if err := d.prizeRepo.Create(ctx, prize); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errorx.New(errorx.AlreadyExists, "Place %d already has a prize", req.Place)
		}

		xcontext.Logger(ctx).Errorf("Cannot create prize: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreatePrizeResponse{Prize: model.ConvertPrize(prize)}, nil
}

func (d *prizeDomain) GetList(
	ctx context.Context, req *model.GetPrizesRequest,
) (*model.GetPrizesResponse, error) {
	organizationID, err := requestOrganizationID(ctx, d.memberRepo)
	if err != nil {
		return nil, err
	}

	prizes, err := d.prizeRepo.GetList(ctx, organizationID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get prizes: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetPrizesResponse{Prizes: model.ConvertPrizes(prizes)}, nil
}

// GetBySlug is the public listing shown on the organization's entry page.
func (d *prizeDomain) GetBySlug(
	ctx context.Context, req *model.GetPrizesBySlugRequest,
) (*model.GetPrizesBySlugResponse, error) {
	organization, err := d.organizationRepo.GetBySlug(ctx, req.Slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found organization")
		}

		xcontext.Logger(ctx).Errorf("Cannot get organization: %v", err)
		return nil, errorx.Unknown
	}

	prizes, err := d.prizeRepo.GetList(ctx, organization.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get prizes: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetPrizesBySlugResponse{Prizes: model.ConvertPrizes(prizes)}, nil
}

// Update applies only the fields present in the request. The place is not
// updatable, delete and recreate the prize to move it.
func (d *prizeDomain) Update(
	ctx context.Context, req *model.UpdatePrizeRequest,
) (*model.UpdatePrizeResponse, error) {
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

	if req.Description != nil {
		changes["description"] = *req.Description
	}

	if req.ImageURL != nil {
		changes["image_url"] = *req.ImageURL
	}

	if req.Link != nil {
		changes["link"] = *req.Link
	}

	if _, err := d.prizeRepo.GetByID(ctx, organizationID, req.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found prize")
		}

		xcontext.Logger(ctx).Errorf("Cannot get prize: %v", err)
		return nil, errorx.Unknown
	}

	if len(changes) > 0 {
		if err := d.prizeRepo.UpdateByID(ctx, organizationID, req.ID, changes); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot update prize: %v", err)
			return nil, errorx.Unknown
		}
	}

	prize, err := d.prizeRepo.GetByID(ctx, organizationID, req.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get prize: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdatePrizeResponse{Prize: model.ConvertPrize(prize)}, nil
}

func (d *prizeDomain) Delete(
	ctx context.Context, req *model.DeletePrizeRequest,
) (*model.DeletePrizeResponse, error) {
	organizationID, err := requestOrganizationID(ctx, d.memberRepo)
	if err != nil {
		return nil, err
	}

	if err := d.prizeRepo.DeleteByID(ctx, organizationID, req.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found prize")
		}

		xcontext.Logger(ctx).Errorf("Cannot delete prize: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeletePrizeResponse{}, nil
}
