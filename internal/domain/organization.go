package domain

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/luckdraw/backend/internal/entity"
	"github.com/luckdraw/backend/internal/model"
	"github.com/luckdraw/backend/internal/repository"
	"github.com/luckdraw/backend/pkg/errorx"
	"github.com/luckdraw/backend/pkg/storage"
	"github.com/luckdraw/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type OrganizationDomain interface {
	GetMy(context.Context, *model.GetMyOrganizationRequest) (*model.GetMyOrganizationResponse, error)
	Update(context.Context, *model.UpdateOrganizationRequest) (*model.UpdateOrganizationResponse, error)
	GetBySlug(context.Context, *model.GetOrganizationBySlugRequest) (*model.GetOrganizationBySlugResponse, error)
	UploadLogo(context.Context, *model.UploadLogoRequest) (*model.UploadLogoResponse, error)
}

type organizationDomain struct {
	organizationRepo repository.OrganizationRepository
	memberRepo       repository.MemberRepository
	storage          storage.Storage
}

func NewOrganizationDomain(
	organizationRepo repository.OrganizationRepository,
	memberRepo repository.MemberRepository,
	storage storage.Storage,
) *organizationDomain {
	return &organizationDomain{
		organizationRepo: organizationRepo,
		memberRepo:       memberRepo,
		storage:          storage,
	}
}

func (d *organizationDomain) GetMy(
	ctx context.Context, req *model.GetMyOrganizationRequest,
) (*model.GetMyOrganizationResponse, error) {
	organizationID, err := requestOrganizationID(ctx, d.memberRepo)
	if err != nil {
		return nil, err
	}

	organization, err := d.organizationRepo.GetByID(ctx, organizationID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get organization: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetMyOrganizationResponse{
		Organization: model.ConvertOrganization(organization),
	}, nil
}

// Update applies only the fields present in the request. A nil pointer means
// the field keeps its current value. The slug is never updatable.
func (d *organizationDomain) Update(
	ctx context.Context, req *model.UpdateOrganizationRequest,
) (*model.UpdateOrganizationResponse, error) {
	organizationID, err := requestOrganizationID(ctx, d.memberRepo)
	if err != nil {
		return nil, err
	}

	changes := entity.Organization{}
	if req.Name != nil {
		if err := checkOrganizationName(*req.Name); err != nil {
			return nil, err
		}

		changes.Name = *req.Name
	}

	if req.PrimaryColor != nil {
		if err := checkPrimaryColor(*req.PrimaryColor); err != nil {
			return nil, err
		}

		changes.PrimaryColor = *req.PrimaryColor
	}

	if req.LogoURL != nil {
		changes.LogoURL = *req.LogoURL
	}

	if err := d.organizationRepo.UpdateByID(ctx, organizationID, changes); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update organization: %v", err)
		return nil, errorx.Unknown
	}

	organization, err := d.organizationRepo.GetByID(ctx, organizationID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get organization: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateOrganizationResponse{
		Organization: model.ConvertOrganization(organization),
	}, nil
}

func (d *organizationDomain) GetBySlug(
	ctx context.Context, req *model.GetOrganizationBySlugRequest,
) (*model.GetOrganizationBySlugResponse, error) {
	if req.Slug == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty slug")
	}

	organization, err := d.organizationRepo.GetBySlug(ctx, req.Slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found organization")
		}

		xcontext.Logger(ctx).Errorf("Cannot get organization: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetOrganizationBySlugResponse{
		Organization: model.ConvertOrganization(organization),
	}, nil
}

func (d *organizationDomain) UploadLogo(
	ctx context.Context, req *model.UploadLogoRequest,
) (*model.UploadLogoResponse, error) {
	organizationID, err := requestOrganizationID(ctx, d.memberRepo)
	if err != nil {
		return nil, err
	}

	httpReq := xcontext.HTTPRequest(ctx)
	if err := httpReq.ParseMultipartForm(xcontext.Configs(ctx).File.MaxSize); err != nil {
		return nil, errorx.New(errorx.BadRequest, "Request must be multipart form")
	}

	file, header, err := httpReq.FormFile("logo")
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get the logo: %v", err)
		return nil, errorx.New(errorx.BadRequest, "Cannot get the logo")
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot read logo file: %v", err)
		return nil, errorx.Unknown
	}

	mime := http.DetectContentType(content)
	if !strings.HasPrefix(mime, "image/") {
		return nil, errorx.New(errorx.BadRequest, "The logo must be an image")
	}

	uploaded, err := d.storage.Upload(ctx, &storage.UploadObject{
		Bucket:   xcontext.Configs(ctx).Storage.Bucket,
		Prefix:   "logos",
		FileName: header.Filename,
		Mime:     mime,
		Data:     content,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upload logo: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Cannot upload the logo")
	}

	err = d.organizationRepo.UpdateByID(ctx, organizationID, entity.Organization{LogoURL: uploaded.Url})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update organization logo: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UploadLogoResponse{Url: uploaded.Url}, nil
}
