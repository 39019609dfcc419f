package domain

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/luckdraw/backend/internal/entity"
	"github.com/luckdraw/backend/internal/model"
	"github.com/luckdraw/backend/internal/repository"
	"github.com/luckdraw/backend/pkg/errorx"
	"github.com/luckdraw/backend/pkg/xcontext"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const maxSlugAttempts = 10

type AuthDomain interface {
	Register(context.Context, *model.RegisterRequest) (*model.RegisterResponse, error)
	Login(context.Context, *model.LoginRequest) (*model.LoginResponse, error)
}

type authDomain struct {
	memberRepo       repository.MemberRepository
	organizationRepo repository.OrganizationRepository
}

func NewAuthDomain(
	memberRepo repository.MemberRepository,
	organizationRepo repository.OrganizationRepository,
) *authDomain {
	return &authDomain{
		memberRepo:       memberRepo,
		organizationRepo: organizationRepo,
	}
}

func (d *authDomain) Register(
	ctx context.Context, req *model.RegisterRequest,
) (*model.RegisterResponse, error) {
	if err := checkEmail(req.Email); err != nil {
		return nil, err
	}

	if err := checkPassword(req.Password); err != nil {
		return nil, err
	}

	if err := checkOrganizationName(req.OrganizationName); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot hash password: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	organization, err := d.createOrganizationWithUniqueSlug(ctx, req.OrganizationName)
	if err != nil {
		return nil, err
	}

	member := &entity.Member{
		Base:           entity.Base{ID: uuid.NewString()},
		Email:          req.Email,
		HashedPassword: string(hashedPassword),
		OrganizationID: organization.ID,
	}

	if err := d.memberRepo.Create(ctx, member); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errorx.New(errorx.AlreadyExists, "This email is already registered")
		}

		xcontext.Logger(ctx).Errorf("Cannot create member: %v", err)
		return nil, errorx.Unknown
	}

	token, err := xcontext.TokenEngine(ctx).Generate(member.ID, model.AccessToken{
		ID:             member.ID,
		Email:          member.Email,
		OrganizationID: organization.ID,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.RegisterResponse{
		AccessToken:  token,
		Organization: model.ConvertOrganization(organization),
	}, nil
}

// createOrganizationWithUniqueSlug relies on the unique index on slug to
// detect collisions, so two concurrent registrations with the same name
// cannot both take the base slug. The loser retries with a numeric suffix.
func (d *authDomain) createOrganizationWithUniqueSlug(
	ctx context.Context, name string,
) (*entity.Organization, error) {
	baseSlug := generateOrganizationSlug(name)

	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		slug := baseSlug
		if attempt > 0 {
			slug = fmt.Sprintf("%s-%d", baseSlug, attempt)
		}

		organization := &entity.Organization{
			Base:         entity.Base{ID: uuid.NewString()},
			Name:         name,
			Slug:         slug,
			PrimaryColor: entity.DefaultPrimaryColor,
		}

		err := d.organizationRepo.Create(ctx, organization)
		if err == nil {
			return organization, nil
		}

		if errors.Is(err, gorm.ErrDuplicatedKey) {
			continue
		}

		xcontext.Logger(ctx).Errorf("Cannot create organization: %v", err)
		return nil, errorx.Unknown
	}

	return nil, errorx.New(errorx.AlreadyExists, "Cannot allocate a slug for this organization name")
}

func (d *authDomain) Login(
	ctx context.Context, req *model.LoginRequest,
) (*model.LoginResponse, error) {
	member, err := d.memberRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.Unauthenticated, "Invalid email or password")
		}

		xcontext.Logger(ctx).Errorf("Cannot get member: %v", err)
		return nil, errorx.Unknown
	}

	err = bcrypt.CompareHashAndPassword([]byte(member.HashedPassword), []byte(req.Password))
	if err != nil {
		return nil, errorx.New(errorx.Unauthenticated, "Invalid email or password")
	}

	organization, err := d.organizationRepo.GetByID(ctx, member.OrganizationID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get organization: %v", err)
		return nil, errorx.Unknown
	}

	token, err := xcontext.TokenEngine(ctx).Generate(member.ID, model.AccessToken{
		ID:             member.ID,
		Email:          member.Email,
		OrganizationID: member.OrganizationID,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.LoginResponse{
		AccessToken:  token,
		Organization: model.ConvertOrganization(organization),
	}, nil
}
