package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/luckdraw/backend/internal/entity"
	"github.com/luckdraw/backend/pkg/xcontext"
	"github.com/luckdraw/backend/pkg/xredis"
)

const organizationCacheTTL = 10 * time.Minute

type OrganizationRepository interface {
	Create(ctx context.Context, organization *entity.Organization) error
	GetByID(ctx context.Context, id string) (*entity.Organization, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Organization, error)
	UpdateByID(ctx context.Context, id string, data entity.Organization) error
}

type organizationRepository struct {
	redisClient xredis.Client
}

func NewOrganizationRepository(redisClient xredis.Client) OrganizationRepository {
	return &organizationRepository{redisClient: redisClient}
}

func (r *organizationRepository) cacheKeyBySlug(slug string) string {
	return fmt.Sprintf("cache:organization:slug:%s", slug)
}

func (r *organizationRepository) Create(ctx context.Context, organization *entity.Organization) error {
	return xcontext.DB(ctx).Create(organization).Error
}

func (r *organizationRepository) GetByID(ctx context.Context, id string) (*entity.Organization, error) {
	var result entity.Organization
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *organizationRepository) GetBySlug(ctx context.Context, slug string) (*entity.Organization, error) {
	if r.redisClient != nil {
		var cached entity.Organization
		err := r.redisClient.GetObj(ctx, r.cacheKeyBySlug(slug), &cached)
		if err == nil {
			return &cached, nil
		}

		if !errors.Is(err, xredis.ErrNotFound) {
			xcontext.Logger(ctx).Warnf("Cannot get organization from redis: %v", err)
		}
	}

	var result entity.Organization
	if err := xcontext.DB(ctx).Take(&result, "slug=?", slug).Error; err != nil {
		return nil, err
	}

	if r.redisClient != nil {
		err := r.redisClient.SetObj(ctx, r.cacheKeyBySlug(slug), result, organizationCacheTTL)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot cache organization to redis: %v", err)
		}
	}

	return &result, nil
}

func (r *organizationRepository) UpdateByID(ctx context.Context, id string, data entity.Organization) error {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	err = xcontext.DB(ctx).Model(&entity.Organization{}).
		Where("id=?", id).Updates(data).Error
	if err != nil {
		return err
	}

	if r.redisClient != nil {
		if err := r.redisClient.Del(ctx, r.cacheKeyBySlug(current.Slug)); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot invalidate organization cache: %v", err)
		}
	}

	return nil
}
