package repository

import (
	"context"

	"github.com/luckdraw/backend/internal/entity"
	"github.com/luckdraw/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type PrizeRepository interface {
	Create(ctx context.Context, prize *entity.Prize) error
	GetByID(ctx context.Context, organizationID, id string) (*entity.Prize, error)
	GetByPlace(ctx context.Context, organizationID string, place int) (*entity.Prize, error)
	GetList(ctx context.Context, organizationID string) ([]entity.Prize, error)
	UpdateByID(ctx context.Context, organizationID, id string, changes map[string]any) error
	DeleteByID(ctx context.Context, organizationID, id string) error
}

type prizeRepository struct{}

func NewPrizeRepository() PrizeRepository {
	return &prizeRepository{}
}

func (r *prizeRepository) Create(ctx context.Context, prize *entity.Prize) error {
	return xcontext.DB(ctx).Create(prize).Error
}

func (r *prizeRepository) GetByID(ctx context.Context, organizationID, id string) (*entity.Prize, error) {
	var result entity.Prize
	err := xcontext.DB(ctx).
		Take(&result, "id=? AND organization_id=?", id, organizationID).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *prizeRepository) GetByPlace(ctx context.Context, organizationID string, place int) (*entity.Prize, error) {
	var result entity.Prize
	err := xcontext.DB(ctx).
		Take(&result, "organization_id=? AND place=?", organizationID, place).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *prizeRepository) GetList(ctx context.Context, organizationID string) ([]entity.Prize, error) {
	var result []entity.Prize
	err := xcontext.DB(ctx).
		Where("organization_id=?", organizationID).
		Order("place ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *prizeRepository) UpdateByID(ctx context.Context, organizationID, id string, changes map[string]any) error {
	return xcontext.DB(ctx).Model(&entity.Prize{}).
		Where("id=? AND organization_id=?", id, organizationID).
		Updates(changes).Error
}

// DeleteByID removes the row for real so the place can be reused by a new
// prize.
func (r *prizeRepository) DeleteByID(ctx context.Context, organizationID, id string) error {
	tx := xcontext.DB(ctx).Unscoped().
		Where("id=? AND organization_id=?", id, organizationID).
		Delete(&entity.Prize{})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
