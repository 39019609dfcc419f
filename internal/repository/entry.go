package repository

import (
	"context"
	"time"

	"github.com/luckdraw/backend/internal/entity"
	"github.com/luckdraw/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type EntryRepository interface {
	Create(ctx context.Context, entry *entity.Entry) error
	GetByID(ctx context.Context, organizationID, id string) (*entity.Entry, error)
	GetList(ctx context.Context, organizationID string, offset, limit int) ([]entity.Entry, error)
	Count(ctx context.Context, organizationID string) (int64, error)
	UpdateByID(ctx context.Context, organizationID, id string, changes map[string]any) error
	DeleteByID(ctx context.Context, organizationID, id string) error
	GetRandomNonWinner(ctx context.Context, organizationID string) (*entity.Entry, error)
	CheckAndAssignWinner(ctx context.Context, organizationID, id string, place int) error
	CheckAndMarkNotified(ctx context.Context, organizationID, id string, notifiedAt time.Time) error
}

type entryRepository struct{}

func NewEntryRepository() EntryRepository {
	return &entryRepository{}
}

func (r *entryRepository) Create(ctx context.Context, entry *entity.Entry) error {
	return xcontext.DB(ctx).Create(entry).Error
}

func (r *entryRepository) GetByID(ctx context.Context, organizationID, id string) (*entity.Entry, error) {
	var result entity.Entry
	err := xcontext.DB(ctx).
		Take(&result, "id=? AND organization_id=?", id, organizationID).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *entryRepository) GetList(ctx context.Context, organizationID string, offset, limit int) ([]entity.Entry, error) {
	var result []entity.Entry
	err := xcontext.DB(ctx).
		Where("organization_id=?", organizationID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *entryRepository) Count(ctx context.Context, organizationID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.Entry{}).
		Where("organization_id=?", organizationID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *entryRepository) UpdateByID(ctx context.Context, organizationID, id string, changes map[string]any) error {
	return xcontext.DB(ctx).Model(&entity.Entry{}).
		Where("id=? AND organization_id=?", id, organizationID).
		Updates(changes).Error
}

// DeleteByID removes the row for real rather than soft-deleting it, so the
// entry's email and winner place become available again.
func (r *entryRepository) DeleteByID(ctx context.Context, organizationID, id string) error {
	tx := xcontext.DB(ctx).Unscoped().
		Where("id=? AND organization_id=?", id, organizationID).
		Delete(&entity.Entry{})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *entryRepository) GetRandomNonWinner(ctx context.Context, organizationID string) (*entity.Entry, error) {
	random := "RAND()"
	if xcontext.DB(ctx).Dialector.Name() == "sqlite" {
		random = "RANDOM()"
	}

	var result entity.Entry
	err := xcontext.DB(ctx).
		Where("organization_id=? AND is_winner=?", organizationID, false).
		Order(random).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// CheckAndAssignWinner marks the entry as the winner of the given place only
// if it has not won yet. The unique index on (organization_id, winner_place)
// rejects a second winner for the same place with gorm.ErrDuplicatedKey.
func (r *entryRepository) CheckAndAssignWinner(ctx context.Context, organizationID, id string, place int) error {
	tx := xcontext.DB(ctx).Model(&entity.Entry{}).
		Where("id=? AND organization_id=? AND is_winner=?", id, organizationID, false).
		Updates(map[string]any{"is_winner": true, "winner_place": place})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *entryRepository) CheckAndMarkNotified(ctx context.Context, organizationID, id string, notifiedAt time.Time) error {
	tx := xcontext.DB(ctx).Model(&entity.Entry{}).
		Where("id=? AND organization_id=? AND is_winner=? AND is_notified=?",
			id, organizationID, true, false).
		Updates(map[string]any{"is_notified": true, "notified_at": notifiedAt})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
