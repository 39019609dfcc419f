package repository

import (
	"context"

	"github.com/luckdraw/backend/internal/entity"
	"github.com/luckdraw/backend/pkg/xcontext"
)

type MemberRepository interface {
	Create(ctx context.Context, member *entity.Member) error
	GetByID(ctx context.Context, id string) (*entity.Member, error)
	GetByEmail(ctx context.Context, email string) (*entity.Member, error)
}

type memberRepository struct{}

func NewMemberRepository() MemberRepository {
	return &memberRepository{}
}

func (r *memberRepository) Create(ctx context.Context, member *entity.Member) error {
	return xcontext.DB(ctx).Create(member).Error
}

func (r *memberRepository) GetByID(ctx context.Context, id string) (*entity.Member, error) {
	var result entity.Member
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *memberRepository) GetByEmail(ctx context.Context, email string) (*entity.Member, error) {
	var result entity.Member
	if err := xcontext.DB(ctx).Take(&result, "email=?", email).Error; err != nil {
		return nil, err
	}

	return &result, nil
}
