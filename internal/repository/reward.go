package repository

import (
	"context"

	"github.com/rewardlab/backend/internal/entity"
	"github.com/rewardlab/backend/pkg/xcontext"
)

type RewardFilter struct {
	EventID string
	Offset  int
	Limit   int
}

type RewardRepository interface {
	Create(ctx context.Context, reward *entity.Reward) error
	GetByID(ctx context.Context, id string) (*entity.Reward, error)
	GetByEventID(ctx context.Context, eventID string) ([]entity.Reward, error)
	GetList(ctx context.Context, filter RewardFilter) ([]entity.Reward, error)
	DeleteByEventID(ctx context.Context, eventID string) error
}

type rewardRepository struct{}

func NewRewardRepository() *rewardRepository {
	return &rewardRepository{}
}

func (r *rewardRepository) Create(ctx context.Context, reward *entity.Reward) error {
	return xcontext.DB(ctx).Create(reward).Error
}

func (r *rewardRepository) GetByID(ctx context.Context, id string) (*entity.Reward, error) {
	var result entity.Reward
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *rewardRepository) GetByEventID(ctx context.Context, eventID string) ([]entity.Reward, error) {
	var result []entity.Reward
	err := xcontext.DB(ctx).
		Where("event_id=?", eventID).
		Order("created_at ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *rewardRepository) GetList(ctx context.Context, filter RewardFilter) ([]entity.Reward, error) {
	tx := xcontext.DB(ctx).
		Offset(filter.Offset).
		Limit(filter.Limit).
		Order("created_at ASC")

	if filter.EventID != "" {
		tx = tx.Where("event_id=?", filter.EventID)
	}

	var result []entity.Reward
	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *rewardRepository) DeleteByEventID(ctx context.Context, eventID string) error {
	return xcontext.DB(ctx).Delete(&entity.Reward{}, "event_id=?", eventID).Error
}
