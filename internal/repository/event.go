package repository

import (
	"context"
	"time"

	"github.com/rewardlab/backend/internal/entity"
	"github.com/rewardlab/backend/pkg/xcontext"
)

type EventRepository interface {
	Create(ctx context.Context, event *entity.Event) error
	GetByID(ctx context.Context, id string) (*entity.Event, error)
	GetList(ctx context.Context, offset, limit int) ([]entity.Event, error)
	GetActive(ctx context.Context, now time.Time) ([]entity.Event, error)
	UpdateByID(ctx context.Context, id string, data *entity.Event) error
	DeleteByID(ctx context.Context, id string) error
}

type eventRepository struct{}

func NewEventRepository() *eventRepository {
	return &eventRepository{}
}

func (r *eventRepository) Create(ctx context.Context, event *entity.Event) error {
	return xcontext.DB(ctx).Create(event).Error
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*entity.Event, error) {
	var result entity.Event
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *eventRepository) GetList(ctx context.Context, offset, limit int) ([]entity.Event, error) {
	var result []entity.Event
	err := xcontext.DB(ctx).
		Offset(offset).
		Limit(limit).
		Order("created_at ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *eventRepository) GetActive(ctx context.Context, now time.Time) ([]entity.Event, error) {
	var result []entity.Event
	err := xcontext.DB(ctx).
		Where("status=?", entity.EventActive).
		Where("start_date<=? AND end_date>=?", now, now).
		Order("start_date ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// UpdateByID writes every mutable column so callers can persist zero values
// like need_approval=false. Callers pass the fully merged entity.
func (r *eventRepository) UpdateByID(ctx context.Context, id string, data *entity.Event) error {
	return xcontext.DB(ctx).
		Model(&entity.Event{}).
		Where("id=?", id).
		Select("Name", "Description", "Type", "Status",
			"StartDate", "EndDate", "NeedApproval", "Conditions").
		Updates(data).Error
}

func (r *eventRepository) DeleteByID(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Delete(&entity.Event{}, "id=?", id).Error
}
