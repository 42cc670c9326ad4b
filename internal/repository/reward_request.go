package repository

import (
	"context"

	"github.com/rewardlab/backend/internal/entity"
	"github.com/rewardlab/backend/pkg/xcontext"
)

type RewardRequestFilter struct {
	EventID string
	UserID  string
	Status  entity.RewardRequestStatus
	Offset  int
	Limit   int
}

type RewardRequestRepository interface {
	Create(ctx context.Context, req *entity.RewardRequest) error
	GetByID(ctx context.Context, id string) (*entity.RewardRequest, error)
	GetByUserAndEvent(ctx context.Context, userID, eventID string) (*entity.RewardRequest, error)
	GetList(ctx context.Context, filter RewardRequestFilter) ([]entity.RewardRequest, error)
	Update(ctx context.Context, req *entity.RewardRequest) error
	DeleteByEventID(ctx context.Context, eventID string) error
}

type rewardRequestRepository struct{}

func NewRewardRequestRepository() *rewardRequestRepository {
	return &rewardRequestRepository{}
}

func (r *rewardRequestRepository) Create(ctx context.Context, req *entity.RewardRequest) error {
	return xcontext.DB(ctx).Create(req).Error
}

func (r *rewardRequestRepository) GetByID(ctx context.Context, id string) (*entity.RewardRequest, error) {
	var result entity.RewardRequest
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *rewardRequestRepository) GetByUserAndEvent(
	ctx context.Context, userID, eventID string,
) (*entity.RewardRequest, error) {
	var result entity.RewardRequest
	err := xcontext.DB(ctx).
		Take(&result, "user_id=? AND event_id=?", userID, eventID).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *rewardRequestRepository) GetList(
	ctx context.Context, filter RewardRequestFilter,
) ([]entity.RewardRequest, error) {
	tx := xcontext.DB(ctx).
		Offset(filter.Offset).
		Limit(filter.Limit).
		Order("created_at ASC")

	if filter.EventID != "" {
		tx = tx.Where("event_id=?", filter.EventID)
	}

	if filter.UserID != "" {
		tx = tx.Where("user_id=?", filter.UserID)
	}

	if filter.Status != "" {
		tx = tx.Where("status=?", filter.Status)
	}

	var result []entity.RewardRequest
	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

// Update persists the full row. Claim and review both rewrite status, history,
// and the decision stamps together, a column allowlist would drift.
func (r *rewardRequestRepository) Update(ctx context.Context, req *entity.RewardRequest) error {
	return xcontext.DB(ctx).
		Model(&entity.RewardRequest{}).
		Where("id=?", req.ID).
		Select("Status", "History", "ApprovedAt", "ApprovedBy",
			"RejectedAt", "RejectedBy", "RejectionReason").
		Updates(req).Error
}

func (r *rewardRequestRepository) DeleteByEventID(ctx context.Context, eventID string) error {
	return xcontext.DB(ctx).Delete(&entity.RewardRequest{}, "event_id=?", eventID).Error
}
