package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rewardlab/backend/internal/common"
	"github.com/rewardlab/backend/internal/entity"
	"github.com/rewardlab/backend/internal/model"
	"github.com/rewardlab/backend/internal/repository"
	"github.com/rewardlab/backend/pkg/enum"
	"github.com/rewardlab/backend/pkg/errorx"
	"github.com/rewardlab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type RewardDomain interface {
	Create(ctx context.Context, req *model.CreateRewardRequest) (*model.CreateRewardResponse, error)
	Get(ctx context.Context, req *model.GetRewardRequest) (*model.GetRewardResponse, error)
	GetList(ctx context.Context, req *model.GetListRewardRequest) (*model.GetListRewardResponse, error)
}

type rewardDomain struct {
	rewardRepo   repository.RewardRepository
	eventRepo    repository.EventRepository
	roleVerifier *common.GlobalRoleVerifier
}

func NewRewardDomain(
	rewardRepo repository.RewardRepository,
	eventRepo repository.EventRepository,
	userRepo repository.UserRepository,
) *rewardDomain {
	return &rewardDomain{
		rewardRepo:   rewardRepo,
		eventRepo:    eventRepo,
		roleVerifier: common.NewGlobalRoleVerifier(userRepo),
	}
}

func (d *rewardDomain) Create(
	ctx context.Context, req *model.CreateRewardRequest,
) (*model.CreateRewardResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.OperatorGroup...); err != nil {
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	if req.Name == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty reward name")
	}

	category, err := enum.ToEnum[entity.RewardCategory](req.Category)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid reward category %s", req.Category)
	}

	subType := entity.RewardSubType(req.SubType)
	if !category.IsValidSubType(subType) {
		return nil, errorx.New(errorx.BadRequest,
			"Sub type %s does not belong to category %s", req.SubType, req.Category)
	}

	event, err := d.eventRepo.GetByID(ctx, req.EventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found event")
		}

		xcontext.Logger(ctx).Errorf("Cannot get event: %v", err)
		return nil, errorx.Unknown
	}

	if event.Status != entity.EventActive {
		return nil, errorx.New(errorx.Unavailable, "Cannot attach a reward to an inactive event")
	}

	reward := &entity.Reward{
		Base:        entity.Base{ID: uuid.NewString()},
		EventID:     req.EventID,
		Category:    category,
		SubType:     subType,
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Metadata:    req.Metadata,
	}

	if reward.Metadata == nil {
		reward.Metadata = entity.Map{}
	}

	if err := d.rewardRepo.Create(ctx, reward); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create reward: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateRewardResponse{ID: reward.ID}, nil
}

func (d *rewardDomain) Get(
	ctx context.Context, req *model.GetRewardRequest,
) (*model.GetRewardResponse, error) {
	reward, err := d.rewardRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found reward")
		}

		xcontext.Logger(ctx).Errorf("Cannot get reward: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.GetRewardResponse(model.ConvertReward(*reward))
	return &resp, nil
}

// GetList returns an empty list for an event without rewards, an existing
// event with no catalog is not an error.
func (d *rewardDomain) GetList(
	ctx context.Context, req *model.GetListRewardRequest,
) (*model.GetListRewardResponse, error) {
	if req.Limit == 0 {
		req.Limit = 50
	}

	if req.Limit < 0 || req.Limit > 50 {
		return nil, errorx.New(errorx.BadRequest, "Limit must be in range of [1, 50]")
	}

	if req.EventID != "" {
		if _, err := d.eventRepo.GetByID(ctx, req.EventID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorx.New(errorx.NotFound, "Not found event")
			}

			xcontext.Logger(ctx).Errorf("Cannot get event: %v", err)
			return nil, errorx.Unknown
		}
	}

	rewards, err := d.rewardRepo.GetList(ctx, repository.RewardFilter{
		EventID: req.EventID,
		Offset:  req.Offset,
		Limit:   req.Limit,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get list of rewards: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetListRewardResponse{Rewards: model.ConvertRewards(rewards)}, nil
}
