package domain

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rewardlab/backend/internal/common"
	"github.com/rewardlab/backend/internal/domain/eventcond"
	"github.com/rewardlab/backend/internal/entity"
	"github.com/rewardlab/backend/internal/model"
	"github.com/rewardlab/backend/internal/repository"
	"github.com/rewardlab/backend/pkg/enum"
	"github.com/rewardlab/backend/pkg/errorx"
	"github.com/rewardlab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type RewardRequestDomain interface {
	Claim(ctx context.Context, req *model.ClaimRewardRequest) (*model.ClaimRewardResponse, error)
	Review(ctx context.Context, req *model.ReviewRewardRequestRequest) (*model.ReviewRewardRequestResponse, error)
	Get(ctx context.Context, req *model.GetRewardRequestRequest) (*model.GetRewardRequestResponse, error)
	GetList(ctx context.Context, req *model.GetListRewardRequestRequest) (*model.GetListRewardRequestResponse, error)
}

type rewardRequestDomain struct {
	rewardRequestRepo repository.RewardRequestRepository
	rewardRepo        repository.RewardRepository
	eventRepo         repository.EventRepository
	roleVerifier      *common.GlobalRoleVerifier
}

func NewRewardRequestDomain(
	rewardRequestRepo repository.RewardRequestRepository,
	rewardRepo repository.RewardRepository,
	eventRepo repository.EventRepository,
	userRepo repository.UserRepository,
) *rewardRequestDomain {
	return &rewardRequestDomain{
		rewardRequestRepo: rewardRequestRepo,
		rewardRepo:        rewardRepo,
		eventRepo:         eventRepo,
		roleVerifier:      common.NewGlobalRoleVerifier(userRepo),
	}
}

// Claim evaluates the event conditions against the caller's submitted values
// and creates or resubmits the caller's reward request. The (user, event)
// record is unique, a pending or approved record blocks further claims while
// a rejected one is re-evaluated in place.
func (d *rewardRequestDomain) Claim(
	ctx context.Context, req *model.ClaimRewardRequest,
) (*model.ClaimRewardResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "Not allow an unauthenticated claim")
	}

	event, err := d.eventRepo.GetByID(ctx, req.EventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found event")
		}

		xcontext.Logger(ctx).Errorf("Cannot get event: %v", err)
		return nil, errorx.Unknown
	}

	now := time.Now()
	if event.Status != entity.EventActive || now.Before(event.StartDate) || now.After(event.EndDate) {
		return nil, errorx.New(errorx.Unavailable, "Event is not open for claims")
	}

	existing, err := d.rewardRequestRepo.GetByUserAndEvent(ctx, userID, req.EventID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get reward request: %v", err)
		return nil, errorx.Unknown
	}

	if existing != nil {
		switch existing.Status {
		case entity.RequestPending:
			return nil, errorx.New(errorx.AlreadyExists,
				"Your request is already waiting for review")
		case entity.RequestApproved:
			return nil, errorx.New(errorx.AlreadyExists,
				"You have already claimed this event")
		case entity.RequestRejected:
			return d.reclaim(ctx, existing, event, req.ConditionStatus)
		}
	}

	verdict, detail, err := eventcond.Evaluate(event.Conditions, req.ConditionStatus)
	if err != nil {
		return nil, err
	}

	// Manual-review events hold every first claim for an operator even when
	// the conditions already fail.
	status := verdict
	if event.NeedApproval {
		status = entity.RequestPending
	}

	request := &entity.RewardRequest{
		Base:    entity.Base{ID: uuid.NewString()},
		UserID:  userID,
		EventID: req.EventID,
		Status:  status,
		History: entity.Array[entity.RequestHistory]{{
			Timestamp: now,
			Status:    status,
			Detail:    detail,
		}},
	}

	// A terminal status decided here carries a timestamp but no actor, the
	// null actor marks a system verdict.
	switch status {
	case entity.RequestApproved:
		request.ApprovedAt = sql.NullTime{Time: now, Valid: true}
	case entity.RequestRejected:
		request.RejectedAt = sql.NullTime{Time: now, Valid: true}
		request.RejectionReason = "Conditions were not met"
	}

	if err := d.rewardRequestRepo.Create(ctx, request); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create reward request: %v", err)
		return nil, errorx.Unknown
	}

	return d.claimResponse(ctx, request)
}

// reclaim re-evaluates a rejected request. Unlike a first claim, the verdict
// applies immediately even on manual-review events, a rejection has already
// been decided once so a passing resubmission needs no second review.
func (d *rewardRequestDomain) reclaim(
	ctx context.Context,
	request *entity.RewardRequest,
	event *entity.Event,
	conditionStatus map[string]any,
) (*model.ClaimRewardResponse, error) {
	verdict, detail, err := eventcond.Evaluate(event.Conditions, conditionStatus)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	request.Status = verdict
	request.History = append(request.History, entity.RequestHistory{
		Timestamp: now,
		Status:    verdict,
		Detail:    detail,
	})

	switch verdict {
	case entity.RequestApproved:
		request.ApprovedAt = sql.NullTime{Time: now, Valid: true}
		request.ApprovedBy = sql.NullString{}
		request.RejectionReason = ""
	case entity.RequestRejected:
		request.RejectedAt = sql.NullTime{Time: now, Valid: true}
		request.RejectedBy = sql.NullString{}
		request.RejectionReason = "Conditions were not met"
	}

	if err := d.rewardRequestRepo.Update(ctx, request); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update reward request: %v", err)
		return nil, errorx.Unknown
	}

	return d.claimResponse(ctx, request)
}

func (d *rewardRequestDomain) claimResponse(
	ctx context.Context, request *entity.RewardRequest,
) (*model.ClaimRewardResponse, error) {
	resp := &model.ClaimRewardResponse{
		ID:      request.ID,
		Status:  string(request.Status),
		Rewards: []model.Reward{},
	}

	if request.Status == entity.RequestApproved {
		rewards, err := d.rewardRepo.GetByEventID(ctx, request.EventID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get rewards of event: %v", err)
			return nil, errorx.Unknown
		}

		resp.Rewards = model.ConvertRewards(rewards)
	}

	return resp, nil
}

// Review lets an operator decide a pending request. The decision stamps the
// actor, a reviewed request never goes back to pending.
func (d *rewardRequestDomain) Review(
	ctx context.Context, req *model.ReviewRewardRequestRequest,
) (*model.ReviewRewardRequestResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.OperatorGroup...); err != nil {
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	action, err := enum.ToEnum[entity.RewardRequestStatus](req.Action)
	if err != nil || action == entity.RequestPending {
		return nil, errorx.New(errorx.BadRequest, "Invalid review action %s", req.Action)
	}

	request, err := d.rewardRequestRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found reward request")
		}

		xcontext.Logger(ctx).Errorf("Cannot get reward request: %v", err)
		return nil, errorx.Unknown
	}

	if request.Status != entity.RequestPending {
		return nil, errorx.New(errorx.Unavailable, "Can only review a pending request")
	}

	now := time.Now()
	reviewer := xcontext.RequestUserID(ctx)

	request.Status = action
	switch action {
	case entity.RequestApproved:
		request.ApprovedAt = sql.NullTime{Time: now, Valid: true}
		request.ApprovedBy = sql.NullString{String: reviewer, Valid: true}
	case entity.RequestRejected:
		request.RejectedAt = sql.NullTime{Time: now, Valid: true}
		request.RejectedBy = sql.NullString{String: reviewer, Valid: true}
		request.RejectionReason = req.Reason
	}

	if err := d.rewardRequestRepo.Update(ctx, request); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update reward request: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.ReviewRewardRequestResponse{
		Status:  string(request.Status),
		Rewards: []model.Reward{},
	}

	if action == entity.RequestApproved {
		rewards, err := d.rewardRepo.GetByEventID(ctx, request.EventID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get rewards of event: %v", err)
			return nil, errorx.Unknown
		}

		resp.Rewards = model.ConvertRewards(rewards)
	}

	return resp, nil
}

func (d *rewardRequestDomain) Get(
	ctx context.Context, req *model.GetRewardRequestRequest,
) (*model.GetRewardRequestResponse, error) {
	request, err := d.rewardRequestRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found reward request")
		}

		xcontext.Logger(ctx).Errorf("Cannot get reward request: %v", err)
		return nil, errorx.Unknown
	}

	// Owners read their own request, anyone else needs a viewer role.
	if request.UserID != xcontext.RequestUserID(ctx) {
		if err := d.roleVerifier.Verify(ctx, entity.ViewerGroup...); err != nil {
			return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
		}
	}

	resp := model.GetRewardRequestResponse(model.ConvertRewardRequest(*request))
	return &resp, nil
}

func (d *rewardRequestDomain) GetList(
	ctx context.Context, req *model.GetListRewardRequestRequest,
) (*model.GetListRewardRequestResponse, error) {
	if req.Limit == 0 {
		req.Limit = 50
	}

	if req.Limit < 0 || req.Limit > 50 {
		return nil, errorx.New(errorx.BadRequest, "Limit must be in range of [1, 50]")
	}

	filter := repository.RewardRequestFilter{
		EventID: req.EventID,
		UserID:  req.UserID,
		Offset:  req.Offset,
		Limit:   req.Limit,
	}

	// Regular users only ever see their own requests.
	if err := d.roleVerifier.Verify(ctx, entity.ViewerGroup...); err != nil {
		filter.UserID = xcontext.RequestUserID(ctx)
		if filter.UserID == "" {
			return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
		}
	}

	if req.Status != "" {
		status, err := enum.ToEnum[entity.RewardRequestStatus](req.Status)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid status %s", req.Status)
		}

		filter.Status = status
	}

	requests, err := d.rewardRequestRepo.GetList(ctx, filter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get list of reward requests: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetListRewardRequestResponse{Requests: []model.RewardRequest{}}
	for _, r := range requests {
		resp.Requests = append(resp.Requests, model.ConvertRewardRequest(r))
	}

	return resp, nil
}
