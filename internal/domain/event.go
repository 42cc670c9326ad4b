package domain

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rewardlab/backend/internal/common"
	"github.com/rewardlab/backend/internal/entity"
	"github.com/rewardlab/backend/internal/model"
	"github.com/rewardlab/backend/internal/repository"
	"github.com/rewardlab/backend/pkg/enum"
	"github.com/rewardlab/backend/pkg/errorx"
	"github.com/rewardlab/backend/pkg/xcontext"
	"github.com/rewardlab/backend/pkg/xredis"
	"gorm.io/gorm"
)

const (
	activeEventsRedisKey        = "events:active"
	activeEventsCacheExpiration = time.Minute
)

type EventDomain interface {
	Create(ctx context.Context, req *model.CreateEventRequest) (*model.CreateEventResponse, error)
	Get(ctx context.Context, req *model.GetEventRequest) (*model.GetEventResponse, error)
	GetList(ctx context.Context, req *model.GetListEventRequest) (*model.GetListEventResponse, error)
	GetActive(ctx context.Context, req *model.GetActiveEventsRequest) (*model.GetActiveEventsResponse, error)
	Update(ctx context.Context, req *model.UpdateEventRequest) (*model.UpdateEventResponse, error)
	Delete(ctx context.Context, req *model.DeleteEventRequest) (*model.DeleteEventResponse, error)
}

type eventDomain struct {
	eventRepo         repository.EventRepository
	rewardRepo        repository.RewardRepository
	rewardRequestRepo repository.RewardRequestRepository
	roleVerifier      *common.GlobalRoleVerifier
	redisClient       xredis.Client
}

func NewEventDomain(
	eventRepo repository.EventRepository,
	rewardRepo repository.RewardRepository,
	rewardRequestRepo repository.RewardRequestRepository,
	userRepo repository.UserRepository,
	redisClient xredis.Client,
) *eventDomain {
	return &eventDomain{
		eventRepo:         eventRepo,
		rewardRepo:        rewardRepo,
		rewardRequestRepo: rewardRequestRepo,
		roleVerifier:      common.NewGlobalRoleVerifier(userRepo),
		redisClient:       redisClient,
	}
}

func (d *eventDomain) Create(
	ctx context.Context, req *model.CreateEventRequest,
) (*model.CreateEventResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.OperatorGroup...); err != nil {
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	if req.Name == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty event name")
	}

	eventType, err := enum.ToEnum[entity.EventType](req.Type)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid event type %s", req.Type)
	}

	status := entity.EventInactive
	if req.Status != "" {
		status, err = enum.ToEnum[entity.EventStatus](req.Status)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid event status %s", req.Status)
		}
	}

	startDate, endDate, err := parseEventDates(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	event := &entity.Event{
		Base:         entity.Base{ID: uuid.NewString()},
		Name:         req.Name,
		Description:  req.Description,
		Type:         eventType,
		Status:       status,
		StartDate:    startDate,
		EndDate:      endDate,
		NeedApproval: req.NeedApproval,
		Conditions:   req.Conditions,
	}

	if event.Conditions == nil {
		event.Conditions = entity.Map{}
	}

	if err := d.eventRepo.Create(ctx, event); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create event: %v", err)
		return nil, errorx.Unknown
	}

	d.invalidateActiveCache(ctx)
	return &model.CreateEventResponse{ID: event.ID}, nil
}

func (d *eventDomain) Get(
	ctx context.Context, req *model.GetEventRequest,
) (*model.GetEventResponse, error) {
	event, err := d.eventRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found event")
		}

		xcontext.Logger(ctx).Errorf("Cannot get event: %v", err)
		return nil, errorx.Unknown
	}

	rewards, err := d.rewardRepo.GetByEventID(ctx, req.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get rewards of event: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.GetEventResponse(model.ConvertEvent(*event, rewards))
	return &resp, nil
}

func (d *eventDomain) GetList(
	ctx context.Context, req *model.GetListEventRequest,
) (*model.GetListEventResponse, error) {
	if req.Limit == 0 {
		req.Limit = 50
	}

	if req.Limit < 0 || req.Limit > 50 {
		return nil, errorx.New(errorx.BadRequest, "Limit must be in range of [1, 50]")
	}

	events, err := d.eventRepo.GetList(ctx, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get list of events: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetListEventResponse{Events: []model.Event{}}
	for _, e := range events {
		resp.Events = append(resp.Events, model.ConvertEvent(e, nil))
	}

	return resp, nil
}

func (d *eventDomain) GetActive(
	ctx context.Context, req *model.GetActiveEventsRequest,
) (*model.GetActiveEventsResponse, error) {
	if d.redisClient != nil {
		cached, err := d.redisClient.Get(ctx, activeEventsRedisKey)
		if err == nil {
			var events []model.Event
			if err := json.Unmarshal([]byte(cached), &events); err != nil {
				xcontext.Logger(ctx).Warnf("Cannot decode cached active events: %v", err)
			} else {
				return &model.GetActiveEventsResponse{Events: events}, nil
			}
		} else if !xredis.IsNil(err) {
			xcontext.Logger(ctx).Warnf("Cannot get active events from cache: %v", err)
		}
	}

	events, err := d.eventRepo.GetActive(ctx, time.Now())
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get active events: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetActiveEventsResponse{Events: []model.Event{}}
	for _, e := range events {
		resp.Events = append(resp.Events, model.ConvertEvent(e, nil))
	}

	if d.redisClient != nil {
		if b, err := json.Marshal(resp.Events); err == nil {
			err := d.redisClient.Set(ctx, activeEventsRedisKey, string(b), activeEventsCacheExpiration)
			if err != nil {
				xcontext.Logger(ctx).Warnf("Cannot cache active events: %v", err)
			}
		}
	}

	return resp, nil
}

func (d *eventDomain) Update(
	ctx context.Context, req *model.UpdateEventRequest,
) (*model.UpdateEventResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.OperatorGroup...); err != nil {
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	event, err := d.eventRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found event")
		}

		xcontext.Logger(ctx).Errorf("Cannot get event: %v", err)
		return nil, errorx.Unknown
	}

	if req.Name != nil {
		event.Name = *req.Name
	}

	if req.Description != nil {
		event.Description = *req.Description
	}

	if req.Type != nil {
		eventType, err := enum.ToEnum[entity.EventType](*req.Type)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid event type %s", *req.Type)
		}

		event.Type = eventType
	}

	if req.Status != nil {
		status, err := enum.ToEnum[entity.EventStatus](*req.Status)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid event status %s", *req.Status)
		}

		event.Status = status
	}

	if req.StartDate != nil || req.EndDate != nil {
		startStr := formatOrKeep(req.StartDate, event.StartDate)
		endStr := formatOrKeep(req.EndDate, event.EndDate)

		startDate, endDate, err := parseEventDates(startStr, endStr)
		if err != nil {
			return nil, err
		}

		event.StartDate = startDate
		event.EndDate = endDate
	}

	if req.NeedApproval != nil {
		event.NeedApproval = *req.NeedApproval
	}

	if req.Conditions != nil {
		event.Conditions = *req.Conditions
	}

	if err := d.eventRepo.UpdateByID(ctx, req.ID, event); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update event: %v", err)
		return nil, errorx.Unknown
	}

	d.invalidateActiveCache(ctx)

	updated, err := d.eventRepo.GetByID(ctx, req.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get event after update: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateEventResponse{Event: model.ConvertEvent(*updated, nil)}, nil
}

// Delete removes the event together with its rewards and reward requests in
// one transaction.
func (d *eventDomain) Delete(
	ctx context.Context, req *model.DeleteEventRequest,
) (*model.DeleteEventResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.OperatorGroup...); err != nil {
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	if _, err := d.eventRepo.GetByID(ctx, req.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found event")
		}

		xcontext.Logger(ctx).Errorf("Cannot get event: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.rewardRequestRepo.DeleteByEventID(ctx, req.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete reward requests of event: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.rewardRepo.DeleteByEventID(ctx, req.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete rewards of event: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.eventRepo.DeleteByID(ctx, req.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete event: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	d.invalidateActiveCache(ctx)

	return &model.DeleteEventResponse{}, nil
}

func (d *eventDomain) invalidateActiveCache(ctx context.Context) {
	if d.redisClient == nil {
		return
	}

	if err := d.redisClient.Del(ctx, activeEventsRedisKey); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot invalidate active events cache: %v", err)
	}
}

func parseEventDates(startStr, endStr string) (time.Time, time.Time, error) {
	startDate, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, errorx.New(errorx.BadRequest, "Invalid start date")
	}

	endDate, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		return time.Time{}, time.Time{}, errorx.New(errorx.BadRequest, "Invalid end date")
	}

	if !startDate.Before(endDate) {
		return time.Time{}, time.Time{}, errorx.New(errorx.BadRequest,
			"Start date must be before end date")
	}

	return startDate, endDate, nil
}

func formatOrKeep(s *string, current time.Time) string {
	if s != nil {
		return *s
	}

	return current.Format(time.RFC3339)
}
