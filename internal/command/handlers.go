package command

import (
	"context"
	"encoding/json"

	"github.com/rewardlab/backend/internal/entity"
	"github.com/rewardlab/backend/internal/model"
	"github.com/rewardlab/backend/pkg/xcontext"
)

// RewardRequestHandler is the slice of the reward request domain the async
// path needs. Declared here so the domain layer can publish commands without
// an import cycle.
type RewardRequestHandler interface {
	Claim(ctx context.Context, req *model.ClaimRewardRequest) (*model.ClaimRewardResponse, error)
	Review(ctx context.Context, req *model.ReviewRewardRequestRequest) (*model.ReviewRewardRequestResponse, error)
}

type EventHandler interface {
	Delete(ctx context.Context, req *model.DeleteEventRequest) (*model.DeleteEventResponse, error)
}

// Async command payloads carry the acting user explicitly, there is no HTTP
// request to authenticate on this path.

type ClaimPayload struct {
	UserID          string         `json:"user_id"`
	EventID         string         `json:"event_id"`
	ConditionStatus map[string]any `json:"condition_status"`
}

type ReviewPayload struct {
	ReviewerID string `json:"reviewer_id"`
	RequestID  string `json:"request_id"`
	Reason     string `json:"reason"`
}

type DeleteEventPayload struct {
	OperatorID string `json:"operator_id"`
	EventID    string `json:"event_id"`
}

// RegisterRewardRequestHandlers wires the reward request commands into the
// dispatcher.
func RegisterRewardRequestHandlers(d *Dispatcher, rewardRequestDomain RewardRequestHandler) {
	d.Register(CreateRewardRequestCommand, func(ctx context.Context, data []byte) error {
		var payload ClaimPayload
		if err := json.Unmarshal(data, &payload); err != nil {
			return err
		}

		ctx = xcontext.WithRequestUserID(ctx, payload.UserID)
		_, err := rewardRequestDomain.Claim(ctx, &model.ClaimRewardRequest{
			EventID:         payload.EventID,
			ConditionStatus: payload.ConditionStatus,
		})
		return err
	})

	d.Register(ApproveRewardRequestCommand, reviewHandler(rewardRequestDomain, entity.RequestApproved))
	d.Register(RejectRewardRequestCommand, reviewHandler(rewardRequestDomain, entity.RequestRejected))
}

func RegisterEventHandlers(d *Dispatcher, eventDomain EventHandler) {
	d.Register(DeleteEventCommand, func(ctx context.Context, data []byte) error {
		var payload DeleteEventPayload
		if err := json.Unmarshal(data, &payload); err != nil {
			return err
		}

		ctx = xcontext.WithRequestUserID(ctx, payload.OperatorID)
		_, err := eventDomain.Delete(ctx, &model.DeleteEventRequest{ID: payload.EventID})
		return err
	})
}

func reviewHandler(
	rewardRequestDomain RewardRequestHandler, action entity.RewardRequestStatus,
) Handler {
	return func(ctx context.Context, data []byte) error {
		var payload ReviewPayload
		if err := json.Unmarshal(data, &payload); err != nil {
			return err
		}

		ctx = xcontext.WithRequestUserID(ctx, payload.ReviewerID)
		_, err := rewardRequestDomain.Review(ctx, &model.ReviewRewardRequestRequest{
			ID:     payload.RequestID,
			Action: string(action),
			Reason: payload.Reason,
		})
		return err
	}
}
