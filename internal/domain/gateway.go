package domain

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/rewardlab/backend/internal/command"
	"github.com/rewardlab/backend/internal/common"
	"github.com/rewardlab/backend/internal/entity"
	"github.com/rewardlab/backend/internal/model"
	"github.com/rewardlab/backend/internal/repository"
	"github.com/rewardlab/backend/pkg/api"
	"github.com/rewardlab/backend/pkg/errorx"
	"github.com/rewardlab/backend/pkg/pubsub"
	"github.com/rewardlab/backend/pkg/xcontext"
)

// GatewayDomain relays event and reward operations to the event service. Auth
// and user operations stay local to the gateway, everything here is a thin
// forward that never re-implements domain rules.
type GatewayDomain interface {
	CreateEvent(ctx context.Context, req *model.CreateEventRequest) (*model.CreateEventResponse, error)
	GetEvent(ctx context.Context, req *model.GetEventRequest) (*model.GetEventResponse, error)
	GetListEvent(ctx context.Context, req *model.GetListEventRequest) (*model.GetListEventResponse, error)
	GetActiveEvents(ctx context.Context, req *model.GetActiveEventsRequest) (*model.GetActiveEventsResponse, error)
	UpdateEvent(ctx context.Context, req *model.UpdateEventRequest) (*model.UpdateEventResponse, error)
	DeleteEvent(ctx context.Context, req *model.DeleteEventRequest) (*model.DeleteEventResponse, error)

	CreateReward(ctx context.Context, req *model.CreateRewardRequest) (*model.CreateRewardResponse, error)
	GetReward(ctx context.Context, req *model.GetRewardRequest) (*model.GetRewardResponse, error)
	GetListReward(ctx context.Context, req *model.GetListRewardRequest) (*model.GetListRewardResponse, error)

	Claim(ctx context.Context, req *model.ClaimRewardRequest) (*model.ClaimRewardResponse, error)
	Review(ctx context.Context, req *model.ReviewRewardRequestRequest) (*model.ReviewRewardRequestResponse, error)
	GetRewardRequest(ctx context.Context, req *model.GetRewardRequestRequest) (*model.GetRewardRequestResponse, error)
	GetListRewardRequest(ctx context.Context, req *model.GetListRewardRequestRequest) (*model.GetListRewardRequestResponse, error)
}

type gatewayDomain struct {
	eventCaller  api.Generator
	publisher    pubsub.Publisher
	commandTopic string
	roleVerifier *common.GlobalRoleVerifier
}

func NewGatewayDomain(
	eventCaller api.Generator,
	publisher pubsub.Publisher,
	commandTopic string,
	userRepo repository.UserRepository,
) *gatewayDomain {
	return &gatewayDomain{
		eventCaller:  eventCaller,
		publisher:    publisher,
		commandTopic: commandTopic,
		roleVerifier: common.NewGlobalRoleVerifier(userRepo),
	}
}

func (d *gatewayDomain) CreateEvent(
	ctx context.Context, req *model.CreateEventRequest,
) (*model.CreateEventResponse, error) {
	return forwardPOST[model.CreateEventResponse](ctx, d.eventCaller, "/createEvent", req)
}

func (d *gatewayDomain) GetEvent(
	ctx context.Context, req *model.GetEventRequest,
) (*model.GetEventResponse, error) {
	return forwardGET[model.GetEventResponse](ctx, d.eventCaller, "/getEvent",
		api.Parameter{"id": req.ID})
}

func (d *gatewayDomain) GetListEvent(
	ctx context.Context, req *model.GetListEventRequest,
) (*model.GetListEventResponse, error) {
	return forwardGET[model.GetListEventResponse](ctx, d.eventCaller, "/getEvents",
		paginationQuery(api.Parameter{}, req.Offset, req.Limit))
}

func (d *gatewayDomain) GetActiveEvents(
	ctx context.Context, req *model.GetActiveEventsRequest,
) (*model.GetActiveEventsResponse, error) {
	return forwardGET[model.GetActiveEventsResponse](ctx, d.eventCaller, "/getActiveEvents",
		api.Parameter{})
}

func (d *gatewayDomain) UpdateEvent(
	ctx context.Context, req *model.UpdateEventRequest,
) (*model.UpdateEventResponse, error) {
	return forwardPOST[model.UpdateEventResponse](ctx, d.eventCaller, "/updateEvent", req)
}

// DeleteEvent is fire-and-forget. The cascade can be slow, so after a local
// role check the gateway only enqueues the command and acknowledges.
func (d *gatewayDomain) DeleteEvent(
	ctx context.Context, req *model.DeleteEventRequest,
) (*model.DeleteEventResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.OperatorGroup...); err != nil {
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	// Surface a NotFound synchronously before enqueueing.
	if _, err := d.GetEvent(ctx, &model.GetEventRequest{ID: req.ID}); err != nil {
		return nil, err
	}

	cmd, err := command.New(command.DeleteEventCommand, command.DeleteEventPayload{
		OperatorID: xcontext.RequestUserID(ctx),
		EventID:    req.ID,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot build delete event command: %v", err)
		return nil, errorx.Unknown
	}

	b, err := cmd.Bytes()
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot encode delete event command: %v", err)
		return nil, errorx.Unknown
	}

	pack := &pubsub.Pack{Key: []byte(command.DeleteEventCommand), Msg: b}
	if err := d.publisher.Publish(ctx, d.commandTopic, pack); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot publish delete event command: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteEventResponse{}, nil
}

func (d *gatewayDomain) CreateReward(
	ctx context.Context, req *model.CreateRewardRequest,
) (*model.CreateRewardResponse, error) {
	return forwardPOST[model.CreateRewardResponse](ctx, d.eventCaller, "/createReward", req)
}

func (d *gatewayDomain) GetReward(
	ctx context.Context, req *model.GetRewardRequest,
) (*model.GetRewardResponse, error) {
	return forwardGET[model.GetRewardResponse](ctx, d.eventCaller, "/getReward",
		api.Parameter{"id": req.ID})
}

func (d *gatewayDomain) GetListReward(
	ctx context.Context, req *model.GetListRewardRequest,
) (*model.GetListRewardResponse, error) {
	query := paginationQuery(api.Parameter{}, req.Offset, req.Limit)
	if req.EventID != "" {
		query["event_id"] = req.EventID
	}

	return forwardGET[model.GetListRewardResponse](ctx, d.eventCaller, "/getRewards", query)
}

func (d *gatewayDomain) Claim(
	ctx context.Context, req *model.ClaimRewardRequest,
) (*model.ClaimRewardResponse, error) {
	return forwardPOST[model.ClaimRewardResponse](ctx, d.eventCaller, "/claimReward", req)
}

func (d *gatewayDomain) Review(
	ctx context.Context, req *model.ReviewRewardRequestRequest,
) (*model.ReviewRewardRequestResponse, error) {
	return forwardPOST[model.ReviewRewardRequestResponse](
		ctx, d.eventCaller, "/reviewRewardRequest", req)
}

func (d *gatewayDomain) GetRewardRequest(
	ctx context.Context, req *model.GetRewardRequestRequest,
) (*model.GetRewardRequestResponse, error) {
	return forwardGET[model.GetRewardRequestResponse](ctx, d.eventCaller, "/getRewardRequest",
		api.Parameter{"id": req.ID})
}

func (d *gatewayDomain) GetListRewardRequest(
	ctx context.Context, req *model.GetListRewardRequestRequest,
) (*model.GetListRewardRequestResponse, error) {
	query := paginationQuery(api.Parameter{}, req.Offset, req.Limit)
	if req.EventID != "" {
		query["event_id"] = req.EventID
	}
	if req.UserID != "" {
		query["user_id"] = req.UserID
	}
	if req.Status != "" {
		query["status"] = req.Status
	}

	return forwardGET[model.GetListRewardRequestResponse](
		ctx, d.eventCaller, "/getRewardRequests", query)
}

// envelope mirrors the router response shape of the event service.
type envelope struct {
	Code  int64           `json:"code"`
	Error string          `json:"error"`
	Data  json.RawMessage `json:"data"`
}

func forwardGET[Response any](
	ctx context.Context, caller api.Generator, path string, query api.Parameter,
) (*Response, error) {
	client := caller.New(path).Query(query)
	forwardAuthorization(ctx, client)

	resp, err := client.GET(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot call event service: %v", err)
		return nil, errorx.New(errorx.Internal, "Event service is unavailable")
	}

	return parseForwarded[Response](ctx, resp)
}

func forwardPOST[Response any](
	ctx context.Context, caller api.Generator, path string, body any,
) (*Response, error) {
	client := caller.New(path).Body(api.JSONValue(body))
	forwardAuthorization(ctx, client)

	resp, err := client.POST(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot call event service: %v", err)
		return nil, errorx.New(errorx.Internal, "Event service is unavailable")
	}

	return parseForwarded[Response](ctx, resp)
}

// forwardAuthorization relays the caller's credential so the event service
// authenticates the original user, not the gateway.
func forwardAuthorization(ctx context.Context, client api.Client) {
	req := xcontext.HTTPRequest(ctx)
	if req == nil {
		return
	}

	if auth := req.Header.Get("Authorization"); auth != "" {
		client.Header("Authorization", auth)
	} else if cookie := req.Header.Get("Cookie"); cookie != "" {
		client.Header("Cookie", cookie)
	}
}

func parseForwarded[Response any](ctx context.Context, resp *api.Response) (*Response, error) {
	var env envelope
	if err := resp.Parse(&env); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot parse event service response: %v", err)
		return nil, errorx.New(errorx.BadResponse, "Invalid response from event service")
	}

	if env.Code != 0 {
		return nil, errorx.Error{Code: errorx.Code(env.Code), Message: env.Error}
	}

	var result Response
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &result); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot decode event service data: %v", err)
			return nil, errorx.New(errorx.BadResponse, "Invalid response from event service")
		}
	}

	return &result, nil
}

func paginationQuery(query api.Parameter, offset, limit int) api.Parameter {
	if offset != 0 {
		query["offset"] = strconv.Itoa(offset)
	}

	if limit != 0 {
		query["limit"] = strconv.Itoa(limit)
	}

	return query
}
