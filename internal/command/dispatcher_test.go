package command_test

import (
	"testing"
	"time"

	"github.com/rewardlab/backend/internal/command"
	"github.com/rewardlab/backend/internal/domain"
	"github.com/rewardlab/backend/internal/entity"
	"github.com/rewardlab/backend/internal/repository"
	"github.com/rewardlab/backend/internal/testutil"
	"github.com/rewardlab/backend/pkg/pubsub"
	"github.com/stretchr/testify/require"
)

func newTestDispatcher() (*command.Dispatcher, repository.RewardRequestRepository) {
	rewardRequestRepo := repository.NewRewardRequestRepository()
	rewardRequestDomain := domain.NewRewardRequestDomain(
		rewardRequestRepo,
		repository.NewRewardRepository(),
		repository.NewEventRepository(),
		repository.NewUserRepository(),
	)

	d := command.NewDispatcher()
	command.RegisterRewardRequestHandlers(d, rewardRequestDomain)
	return d, rewardRequestRepo
}

func packOf(t *testing.T, name string, payload any) *pubsub.Pack {
	t.Helper()
	cmd, err := command.New(name, payload)
	require.NoError(t, err)

	msg, err := cmd.Bytes()
	require.NoError(t, err)

	return &pubsub.Pack{Key: []byte(name), Msg: msg}
}

func TestDispatcher_ClaimAndReview(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	d, rewardRequestRepo := newTestDispatcher()

	d.Dispatch(ctx, packOf(t, command.CreateRewardRequestCommand, command.ClaimPayload{
		UserID:          testutil.User1.ID,
		EventID:         testutil.ManualEvent.ID,
		ConditionStatus: map[string]any{"invited": float64(3)},
	}), time.Now())

	request, err := rewardRequestRepo.GetByUserAndEvent(
		ctx, testutil.User1.ID, testutil.ManualEvent.ID)
	require.NoError(t, err)
	require.Equal(t, entity.RequestPending, request.Status)

	d.Dispatch(ctx, packOf(t, command.ApproveRewardRequestCommand, command.ReviewPayload{
		ReviewerID: testutil.Operator.ID,
		RequestID:  request.ID,
	}), time.Now())

	request, err = rewardRequestRepo.GetByID(ctx, request.ID)
	require.NoError(t, err)
	require.Equal(t, entity.RequestApproved, request.Status)
	require.Equal(t, testutil.Operator.ID, request.ApprovedBy.String)
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	ctx := testutil.MockContext()
	d, _ := newTestDispatcher()

	// Must not panic, the failure is only logged.
	d.Dispatch(ctx, &pubsub.Pack{Key: []byte("x"), Msg: []byte(`{"name":"no_such_command"}`)}, time.Now())
	d.Dispatch(ctx, &pubsub.Pack{Key: []byte("x"), Msg: []byte(`not json`)}, time.Now())
}
