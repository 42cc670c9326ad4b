package domain

import (
	"testing"
	"time"

	"github.com/rewardlab/backend/internal/entity"
	"github.com/rewardlab/backend/internal/model"
	"github.com/rewardlab/backend/internal/repository"
	"github.com/rewardlab/backend/internal/testutil"
	"github.com/rewardlab/backend/pkg/errorx"
	"github.com/stretchr/testify/require"
)

func newRewardDomain() *rewardDomain {
	return NewRewardDomain(
		repository.NewRewardRepository(),
		repository.NewEventRepository(),
		repository.NewUserRepository(),
	)
}

func Test_rewardDomain_Create(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newRewardDomain()

	userCtx := testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	_, err := domain.Create(userCtx, &model.CreateRewardRequest{
		EventID:  testutil.AutoEvent.ID,
		Category: string(entity.PointsReward),
		SubType:  string(entity.RegularPoints),
		Name:     "Points",
	})
	require.Equal(t, errorx.PermissionDenied, errCode(t, err))

	operatorCtx := testutil.MockContextWithUserID(ctx, testutil.Operator.ID)
	resp, err := domain.Create(operatorCtx, &model.CreateRewardRequest{
		EventID:  testutil.AutoEvent.ID,
		Category: string(entity.CurrencyReward),
		SubType:  string(entity.DiamondCurrency),
		Name:     "Diamonds",
		Metadata: map[string]any{"amount": float64(25)},
	})
	require.NoError(t, err)

	got, err := domain.Get(ctx, &model.GetRewardRequest{ID: resp.ID})
	require.NoError(t, err)
	require.Equal(t, string(entity.CurrencyReward), got.Category)
	require.Equal(t, string(entity.DiamondCurrency), got.SubType)
}

func Test_rewardDomain_Create_InvalidTaxonomy(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newRewardDomain()

	operatorCtx := testutil.MockContextWithUserID(ctx, testutil.Operator.ID)

	_, err := domain.Create(operatorCtx, &model.CreateRewardRequest{
		EventID:  testutil.AutoEvent.ID,
		Category: "TROPHY",
		SubType:  string(entity.RegularPoints),
		Name:     "Trophy",
	})
	require.Equal(t, errorx.BadRequest, errCode(t, err))

	// GOLD belongs to CURRENCY, not POINTS.
	_, err = domain.Create(operatorCtx, &model.CreateRewardRequest{
		EventID:  testutil.AutoEvent.ID,
		Category: string(entity.PointsReward),
		SubType:  string(entity.GoldCurrency),
		Name:     "Gold Points",
	})
	require.Equal(t, errorx.BadRequest, errCode(t, err))

	_, err = domain.Create(operatorCtx, &model.CreateRewardRequest{
		EventID:  "no-such-event",
		Category: string(entity.PointsReward),
		SubType:  string(entity.RegularPoints),
		Name:     "Points",
	})
	require.Equal(t, errorx.NotFound, errCode(t, err))

	_, err = domain.Create(operatorCtx, &model.CreateRewardRequest{
		EventID:  testutil.InactiveEvent.ID,
		Category: string(entity.PointsReward),
		SubType:  string(entity.RegularPoints),
		Name:     "Points",
	})
	require.Equal(t, errorx.Unavailable, errCode(t, err))
}

func Test_rewardDomain_GetList(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newRewardDomain()
	eventDomain := newEventDomain()

	resp, err := domain.GetList(ctx, &model.GetListRewardRequest{
		EventID: testutil.AutoEvent.ID,
	})
	require.NoError(t, err)
	require.Len(t, resp.Rewards, 1)

	// An event without rewards yields an empty list, not an error.
	operatorCtx := testutil.MockContextWithUserID(ctx, testutil.Operator.ID)
	created, err := eventDomain.Create(operatorCtx, &model.CreateEventRequest{
		Name:      "Bare Event",
		Type:      string(entity.EventCustom),
		StartDate: testutil.AutoEvent.StartDate.Format(time.RFC3339),
		EndDate:   testutil.AutoEvent.EndDate.Format(time.RFC3339),
	})
	require.NoError(t, err)

	resp, err = domain.GetList(ctx, &model.GetListRewardRequest{EventID: created.ID})
	require.NoError(t, err)
	require.Empty(t, resp.Rewards)

	// An unknown event is still an error.
	_, err = domain.GetList(ctx, &model.GetListRewardRequest{EventID: "no-such-event"})
	require.Equal(t, errorx.NotFound, errCode(t, err))
}
