package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/rewardlab/backend/internal/entity"
	"github.com/rewardlab/backend/internal/model"
	"github.com/rewardlab/backend/internal/repository"
	"github.com/rewardlab/backend/internal/testutil"
	"github.com/rewardlab/backend/pkg/errorx"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newRewardRequestDomain() *rewardRequestDomain {
	return NewRewardRequestDomain(
		repository.NewRewardRequestRepository(),
		repository.NewRewardRepository(),
		repository.NewEventRepository(),
		repository.NewUserRepository(),
	)
}

func Test_rewardRequestDomain_Claim_AutoApprove(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newRewardRequestDomain()

	ctx = testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	resp, err := domain.Claim(ctx, &model.ClaimRewardRequest{
		EventID:         testutil.AutoEvent.ID,
		ConditionStatus: map[string]any{"login_streak": float64(7)},
	})

	require.NoError(t, err)
	require.Equal(t, string(entity.RequestApproved), resp.Status)
	require.Len(t, resp.Rewards, 1)
	require.Equal(t, testutil.AutoEventReward.ID, resp.Rewards[0].ID)

	stored, err := domain.rewardRequestRepo.GetByID(ctx, resp.ID)
	require.NoError(t, err)
	require.Equal(t, entity.RequestApproved, stored.Status)
	require.True(t, stored.ApprovedAt.Valid)
	require.False(t, stored.ApprovedBy.Valid, "system verdict must have no actor")
	require.Len(t, stored.History, 1)
	require.True(t, stored.History[0].Detail["login_streak"].IsMet)
}

func Test_rewardRequestDomain_Claim_AutoReject(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newRewardRequestDomain()

	ctx = testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	resp, err := domain.Claim(ctx, &model.ClaimRewardRequest{
		EventID:         testutil.AutoEvent.ID,
		ConditionStatus: map[string]any{"login_streak": float64(3)},
	})

	require.NoError(t, err)
	require.Equal(t, string(entity.RequestRejected), resp.Status)
	require.Empty(t, resp.Rewards)

	stored, err := domain.rewardRequestRepo.GetByID(ctx, resp.ID)
	require.NoError(t, err)
	require.True(t, stored.RejectedAt.Valid)
	require.False(t, stored.RejectedBy.Valid)
	require.NotEmpty(t, stored.RejectionReason)
}

func Test_rewardRequestDomain_Claim_NeedApprovalAlwaysPending(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newRewardRequestDomain()

	// Conditions fully met, but the event requires manual review.
	ctx = testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	resp, err := domain.Claim(ctx, &model.ClaimRewardRequest{
		EventID:         testutil.ManualEvent.ID,
		ConditionStatus: map[string]any{"invited": float64(3)},
	})

	require.NoError(t, err)
	require.Equal(t, string(entity.RequestPending), resp.Status)
	require.Empty(t, resp.Rewards)

	stored, err := domain.rewardRequestRepo.GetByID(ctx, resp.ID)
	require.NoError(t, err)
	require.False(t, stored.ApprovedAt.Valid)
	require.False(t, stored.RejectedAt.Valid)
}

func Test_rewardRequestDomain_Claim_BlockedWhilePendingOrApproved(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newRewardRequestDomain()

	ctx = testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	_, err := domain.Claim(ctx, &model.ClaimRewardRequest{
		EventID:         testutil.ManualEvent.ID,
		ConditionStatus: map[string]any{"invited": float64(3)},
	})
	require.NoError(t, err)

	_, err = domain.Claim(ctx, &model.ClaimRewardRequest{
		EventID:         testutil.ManualEvent.ID,
		ConditionStatus: map[string]any{"invited": float64(3)},
	})
	require.Equal(t, errorx.AlreadyExists, errCode(t, err))

	_, err = domain.Claim(ctx, &model.ClaimRewardRequest{
		EventID:         testutil.AutoEvent.ID,
		ConditionStatus: map[string]any{"login_streak": float64(7)},
	})
	require.NoError(t, err)

	_, err = domain.Claim(ctx, &model.ClaimRewardRequest{
		EventID:         testutil.AutoEvent.ID,
		ConditionStatus: map[string]any{"login_streak": float64(7)},
	})
	require.Equal(t, errorx.AlreadyExists, errCode(t, err))
}

func Test_rewardRequestDomain_Claim_RejectedCanResubmit(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newRewardRequestDomain()

	ctx = testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	first, err := domain.Claim(ctx, &model.ClaimRewardRequest{
		EventID:         testutil.AutoEvent.ID,
		ConditionStatus: map[string]any{"login_streak": float64(2)},
	})
	require.NoError(t, err)
	require.Equal(t, string(entity.RequestRejected), first.Status)

	second, err := domain.Claim(ctx, &model.ClaimRewardRequest{
		EventID:         testutil.AutoEvent.ID,
		ConditionStatus: map[string]any{"login_streak": float64(7)},
	})
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID, "resubmission updates the same record")
	require.Equal(t, string(entity.RequestApproved), second.Status)
	require.Len(t, second.Rewards, 1)

	stored, err := domain.rewardRequestRepo.GetByID(ctx, second.ID)
	require.NoError(t, err)
	require.Len(t, stored.History, 2)
	require.Equal(t, entity.RequestRejected, stored.History[0].Status)
	require.Equal(t, entity.RequestApproved, stored.History[1].Status)
	require.True(t, stored.ApprovedAt.Valid)
	require.Empty(t, stored.RejectionReason)
}

func Test_rewardRequestDomain_Claim_ResubmitSkipsReview(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newRewardRequestDomain()

	userCtx := testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	resp, err := domain.Claim(userCtx, &model.ClaimRewardRequest{
		EventID:         testutil.ManualEvent.ID,
		ConditionStatus: map[string]any{"invited": float64(3)},
	})
	require.NoError(t, err)

	// An empty rejection reason is allowed.
	operatorCtx := testutil.MockContextWithUserID(ctx, testutil.Operator.ID)
	_, err = domain.Review(operatorCtx, &model.ReviewRewardRequestRequest{
		ID:     resp.ID,
		Action: string(entity.RequestRejected),
	})
	require.NoError(t, err)

	// A resubmission after rejection takes the automatic verdict directly,
	// even though the event normally requires review.
	second, err := domain.Claim(userCtx, &model.ClaimRewardRequest{
		EventID:         testutil.ManualEvent.ID,
		ConditionStatus: map[string]any{"invited": float64(3)},
	})
	require.NoError(t, err)
	require.Equal(t, string(entity.RequestApproved), second.Status)
}

func Test_rewardRequestDomain_Claim_MissingConditionKey(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newRewardRequestDomain()

	ctx = testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	_, err := domain.Claim(ctx, &model.ClaimRewardRequest{
		EventID:         testutil.AutoEvent.ID,
		ConditionStatus: map[string]any{},
	})
	require.Equal(t, errorx.BadRequest, errCode(t, err))
}

func Test_rewardRequestDomain_Claim_InactiveEvent(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newRewardRequestDomain()

	ctx = testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	_, err := domain.Claim(ctx, &model.ClaimRewardRequest{
		EventID:         testutil.InactiveEvent.ID,
		ConditionStatus: map[string]any{},
	})
	require.Equal(t, errorx.Unavailable, errCode(t, err))
}

func Test_rewardRequestDomain_Claim_EndedEvent(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newRewardRequestDomain()

	ended := &entity.Event{
		Base:       entity.Base{ID: "ended_event"},
		Name:       "Summer Festival",
		Type:       entity.EventCustom,
		Status:     entity.EventActive,
		StartDate:  time.Now().Add(-48 * time.Hour),
		EndDate:    time.Now().Add(-24 * time.Hour),
		Conditions: entity.Map{},
	}
	require.NoError(t, repository.NewEventRepository().Create(ctx, ended))

	ctx = testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	_, err := domain.Claim(ctx, &model.ClaimRewardRequest{
		EventID:         ended.ID,
		ConditionStatus: map[string]any{},
	})
	require.Equal(t, errorx.Unavailable, errCode(t, err))

	// The failed attempt left no record behind.
	_, err = domain.rewardRequestRepo.GetByUserAndEvent(ctx, testutil.User1.ID, ended.ID)
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func Test_rewardRequestDomain_Claim_Unauthenticated(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newRewardRequestDomain()

	_, err := domain.Claim(ctx, &model.ClaimRewardRequest{
		EventID:         testutil.AutoEvent.ID,
		ConditionStatus: map[string]any{"login_streak": float64(7)},
	})
	require.Equal(t, errorx.Unauthenticated, errCode(t, err))
}

func Test_rewardRequestDomain_Review(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newRewardRequestDomain()

	userCtx := testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	resp, err := domain.Claim(userCtx, &model.ClaimRewardRequest{
		EventID:         testutil.ManualEvent.ID,
		ConditionStatus: map[string]any{"invited": float64(3)},
	})
	require.NoError(t, err)

	// A regular user cannot review.
	_, err = domain.Review(userCtx, &model.ReviewRewardRequestRequest{
		ID:     resp.ID,
		Action: string(entity.RequestApproved),
	})
	require.Equal(t, errorx.PermissionDenied, errCode(t, err))

	operatorCtx := testutil.MockContextWithUserID(ctx, testutil.Operator.ID)
	_, err = domain.Review(operatorCtx, &model.ReviewRewardRequestRequest{
		ID:     resp.ID,
		Action: "UNDECIDED",
	})
	require.Equal(t, errorx.BadRequest, errCode(t, err))

	review, err := domain.Review(operatorCtx, &model.ReviewRewardRequestRequest{
		ID:     resp.ID,
		Action: string(entity.RequestApproved),
	})
	require.NoError(t, err)
	require.Equal(t, string(entity.RequestApproved), review.Status)
	require.Len(t, review.Rewards, 1)

	stored, err := domain.rewardRequestRepo.GetByID(ctx, resp.ID)
	require.NoError(t, err)
	require.Equal(t, entity.RequestApproved, stored.Status)
	require.True(t, stored.ApprovedBy.Valid)
	require.Equal(t, testutil.Operator.ID, stored.ApprovedBy.String)
	require.Len(t, stored.History, 1, "review does not append to history")

	// A decided request cannot be reviewed again.
	_, err = domain.Review(operatorCtx, &model.ReviewRewardRequestRequest{
		ID:     resp.ID,
		Action: string(entity.RequestRejected),
		Reason: "changed my mind",
	})
	require.Equal(t, errorx.Unavailable, errCode(t, err))
}

func Test_rewardRequestDomain_Review_NotFound(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newRewardRequestDomain()

	ctx = testutil.MockContextWithUserID(ctx, testutil.Operator.ID)
	_, err := domain.Review(ctx, &model.ReviewRewardRequestRequest{
		ID:     "no-such-request",
		Action: string(entity.RequestApproved),
	})
	require.Equal(t, errorx.NotFound, errCode(t, err))
}

func Test_rewardRequestDomain_GetList_UserSeesOwnOnly(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newRewardRequestDomain()

	user1Ctx := testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	_, err := domain.Claim(user1Ctx, &model.ClaimRewardRequest{
		EventID:         testutil.AutoEvent.ID,
		ConditionStatus: map[string]any{"login_streak": float64(7)},
	})
	require.NoError(t, err)

	user2Ctx := testutil.MockContextWithUserID(ctx, testutil.User2.ID)
	_, err = domain.Claim(user2Ctx, &model.ClaimRewardRequest{
		EventID:         testutil.AutoEvent.ID,
		ConditionStatus: map[string]any{"login_streak": float64(1)},
	})
	require.NoError(t, err)

	// A user listing everything still only gets their own requests.
	resp, err := domain.GetList(user1Ctx, &model.GetListRewardRequestRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Requests, 1)
	require.Equal(t, testutil.User1.ID, resp.Requests[0].UserID)

	// An auditor sees everything.
	auditorCtx := testutil.MockContextWithUserID(ctx, testutil.Auditor.ID)
	resp, err = domain.GetList(auditorCtx, &model.GetListRewardRequestRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Requests, 2)

	// Status filter.
	resp, err = domain.GetList(auditorCtx, &model.GetListRewardRequestRequest{
		Status: string(entity.RequestRejected),
	})
	require.NoError(t, err)
	require.Len(t, resp.Requests, 1)
	require.Equal(t, testutil.User2.ID, resp.Requests[0].UserID)
}

func Test_rewardRequestDomain_Get_Permission(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newRewardRequestDomain()

	user1Ctx := testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	resp, err := domain.Claim(user1Ctx, &model.ClaimRewardRequest{
		EventID:         testutil.AutoEvent.ID,
		ConditionStatus: map[string]any{"login_streak": float64(7)},
	})
	require.NoError(t, err)

	// The owner reads it.
	got, err := domain.Get(user1Ctx, &model.GetRewardRequestRequest{ID: resp.ID})
	require.NoError(t, err)
	require.Equal(t, testutil.User1.ID, got.UserID)

	// Another regular user does not.
	user2Ctx := testutil.MockContextWithUserID(ctx, testutil.User2.ID)
	_, err = domain.Get(user2Ctx, &model.GetRewardRequestRequest{ID: resp.ID})
	require.Equal(t, errorx.PermissionDenied, errCode(t, err))

	// An auditor does.
	auditorCtx := testutil.MockContextWithUserID(ctx, testutil.Auditor.ID)
	_, err = domain.Get(auditorCtx, &model.GetRewardRequestRequest{ID: resp.ID})
	require.NoError(t, err)
}
