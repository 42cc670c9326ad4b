package testutil

import (
	"context"
	"time"

	"github.com/rewardlab/backend/internal/entity"
	"github.com/rewardlab/backend/internal/repository"
)

var (
	Admin = entity.User{
		Base:     entity.Base{ID: "admin"},
		Email:    "admin@example.com",
		Username: "admin",
		Role:     entity.RoleAdmin,
	}

	Operator = entity.User{
		Base:     entity.Base{ID: "operator"},
		Email:    "operator@example.com",
		Username: "operator",
		Role:     entity.RoleOperator,
	}

	Auditor = entity.User{
		Base:     entity.Base{ID: "auditor"},
		Email:    "auditor@example.com",
		Username: "auditor",
		Role:     entity.RoleAuditor,
	}

	User1 = entity.User{
		Base:     entity.Base{ID: "user1"},
		Email:    "user1@example.com",
		Username: "user1",
		Role:     entity.RoleUser,
	}

	User2 = entity.User{
		Base:     entity.Base{ID: "user2"},
		Email:    "user2@example.com",
		Username: "user2",
		Role:     entity.RoleUser,
	}

	// AutoEvent approves or rejects claims on its own, no operator involved.
	AutoEvent = entity.Event{
		Base:         entity.Base{ID: "auto_event"},
		Name:         "Login Streak",
		Description:  "Log in seven days in a row",
		Type:         entity.EventLogin,
		Status:       entity.EventActive,
		StartDate:    time.Now().Add(-24 * time.Hour),
		EndDate:      time.Now().Add(24 * time.Hour),
		NeedApproval: false,
		Conditions:   entity.Map{"login_streak": float64(7)},
	}

	// ManualEvent parks every claim as pending for operator review.
	ManualEvent = entity.Event{
		Base:         entity.Base{ID: "manual_event"},
		Name:         "Invite Friends",
		Description:  "Invite three friends",
		Type:         entity.EventInvite,
		Status:       entity.EventActive,
		StartDate:    time.Now().Add(-24 * time.Hour),
		EndDate:      time.Now().Add(24 * time.Hour),
		NeedApproval: true,
		Conditions:   entity.Map{"invited": float64(3)},
	}

	InactiveEvent = entity.Event{
		Base:        entity.Base{ID: "inactive_event"},
		Name:        "Closed Beta",
		Type:        entity.EventCustom,
		Status:      entity.EventInactive,
		StartDate:   time.Now().Add(-48 * time.Hour),
		EndDate:     time.Now().Add(48 * time.Hour),
		Conditions:  entity.Map{},
		Description: "Closed beta participation",
	}

	AutoEventReward = entity.Reward{
		Base:     entity.Base{ID: "auto_event_reward"},
		EventID:  "auto_event",
		Category: entity.PointsReward,
		SubType:  entity.BonusPoints,
		Name:     "Streak Bonus",
		Metadata: entity.Map{"amount": float64(100)},
	}

	ManualEventReward = entity.Reward{
		Base:     entity.Base{ID: "manual_event_reward"},
		EventID:  "manual_event",
		Category: entity.CouponReward,
		SubType:  entity.GiftCoupon,
		Name:     "Referral Gift",
		Metadata: entity.Map{"code_prefix": "REF"},
	}
)

func CreateFixtureDb(ctx context.Context) {
	InsertUsers(ctx)
	InsertEvents(ctx)
	InsertRewards(ctx)
}

func InsertUsers(ctx context.Context) {
	userRepo := repository.NewUserRepository()
	for _, u := range []entity.User{Admin, Operator, Auditor, User1, User2} {
		user := u
		if err := userRepo.Create(ctx, &user); err != nil {
			panic(err)
		}
	}
}

func InsertEvents(ctx context.Context) {
	eventRepo := repository.NewEventRepository()
	for _, e := range []entity.Event{AutoEvent, ManualEvent, InactiveEvent} {
		event := e
		if err := eventRepo.Create(ctx, &event); err != nil {
			panic(err)
		}
	}
}

func InsertRewards(ctx context.Context) {
	rewardRepo := repository.NewRewardRepository()
	for _, r := range []entity.Reward{AutoEventReward, ManualEventReward} {
		reward := r
		if err := rewardRepo.Create(ctx, &reward); err != nil {
			panic(err)
		}
	}
}
