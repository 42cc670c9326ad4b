package entity

import (
	"database/sql"
	"time"

	"github.com/rewardlab/backend/pkg/enum"
)

type RewardRequestStatus string

var (
	RequestPending  = enum.New(RewardRequestStatus("PENDING"))
	RequestApproved = enum.New(RewardRequestStatus("APPROVED"))
	RequestRejected = enum.New(RewardRequestStatus("REJECTED"))
)

// ConditionCheck records the comparison of one condition key at claim time.
type ConditionCheck struct {
	Required any  `json:"required"`
	Actual   any  `json:"actual"`
	IsMet    bool `json:"is_met"`
}

type RequestHistory struct {
	Timestamp time.Time                 `json:"timestamp"`
	Status    RewardRequestStatus       `json:"status"`
	Detail    map[string]ConditionCheck `json:"detail"`
}

// RewardRequest is a single user's claim against a single event. At most one
// record exists per (user, event) pair, resubmissions after a rejection update
// the record and append to History.
type RewardRequest struct {
	Base

	UserID string `gorm:"index:idx_reward_requests_user_event,unique"`
	User   User   `gorm:"foreignKey:UserID"`

	EventID string `gorm:"index:idx_reward_requests_user_event,unique"`
	Event   Event  `gorm:"foreignKey:EventID"`

	Status RewardRequestStatus

	// History is append-only.
	History Array[RequestHistory]

	// An invalid ApprovedBy/RejectedBy on a terminal status means the verdict
	// was decided by the system, not an operator.
	ApprovedAt      sql.NullTime
	ApprovedBy      sql.NullString
	RejectedAt      sql.NullTime
	RejectedBy      sql.NullString
	RejectionReason string
}
