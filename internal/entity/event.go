package entity

import (
	"time"

	"github.com/rewardlab/backend/pkg/enum"
)

type EventStatus string

var (
	EventActive   = enum.New(EventStatus("ACTIVE"))
	EventInactive = enum.New(EventStatus("INACTIVE"))
)

type EventType string

var (
	EventLogin  = enum.New(EventType("LOGIN"))
	EventInvite = enum.New(EventType("INVITE"))
	EventCustom = enum.New(EventType("CUSTOM"))
)

type Event struct {
	Base

	Name        string
	Description string `gorm:"type:text"`
	Type        EventType
	Status      EventStatus
	StartDate   time.Time
	EndDate     time.Time

	// NeedApproval forces first-time claims into manual review regardless of
	// the automatic verdict.
	NeedApproval bool

	// Conditions maps a condition key to its expected value. It is assumed
	// immutable once claims exist against the event.
	Conditions Map
}
