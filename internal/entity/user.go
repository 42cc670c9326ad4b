package entity

import "github.com/rewardlab/backend/pkg/enum"

type GlobalRole string

var (
	RoleAdmin    = enum.New(GlobalRole("ADMIN"))
	RoleOperator = enum.New(GlobalRole("OPERATOR"))
	RoleUser     = enum.New(GlobalRole("USER"))
	RoleAuditor  = enum.New(GlobalRole("AUDITOR"))
)

// OperatorGroup can manage events, rewards, and review reward requests.
var OperatorGroup = []GlobalRole{RoleAdmin, RoleOperator}

// ViewerGroup can additionally read everything without mutating.
var ViewerGroup = []GlobalRole{RoleAdmin, RoleOperator, RoleAuditor}

type User struct {
	Base

	Email          string `gorm:"unique"`
	Username       string
	HashedPassword string
	Role           GlobalRole `gorm:"default:USER"`
}
