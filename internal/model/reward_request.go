package model

type ConditionCheck struct {
	Required any  `json:"required"`
	Actual   any  `json:"actual"`
	IsMet    bool `json:"is_met"`
}

type RequestHistory struct {
	Timestamp string                    `json:"timestamp"`
	Status    string                    `json:"status"`
	Detail    map[string]ConditionCheck `json:"detail"`
}

type RewardRequest struct {
	ID              string           `json:"id"`
	UserID          string           `json:"user_id"`
	EventID         string           `json:"event_id"`
	Status          string           `json:"status"`
	History         []RequestHistory `json:"history"`
	ApprovedAt      string           `json:"approved_at,omitempty"`
	ApprovedBy      string           `json:"approved_by,omitempty"`
	RejectedAt      string           `json:"rejected_at,omitempty"`
	RejectedBy      string           `json:"rejected_by,omitempty"`
	RejectionReason string           `json:"rejection_reason,omitempty"`
}

type ClaimRewardRequest struct {
	EventID string `json:"event_id"`

	// ConditionStatus is the caller's snapshot of its own condition values,
	// keyed the same way as the event conditions.
	ConditionStatus map[string]any `json:"condition_status"`
}

type ClaimRewardResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`

	// Rewards is the event catalog, only filled when the claim is approved.
	Rewards []Reward `json:"rewards"`
}

type ReviewRewardRequestRequest struct {
	ID     string `json:"id"`
	Action string `json:"action"`
	Reason string `json:"reason"`
}

type ReviewRewardRequestResponse struct {
	Status  string   `json:"status"`
	Rewards []Reward `json:"rewards"`
}

type GetRewardRequestRequest struct {
	ID string `json:"id" form:"id"`
}

type GetRewardRequestResponse RewardRequest

type GetListRewardRequestRequest struct {
	EventID string `json:"event_id" form:"event_id"`
	UserID  string `json:"user_id" form:"user_id"`
	Status  string `json:"status" form:"status"`

	Offset int `json:"offset" form:"offset"`
	Limit  int `json:"limit" form:"limit"`
}

type GetListRewardRequestResponse struct {
	Requests []RewardRequest `json:"requests"`
}
