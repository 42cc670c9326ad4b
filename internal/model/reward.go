package model

type Reward struct {
	ID          string         `json:"id"`
	EventID     string         `json:"event_id"`
	Category    string         `json:"category"`
	SubType     string         `json:"sub_type"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	ImageURL    string         `json:"image_url,omitempty"`
	Metadata    map[string]any `json:"metadata"`
}

type CreateRewardRequest struct {
	EventID     string         `json:"event_id"`
	Category    string         `json:"category"`
	SubType     string         `json:"sub_type"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	ImageURL    string         `json:"image_url"`
	Metadata    map[string]any `json:"metadata"`
}

type CreateRewardResponse struct {
	ID string `json:"id"`
}

type GetRewardRequest struct {
	ID string `json:"id" form:"id"`
}

type GetRewardResponse Reward

type GetListRewardRequest struct {
	EventID string `json:"event_id" form:"event_id"`

	Offset int `json:"offset" form:"offset"`
	Limit  int `json:"limit" form:"limit"`
}

type GetListRewardResponse struct {
	Rewards []Reward `json:"rewards"`
}
