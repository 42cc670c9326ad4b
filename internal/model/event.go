package model

type Event struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	Type         string         `json:"type"`
	Status       string         `json:"status"`
	StartDate    string         `json:"start_date"`
	EndDate      string         `json:"end_date"`
	NeedApproval bool           `json:"need_approval"`
	Conditions   map[string]any `json:"conditions"`
	Rewards      []Reward       `json:"rewards,omitempty"`
}

type CreateEventRequest struct {
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	Type         string         `json:"type"`
	Status       string         `json:"status"`
	StartDate    string         `json:"start_date"`
	EndDate      string         `json:"end_date"`
	NeedApproval bool           `json:"need_approval"`
	Conditions   map[string]any `json:"conditions"`
}

type CreateEventResponse struct {
	ID string `json:"id"`
}

type GetEventRequest struct {
	ID string `json:"id" form:"id"`
}

type GetEventResponse Event

type GetListEventRequest struct {
	Offset int `json:"offset" form:"offset"`
	Limit  int `json:"limit" form:"limit"`
}

type GetListEventResponse struct {
	Events []Event `json:"events"`
}

type GetActiveEventsRequest struct{}

type GetActiveEventsResponse struct {
	Events []Event `json:"events"`
}

// UpdateEventRequest carries a partial update, nil pointers leave the field
// unchanged.
type UpdateEventRequest struct {
	ID           string          `json:"id"`
	Name         *string         `json:"name"`
	Description  *string         `json:"description"`
	Type         *string         `json:"type"`
	Status       *string         `json:"status"`
	StartDate    *string         `json:"start_date"`
	EndDate      *string         `json:"end_date"`
	NeedApproval *bool           `json:"need_approval"`
	Conditions   *map[string]any `json:"conditions"`
}

type UpdateEventResponse struct {
	Event Event `json:"event"`
}

type DeleteEventRequest struct {
	ID string `json:"id"`
}

type DeleteEventResponse struct{}
