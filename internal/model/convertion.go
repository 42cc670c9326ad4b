package model

import (
	"time"

	"github.com/rewardlab/backend/internal/entity"
)

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return t.Format(time.RFC3339Nano)
}

func ConvertUser(user entity.User) User {
	return User{
		ID:       user.ID,
		Email:    user.Email,
		Username: user.Username,
		Role:     string(user.Role),
	}
}

func ConvertEvent(event entity.Event, rewards []entity.Reward) Event {
	return Event{
		ID:           event.ID,
		Name:         event.Name,
		Description:  event.Description,
		Type:         string(event.Type),
		Status:       string(event.Status),
		StartDate:    formatTime(event.StartDate),
		EndDate:      formatTime(event.EndDate),
		NeedApproval: event.NeedApproval,
		Conditions:   event.Conditions,
		Rewards:      ConvertRewards(rewards),
	}
}

func ConvertReward(reward entity.Reward) Reward {
	return Reward{
		ID:          reward.ID,
		EventID:     reward.EventID,
		Category:    string(reward.Category),
		SubType:     string(reward.SubType),
		Name:        reward.Name,
		Description: reward.Description,
		ImageURL:    reward.ImageURL,
		Metadata:    reward.Metadata,
	}
}

func ConvertRewards(rewards []entity.Reward) []Reward {
	result := []Reward{}
	for _, r := range rewards {
		result = append(result, ConvertReward(r))
	}

	return result
}

func ConvertConditionChecks(detail map[string]entity.ConditionCheck) map[string]ConditionCheck {
	result := map[string]ConditionCheck{}
	for name, check := range detail {
		result[name] = ConditionCheck{
			Required: check.Required,
			Actual:   check.Actual,
			IsMet:    check.IsMet,
		}
	}

	return result
}

func ConvertRewardRequest(req entity.RewardRequest) RewardRequest {
	history := []RequestHistory{}
	for _, h := range req.History {
		history = append(history, RequestHistory{
			Timestamp: formatTime(h.Timestamp),
			Status:    string(h.Status),
			Detail:    ConvertConditionChecks(h.Detail),
		})
	}

	result := RewardRequest{
		ID:              req.ID,
		UserID:          req.UserID,
		EventID:         req.EventID,
		Status:          string(req.Status),
		History:         history,
		RejectionReason: req.RejectionReason,
	}

	if req.ApprovedAt.Valid {
		result.ApprovedAt = formatTime(req.ApprovedAt.Time)
	}

	if req.ApprovedBy.Valid {
		result.ApprovedBy = req.ApprovedBy.String
	}

	if req.RejectedAt.Valid {
		result.RejectedAt = formatTime(req.RejectedAt.Time)
	}

	if req.RejectedBy.Valid {
		result.RejectedBy = req.RejectedBy.String
	}

	return result
}
