// Package eventcond decides whether a user satisfies the condition set of an
// event. The check is a pure comparison of the event's required values against
// the snapshot the caller submits, it never touches storage.
package eventcond

import (
	"reflect"

	"github.com/rewardlab/backend/internal/entity"
	"github.com/rewardlab/backend/pkg/errorx"
)

// Evaluate compares every required condition with the submitted value of the
// same name. A submitted map lacking a required key is a malformed request,
// not an unmet condition. The verdict is approved only when every single
// condition matches.
func Evaluate(
	required, submitted map[string]any,
) (entity.RewardRequestStatus, map[string]entity.ConditionCheck, error) {
	detail := map[string]entity.ConditionCheck{}

	verdict := entity.RequestApproved
	for name, want := range required {
		got, ok := submitted[name]
		if !ok {
			return "", nil, errorx.New(errorx.BadRequest,
				"Missing condition status for %s", name)
		}

		met := reflect.DeepEqual(want, got)
		if !met {
			verdict = entity.RequestRejected
		}

		detail[name] = entity.ConditionCheck{
			Required: want,
			Actual:   got,
			IsMet:    met,
		}
	}

	return verdict, detail, nil
}
