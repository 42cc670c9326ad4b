// Package command routes named operations arriving on the command topic to
// their handlers. The gateway publishes commands for work that does not need
// a synchronous answer, the event service consumes them.
package command

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rewardlab/backend/pkg/pubsub"
	"github.com/rewardlab/backend/pkg/xcontext"
)

const (
	CreateRewardRequestCommand  = "create_reward_request"
	ApproveRewardRequestCommand = "approve_reward_request"
	RejectRewardRequestCommand  = "reject_reward_request"
	DeleteEventCommand          = "delete_event"
)

type Command struct {
	Name string          `json:"name"`
	Data json.RawMessage `json:"data"`
}

func New(name string, data any) (*Command, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Command{Name: name, Data: b}, nil
}

func (c *Command) Bytes() ([]byte, error) {
	return json.Marshal(c)
}

type Handler func(ctx context.Context, data []byte) error

type Dispatcher struct {
	handlers map[string]Handler
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[string]Handler)}
}

func (d *Dispatcher) Register(name string, handler Handler) {
	d.handlers[name] = handler
}

// Dispatch is the subscribe handler of the command topic. Failures are logged,
// not retried, the topic offset has already moved on.
func (d *Dispatcher) Dispatch(ctx context.Context, pack *pubsub.Pack, t time.Time) {
	var cmd Command
	if err := json.Unmarshal(pack.Msg, &cmd); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot decode command: %v", err)
		return
	}

	handler, ok := d.handlers[cmd.Name]
	if !ok {
		xcontext.Logger(ctx).Errorf("Not found handler for command %s", cmd.Name)
		return
	}

	if err := handler(ctx, cmd.Data); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot handle command %s: %v", cmd.Name, err)
		return
	}

	xcontext.Logger(ctx).Infof("Handled command %s after %s", cmd.Name, time.Since(t))
}
