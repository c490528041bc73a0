// Package ia binds an agent's event handlers to the host. An agent is a complete table of
// handlers, one per Event, checked for completeness before the host starts delivering events.
package ia

import (
	"context"
	"fmt"
	"sync"

	"github.com/pkg/errors"

	"go.viam.com/naio/logging"
	"go.viam.com/naio/robot"
)

// A Handler reacts to one event. It has no way to report failure to the host; anything that
// goes wrong must be dealt with inside the handler.
type Handler func(ctx context.Context, r robot.Snapshot)

// Callbacks is the registration table mapping every Event to its Handler.
type Callbacks struct {
	mu       sync.RWMutex
	handlers map[Event]Handler
	logger   logging.Logger
}

// NewCallbacks returns an empty table. Panics recovered from handlers are reported on logger,
// or on the global logger when logger is nil.
func NewCallbacks(logger logging.Logger) *Callbacks {
	if logger == nil {
		logger = logging.Global()
	}
	return &Callbacks{handlers: map[Event]Handler{}, logger: logger}
}

// Register binds a handler to an event. Each event can be bound once.
func (c *Callbacks) Register(event Event, handler Handler) error {
	if !event.Valid() {
		return errors.Errorf("cannot register handler for unknown event %d", int(event))
	}
	if handler == nil {
		return errors.Errorf("handler for %s is nil", event)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.handlers[event]; ok {
		return errors.Errorf("handler for %s already registered", event)
	}
	c.handlers[event] = handler
	return nil
}

// RegisterByName binds a handler using its callback name, e.g. "onAccPacket".
func (c *Callbacks) RegisterByName(name string, handler Handler) error {
	event, err := EventFromString(name)
	if err != nil {
		return err
	}
	return c.Register(event, handler)
}

// Validate returns an error naming every event without a handler.
func (c *Callbacks) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var missing []string
	for _, event := range AllEvents() {
		if _, ok := c.handlers[event]; !ok {
			missing = append(missing, event.String())
		}
	}
	if len(missing) != 0 {
		return errors.Errorf("missing handlers for %v", missing)
	}
	return nil
}

// Events returns the events that have a handler, in dispatch priority order.
func (c *Callbacks) Events() []Event {
	c.mu.RLock()
	defer c.mu.RUnlock()
	events := make([]Event, 0, len(c.handlers))
	for _, event := range AllEvents() {
		if _, ok := c.handlers[event]; ok {
			events = append(events, event)
		}
	}
	return events
}

// Invoke runs the handler bound to event and reports whether one ran to completion. A handler
// panic is recovered and logged; it never reaches the caller. A nil snapshot is replaced by one
// where no sensor has reported.
func (c *Callbacks) Invoke(ctx context.Context, event Event, r robot.Snapshot) (ok bool) {
	c.mu.RLock()
	handler, found := c.handlers[event]
	c.mu.RUnlock()
	if !found {
		c.logger.Warnw("no handler registered", "event", event.String())
		return false
	}

	if r == nil {
		r = robot.NewState().Freeze()
	}

	defer func() {
		if p := recover(); p != nil {
			c.logger.Errorw("handler panicked", "event", event.String(), "panic", fmt.Sprint(p))
			ok = false
		}
	}()
	handler(ctx, r)
	return true
}
