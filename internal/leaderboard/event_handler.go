package leaderboard

import (
	"context"

	"github.com/osse101/WagerBot_Go/internal/event"
)

// EventHandler keeps cached leaderboards in step with newly written scores
type EventHandler struct {
	service Service
}

// NewEventHandler creates a leaderboard event handler
func NewEventHandler(service Service) *EventHandler {
	return &EventHandler{service: service}
}

// Register subscribes the handler to result events
func (h *EventHandler) Register(bus event.Bus) {
	bus.Subscribe(event.ResultResolved, h.HandleResultResolved)
}

// HandleResultResolved drops cached leaderboards; cache failures are logged by the service
func (h *EventHandler) HandleResultResolved(ctx context.Context, _ event.Event) error {
	h.service.Invalidate(ctx)
	return nil
}
