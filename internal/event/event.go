package event

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if m, ok := e.Metadata.(map[string]interface{}); ok {
		return m[key]
	}
	return nil
}

// Event types
const (
	ResultResolved Type = "result.resolved"
	WagerConfirmed Type = "wager.confirmed"
	BettingClosed  Type = "betting.closed"
)

// AllTypes lists every event type the game publishes
var AllTypes = []Type{ResultResolved, WagerConfirmed, BettingClosed}

// ResultResolvedPayloadV1 is the typed payload for result resolution events
type ResultResolvedPayloadV1 struct {
	RegionID    string `json:"region_id"`
	Date        string `json:"date"`
	Value       int    `json:"value"`
	WagerCount  int    `json:"wager_count"`
	PointsTotal int    `json:"points_total"`
	Timestamp   int64  `json:"timestamp"`
}

// WagerConfirmedPayloadV1 is the typed payload for confirmed wagers
type WagerConfirmedPayloadV1 struct {
	UserID         string `json:"user_id"`
	RegionID       string `json:"region_id"`
	Date           string `json:"date"`
	Amount         int    `json:"amount"`
	PreviousAmount *int   `json:"previous_amount,omitempty"`
	Timestamp      int64  `json:"timestamp"`
}

// BettingClosedPayloadV1 is published at midnight when a day's wagers can no longer change
type BettingClosedPayloadV1 struct {
	Date      string         `json:"date"`
	Total     int            `json:"total"`
	ByRegion  map[string]int `json:"by_region"`
	Timestamp int64          `json:"timestamp"`
}

// NewResultResolvedEvent creates a result resolution event
func NewResultResolvedEvent(regionID, date string, value, wagerCount, pointsTotal int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ResultResolved,
		Payload: ResultResolvedPayloadV1{
			RegionID:    regionID,
			Date:        date,
			Value:       value,
			WagerCount:  wagerCount,
			PointsTotal: pointsTotal,
			Timestamp:   time.Now().Unix(),
		},
		Metadata: map[string]interface{}{
			"region_id": regionID,
		},
	}
}

// NewWagerConfirmedEvent creates a wager confirmation event.
// previous is nil when the user had no wager for the region and date.
func NewWagerConfirmedEvent(userID, regionID, date string, amount int, previous *int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    WagerConfirmed,
		Payload: WagerConfirmedPayloadV1{
			UserID:         userID,
			RegionID:       regionID,
			Date:           date,
			Amount:         amount,
			PreviousAmount: previous,
			Timestamp:      time.Now().Unix(),
		},
		Metadata: map[string]interface{}{
			"user_id": userID,
		},
	}
}

// NewBettingClosedEvent creates a betting closed event for a date
func NewBettingClosedEvent(date string, total int, byRegion map[string]int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    BettingClosed,
		Payload: BettingClosedPayloadV1{
			Date:      date,
			Total:     total,
			ByRegion:  byRegion,
			Timestamp: time.Now().Unix(),
		},
		Metadata: map[string]interface{}{
			"date": date,
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers.
// Handlers run synchronously in subscription order.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// SubscribeAll subscribes one handler to several event types
func SubscribeAll(bus Bus, handler Handler, types ...Type) {
	for _, t := range types {
		bus.Subscribe(t, handler)
	}
}
