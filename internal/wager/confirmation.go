package wager

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/osse101/WagerBot_Go/internal/domain"
)

// Confirmation is one proposed placement waiting for its user's yes or no.
// The wager date is fixed when the proposal is made.
type Confirmation struct {
	ID        string
	UserID    string
	RegionID  string
	Date      domain.Date
	Amount    int
	Previous  *domain.Wager
	CreatedAt time.Time

	// acks holds at most one answer; later answers are refused
	acks     chan bool
	cancel   chan struct{}
	stopOnce sync.Once
	awaited  atomic.Bool
}

func newConfirmation(id, userID, regionID string, date domain.Date, amount int, previous *domain.Wager, now time.Time) *Confirmation {
	return &Confirmation{
		ID:        id,
		UserID:    userID,
		RegionID:  regionID,
		Date:      date,
		Amount:    amount,
		Previous:  previous,
		CreatedAt: now,
		acks:      make(chan bool, 1),
		cancel:    make(chan struct{}),
	}
}

// IsUpdate reports whether the proposal replaces an existing wager
func (c *Confirmation) IsUpdate() bool {
	return c.Previous != nil
}

// offer queues an answer without blocking and reports whether it was accepted
func (c *Confirmation) offer(confirm bool) bool {
	select {
	case c.acks <- confirm:
		return true
	default:
		return false
	}
}

// take returns a queued answer, if any
func (c *Confirmation) take() (bool, bool) {
	select {
	case v := <-c.acks:
		return v, true
	default:
		return false, false
	}
}

// stop ends the wait early, as an expiry
func (c *Confirmation) stop() {
	c.stopOnce.Do(func() { close(c.cancel) })
}

// Outcome is the terminal result of a confirmation
type Outcome struct {
	ConfirmationID string        `json:"confirmation_id"`
	State          State         `json:"state"`
	UserID         string        `json:"user_id"`
	RegionID       string        `json:"region_id"`
	Date           domain.Date   `json:"date"`
	Amount         int           `json:"amount"`
	Previous       *domain.Wager `json:"previous,omitempty"`
	Wager          *domain.Wager `json:"wager,omitempty"`
}
