package wager

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/WagerBot_Go/internal/domain"
	"github.com/osse101/WagerBot_Go/internal/event"
	"github.com/osse101/WagerBot_Go/internal/logger"
	"github.com/osse101/WagerBot_Go/internal/metrics"
	"github.com/osse101/WagerBot_Go/internal/repository"
)

// RegionResolver resolves user supplied region codes
type RegionResolver interface {
	Lookup(ctx context.Context, code string, openOnly bool) (*domain.Region, error)
}

// Settings holds the betting rules
type Settings struct {
	MaxAmount      int
	ConfirmTimeout time.Duration
	Clock          domain.Clock
}

// Service runs the bet confirmation handshake and the wager queries around it
type Service interface {
	// Propose validates a placement for tomorrow and registers a pending confirmation.
	// An identical existing wager fails with domain.ErrNoChange.
	Propose(ctx context.Context, userID, regionCode string, amount int) (*Confirmation, error)

	// Acknowledge delivers the proposing user's answer. It reports false when the
	// answer was ignored: unknown or finished confirmation, another user, or an
	// answer already queued.
	Acknowledge(confirmationID, userID string, confirm bool) bool

	// Await blocks until the confirmation is answered, times out or ctx ends,
	// then commits or discards the wager. Expiry is an outcome, not an error.
	Await(ctx context.Context, c *Confirmation) (*Outcome, error)

	// Pending returns a confirmation that is still waiting for an answer
	Pending(confirmationID string) (*Confirmation, bool)

	// ExpireAll ends every pending confirmation as expired
	ExpireAll(ctx context.Context) int

	// ListWagers returns a user's wagers for a date, tomorrow when date is empty
	ListWagers(ctx context.Context, userID string, date domain.Date) ([]domain.Wager, error)

	// PlacedSummary counts wagers per region for a date, tomorrow when date is empty
	PlacedSummary(ctx context.Context, date domain.Date) (*domain.PlacedSummary, error)
}

type service struct {
	repo     repository.Wagers
	regions  RegionResolver
	bus      event.Bus
	settings Settings

	mu      sync.Mutex
	pending map[string]*Confirmation
}

// NewService creates a wager service. bus may be nil.
func NewService(repo repository.Wagers, regions RegionResolver, bus event.Bus, settings Settings) Service {
	if settings.ConfirmTimeout <= 0 {
		settings.ConfirmTimeout = DefaultConfirmTimeout
	}
	return &service{
		repo:     repo,
		regions:  regions,
		bus:      bus,
		settings: settings,
		pending:  make(map[string]*Confirmation),
	}
}

func (s *service) Propose(ctx context.Context, userID, regionCode string, amount int) (*Confirmation, error) {
	log := logger.FromContext(ctx)

	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgMissingUser)
	}
	if amount < 0 || amount > s.settings.MaxAmount {
		return nil, fmt.Errorf("%w: %s: "+ErrMsgAmountBounds, domain.ErrInvalidInput, domain.ErrMsgAmountRange, s.settings.MaxAmount)
	}

	region, err := s.regions.Lookup(ctx, regionCode, true)
	if err != nil {
		return nil, err
	}

	date := s.settings.Clock.Tomorrow()
	key := domain.WagerKey{UserID: userID, RegionID: region.ID, Date: date}

	existing, err := s.repo.FindOneWager(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrStoreFailure, ErrMsgFindWagerFailed, err)
	}
	if existing != nil && existing.Amount == amount {
		return nil, fmt.Errorf("%w: "+ErrMsgIdenticalWager, domain.ErrNoChange, amount, region.ID, date)
	}

	c := newConfirmation(uuid.NewString(), userID, region.ID, date, amount, existing, time.Now())

	s.mu.Lock()
	s.pending[c.ID] = c
	s.mu.Unlock()
	metrics.PendingConfirmations.Inc()

	log.Info(LogMsgProposed, "confirmation_id", c.ID, "user_id", userID, "region", region.ID, "date", date, "amount", amount, "update", c.IsUpdate())
	return c, nil
}

func (s *service) Acknowledge(confirmationID, userID string, confirm bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.pending[confirmationID]
	if !ok || c.UserID != userID {
		logger.Debug(LogMsgAckIgnored, "confirmation_id", confirmationID, "user_id", userID)
		return false
	}
	return c.offer(confirm)
}

func (s *service) Pending(confirmationID string) (*Confirmation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.pending[confirmationID]
	return c, ok
}

func (s *service) Await(ctx context.Context, c *Confirmation) (*Outcome, error) {
	if !c.awaited.CompareAndSwap(false, true) {
		return nil, fmt.Errorf("%w: "+ErrMsgAlreadyAwaited, domain.ErrInvalidInput, c.ID)
	}
	log := logger.FromContext(ctx)

	timer := time.NewTimer(s.settings.ConfirmTimeout)
	defer timer.Stop()

	var confirm, answered bool
	select {
	case confirm = <-c.acks:
		answered = true
	case <-timer.C:
	case <-c.cancel:
	case <-ctx.Done():
	}

	// Deregister before deciding so no answer can be accepted afterwards.
	// An answer accepted while the timer fired still counts.
	s.mu.Lock()
	delete(s.pending, c.ID)
	if !answered {
		confirm, answered = c.take()
	}
	s.mu.Unlock()
	metrics.PendingConfirmations.Dec()

	outcome := &Outcome{
		ConfirmationID: c.ID,
		UserID:         c.UserID,
		RegionID:       c.RegionID,
		Date:           c.Date,
		Amount:         c.Amount,
		Previous:       c.Previous,
	}

	switch {
	case !answered:
		outcome.State = StateExpired
		log.Info(LogMsgExpired, "confirmation_id", c.ID, "user_id", c.UserID)
	case !confirm:
		outcome.State = StateDeclined
		log.Info(LogMsgDeclined, "confirmation_id", c.ID, "user_id", c.UserID)
	default:
		// The commit must not be cut short by the ctx that may have just ended
		w, err := s.commit(context.WithoutCancel(ctx), c)
		if err != nil {
			metrics.Confirmations.WithLabelValues(string(StateFailed)).Inc()
			log.Error(LogMsgSaveFailed, "confirmation_id", c.ID, "user_id", c.UserID, "error", err)
			return nil, err
		}
		outcome.State = StateConfirmed
		outcome.Wager = w
		log.Info(LogMsgConfirmed, "confirmation_id", c.ID, "user_id", c.UserID, "region", c.RegionID, "date", c.Date, "amount", c.Amount)
	}

	metrics.Confirmations.WithLabelValues(string(outcome.State)).Inc()
	return outcome, nil
}

// commit upserts the wager against the date fixed at proposal time
func (s *service) commit(ctx context.Context, c *Confirmation) (*domain.Wager, error) {
	w := domain.Wager{
		UserID:    c.UserID,
		RegionID:  c.RegionID,
		Date:      c.Date,
		Amount:    c.Amount,
		UpdatedAt: time.Now(),
	}
	if _, err := s.repo.UpsertWager(ctx, w); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrStoreFailure, ErrMsgUpsertWagerFailed, err)
	}

	if s.bus != nil {
		var previous *int
		if c.Previous != nil {
			amount := c.Previous.Amount
			previous = &amount
		}
		evt := event.NewWagerConfirmedEvent(c.UserID, c.RegionID, string(c.Date), c.Amount, previous)
		if err := s.bus.Publish(ctx, evt); err != nil {
			logger.FromContext(ctx).Warn(LogMsgPublishFailed, "confirmation_id", c.ID, "error", err)
		}
	}
	return &w, nil
}

func (s *service) ExpireAll(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.pending {
		c.stop()
	}
	if n := len(s.pending); n > 0 {
		logger.FromContext(ctx).Info(LogMsgPendingExpired, "count", n)
		return n
	}
	return 0
}

func (s *service) ListWagers(ctx context.Context, userID string, date domain.Date) ([]domain.Wager, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgMissingUser)
	}
	date, err := s.resolveDate(date, s.settings.Clock.Tomorrow())
	if err != nil {
		return nil, err
	}

	wagers, err := s.repo.FindWagers(ctx, domain.WagerFilter{UserID: userID, Date: date})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrStoreFailure, ErrMsgFindWagersFailed, err)
	}
	if wagers == nil {
		wagers = []domain.Wager{}
	}
	return wagers, nil
}

func (s *service) PlacedSummary(ctx context.Context, date domain.Date) (*domain.PlacedSummary, error) {
	date, err := s.resolveDate(date, s.settings.Clock.Tomorrow())
	if err != nil {
		return nil, err
	}

	wagers, err := s.repo.FindWagers(ctx, domain.WagerFilter{Date: date})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrStoreFailure, ErrMsgFindWagersFailed, err)
	}

	counts := make(map[string]int)
	for _, w := range wagers {
		counts[w.RegionID]++
	}

	summary := &domain.PlacedSummary{Date: date, Total: len(wagers), ByRegion: make([]domain.RegionCount, 0, len(counts))}
	for regionID, n := range counts {
		summary.ByRegion = append(summary.ByRegion, domain.RegionCount{RegionID: regionID, Count: n})
	}
	sort.Slice(summary.ByRegion, func(i, j int) bool {
		return summary.ByRegion[i].RegionID < summary.ByRegion[j].RegionID
	})
	return summary, nil
}

func (s *service) resolveDate(date, fallback domain.Date) (domain.Date, error) {
	if date.IsZero() {
		return fallback, nil
	}
	return domain.ParseDate(string(date))
}
