package scoring

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/WagerBot_Go/internal/domain"
	"github.com/osse101/WagerBot_Go/internal/event"
	"github.com/osse101/WagerBot_Go/internal/testing/memstore"
)

// fakeRegions resolves codes against a fixed catalogue
type fakeRegions struct {
	regions map[string]domain.Region
}

func (f *fakeRegions) Lookup(_ context.Context, code string, openOnly bool) (*domain.Region, error) {
	r, ok := f.regions[domain.NormalizeRegionID(code)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, domain.ErrMsgRegionNotFound)
	}
	if openOnly && !r.Open {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, domain.ErrMsgRegionClosed)
	}
	return &r, nil
}

func newFakeRegions() *fakeRegions {
	return &fakeRegions{regions: map[string]domain.Region{
		"nsw": {ID: "nsw", Label: "New South Wales", Open: true},
		"tas": {ID: "tas", Label: "Tasmania", Open: false},
	}}
}

// recordingBus captures published events
type recordingBus struct {
	mu     sync.Mutex
	events []event.Event
	err    error
}

func (b *recordingBus) Publish(_ context.Context, evt event.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, evt)
	return b.err
}

func (b *recordingBus) Subscribe(event.Type, event.Handler) {}

func (b *recordingBus) published() []event.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]event.Event(nil), b.events...)
}

func setup() (*memstore.Store, *recordingBus, Service) {
	store := memstore.New()
	bus := &recordingBus{}
	svc := NewService(store, newFakeRegions(), bus, Settings{Points: []int{100, 50, 25}, MaxAmount: 1000})
	return store, bus, svc
}

func TestResolve_WorkedExample(t *testing.T) {
	store, bus, svc := setup()
	store.AddWager("A", "nsw", testDate, 10)
	store.AddWager("B", "nsw", testDate, 12)
	store.AddWager("C", "nsw", testDate, 20)
	store.AddWager("D", "nsw", testDate.AddDays(1), 12) // different date, not scored

	res, err := svc.Resolve(context.Background(), "NSW", testDate, 12)
	require.NoError(t, err)
	assert.Equal(t, "nsw", res.RegionID)
	assert.Equal(t, 3, res.WagerCount)

	scores := store.Scores()
	require.Len(t, scores, 3)
	got := map[string]int{}
	for _, s := range scores {
		got[s.UserID] = s.Score
		assert.Equal(t, testDate, s.Date)
	}
	assert.Equal(t, map[string]int{"A": 50, "B": 100, "C": 25}, got)
	assert.Equal(t, 1, store.InsertScoresCalls)

	events := bus.published()
	require.Len(t, events, 1)
	assert.Equal(t, event.ResultResolved, events[0].Type)
	payload, err := event.DecodePayload[event.ResultResolvedPayloadV1](events[0].Payload)
	require.NoError(t, err)
	assert.Equal(t, 175, payload.PointsTotal)
	assert.Equal(t, 3, payload.WagerCount)
}

func TestResolve_ZeroWagersStillRecordsResult(t *testing.T) {
	store, _, svc := setup()

	res, err := svc.Resolve(context.Background(), "nsw", testDate, 40)
	require.NoError(t, err)
	assert.Equal(t, 0, res.WagerCount)
	assert.Empty(t, res.Placings)
	assert.Len(t, store.Results(), 1)
	assert.Equal(t, 0, store.InsertScoresCalls)
}

func TestResolve_ClosedRegionAllowed(t *testing.T) {
	_, _, svc := setup()
	_, err := svc.Resolve(context.Background(), "tas", testDate, 1)
	assert.NoError(t, err)
}

func TestResolve_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		region string
		date   domain.Date
		value  int
	}{
		{"unknown region", "qld", testDate, 1},
		{"negative value", "nsw", testDate, -1},
		{"value above max", "nsw", testDate, 1001},
		{"missing date", "nsw", "", 1},
		{"malformed date", "nsw", "2024-13-40", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, _, svc := setup()
			_, err := svc.Resolve(context.Background(), tt.region, tt.date, tt.value)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Empty(t, store.Results())
		})
	}
}

func TestResolve_Boundaries(t *testing.T) {
	_, _, svc := setup()
	_, err := svc.Resolve(context.Background(), "nsw", testDate, 0)
	require.NoError(t, err)
	_, err = svc.Resolve(context.Background(), "nsw", testDate.AddDays(1), 1000)
	require.NoError(t, err)
}

func TestResolve_SecondAttemptRejected(t *testing.T) {
	store, bus, svc := setup()
	store.AddWager("A", "nsw", testDate, 10)

	_, err := svc.Resolve(context.Background(), "nsw", testDate, 12)
	require.NoError(t, err)
	before := store.Scores()

	_, err = svc.Resolve(context.Background(), "nsw", testDate, 99)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAlreadyResolved)

	assert.Equal(t, before, store.Scores())
	results := store.Results()
	require.Len(t, results, 1)
	assert.Equal(t, 12, results[0].Amount)
	assert.Len(t, bus.published(), 1)
}

func TestResolve_ConcurrentInsertMapsToAlreadyResolved(t *testing.T) {
	store, _, svc := setup()
	store.ErrInsertResult = fmt.Errorf("%w: nsw on %s", domain.ErrAlreadyResolved, testDate)

	_, err := svc.Resolve(context.Background(), "nsw", testDate, 12)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAlreadyResolved)
	assert.NotErrorIs(t, err, domain.ErrStoreFailure)
}

func TestResolve_ScoreWriteFailureLeavesRecoverableState(t *testing.T) {
	store, bus, svc := setup()
	store.AddWager("A", "nsw", testDate, 10)
	store.AddWager("B", "nsw", testDate, 14)
	store.ErrInsertScores = errors.New("connection reset")

	_, err := svc.Resolve(context.Background(), "nsw", testDate, 12)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStoreFailure)
	assert.Len(t, store.Results(), 1)
	assert.Empty(t, store.Scores())
	assert.Empty(t, bus.published())

	// Operator retry
	store.ErrInsertScores = nil
	res, err := svc.Rescore(context.Background(), "nsw", testDate)
	require.NoError(t, err)
	assert.Equal(t, 2, res.WagerCount)
	for _, s := range store.Scores() {
		assert.Equal(t, 50, s.Score)
		assert.Equal(t, 2, s.Distance)
	}
	assert.Len(t, bus.published(), 1)

	_, err = svc.Rescore(context.Background(), "nsw", testDate)
	assert.ErrorIs(t, err, domain.ErrAlreadyScored)
}

func TestRescore_RequiresResult(t *testing.T) {
	_, _, svc := setup()
	_, err := svc.Rescore(context.Background(), "nsw", testDate)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestResolve_PublishFailureIsNotFatal(t *testing.T) {
	_, bus, svc := setup()
	bus.err = errors.New("bus down")

	_, err := svc.Resolve(context.Background(), "nsw", testDate, 12)
	assert.NoError(t, err)
}

func TestRecoverUnscored(t *testing.T) {
	store, bus, svc := setup()
	earlier := testDate.AddDays(-3)

	// Scored already
	store.AddResult("nsw", earlier, 5)
	store.AddWager("A", "nsw", earlier, 5)
	store.AddScore("A", "nsw", earlier, 100, 0)

	// Missing scores
	store.AddResult("nsw", testDate, 12)
	store.AddWager("A", "nsw", testDate, 10)
	store.AddWager("B", "nsw", testDate, 12)

	// No wagers at all
	store.AddResult("tas", testDate, 7)

	// Before the lookback window
	store.AddResult("tas", testDate.AddDays(-30), 7)
	store.AddWager("A", "tas", testDate.AddDays(-30), 7)

	n, err := svc.RecoverUnscored(context.Background(), earlier)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Len(t, store.Scores(), 3)
	assert.Len(t, bus.published(), 1)

	n, err = svc.RecoverUnscored(context.Background(), earlier)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestRecoverUnscored_CollectsFailures(t *testing.T) {
	store, _, svc := setup()
	store.AddResult("nsw", testDate, 12)
	store.AddWager("A", "nsw", testDate, 10)
	store.ErrInsertScores = errors.New("disk full")

	n, err := svc.RecoverUnscored(context.Background(), testDate)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStoreFailure)
	assert.Equal(t, 0, n)
}

func TestRecoverUnscored_StoreFailure(t *testing.T) {
	store, _, svc := setup()
	store.ErrFindResults = errors.New("timeout")

	_, err := svc.RecoverUnscored(context.Background(), testDate)
	assert.ErrorIs(t, err, domain.ErrStoreFailure)
}

// gatedStore holds the first InsertScores call until released
type gatedStore struct {
	*memstore.Store
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func newGatedStore() *gatedStore {
	return &gatedStore{Store: memstore.New(), entered: make(chan struct{}), release: make(chan struct{})}
}

func (g *gatedStore) InsertScores(ctx context.Context, scores []domain.Score) error {
	first := false
	g.once.Do(func() { first = true })
	if first {
		close(g.entered)
		<-g.release
	}
	return g.Store.InsertScores(ctx, scores)
}

func TestResolve_RacingRecoveryScoresOnce(t *testing.T) {
	store := newGatedStore()
	bus := &recordingBus{}
	svc := NewService(store, newFakeRegions(), bus, Settings{Points: []int{100, 50, 25}, MaxAmount: 1000})
	store.AddWager("A", "nsw", testDate, 10)
	store.AddWager("B", "nsw", testDate, 14)

	type outcome struct {
		res *domain.Resolution
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := svc.Resolve(context.Background(), "nsw", testDate, 12)
		done <- outcome{res, err}
	}()

	// Resolve has written the result and is about to write scores
	<-store.entered
	n, err := svc.RecoverUnscored(context.Background(), testDate.AddDays(-7))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	close(store.release)
	out := <-done
	require.NoError(t, out.err)
	assert.Equal(t, 2, out.res.WagerCount)

	scores := store.Scores()
	require.Len(t, scores, 2)
	total := 0
	for _, s := range scores {
		total += s.Score
	}
	// 100+50 split between two wagers tied at distance 2
	assert.Equal(t, 150, total)
	assert.Len(t, bus.published(), 1, "only the writer that stored the scores announces them")

	_, err = svc.Rescore(context.Background(), "nsw", testDate)
	assert.ErrorIs(t, err, domain.ErrAlreadyScored)
}
