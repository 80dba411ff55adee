// Package memstore is an in-memory repository.Store for service tests.
// Ordering follows the Postgres store so tests observe the same sequences.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/osse101/WagerBot_Go/internal/domain"
)

// Store keeps every record in slices guarded by a mutex.
// Set the Err fields to make the matching operation fail.
type Store struct {
	mu sync.Mutex

	regions []domain.Region
	wagers  map[domain.WagerKey]domain.Wager
	results []domain.Result
	scores  []domain.Score

	ErrFindRegions  error
	ErrFindWagers   error
	ErrUpsertWager  error
	ErrInsertResult error
	ErrFindResults  error
	ErrFindScores   error
	ErrInsertScores error

	InsertScoresCalls int
	UpsertCalls       int
}

// New returns an empty store seeded with regions
func New(regions ...domain.Region) *Store {
	s := &Store{wagers: make(map[domain.WagerKey]domain.Wager)}
	s.regions = append(s.regions, regions...)
	return s
}

// AddWager stores a wager directly, bypassing call counters
func (s *Store) AddWager(userID, regionID string, date domain.Date, amount int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w := domain.Wager{UserID: userID, RegionID: regionID, Date: date, Amount: amount, UpdatedAt: time.Now()}
	s.wagers[w.Key()] = w
}

// AddResult stores a result directly
func (s *Store) AddResult(regionID string, date domain.Date, amount int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, domain.Result{RegionID: regionID, Date: date, Amount: amount, CreatedAt: time.Now()})
}

// AddScore stores a score record directly
func (s *Store) AddScore(userID, regionID string, date domain.Date, score, distance int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scores = append(s.scores, domain.Score{UserID: userID, RegionID: regionID, Date: date, Score: score, Distance: distance})
}

// Scores returns a copy of every stored score
func (s *Store) Scores() []domain.Score {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Score(nil), s.scores...)
}

// Results returns a copy of every stored result
func (s *Store) Results() []domain.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Result(nil), s.results...)
}

func (s *Store) FindRegions(_ context.Context, filter domain.RegionFilter) ([]domain.Region, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ErrFindRegions != nil {
		return nil, s.ErrFindRegions
	}

	var out []domain.Region
	for _, r := range s.regions {
		if filter.ID != "" && r.ID != filter.ID {
			continue
		}
		if filter.Open != nil && r.Open != *filter.Open {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) ReplaceRegions(_ context.Context, regions []domain.Region) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.regions = append([]domain.Region(nil), regions...)
	return nil
}

func (s *Store) FindWagers(_ context.Context, filter domain.WagerFilter) ([]domain.Wager, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ErrFindWagers != nil {
		return nil, s.ErrFindWagers
	}

	var out []domain.Wager
	for _, w := range s.wagers {
		if filter.UserID != "" && w.UserID != filter.UserID {
			continue
		}
		if filter.RegionID != "" && w.RegionID != filter.RegionID {
			continue
		}
		if !filter.Date.IsZero() && w.Date != filter.Date {
			continue
		}
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		if out[i].RegionID != out[j].RegionID {
			return out[i].RegionID < out[j].RegionID
		}
		return out[i].UserID < out[j].UserID
	})
	return out, nil
}

func (s *Store) FindOneWager(_ context.Context, key domain.WagerKey) (*domain.Wager, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ErrFindWagers != nil {
		return nil, s.ErrFindWagers
	}
	w, ok := s.wagers[key]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (s *Store) UpsertWager(_ context.Context, wager domain.Wager) (domain.UpsertResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.UpsertCalls++
	if s.ErrUpsertWager != nil {
		return domain.UpsertResult{}, s.ErrUpsertWager
	}
	_, existed := s.wagers[wager.Key()]
	s.wagers[wager.Key()] = wager
	return domain.UpsertResult{Inserted: !existed, Updated: existed}, nil
}

func (s *Store) ResultExists(_ context.Context, regionID string, date domain.Date) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ErrFindResults != nil {
		return false, s.ErrFindResults
	}
	return s.findResult(regionID, date) >= 0, nil
}

func (s *Store) InsertResult(_ context.Context, result domain.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ErrInsertResult != nil {
		return s.ErrInsertResult
	}
	if s.findResult(result.RegionID, result.Date) >= 0 {
		return domain.ErrAlreadyResolved
	}
	s.results = append(s.results, result)
	return nil
}

func (s *Store) FindResults(_ context.Context, filter domain.ResultFilter) ([]domain.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ErrFindResults != nil {
		return nil, s.ErrFindResults
	}

	var out []domain.Result
	for _, r := range s.results {
		if filter.RegionID != "" && r.RegionID != filter.RegionID {
			continue
		}
		if !filter.Date.IsZero() && r.Date != filter.Date {
			continue
		}
		if !filter.Since.IsZero() && r.Date < filter.Since {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].RegionID < out[j].RegionID
	})
	return out, nil
}

func (s *Store) FindScores(_ context.Context, filter domain.ScoreFilter) ([]domain.Score, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ErrFindScores != nil {
		return nil, s.ErrFindScores
	}

	var out []domain.Score
	for _, sc := range s.scores {
		if filter.UserID != "" && sc.UserID != filter.UserID {
			continue
		}
		if filter.RegionID != "" && sc.RegionID != filter.RegionID {
			continue
		}
		if !filter.Date.IsZero() && sc.Date != filter.Date {
			continue
		}
		out = append(out, sc)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].RegionID < out[j].RegionID
	})
	return out, nil
}

func (s *Store) InsertScores(_ context.Context, scores []domain.Score) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.InsertScoresCalls++
	if s.ErrInsertScores != nil {
		return s.ErrInsertScores
	}

	// One score per wager key; a colliding batch is rejected whole
	taken := make(map[domain.WagerKey]bool, len(s.scores)+len(scores))
	for _, sc := range s.scores {
		taken[scoreKey(sc)] = true
	}
	for _, sc := range scores {
		if taken[scoreKey(sc)] {
			return fmt.Errorf("%w: %s for %s on %s", domain.ErrAlreadyScored, sc.UserID, sc.RegionID, sc.Date)
		}
		taken[scoreKey(sc)] = true
	}
	s.scores = append(s.scores, scores...)
	return nil
}

func scoreKey(sc domain.Score) domain.WagerKey {
	return domain.WagerKey{UserID: sc.UserID, RegionID: sc.RegionID, Date: sc.Date}
}

func (s *Store) findResult(regionID string, date domain.Date) int {
	for i, r := range s.results {
		if r.RegionID == regionID && r.Date == date {
			return i
		}
	}
	return -1
}
