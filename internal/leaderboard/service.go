package leaderboard

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/osse101/WagerBot_Go/internal/domain"
	"github.com/osse101/WagerBot_Go/internal/logger"
	"github.com/osse101/WagerBot_Go/internal/metrics"
	"github.com/osse101/WagerBot_Go/internal/repository"
)

// Store is the read access the views need
type Store interface {
	repository.Scores
	FindResults(ctx context.Context, filter domain.ResultFilter) ([]domain.Result, error)
}

// Service computes the read-only views over score records
type Service interface {
	// DailyResults breaks down one day's scores per region
	DailyResults(ctx context.Context, date domain.Date) (*domain.DailyResults, error)

	// Leaderboard ranks all-time standings under the given metric
	Leaderboard(ctx context.Context, metric domain.LeaderboardMetric) (*domain.Leaderboard, error)

	// Scoreboard sums one user's points and distance per region
	Scoreboard(ctx context.Context, userID string) (*domain.Scoreboard, error)

	// Invalidate drops cached leaderboards after new scores are written
	Invalidate(ctx context.Context)
}

type service struct {
	store Store
	cache Cache

	// generation counts invalidations so a board computed from scores read
	// before one is never left in the cache
	generation atomic.Uint64
}

// NewService creates the aggregation service. cache may be nil.
func NewService(store Store, cache Cache) Service {
	return &service{store: store, cache: cache}
}

func (s *service) DailyResults(ctx context.Context, date domain.Date) (*domain.DailyResults, error) {
	if _, err := domain.ParseDate(string(date)); err != nil {
		return nil, err
	}

	scores, err := s.store.FindScores(ctx, domain.ScoreFilter{Date: date})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrStoreFailure, ErrMsgFindScoresFailed, err)
	}
	if len(scores) == 0 {
		return &domain.DailyResults{Date: date, Regions: []domain.RegionResult{}}, nil
	}

	results, err := s.store.FindResults(ctx, domain.ResultFilter{Date: date})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrStoreFailure, ErrMsgFindResultsFailed, err)
	}

	view := BuildDailyResults(date, scores, results)
	return &view, nil
}

func (s *service) Leaderboard(ctx context.Context, metric domain.LeaderboardMetric) (*domain.Leaderboard, error) {
	metric, err := domain.ParseLeaderboardMetric(string(metric))
	if err != nil {
		return nil, err
	}

	if board, ok := s.cached(ctx, metric); ok {
		return board, nil
	}

	gen := s.generation.Load()
	scores, err := s.store.FindScores(ctx, domain.ScoreFilter{})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrStoreFailure, ErrMsgFindScoresFailed, err)
	}

	board := BuildLeaderboard(metric, scores, TopN)
	s.remember(ctx, &board)
	if s.generation.Load() != gen {
		logger.FromContext(ctx).Debug(LogMsgCacheRaced, "metric", metric)
		s.Invalidate(ctx)
	}
	return &board, nil
}

func (s *service) Scoreboard(ctx context.Context, userID string) (*domain.Scoreboard, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgMissingUser)
	}

	scores, err := s.store.FindScores(ctx, domain.ScoreFilter{UserID: userID})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrStoreFailure, ErrMsgFindScoresFailed, err)
	}

	board := BuildScoreboard(userID, scores)
	return &board, nil
}

func (s *service) Invalidate(ctx context.Context) {
	s.generation.Add(1)
	if s.cache == nil {
		return
	}
	log := logger.FromContext(ctx)

	cctx, cancel := context.WithTimeout(ctx, CacheOpTimeout)
	defer cancel()
	if err := s.cache.Invalidate(cctx); err != nil {
		log.Warn(LogMsgCacheInvalidFailed, "error", err)
		return
	}
	log.Debug(LogMsgCacheInvalidated)
}

// cached consults the cache; errors count as a miss
func (s *service) cached(ctx context.Context, metric domain.LeaderboardMetric) (*domain.Leaderboard, bool) {
	if s.cache == nil {
		return nil, false
	}

	cctx, cancel := context.WithTimeout(ctx, CacheOpTimeout)
	defer cancel()
	board, ok, err := s.cache.Get(cctx, metric)
	switch {
	case err != nil:
		metrics.LeaderboardCache.WithLabelValues(metrics.CacheError).Inc()
		logger.FromContext(ctx).Warn(LogMsgCacheReadFailed, "metric", metric, "error", err)
		return nil, false
	case !ok:
		metrics.LeaderboardCache.WithLabelValues(metrics.CacheMiss).Inc()
		return nil, false
	}
	metrics.LeaderboardCache.WithLabelValues(metrics.CacheHit).Inc()
	return board, true
}

func (s *service) remember(ctx context.Context, board *domain.Leaderboard) {
	if s.cache == nil {
		return
	}

	cctx, cancel := context.WithTimeout(ctx, CacheOpTimeout)
	defer cancel()
	if err := s.cache.Set(cctx, board); err != nil {
		metrics.LeaderboardCache.WithLabelValues(metrics.CacheError).Inc()
		logger.FromContext(ctx).Warn(LogMsgCacheWriteFailed, "metric", board.Metric, "error", err)
	}
}
