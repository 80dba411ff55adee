package scoring

import (
	"context"
	"errors"
	"fmt"

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

// Settings holds the game rules used when scoring
type Settings struct {
	Points    []int
	MaxAmount int
}

// Service turns announced values into score records
type Service interface {
	// Resolve records the value for a region and date, then ranks and scores its wagers
	Resolve(ctx context.Context, regionCode string, date domain.Date, value int) (*domain.Resolution, error)

	// Rescore computes scores for a result recorded earlier whose scores were never written
	Rescore(ctx context.Context, regionCode string, date domain.Date) (*domain.Resolution, error)

	// RecoverUnscored rescores every result since the given date that has wagers but no scores
	RecoverUnscored(ctx context.Context, since domain.Date) (int, error)
}

type service struct {
	store    repository.Store
	regions  RegionResolver
	bus      event.Bus
	settings Settings
}

// NewService creates a scoring service. bus may be nil.
func NewService(store repository.Store, regions RegionResolver, bus event.Bus, settings Settings) Service {
	if len(settings.Points) == 0 {
		settings.Points = DefaultPoints
	}
	if settings.MaxAmount <= 0 {
		settings.MaxAmount = DefaultMaxAmount
	}
	return &service{
		store:    store,
		regions:  regions,
		bus:      bus,
		settings: settings,
	}
}

func (s *service) Resolve(ctx context.Context, regionCode string, date domain.Date, value int) (*domain.Resolution, error) {
	log := logger.FromContext(ctx)

	region, err := s.regions.Lookup(ctx, regionCode, false)
	if err != nil {
		return nil, err
	}
	if err := s.validateDate(date); err != nil {
		return nil, err
	}
	if value < 0 || value > s.settings.MaxAmount {
		return nil, fmt.Errorf("%w: %s: "+ErrMsgValueRange, domain.ErrInvalidInput, domain.ErrMsgAmountRange, s.settings.MaxAmount)
	}

	exists, err := s.store.ResultExists(ctx, region.ID, date)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrStoreFailure, ErrMsgCheckResultFailed, err)
	}
	if exists {
		return nil, fmt.Errorf("%w: %s on %s", domain.ErrAlreadyResolved, region.ID, date)
	}

	if err := s.store.InsertResult(ctx, domain.Result{RegionID: region.ID, Date: date, Amount: value}); err != nil {
		if errors.Is(err, domain.ErrAlreadyResolved) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrStoreFailure, ErrMsgInsertResultFailed, err)
	}

	resolution, err := s.score(ctx, region.ID, date, value)
	if errors.Is(err, domain.ErrAlreadyScored) {
		// Recovery scored the result between our two writes and announced it
		log.Info(LogMsgScoredConcurrently, "region", region.ID, "date", date)
		return resolution, nil
	}
	if err != nil {
		return nil, err
	}

	log.Info(LogMsgResultResolved, "region", region.ID, "date", date, "value", value, "wagers", resolution.WagerCount)
	s.publish(ctx, resolution)
	return resolution, nil
}

func (s *service) Rescore(ctx context.Context, regionCode string, date domain.Date) (*domain.Resolution, error) {
	region, err := s.regions.Lookup(ctx, regionCode, false)
	if err != nil {
		return nil, err
	}
	if err := s.validateDate(date); err != nil {
		return nil, err
	}

	results, err := s.store.FindResults(ctx, domain.ResultFilter{RegionID: region.ID, Date: date})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrStoreFailure, ErrMsgFindResultsFailed, err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("%w: "+ErrMsgResultMissing, domain.ErrNotFound, region.ID, date)
	}

	return s.rescore(ctx, results[0])
}

func (s *service) RecoverUnscored(ctx context.Context, since domain.Date) (int, error) {
	log := logger.FromContext(ctx)
	log.Debug(LogMsgRecoveryStarted, "since", since)

	results, err := s.store.FindResults(ctx, domain.ResultFilter{Since: since})
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", domain.ErrStoreFailure, ErrMsgFindResultsFailed, err)
	}

	var (
		recovered int
		errs      []error
	)
	for _, result := range results {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		resolution, err := s.rescore(ctx, result)
		switch {
		case errors.Is(err, domain.ErrAlreadyScored):
			continue
		case err != nil:
			log.Error(LogMsgRecoveryFailed, "region", result.RegionID, "date", result.Date, "error", err)
			errs = append(errs, err)
			continue
		case resolution.WagerCount == 0:
			log.Debug(LogMsgRecoverySkippedNone, "region", result.RegionID, "date", result.Date)
			continue
		}

		recovered++
		metrics.RecoveredResults.Inc()
	}

	if recovered > 0 || len(errs) > 0 {
		log.Info(LogMsgRecoveryFinished, "results", len(results), "recovered", recovered, "failed", len(errs))
	}
	return recovered, errors.Join(errs...)
}

// rescore scores a stored result once it is known to have no score records
func (s *service) rescore(ctx context.Context, result domain.Result) (*domain.Resolution, error) {
	existing, err := s.store.FindScores(ctx, domain.ScoreFilter{RegionID: result.RegionID, Date: result.Date})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrStoreFailure, ErrMsgFindScoresFailed, err)
	}
	if len(existing) > 0 {
		return nil, fmt.Errorf("%w: "+ErrMsgScoresAlreadyPresent, domain.ErrAlreadyScored, len(existing), result.RegionID, result.Date)
	}

	resolution, err := s.score(ctx, result.RegionID, result.Date, result.Amount)
	if err != nil {
		return nil, err
	}
	if resolution.WagerCount == 0 {
		return resolution, nil
	}

	logger.FromContext(ctx).Info(LogMsgResultRescored, "region", result.RegionID, "date", result.Date, "wagers", resolution.WagerCount)
	s.publish(ctx, resolution)
	return resolution, nil
}

// score ranks the wagers for a region and date and writes their scores in one batch.
// When another writer got there first it returns the ranking with domain.ErrAlreadyScored.
func (s *service) score(ctx context.Context, regionID string, date domain.Date, value int) (*domain.Resolution, error) {
	wagers, err := s.store.FindWagers(ctx, domain.WagerFilter{RegionID: regionID, Date: date})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrStoreFailure, ErrMsgFindWagersFailed, err)
	}

	placings := Rank(value, wagers, s.settings.Points)
	resolution := &domain.Resolution{
		RegionID:   regionID,
		Date:       date,
		Value:      value,
		WagerCount: len(wagers),
		Placings:   placings,
	}
	if len(placings) > 0 {
		if err := s.store.InsertScores(ctx, Scores(placings)); err != nil {
			if errors.Is(err, domain.ErrAlreadyScored) {
				return resolution, err
			}
			return nil, fmt.Errorf("%w: %s: %w", domain.ErrStoreFailure, ErrMsgInsertScoresFailed, err)
		}
	}
	return resolution, nil
}

func (s *service) validateDate(date domain.Date) error {
	if date.IsZero() {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgMissingDate)
	}
	_, err := domain.ParseDate(string(date))
	return err
}

// publish announces the resolution; failures are logged and never fail the caller
func (s *service) publish(ctx context.Context, r *domain.Resolution) {
	if s.bus == nil {
		return
	}
	evt := event.NewResultResolvedEvent(r.RegionID, string(r.Date), r.Value, r.WagerCount, PointsTotal(r.Placings))
	if err := s.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "region", r.RegionID, "date", r.Date, "error", err)
	}
}
