package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/WagerBot_Go/internal/domain"
	"github.com/osse101/WagerBot_Go/internal/repository"
)

// Store implements repository.Store for PostgreSQL
type Store struct {
	db *pgxpool.Pool
}

// NewStore creates a new Store
func NewStore(db *pgxpool.Pool) repository.Store {
	return &Store{db: db}
}

// FindRegions lists regions matching the filter ordered by code
func (s *Store) FindRegions(ctx context.Context, filter domain.RegionFilter) ([]domain.Region, error) {
	open := pgtype.Bool{}
	if filter.Open != nil {
		open = pgtype.Bool{Bool: *filter.Open, Valid: true}
	}

	rows, err := s.db.Query(ctx, SQLSelectRegions, filter.ID, open)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryRegions, err)
	}
	defer rows.Close()

	var regions []domain.Region
	for rows.Next() {
		var r domain.Region
		if err := rows.Scan(&r.ID, &r.Label, &r.Open); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanRegion, err)
		}
		regions = append(regions, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryRegions, err)
	}
	return regions, nil
}

// ReplaceRegions swaps the catalogue inside one transaction
func (s *Store) ReplaceRegions(ctx context.Context, regions []domain.Region) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx, SQLDeleteRegions); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToReplaceRegions, err)
	}

	batch := &pgx.Batch{}
	for _, r := range regions {
		batch.Queue(SQLInsertRegion, r.ID, r.Label, r.Open)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToReplaceRegions, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return nil
}

// FindWagers lists wagers matching the filter
func (s *Store) FindWagers(ctx context.Context, filter domain.WagerFilter) ([]domain.Wager, error) {
	rows, err := s.db.Query(ctx, SQLSelectWagers, filter.UserID, filter.RegionID, dateParam(filter.Date))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryWagers, err)
	}
	defer rows.Close()

	var wagers []domain.Wager
	for rows.Next() {
		w, err := scanWager(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanWager, err)
		}
		wagers = append(wagers, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryWagers, err)
	}
	return wagers, nil
}

// FindOneWager returns the wager for the key, or nil when there is none
func (s *Store) FindOneWager(ctx context.Context, key domain.WagerKey) (*domain.Wager, error) {
	w, err := scanWager(s.db.QueryRow(ctx, SQLSelectWager, key.UserID, key.RegionID, dateParam(key.Date)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetWager, err)
	}
	return &w, nil
}

// UpsertWager inserts the wager or replaces the amount of the existing one
func (s *Store) UpsertWager(ctx context.Context, wager domain.Wager) (domain.UpsertResult, error) {
	updatedAt := wager.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	var inserted bool
	err := s.db.QueryRow(ctx, SQLUpsertWager,
		wager.UserID, wager.RegionID, dateParam(wager.Date), wager.Amount, updatedAt,
	).Scan(&inserted)
	if err != nil {
		return domain.UpsertResult{}, fmt.Errorf("%s: %w", ErrMsgFailedToUpsertWager, err)
	}
	return domain.UpsertResult{Inserted: inserted, Updated: !inserted}, nil
}

// ResultExists reports whether a result was recorded for the region and date
func (s *Store) ResultExists(ctx context.Context, regionID string, date domain.Date) (bool, error) {
	var exists bool
	if err := s.db.QueryRow(ctx, SQLResultExists, regionID, dateParam(date)).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToCheckResult, err)
	}
	return exists, nil
}

// InsertResult records a result. A second result for the same key is rejected.
func (s *Store) InsertResult(ctx context.Context, result domain.Result) error {
	createdAt := result.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.db.Exec(ctx, SQLInsertResult, result.RegionID, dateParam(result.Date), result.Amount, createdAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s on %s", domain.ErrAlreadyResolved, result.RegionID, result.Date)
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertResult, err)
	}
	return nil
}

// FindResults lists results matching the filter ordered by date then region
func (s *Store) FindResults(ctx context.Context, filter domain.ResultFilter) ([]domain.Result, error) {
	rows, err := s.db.Query(ctx, SQLSelectResults, filter.RegionID, dateParam(filter.Date), dateParam(filter.Since))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryResults, err)
	}
	defer rows.Close()

	var results []domain.Result
	for rows.Next() {
		var (
			r   domain.Result
			day time.Time
		)
		if err := rows.Scan(&r.RegionID, &day, &r.Amount, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanResult, err)
		}
		r.Date = domain.DateOf(day, time.UTC)
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryResults, err)
	}
	return results, nil
}

// FindScores lists score records matching the filter
func (s *Store) FindScores(ctx context.Context, filter domain.ScoreFilter) ([]domain.Score, error) {
	rows, err := s.db.Query(ctx, SQLSelectScores, filter.UserID, filter.RegionID, dateParam(filter.Date))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryScores, err)
	}
	defer rows.Close()

	var scores []domain.Score
	for rows.Next() {
		var (
			sc  domain.Score
			day time.Time
		)
		if err := rows.Scan(&sc.UserID, &sc.RegionID, &day, &sc.Score, &sc.Distance); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanScore, err)
		}
		sc.Date = domain.DateOf(day, time.UTC)
		scores = append(scores, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryScores, err)
	}
	return scores, nil
}

// InsertScores writes the whole batch with a single COPY. A batch holding a
// wager that is already scored is rejected whole with domain.ErrAlreadyScored.
func (s *Store) InsertScores(ctx context.Context, scores []domain.Score) error {
	if len(scores) == 0 {
		return nil
	}

	n, err := s.db.CopyFrom(ctx,
		pgx.Identifier{TableScores},
		ScoreColumns,
		pgx.CopyFromSlice(len(scores), func(i int) ([]any, error) {
			sc := scores[i]
			return []any{sc.UserID, sc.RegionID, dateParam(sc.Date), sc.Score, sc.Distance}, nil
		}),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s on %s", domain.ErrAlreadyScored, scores[0].RegionID, scores[0].Date)
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertScores, err)
	}
	if int(n) != len(scores) {
		return fmt.Errorf(ErrMsgScoreCountMismatch, n, len(scores))
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWager(row rowScanner) (domain.Wager, error) {
	var (
		w   domain.Wager
		day time.Time
	)
	if err := row.Scan(&w.UserID, &w.RegionID, &day, &w.Amount, &w.UpdatedAt); err != nil {
		return domain.Wager{}, err
	}
	w.Date = domain.DateOf(day, time.UTC)
	return w, nil
}

// dateParam converts a domain date to a nullable SQL date; the zero date is NULL
func dateParam(d domain.Date) pgtype.Date {
	if d.IsZero() {
		return pgtype.Date{}
	}
	t := d.Time()
	if t.IsZero() {
		return pgtype.Date{}
	}
	return pgtype.Date{Time: t, Valid: true}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == PgErrorCodeUniqueViolation
}
