package repository

import (
	"context"

	"github.com/osse101/WagerBot_Go/internal/domain"
)

// Regions defines persistence for the region catalogue
type Regions interface {
	FindRegions(ctx context.Context, filter domain.RegionFilter) ([]domain.Region, error)
	// ReplaceRegions swaps the whole catalogue for the given set
	ReplaceRegions(ctx context.Context, regions []domain.Region) error
}

// Wagers defines persistence for bets
type Wagers interface {
	FindWagers(ctx context.Context, filter domain.WagerFilter) ([]domain.Wager, error)
	// FindOneWager returns nil, nil when no wager exists for the key
	FindOneWager(ctx context.Context, key domain.WagerKey) (*domain.Wager, error)
	UpsertWager(ctx context.Context, wager domain.Wager) (domain.UpsertResult, error)
}

// Results defines persistence for announced values
type Results interface {
	ResultExists(ctx context.Context, regionID string, date domain.Date) (bool, error)
	// InsertResult fails with domain.ErrAlreadyResolved when the key is taken
	InsertResult(ctx context.Context, result domain.Result) error
	FindResults(ctx context.Context, filter domain.ResultFilter) ([]domain.Result, error)
}

// Scores defines persistence for derived score records
type Scores interface {
	FindScores(ctx context.Context, filter domain.ScoreFilter) ([]domain.Score, error)
	// InsertScores writes the batch in a single call. It fails with
	// domain.ErrAlreadyScored, writing nothing, when any wager in the batch
	// already has a score.
	InsertScores(ctx context.Context, scores []domain.Score) error
}

// Store is the full record store consumed by the game services
type Store interface {
	Regions
	Wagers
	Results
	Scores
}
