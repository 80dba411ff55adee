package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/WagerBot_Go/internal/domain"
	"github.com/osse101/WagerBot_Go/internal/wager"
)

// MockRegionService mocks region.Service
type MockRegionService struct {
	mock.Mock
}

func (m *MockRegionService) List(ctx context.Context, openOnly bool) ([]domain.Region, error) {
	args := m.Called(ctx, openOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Region), args.Error(1)
}

func (m *MockRegionService) Lookup(ctx context.Context, code string, openOnly bool) (*domain.Region, error) {
	args := m.Called(ctx, code, openOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Region), args.Error(1)
}

func (m *MockRegionService) Reload(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockLeaderboardService mocks leaderboard.Service
type MockLeaderboardService struct {
	mock.Mock
}

func (m *MockLeaderboardService) DailyResults(ctx context.Context, date domain.Date) (*domain.DailyResults, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyResults), args.Error(1)
}

func (m *MockLeaderboardService) Leaderboard(ctx context.Context, metric domain.LeaderboardMetric) (*domain.Leaderboard, error) {
	args := m.Called(ctx, metric)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Leaderboard), args.Error(1)
}

func (m *MockLeaderboardService) Scoreboard(ctx context.Context, userID string) (*domain.Scoreboard, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Scoreboard), args.Error(1)
}

func (m *MockLeaderboardService) Invalidate(ctx context.Context) {
	m.Called(ctx)
}

// MockScoringService mocks scoring.Service
type MockScoringService struct {
	mock.Mock
}

func (m *MockScoringService) Resolve(ctx context.Context, regionCode string, date domain.Date, value int) (*domain.Resolution, error) {
	args := m.Called(ctx, regionCode, date, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Resolution), args.Error(1)
}

func (m *MockScoringService) Rescore(ctx context.Context, regionCode string, date domain.Date) (*domain.Resolution, error) {
	args := m.Called(ctx, regionCode, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Resolution), args.Error(1)
}

func (m *MockScoringService) RecoverUnscored(ctx context.Context, since domain.Date) (int, error) {
	args := m.Called(ctx, since)
	return args.Int(0), args.Error(1)
}

// MockWagerService mocks wager.Service
type MockWagerService struct {
	mock.Mock
}

func (m *MockWagerService) Propose(ctx context.Context, userID, regionCode string, amount int) (*wager.Confirmation, error) {
	args := m.Called(ctx, userID, regionCode, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wager.Confirmation), args.Error(1)
}

func (m *MockWagerService) Acknowledge(confirmationID, userID string, confirm bool) bool {
	args := m.Called(confirmationID, userID, confirm)
	return args.Bool(0)
}

func (m *MockWagerService) Await(ctx context.Context, c *wager.Confirmation) (*wager.Outcome, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wager.Outcome), args.Error(1)
}

func (m *MockWagerService) Pending(confirmationID string) (*wager.Confirmation, bool) {
	args := m.Called(confirmationID)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*wager.Confirmation), args.Bool(1)
}

func (m *MockWagerService) ExpireAll(ctx context.Context) int {
	args := m.Called(ctx)
	return args.Int(0)
}

func (m *MockWagerService) ListWagers(ctx context.Context, userID string, date domain.Date) ([]domain.Wager, error) {
	args := m.Called(ctx, userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Wager), args.Error(1)
}

func (m *MockWagerService) PlacedSummary(ctx context.Context, date domain.Date) (*domain.PlacedSummary, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlacedSummary), args.Error(1)
}
