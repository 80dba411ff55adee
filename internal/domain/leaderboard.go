package domain

import "fmt"

// LeaderboardMetric selects how all-time standings are ranked
type LeaderboardMetric string

const (
	// MetricPoints ranks by accumulated points, highest first
	MetricPoints LeaderboardMetric = "points"
	// MetricDistance ranks by mean distance from the result, lowest first
	MetricDistance LeaderboardMetric = "distance"
)

// ParseLeaderboardMetric maps user input to a metric. Empty input selects points.
func ParseLeaderboardMetric(s string) (LeaderboardMetric, error) {
	switch LeaderboardMetric(s) {
	case "", MetricPoints:
		return MetricPoints, nil
	case MetricDistance:
		return MetricDistance, nil
	default:
		return "", fmt.Errorf("%w: unknown leaderboard metric %q", ErrInvalidInput, s)
	}
}

// DailyResults is the per-region breakdown of one day's scores
type DailyResults struct {
	Date    Date           `json:"date"`
	Regions []RegionResult `json:"regions"`
}

// Empty reports whether no region had any scoring rows
func (d DailyResults) Empty() bool {
	return len(d.Regions) == 0
}

// RegionResult pairs a region's announced value with the users who scored
type RegionResult struct {
	RegionID string      `json:"region_id"`
	Value    int         `json:"value"`
	Rows     []ResultRow `json:"rows"`
}

// ResultRow is one user's summed score and distance in a region for a day.
// Tied is set when another user in the region summed to the same non-zero score.
type ResultRow struct {
	UserID   string `json:"user_id"`
	Score    int    `json:"score"`
	Distance int    `json:"distance"`
	Tied     bool   `json:"tied"`
}

// Leaderboard holds the all-time top standings globally and per region
type Leaderboard struct {
	Metric  LeaderboardMetric `json:"metric"`
	Global  []Standing        `json:"global"`
	Regions []RegionStandings `json:"regions"`
}

// Standing is a user's position value under a metric: summed points or rounded mean distance
type Standing struct {
	UserID string `json:"user_id"`
	Value  int    `json:"value"`
}

// RegionStandings is the top list for a single region
type RegionStandings struct {
	RegionID  string     `json:"region_id"`
	Standings []Standing `json:"standings"`
}

// Scoreboard is a personal breakdown of points and distance per region
type Scoreboard struct {
	UserID  string        `json:"user_id"`
	Regions []RegionTally `json:"regions"`
	Total   int           `json:"total"`
}

// RegionTally sums a user's score and distance in one region
type RegionTally struct {
	RegionID string `json:"region_id"`
	Score    int    `json:"score"`
	Distance int    `json:"distance"`
}
