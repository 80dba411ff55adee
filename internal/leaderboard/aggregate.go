package leaderboard

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/osse101/WagerBot_Go/internal/domain"
)

// BuildDailyResults folds one day's scores into per-region rows.
// Regions without a result are left out, as are users whose summed score is zero.
func BuildDailyResults(date domain.Date, scores []domain.Score, results []domain.Result) domain.DailyResults {
	values := make(map[string]int, len(results))
	for _, r := range results {
		values[r.RegionID] = r.Amount
	}

	type tally struct {
		score, distance int
	}
	byRegion := make(map[string]map[string]*tally)
	for _, s := range scores {
		if _, ok := values[s.RegionID]; !ok {
			continue
		}
		users, ok := byRegion[s.RegionID]
		if !ok {
			users = make(map[string]*tally)
			byRegion[s.RegionID] = users
		}
		t, ok := users[s.UserID]
		if !ok {
			t = &tally{}
			users[s.UserID] = t
		}
		t.score += s.Score
		t.distance += s.Distance
	}

	out := domain.DailyResults{Date: date, Regions: []domain.RegionResult{}}
	for _, regionID := range sortedKeys(byRegion) {
		users := byRegion[regionID]

		// Ties compare summed scores, which may differ from the per-wager tie-groups used when scoring
		scoreCounts := make(map[int]int, len(users))
		for _, t := range users {
			scoreCounts[t.score]++
		}

		rows := make([]domain.ResultRow, 0, len(users))
		for userID, t := range users {
			if t.score == 0 {
				continue
			}
			rows = append(rows, domain.ResultRow{
				UserID:   userID,
				Score:    t.score,
				Distance: t.distance,
				Tied:     scoreCounts[t.score] > 1,
			})
		}
		sort.Slice(rows, func(i, j int) bool {
			if rows[i].Distance != rows[j].Distance {
				return rows[i].Distance < rows[j].Distance
			}
			return rows[i].UserID < rows[j].UserID
		})

		out.Regions = append(out.Regions, domain.RegionResult{
			RegionID: regionID,
			Value:    values[regionID],
			Rows:     rows,
		})
	}
	return out
}

// accumulator sums a user's score records under either metric
type accumulator struct {
	points   int
	distance int64
	count    int64
}

// mean is the exact average distance; callers only see it rounded
func (a accumulator) mean() decimal.Decimal {
	if a.count == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(a.distance).Div(decimal.NewFromInt(a.count))
}

// BuildLeaderboard ranks all-time standings globally and per region, keeping the top n of each
func BuildLeaderboard(metric domain.LeaderboardMetric, scores []domain.Score, n int) domain.Leaderboard {
	global := make(map[string]*accumulator)
	byRegion := make(map[string]map[string]*accumulator)

	add := func(m map[string]*accumulator, s domain.Score) {
		a, ok := m[s.UserID]
		if !ok {
			a = &accumulator{}
			m[s.UserID] = a
		}
		a.points += s.Score
		a.distance += int64(s.Distance)
		a.count++
	}

	for _, s := range scores {
		add(global, s)
		users, ok := byRegion[s.RegionID]
		if !ok {
			users = make(map[string]*accumulator)
			byRegion[s.RegionID] = users
		}
		add(users, s)
	}

	board := domain.Leaderboard{
		Metric:  metric,
		Global:  rank(metric, global, n),
		Regions: []domain.RegionStandings{},
	}
	for _, regionID := range sortedKeys(byRegion) {
		board.Regions = append(board.Regions, domain.RegionStandings{
			RegionID:  regionID,
			Standings: rank(metric, byRegion[regionID], n),
		})
	}
	return board
}

func rank(metric domain.LeaderboardMetric, users map[string]*accumulator, n int) []domain.Standing {
	type entry struct {
		userID string
		acc    accumulator
		mean   decimal.Decimal
	}

	entries := make([]entry, 0, len(users))
	for userID, a := range users {
		e := entry{userID: userID, acc: *a}
		if metric == domain.MetricDistance {
			e.mean = a.mean()
		}
		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool {
		if metric == domain.MetricDistance {
			if c := entries[i].mean.Cmp(entries[j].mean); c != 0 {
				return c < 0
			}
		} else if entries[i].acc.points != entries[j].acc.points {
			return entries[i].acc.points > entries[j].acc.points
		}
		return entries[i].userID < entries[j].userID
	})

	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}

	standings := make([]domain.Standing, len(entries))
	for i, e := range entries {
		value := e.acc.points
		if metric == domain.MetricDistance {
			value = int(e.mean.Round(0).IntPart())
		}
		standings[i] = domain.Standing{UserID: e.userID, Value: value}
	}
	return standings
}

// BuildScoreboard sums one user's score and distance per region, plus the overall points
func BuildScoreboard(userID string, scores []domain.Score) domain.Scoreboard {
	byRegion := make(map[string]*domain.RegionTally)
	board := domain.Scoreboard{UserID: userID, Regions: []domain.RegionTally{}}

	for _, s := range scores {
		if s.UserID != userID {
			continue
		}
		t, ok := byRegion[s.RegionID]
		if !ok {
			t = &domain.RegionTally{RegionID: s.RegionID}
			byRegion[s.RegionID] = t
		}
		t.Score += s.Score
		t.Distance += s.Distance
		board.Total += s.Score
	}

	for _, regionID := range sortedKeys(byRegion) {
		board.Regions = append(board.Regions, *byRegion[regionID])
	}
	return board
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
