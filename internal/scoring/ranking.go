package scoring

import (
	"math"
	"sort"

	"github.com/osse101/WagerBot_Go/internal/domain"
)

// Rank orders wagers by distance from value and awards points per place.
// Wagers at equal distance form a tie-group that shares one place and splits its award.
// The next distinct distance takes the following place, however large the group was.
// Places beyond len(points) award nothing.
func Rank(value int, wagers []domain.Wager, points []int) []domain.Placing {
	placings := make([]domain.Placing, len(wagers))
	for i, w := range wagers {
		placings[i] = domain.Placing{
			Score: domain.Score{
				UserID:   w.UserID,
				RegionID: w.RegionID,
				Date:     w.Date,
				Distance: Distance(value, w.Amount),
			},
		}
	}

	sort.SliceStable(placings, func(i, j int) bool {
		if placings[i].Distance != placings[j].Distance {
			return placings[i].Distance < placings[j].Distance
		}
		return placings[i].UserID < placings[j].UserID
	})

	place := 1
	for start := 0; start < len(placings); place++ {
		end := start + 1
		for end < len(placings) && placings[end].Distance == placings[start].Distance {
			end++
		}

		award := AwardFor(place, points)
		share := Split(award, end-start)
		for i := start; i < end; i++ {
			placings[i].Place = place
			placings[i].TieSize = end - start
			placings[i].Award = award
			placings[i].Score.Score = share
		}
		start = end
	}

	return placings
}

// Distance is the absolute difference between the announced value and a guess
func Distance(value, amount int) int {
	if value > amount {
		return value - amount
	}
	return amount - value
}

// AwardFor returns the undivided award for a 1-based place
func AwardFor(place int, points []int) int {
	if place < 1 || place > len(points) {
		return 0
	}
	return points[place-1]
}

// Split divides an award among a tie-group of size k, rounding half away from zero.
// A group of one keeps the award unchanged.
func Split(award, k int) int {
	if k <= 1 {
		return award
	}
	return int(math.Round(float64(award) / float64(k)))
}

// Scores strips the placing details, leaving the records to persist
func Scores(placings []domain.Placing) []domain.Score {
	scores := make([]domain.Score, len(placings))
	for i, p := range placings {
		scores[i] = p.Score
	}
	return scores
}

// PointsTotal sums the scores handed out by a resolution
func PointsTotal(placings []domain.Placing) int {
	total := 0
	for _, p := range placings {
		total += p.Score.Score
	}
	return total
}
