package scoring

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/osse101/WagerBot_Go/internal/domain"
)

func benchWagers(n int) []domain.Wager {
	r := rand.New(rand.NewSource(1))
	out := make([]domain.Wager, n)
	for i := range out {
		// A narrow amount range forces plenty of ties
		out[i] = domain.Wager{UserID: fmt.Sprintf("user%05d", i), RegionID: "nsw", Date: testDate, Amount: r.Intn(n / 4)}
	}
	return out
}

func BenchmarkRank(b *testing.B) {
	points := []int{100, 50, 25, 10, 5, 1}
	for _, n := range []int{10, 100, 1000} {
		ws := benchWagers(n)
		b.Run(fmt.Sprintf("wagers=%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = Rank(n/8, ws, points)
			}
		})
	}
}
