package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/WagerBot_Go/internal/domain"
)

func TestStore_Regions_Integration(t *testing.T) {
	store := NewStore(setupTestPool(t))
	ctx := context.Background()

	require.NoError(t, store.ReplaceRegions(ctx, []domain.Region{
		{ID: "vic", Label: "Victoria", Open: true},
		{ID: "nsw", Label: "New South Wales", Open: true},
		{ID: "act", Label: "Australian Capital Territory", Open: false},
	}))

	all, err := store.FindRegions(ctx, domain.RegionFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "act", all[0].ID, "regions are ordered by code")

	open, err := store.FindRegions(ctx, domain.OpenRegions())
	require.NoError(t, err)
	assert.Len(t, open, 2)

	one, err := store.FindRegions(ctx, domain.RegionFilter{ID: "nsw"})
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, "New South Wales", one[0].Label)

	// Reload replaces wholesale
	require.NoError(t, store.ReplaceRegions(ctx, []domain.Region{{ID: "qld", Label: "Queensland", Open: true}}))
	all, err = store.FindRegions(ctx, domain.RegionFilter{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "qld", all[0].ID)
}

func TestStore_Wagers_Integration(t *testing.T) {
	store := NewStore(setupTestPool(t))
	ctx := context.Background()
	date := domain.Date("2024-03-02")
	key := domain.WagerKey{UserID: "alice", RegionID: "nsw", Date: date}

	missing, err := store.FindOneWager(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, missing)

	res, err := store.UpsertWager(ctx, domain.Wager{UserID: "alice", RegionID: "nsw", Date: date, Amount: 10})
	require.NoError(t, err)
	assert.True(t, res.Inserted)
	assert.False(t, res.Updated)

	res, err = store.UpsertWager(ctx, domain.Wager{UserID: "alice", RegionID: "nsw", Date: date, Amount: 12})
	require.NoError(t, err)
	assert.False(t, res.Inserted)
	assert.True(t, res.Updated)

	got, err := store.FindOneWager(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 12, got.Amount)
	assert.Equal(t, date, got.Date)

	_, err = store.UpsertWager(ctx, domain.Wager{UserID: "bob", RegionID: "nsw", Date: date, Amount: 5})
	require.NoError(t, err)
	_, err = store.UpsertWager(ctx, domain.Wager{UserID: "bob", RegionID: "vic", Date: date.AddDays(1), Amount: 7})
	require.NoError(t, err)

	byRegionDate, err := store.FindWagers(ctx, domain.WagerFilter{RegionID: "nsw", Date: date})
	require.NoError(t, err)
	assert.Len(t, byRegionDate, 2)

	byUser, err := store.FindWagers(ctx, domain.WagerFilter{UserID: "bob"})
	require.NoError(t, err)
	assert.Len(t, byUser, 2)
}

func TestStore_ResultsAndScores_Integration(t *testing.T) {
	store := NewStore(setupTestPool(t))
	ctx := context.Background()
	date := domain.Date("2024-03-02")

	exists, err := store.ResultExists(ctx, "nsw", date)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, store.InsertResult(ctx, domain.Result{RegionID: "nsw", Date: date, Amount: 100, CreatedAt: time.Now()}))

	exists, err = store.ResultExists(ctx, "nsw", date)
	require.NoError(t, err)
	assert.True(t, exists)

	err = store.InsertResult(ctx, domain.Result{RegionID: "nsw", Date: date, Amount: 200})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAlreadyResolved)

	require.NoError(t, store.InsertResult(ctx, domain.Result{RegionID: "vic", Date: date.AddDays(-3), Amount: 5}))

	since, err := store.FindResults(ctx, domain.ResultFilter{Since: date.AddDays(-1)})
	require.NoError(t, err)
	require.Len(t, since, 1)
	assert.Equal(t, 100, since[0].Amount)

	require.NoError(t, store.InsertScores(ctx, []domain.Score{
		{UserID: "alice", RegionID: "nsw", Date: date, Score: 75, Distance: 3},
		{UserID: "bob", RegionID: "nsw", Date: date, Score: 75, Distance: 3},
		{UserID: "carol", RegionID: "nsw", Date: date, Score: 25, Distance: 9},
	}))
	require.NoError(t, store.InsertScores(ctx, nil))

	// A batch overlapping scored wagers is rejected whole
	err = store.InsertScores(ctx, []domain.Score{
		{UserID: "dave", RegionID: "nsw", Date: date, Score: 10, Distance: 20},
		{UserID: "alice", RegionID: "nsw", Date: date, Score: 75, Distance: 3},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAlreadyScored)

	scores, err := store.FindScores(ctx, domain.ScoreFilter{RegionID: "nsw", Date: date})
	require.NoError(t, err)
	require.Len(t, scores, 3)
	assert.Equal(t, date, scores[0].Date)

	carol, err := store.FindScores(ctx, domain.ScoreFilter{UserID: "carol"})
	require.NoError(t, err)
	require.Len(t, carol, 1)
	assert.Equal(t, 9, carol[0].Distance)
}
