package region

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/WagerBot_Go/internal/domain"
	"github.com/osse101/WagerBot_Go/internal/validation"
)

// MockRepository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindRegions(ctx context.Context, filter domain.RegionFilter) ([]domain.Region, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Region), args.Error(1)
}

func (m *MockRepository) ReplaceRegions(ctx context.Context, regions []domain.Region) error {
	args := m.Called(ctx, regions)
	return args.Error(0)
}

var (
	schemaPath    = filepath.Join("..", "..", "configs", "schemas", "regions.schema.json")
	cataloguePath = filepath.Join("..", "..", "configs", "regions.json")
)

func catalogue() []domain.Region {
	return []domain.Region{
		{ID: "nsw", Label: "New South Wales", Open: true},
		{ID: "tas", Label: "Tasmania", Open: false},
		{ID: "vic", Label: "Victoria", Open: true},
	}
}

func writeCatalogue(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "regions.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestList_CachesPerFilter(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, nil, cataloguePath, "")
	ctx := context.Background()

	repo.On("FindRegions", ctx, domain.RegionFilter{}).Return(catalogue(), nil).Once()
	repo.On("FindRegions", ctx, mock.MatchedBy(func(f domain.RegionFilter) bool {
		return f.Open != nil && *f.Open
	})).Return([]domain.Region{catalogue()[0], catalogue()[2]}, nil).Once()

	all, err := svc.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	open, err := svc.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, open, 2)

	// Served from cache
	again, err := svc.List(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, all, again)

	repo.AssertExpectations(t)
}

func TestList_StoreFailure(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, nil, cataloguePath, "")
	ctx := context.Background()

	repo.On("FindRegions", ctx, domain.RegionFilter{}).Return(nil, errors.New("connection refused"))

	_, err := svc.List(ctx, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStoreFailure)
}

func TestLookup(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, nil, cataloguePath, "")
	ctx := context.Background()
	repo.On("FindRegions", ctx, domain.RegionFilter{}).Return(catalogue(), nil)

	tests := []struct {
		name     string
		code     string
		openOnly bool
		wantID   string
		wantErr  string
	}{
		{name: "exact code", code: "nsw", openOnly: true, wantID: "nsw"},
		{name: "mixed case and spaces", code: "  VIC ", openOnly: true, wantID: "vic"},
		{name: "closed region allowed", code: "tas", openOnly: false, wantID: "tas"},
		{name: "closed region rejected", code: "tas", openOnly: true, wantErr: domain.ErrMsgRegionClosed},
		{name: "unknown region", code: "qld", openOnly: false, wantErr: domain.ErrMsgRegionNotFound},
		{name: "empty code", code: " ", openOnly: false, wantErr: domain.ErrMsgRegionNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := svc.Lookup(ctx, tt.code, tt.openOnly)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, r.ID)
		})
	}
}

func TestReload_ShippedCatalogue(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, validation.NewSchemaValidator(), cataloguePath, schemaPath)
	ctx := context.Background()

	var stored []domain.Region
	repo.On("ReplaceRegions", ctx, mock.Anything).Run(func(args mock.Arguments) {
		stored = args.Get(1).([]domain.Region)
	}).Return(nil)

	n, err := svc.Reload(ctx)
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	require.Len(t, stored, 8)
	for _, r := range stored {
		assert.True(t, r.Open, r.ID)
		assert.Equal(t, domain.NormalizeRegionID(r.ID), r.ID)
	}
}

func TestReload_PurgesCache(t *testing.T) {
	repo := new(MockRepository)
	path := writeCatalogue(t, `{"version": "1.0", "schema": "regions", "regions": [{"id": "NSW", "label": "New South Wales"}, {"id": "wa", "label": "Western Australia", "open": false}]}`)
	svc := NewService(repo, validation.NewSchemaValidator(), path, schemaPath)
	ctx := context.Background()

	repo.On("FindRegions", ctx, domain.RegionFilter{}).Return(catalogue(), nil).Once()
	_, err := svc.List(ctx, false)
	require.NoError(t, err)

	repo.On("ReplaceRegions", ctx, []domain.Region{
		{ID: "nsw", Label: "New South Wales", Open: true},
		{ID: "wa", Label: "Western Australia", Open: false},
	}).Return(nil)
	n, err := svc.Reload(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	repo.On("FindRegions", ctx, domain.RegionFilter{}).Return([]domain.Region{{ID: "nsw", Label: "New South Wales", Open: true}}, nil).Once()
	after, err := svc.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, after, 1)

	repo.AssertExpectations(t)
}

func TestReload_RejectsBadCatalogues(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		useSchema bool
	}{
		{"schema violation", `{"version": "1.0", "schema": "regions", "regions": [{"id": "n s w", "label": "x"}]}`, true},
		{"duplicate codes", `{"version": "1.0", "schema": "regions", "regions": [{"id": "nsw", "label": "a"}, {"id": "NSW", "label": "b"}]}`, false},
		{"empty catalogue", `{"version": "1.0", "schema": "regions", "regions": []}`, false},
		{"wrong schema name", `{"version": "1.0", "schema": "items", "regions": [{"id": "nsw", "label": "a"}]}`, false},
		{"missing label", `{"version": "1.0", "schema": "regions", "regions": [{"id": "nsw"}]}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			path := writeCatalogue(t, tt.content)
			schema := ""
			if tt.useSchema {
				schema = schemaPath
			}
			svc := NewService(repo, validation.NewSchemaValidator(), path, schema)

			_, err := svc.Reload(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			repo.AssertNotCalled(t, "ReplaceRegions", mock.Anything, mock.Anything)
		})
	}
}

func TestReload_MissingFile(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, nil, filepath.Join(t.TempDir(), "absent.json"), "")

	_, err := svc.Reload(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgReadCatalogueFailed)
}

func TestReload_StoreFailureKeepsCache(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, nil, cataloguePath, "")
	ctx := context.Background()

	repo.On("FindRegions", ctx, domain.RegionFilter{}).Return(catalogue(), nil).Once()
	_, err := svc.List(ctx, false)
	require.NoError(t, err)

	repo.On("ReplaceRegions", ctx, mock.Anything).Return(errors.New("deadlock"))
	_, err = svc.Reload(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStoreFailure)

	cached, err := svc.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, cached, 3)
	repo.AssertNumberOfCalls(t, "FindRegions", 1)
}
