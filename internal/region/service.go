package region

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/WagerBot_Go/internal/domain"
	"github.com/osse101/WagerBot_Go/internal/logger"
	"github.com/osse101/WagerBot_Go/internal/repository"
	"github.com/osse101/WagerBot_Go/internal/validation"
)

// Service resolves region codes and manages the region catalogue
type Service interface {
	// List returns the catalogue ordered by code, optionally only regions open for betting
	List(ctx context.Context, openOnly bool) ([]domain.Region, error)

	// Lookup resolves a user supplied code. Unknown codes, and closed regions when
	// openOnly is set, fail with domain.ErrInvalidInput.
	Lookup(ctx context.Context, code string, openOnly bool) (*domain.Region, error)

	// Reload replaces the stored catalogue with the contents of the catalogue file
	Reload(ctx context.Context) (int, error)
}

// catalogueFile is the on-disk layout of configs/regions.json
type catalogueFile struct {
	Version string          `json:"version"`
	Schema  string          `json:"schema"`
	Regions []catalogueItem `json:"regions"`
}

type catalogueItem struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Open  *bool  `json:"open"`
}

type service struct {
	repo       repository.Regions
	schemas    validation.SchemaValidator
	validate   *validator.Validate
	cache      *regionCache
	file       string
	schemaFile string
}

// NewService creates a region service reading the catalogue from file.
// schemaFile may be empty to skip JSON schema validation.
func NewService(repo repository.Regions, schemas validation.SchemaValidator, file, schemaFile string) Service {
	return &service{
		repo:       repo,
		schemas:    schemas,
		validate:   validator.New(),
		cache:      newRegionCache(CacheSize, CacheTTL),
		file:       file,
		schemaFile: schemaFile,
	}
}

func (s *service) List(ctx context.Context, openOnly bool) ([]domain.Region, error) {
	key := cacheKeyAll
	filter := domain.RegionFilter{}
	if openOnly {
		key = cacheKeyOpen
		filter = domain.OpenRegions()
	}

	if regions, ok := s.cache.Get(key); ok {
		logger.FromContext(ctx).Debug(LogMsgRegionCacheHit, "key", key)
		return regions, nil
	}

	regions, err := s.repo.FindRegions(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrStoreFailure, ErrMsgFindRegionsFailed, err)
	}
	if regions == nil {
		regions = []domain.Region{}
	}
	s.cache.Set(key, regions)
	return regions, nil
}

func (s *service) Lookup(ctx context.Context, code string, openOnly bool) (*domain.Region, error) {
	id := domain.NormalizeRegionID(code)
	if id == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, domain.ErrMsgRegionNotFound)
	}

	regions, err := s.List(ctx, false)
	if err != nil {
		return nil, err
	}

	for i := range regions {
		if regions[i].ID != id {
			continue
		}
		if openOnly && !regions[i].Open {
			return nil, fmt.Errorf("%w: %s: %s", domain.ErrInvalidInput, domain.ErrMsgRegionClosed, id)
		}
		r := regions[i]
		return &r, nil
	}

	logger.FromContext(ctx).Debug(LogMsgRegionLookupMiss, "region", id)
	return nil, fmt.Errorf("%w: %s: %q", domain.ErrInvalidInput, domain.ErrMsgRegionNotFound, code)
}

func (s *service) Reload(ctx context.Context) (int, error) {
	regions, err := s.readCatalogue()
	if err != nil {
		return 0, err
	}

	if err := s.repo.ReplaceRegions(ctx, regions); err != nil {
		return 0, fmt.Errorf("%w: %s: %w", domain.ErrStoreFailure, ErrMsgReplaceRegionsFailed, err)
	}
	s.cache.Clear()

	logger.FromContext(ctx).Info(LogMsgRegionsReloaded, "regions", len(regions), "file", s.file)
	return len(regions), nil
}

// readCatalogue loads, validates and normalises the catalogue file
func (s *service) readCatalogue() ([]domain.Region, error) {
	data, err := os.ReadFile(s.file)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", ErrMsgReadCatalogueFailed, s.file, err)
	}

	if s.schemas != nil && s.schemaFile != "" {
		if err := s.schemas.ValidateBytes(data, s.schemaFile); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", domain.ErrInvalidInput, ErrMsgInvalidCatalogue, err)
		}
	}

	var file catalogueFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgParseCatalogueFailed, err)
	}
	if file.Schema != CatalogueSchemaName {
		return nil, fmt.Errorf("%w: "+ErrMsgUnexpectedSchemaName, domain.ErrInvalidInput, file.Schema, s.file)
	}
	if len(file.Regions) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgEmptyCatalogue)
	}

	seen := make(map[string]bool, len(file.Regions))
	regions := make([]domain.Region, 0, len(file.Regions))
	for _, item := range file.Regions {
		r := domain.Region{
			ID:    domain.NormalizeRegionID(item.ID),
			Label: item.Label,
			Open:  item.Open == nil || *item.Open,
		}
		if err := s.validate.Struct(r); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", domain.ErrInvalidInput, ErrMsgInvalidCatalogue, err)
		}
		if seen[r.ID] {
			return nil, fmt.Errorf("%w: "+ErrMsgDuplicateRegion, domain.ErrInvalidInput, r.ID)
		}
		seen[r.ID] = true
		regions = append(regions, r)
	}
	return regions, nil
}
