package region

import "time"

// Catalogue file identity
const (
	CatalogueSchemaName = "regions"
)

// Cache settings
const (
	CacheSize = 4
	CacheTTL  = 10 * time.Minute

	cacheKeyAll  = "all"
	cacheKeyOpen = "open"
)

// Error messages
const (
	ErrMsgReadCatalogueFailed  = "failed to read region catalogue"
	ErrMsgParseCatalogueFailed = "failed to parse region catalogue"
	ErrMsgInvalidCatalogue     = "invalid region catalogue"
	ErrMsgDuplicateRegion      = "duplicate region %q"
	ErrMsgEmptyCatalogue       = "region catalogue is empty"
	ErrMsgFindRegionsFailed    = "failed to list regions"
	ErrMsgReplaceRegionsFailed = "failed to replace regions"
	ErrMsgUnexpectedSchemaName = "unexpected schema %q in %s"
)

// Log messages
const (
	LogMsgRegionsReloaded  = "Region catalogue reloaded"
	LogMsgRegionCacheHit   = "Region cache hit"
	LogMsgRegionLookupMiss = "Unknown region requested"
)
