package domain

import "strings"

// Region is a bettable area, identified by a short code such as "nsw"
type Region struct {
	ID    string `json:"id" validate:"required,max=16,alphanum"`
	Label string `json:"label" validate:"required,max=100"`
	Open  bool   `json:"open"`
}

// RegionFilter narrows a region lookup. A nil Open matches both states.
type RegionFilter struct {
	ID   string
	Open *bool
}

// NormalizeRegionID lower-cases and trims a user supplied region code
func NormalizeRegionID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// OpenRegions returns a filter matching only regions open for betting
func OpenRegions() RegionFilter {
	open := true
	return RegionFilter{Open: &open}
}
