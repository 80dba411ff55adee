package domain

import "time"

// Wager is one user's guess for a region on a given day
type Wager struct {
	UserID    string    `json:"user_id"`
	RegionID  string    `json:"region_id"`
	Date      Date      `json:"date"`
	Amount    int       `json:"amount"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Key returns the composite key of the wager
func (w Wager) Key() WagerKey {
	return WagerKey{UserID: w.UserID, RegionID: w.RegionID, Date: w.Date}
}

// WagerKey identifies a wager: one per user, region and date
type WagerKey struct {
	UserID   string `json:"user_id"`
	RegionID string `json:"region_id"`
	Date     Date   `json:"date"`
}

// WagerFilter narrows a wager query. Zero-valued fields match everything.
type WagerFilter struct {
	UserID   string
	RegionID string
	Date     Date
}

// UpsertResult reports whether an upsert created or replaced a record
type UpsertResult struct {
	Inserted bool `json:"inserted"`
	Updated  bool `json:"updated"`
}

// Changed reports whether anything was written
func (r UpsertResult) Changed() bool {
	return r.Inserted || r.Updated
}

// PlacedSummary counts the wagers placed for a date, per region
type PlacedSummary struct {
	Date     Date          `json:"date"`
	Total    int           `json:"total"`
	ByRegion []RegionCount `json:"by_region"`
}

// RegionCount is a wager count for one region
type RegionCount struct {
	RegionID string `json:"region_id"`
	Count    int    `json:"count"`
}
