package domain

import "time"

// Result is the confirmed true value for a region on a date
type Result struct {
	RegionID  string    `json:"region_id"`
	Date      Date      `json:"date"`
	Amount    int       `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// ResultFilter narrows a result query. Since is inclusive.
type ResultFilter struct {
	RegionID string
	Date     Date
	Since    Date
}

// Score is the points a single wager earned once its result was known
type Score struct {
	UserID   string `json:"user_id"`
	RegionID string `json:"region_id"`
	Date     Date   `json:"date"`
	Score    int    `json:"score"`
	Distance int    `json:"distance"`
}

// ScoreFilter narrows a score query. Zero-valued fields match everything.
type ScoreFilter struct {
	UserID   string
	RegionID string
	Date     Date
}

// Placing is a score together with the place it was awarded at
type Placing struct {
	Score
	Place   int `json:"place"`
	TieSize int `json:"tie_size"`
	Award   int `json:"award"`
}

// Tied reports whether the placing shared its place with another wager
func (p Placing) Tied() bool {
	return p.TieSize > 1
}

// Resolution summarises one scoring run for a region and date
type Resolution struct {
	RegionID   string    `json:"region_id"`
	Date       Date      `json:"date"`
	Value      int       `json:"value"`
	WagerCount int       `json:"wager_count"`
	Placings   []Placing `json:"placings"`
}
