package postgres

// =============================================================================
// SQL Query Constants
// =============================================================================

// Regions
const (
	SQLSelectRegions = `
		SELECT region_id, label, open
		FROM regions
		WHERE ($1::text = '' OR region_id = $1::text)
		  AND ($2::boolean IS NULL OR open = $2::boolean)
		ORDER BY region_id
	`

	SQLDeleteRegions = `DELETE FROM regions`

	SQLInsertRegion = `
		INSERT INTO regions (region_id, label, open)
		VALUES ($1, $2, $3)
	`
)

// Wagers
const (
	SQLSelectWagers = `
		SELECT user_id, region_id, bet_date, amount, updated_at
		FROM wagers
		WHERE ($1::text = '' OR user_id = $1::text)
		  AND ($2::text = '' OR region_id = $2::text)
		  AND ($3::date IS NULL OR bet_date = $3::date)
		ORDER BY bet_date, region_id, user_id
	`

	SQLSelectWager = `
		SELECT user_id, region_id, bet_date, amount, updated_at
		FROM wagers
		WHERE user_id = $1 AND region_id = $2 AND bet_date = $3::date
	`

	// SQLUpsertWager reports inserted = true when no previous row existed (xmax = 0)
	SQLUpsertWager = `
		INSERT INTO wagers (user_id, region_id, bet_date, amount, updated_at)
		VALUES ($1, $2, $3::date, $4, $5)
		ON CONFLICT (user_id, region_id, bet_date) DO UPDATE
		SET amount = EXCLUDED.amount, updated_at = EXCLUDED.updated_at
		RETURNING (xmax = 0) AS inserted
	`
)

// Results
const (
	SQLResultExists = `
		SELECT EXISTS (SELECT 1 FROM results WHERE region_id = $1 AND result_date = $2::date)
	`

	SQLInsertResult = `
		INSERT INTO results (region_id, result_date, amount, created_at)
		VALUES ($1, $2::date, $3, $4)
	`

	SQLSelectResults = `
		SELECT region_id, result_date, amount, created_at
		FROM results
		WHERE ($1::text = '' OR region_id = $1::text)
		  AND ($2::date IS NULL OR result_date = $2::date)
		  AND ($3::date IS NULL OR result_date >= $3::date)
		ORDER BY result_date, region_id
	`
)

// Scores
const (
	SQLSelectScores = `
		SELECT user_id, region_id, score_date, score, distance
		FROM scores
		WHERE ($1::text = '' OR user_id = $1::text)
		  AND ($2::text = '' OR region_id = $2::text)
		  AND ($3::date IS NULL OR score_date = $3::date)
		ORDER BY score_date, region_id, score_id
	`
)

// TableScores and ScoreColumns describe the CopyFrom target for score batches
var (
	TableScores  = "scores"
	ScoreColumns = []string{"user_id", "region_id", "score_date", "score", "distance"}
)
