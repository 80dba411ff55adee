package handler

import (
	"net/http"

	"github.com/osse101/WagerBot_Go/internal/domain"
	"github.com/osse101/WagerBot_Go/internal/leaderboard"
	"github.com/osse101/WagerBot_Go/internal/logger"
)

// HandleGetResults returns one day's results per region
// @Summary Daily results
// @Description Per-region breakdown of one day's scores, today by default
// @Tags results
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD)"
// @Success 200 {object} domain.DailyResults
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /results [get]
func HandleGetResults(svc leaderboard.Service, clock domain.Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date, ok := GetDateParam(r, w, "date")
		if !ok {
			return
		}
		if date.IsZero() {
			date = clock.Today()
		}

		view, err := svc.DailyResults(r.Context(), date)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetResultsFailed, err)
			return
		}
		respondJSON(w, http.StatusOK, view)
	}
}

// HandleGetLeaderboard returns the all-time leaderboard
// @Summary Leaderboard
// @Description Global and per-region top standings by points or mean distance
// @Tags results
// @Produce json
// @Param metric query string false "points (default) or distance"
// @Success 200 {object} domain.Leaderboard
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /leaderboard [get]
func HandleGetLeaderboard(svc leaderboard.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		metric := domain.LeaderboardMetric(GetOptionalQueryParam(r, "metric", string(domain.MetricPoints)))

		board, err := svc.Leaderboard(r.Context(), metric)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetLeaderboardFailed, err)
			return
		}
		respondJSON(w, http.StatusOK, board)
	}
}

// HandleGetScoreboard returns a user's per-region totals
// @Summary Scoreboard
// @Description A user's points and distance per region with the grand total
// @Tags results
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {object} domain.Scoreboard
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /scoreboard [get]
func HandleGetScoreboard(svc leaderboard.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}
		LogRequestFields(logger.FromContext(r.Context()), "user_id", userID)

		board, err := svc.Scoreboard(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetScoreboardFailed, err)
			return
		}
		respondJSON(w, http.StatusOK, board)
	}
}
