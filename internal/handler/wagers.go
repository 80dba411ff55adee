package handler

import (
	"net/http"

	"github.com/osse101/WagerBot_Go/internal/domain"
	"github.com/osse101/WagerBot_Go/internal/wager"
)

// WagersResponse lists a user's wagers for a date
type WagersResponse struct {
	UserID string         `json:"user_id"`
	Date   domain.Date    `json:"date,omitempty"`
	Wagers []domain.Wager `json:"wagers"`
}

// HandleListWagers lists a user's wagers
// @Summary List wagers
// @Description A user's wagers for a date, tomorrow by default
// @Tags wagers
// @Produce json
// @Param user_id query string true "User ID"
// @Param date query string false "Date (YYYY-MM-DD)"
// @Success 200 {object} WagersResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /wagers [get]
func HandleListWagers(svc wager.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}
		date, ok := GetDateParam(r, w, "date")
		if !ok {
			return
		}

		wagers, err := svc.ListWagers(r.Context(), userID, date)
		if err != nil {
			respondServiceError(w, r, ErrMsgListWagersFailed, err)
			return
		}

		resp := WagersResponse{UserID: userID, Date: date, Wagers: wagers}
		if len(wagers) > 0 {
			resp.Date = wagers[0].Date
		}
		respondJSON(w, http.StatusOK, resp)
	}
}
