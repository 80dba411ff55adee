package handler

import (
	"net/http"

	"github.com/osse101/WagerBot_Go/internal/domain"
	"github.com/osse101/WagerBot_Go/internal/logger"
	"github.com/osse101/WagerBot_Go/internal/region"
	"github.com/osse101/WagerBot_Go/internal/scoring"
	"github.com/osse101/WagerBot_Go/internal/wager"
)

// ResolveRequest records the announced value for a region
type ResolveRequest struct {
	Region string `json:"region" validate:"required,regioncode"`
	Amount *int   `json:"amount" validate:"required,min=0"`
	Date   string `json:"date,omitempty" validate:"omitempty,isodate"`
}

// RescoreRequest retries scoring for a stored result
type RescoreRequest struct {
	Region string `json:"region" validate:"required,regioncode"`
	Date   string `json:"date" validate:"required,isodate"`
}

// ResolutionResponse reports a scoring run
type ResolutionResponse struct {
	Message    string             `json:"message"`
	Resolution *domain.Resolution `json:"resolution"`
}

// ReloadRegionsResponse reports a catalogue reload
type ReloadRegionsResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// AdminHandler serves the moderator endpoints
type AdminHandler struct {
	scoring scoring.Service
	wagers  wager.Service
	regions region.Service
	clock   domain.Clock
}

// NewAdminHandler creates an AdminHandler
func NewAdminHandler(scoringSvc scoring.Service, wagerSvc wager.Service, regionSvc region.Service, clock domain.Clock) *AdminHandler {
	return &AdminHandler{scoring: scoringSvc, wagers: wagerSvc, regions: regionSvc, clock: clock}
}

// HandleResolve records a result and scores its wagers
// @Summary Record result
// @Description Record the announced value for a region (today by default) and score every wager on it
// @Tags admin
// @Accept json
// @Produce json
// @Param request body ResolveRequest true "Result"
// @Success 201 {object} ResolutionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /admin/results [post]
func (h *AdminHandler) HandleResolve(w http.ResponseWriter, r *http.Request) {
	var req ResolveRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Resolve"); err != nil {
		return
	}

	date := domain.Date(req.Date)
	if date.IsZero() {
		date = h.clock.Today()
	}

	res, err := h.scoring.Resolve(r.Context(), req.Region, date, *req.Amount)
	if err != nil {
		respondServiceError(w, r, ErrMsgResolveFailed, err)
		return
	}

	logger.FromContext(r.Context()).Info(LogMsgResultRecorded,
		"region", res.RegionID, "date", res.Date, "value", res.Value, "wagers", res.WagerCount)
	respondJSON(w, http.StatusCreated, ResolutionResponse{Message: MsgResultRecorded, Resolution: res})
}

// HandleRescore scores a stored result that has no scores yet
// @Summary Rescore result
// @Description Compute scores for a result whose score write failed
// @Tags admin
// @Accept json
// @Produce json
// @Param request body RescoreRequest true "Result key"
// @Success 200 {object} ResolutionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /admin/results/rescore [post]
func (h *AdminHandler) HandleRescore(w http.ResponseWriter, r *http.Request) {
	var req RescoreRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Rescore"); err != nil {
		return
	}

	res, err := h.scoring.Rescore(r.Context(), req.Region, domain.Date(req.Date))
	if err != nil {
		respondServiceError(w, r, ErrMsgRescoreFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, ResolutionResponse{Message: MsgResultRescored, Resolution: res})
}

// HandlePlaced counts placed wagers per region
// @Summary Placed wagers
// @Description Count wagers per region for a date, tomorrow by default
// @Tags admin
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD)"
// @Success 200 {object} domain.PlacedSummary
// @Failure 400 {object} ErrorResponse
// @Router /admin/placed [get]
func (h *AdminHandler) HandlePlaced(w http.ResponseWriter, r *http.Request) {
	date, ok := GetDateParam(r, w, "date")
	if !ok {
		return
	}

	summary, err := h.wagers.PlacedSummary(r.Context(), date)
	if err != nil {
		respondServiceError(w, r, ErrMsgPlacedSummaryFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

// HandleReloadRegions replaces the region catalogue from its file
// @Summary Reload regions
// @Description Replace the stored region catalogue from the catalogue file
// @Tags admin
// @Produce json
// @Success 200 {object} ReloadRegionsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /admin/regions/reload [post]
func (h *AdminHandler) HandleReloadRegions(w http.ResponseWriter, r *http.Request) {
	count, err := h.regions.Reload(r.Context())
	if err != nil {
		respondServiceError(w, r, ErrMsgReloadRegionsFailed, err)
		return
	}

	logger.FromContext(r.Context()).Info(LogMsgRegionsReloaded, "count", count)
	respondJSON(w, http.StatusOK, ReloadRegionsResponse{Message: MsgRegionsReloaded, Count: count})
}
