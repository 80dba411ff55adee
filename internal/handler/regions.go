package handler

import (
	"net/http"
	"strconv"

	"github.com/osse101/WagerBot_Go/internal/domain"
	"github.com/osse101/WagerBot_Go/internal/region"
)

// RegionsResponse lists the region catalogue
type RegionsResponse struct {
	Regions []domain.Region `json:"regions"`
}

// HandleListRegions lists the regions, by default only those open for betting
// @Summary List regions
// @Description List the regions wagers can be placed on
// @Tags regions
// @Produce json
// @Param all query bool false "Include closed regions"
// @Success 200 {object} RegionsResponse
// @Failure 500 {object} ErrorResponse
// @Router /regions [get]
func HandleListRegions(svc region.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all, _ := strconv.ParseBool(GetOptionalQueryParam(r, "all", "false"))

		regions, err := svc.List(r.Context(), !all)
		if err != nil {
			respondServiceError(w, r, ErrMsgListRegionsFailed, err)
			return
		}
		respondJSON(w, http.StatusOK, RegionsResponse{Regions: regions})
	}
}
