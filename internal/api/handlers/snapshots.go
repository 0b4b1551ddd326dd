package handlers

import (
	"net/http"

	"github.com/Tafita-R/Examen-Web2/internal/api/request"
	"github.com/Tafita-R/Examen-Web2/internal/api/response"
	"github.com/Tafita-R/Examen-Web2/internal/apperrors"
	"github.com/Tafita-R/Examen-Web2/internal/service"
	"github.com/Tafita-R/Examen-Web2/internal/valuation"
)

// SnapshotHandler handles HTTP requests for stored patrimony snapshots.
type SnapshotHandler struct {
	snapshotService *service.SnapshotService
}

// NewSnapshotHandler creates a new SnapshotHandler with the provided service dependency.
func NewSnapshotHandler(snapshotService *service.SnapshotService) *SnapshotHandler {
	return &SnapshotHandler{
		snapshotService: snapshotService,
	}
}

// Snapshots handles GET requests to retrieve stored snapshots for a date window.
// Only dates that have been snapshotted appear in the result.
//
// Endpoint: GET /api/patrimony/snapshots
// Query Parameters:
//   - start_date: Optional start date (YYYY-MM-DD), defaults to 30 days before end_date
//   - end_date: Optional end date (YYYY-MM-DD), defaults to today
//
// Response: 200 OK with array of model.PatrimonySnapshot, oldest first
// Error: 400 Bad Request if dates are malformed or the range is inverted
// Error: 500 Internal Server Error if retrieval fails
func (h *SnapshotHandler) Snapshots(w http.ResponseWriter, r *http.Request) {
	filter, err := request.ParseSnapshotFilters(
		r.URL.Query().Get("start_date"),
		r.URL.Query().Get("end_date"),
		valuation.Today(),
	)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	history, err := h.snapshotService.GetSnapshotHistory(r.Context(), *filter)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveHistory.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, history)
}

// RefreshSnapshot handles POST requests to recompute today's snapshot immediately.
//
// Endpoint: POST /api/patrimony/snapshots/refresh
// Response: 200 OK with the stored model.PatrimonySnapshot
// Error: 422 Unprocessable Entity if a stored possession is invalid
// Error: 500 Internal Server Error if the refresh fails
func (h *SnapshotHandler) RefreshSnapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.snapshotService.Refresh(r.Context(), valuation.Today())
	if err != nil {
		respondValuationError(w, err, apperrors.ErrFailedToRefreshSnapshot)
		return
	}

	response.RespondJSON(w, http.StatusOK, snapshot)
}
