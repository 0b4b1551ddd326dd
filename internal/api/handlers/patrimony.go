package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Tafita-R/Examen-Web2/internal/api/request"
	"github.com/Tafita-R/Examen-Web2/internal/api/response"
	"github.com/Tafita-R/Examen-Web2/internal/apperrors"
	"github.com/Tafita-R/Examen-Web2/internal/service"
	"github.com/Tafita-R/Examen-Web2/internal/validation"
	"github.com/Tafita-R/Examen-Web2/internal/valuation"
)

// PatrimonyHandler handles HTTP requests for patrimony valuation endpoints.
type PatrimonyHandler struct {
	patrimonyService *service.PatrimonyService
}

// NewPatrimonyHandler creates a new PatrimonyHandler with the provided service dependency.
func NewPatrimonyHandler(patrimonyService *service.PatrimonyService) *PatrimonyHandler {
	return &PatrimonyHandler{
		patrimonyService: patrimonyService,
	}
}

// Patrimony handles GET requests for the patrimony on a date.
//
// Endpoint: GET /api/patrimony/{date}
// Query Parameters: owner (optional)
// Response: 200 OK with model.PatrimonyValue
// Error: 400 Bad Request if the date is malformed
// Error: 422 Unprocessable Entity if a stored possession is invalid
// Error: 500 Internal Server Error if valuation fails
func (h *PatrimonyHandler) Patrimony(w http.ResponseWriter, r *http.Request) {
	on, err := valuation.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid date", err.Error())
		return
	}

	value, err := h.patrimonyService.GetPatrimony(r.Context(), on, r.URL.Query().Get("owner"))
	if err != nil {
		respondValuationError(w, err, apperrors.ErrFailedToComputePatrimony)
		return
	}

	response.RespondJSON(w, http.StatusOK, value)
}

// Breakdown handles GET requests for the per-possession values on a date.
// Closed possessions are listed with their frozen value but left out of the total.
//
// Endpoint: GET /api/patrimony/{date}/breakdown
// Query Parameters: owner (optional)
// Response: 200 OK with valuation.Breakdown
// Error: 400 Bad Request if the date is malformed
// Error: 422 Unprocessable Entity if a stored possession is invalid
// Error: 500 Internal Server Error if valuation fails
func (h *PatrimonyHandler) Breakdown(w http.ResponseWriter, r *http.Request) {
	on, err := valuation.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid date", err.Error())
		return
	}

	breakdown, err := h.patrimonyService.GetBreakdown(r.Context(), on, r.URL.Query().Get("owner"))
	if err != nil {
		respondValuationError(w, err, apperrors.ErrFailedToComputePatrimony)
		return
	}

	response.RespondJSON(w, http.StatusOK, breakdown)
}

// PatrimonyRange handles POST requests for the patrimony over a date range.
// The value is the patrimony on endDate.
//
// Endpoint: POST /api/patrimony/range
// Request Body: PatrimonyRangeRequest (startDate, endDate, owner)
// Response: 200 OK with model.PatrimonyRange
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 422 Unprocessable Entity if a stored possession is invalid
// Error: 500 Internal Server Error if valuation fails
func (h *PatrimonyHandler) PatrimonyRange(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.PatrimonyRangeRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidatePatrimonyRange(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	end := valuation.MustParseDate(req.EndDate)
	var start valuation.Date
	if req.StartDate != "" {
		start = valuation.MustParseDate(req.StartDate)
	}

	value, err := h.patrimonyService.GetPatrimonyOverRange(r.Context(), start, end, req.Owner)
	if err != nil {
		respondValuationError(w, err, apperrors.ErrFailedToComputePatrimony)
		return
	}

	response.RespondJSON(w, http.StatusOK, value)
}

// PatrimonySeries handles POST requests to sample the patrimony across a range.
// Samples are stepDays apart from startDate, and endDate is always the last sample.
//
// Endpoint: POST /api/patrimony/series
// Request Body: PatrimonySeriesRequest (startDate, endDate, stepDays, owner)
// Response: 200 OK with model.PatrimonySeries
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 422 Unprocessable Entity if a stored possession is invalid
// Error: 500 Internal Server Error if valuation fails
func (h *PatrimonyHandler) PatrimonySeries(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.PatrimonySeriesRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidatePatrimonySeries(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	series, err := h.patrimonyService.GetSeries(r.Context(),
		valuation.MustParseDate(req.StartDate),
		valuation.MustParseDate(req.EndDate),
		req.StepDays,
		req.Owner,
	)
	if err != nil {
		respondValuationError(w, err, apperrors.ErrFailedToComputePatrimony)
		return
	}

	response.RespondJSON(w, http.StatusOK, series)
}

// Report handles GET requests for the printable patrimony report.
//
// Endpoint: GET /api/patrimony/report
// Query Parameters: date (optional, defaults to today), owner (optional)
// Response: 200 OK with an HTML page
// Error: 400 Bad Request if the date is malformed
// Error: 422 Unprocessable Entity if a stored possession is invalid
// Error: 500 Internal Server Error if rendering fails
func (h *PatrimonyHandler) Report(w http.ResponseWriter, r *http.Request) {
	on, err := parseDateParam(r.URL.Query().Get("date"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid date", err.Error())
		return
	}

	page, err := h.patrimonyService.GetReport(r.Context(), on, r.URL.Query().Get("owner"))
	if err != nil {
		respondValuationError(w, err, apperrors.ErrFailedToComputePatrimony)
		return
	}

	response.RespondHTML(w, http.StatusOK, page)
}
