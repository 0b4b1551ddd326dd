package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Tafita-R/Examen-Web2/internal/api/request"
	"github.com/Tafita-R/Examen-Web2/internal/api/response"
	"github.com/Tafita-R/Examen-Web2/internal/apperrors"
	"github.com/Tafita-R/Examen-Web2/internal/service"
	"github.com/Tafita-R/Examen-Web2/internal/validation"
	"github.com/Tafita-R/Examen-Web2/internal/valuation"
)

// PossessionHandler handles HTTP requests for possession endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the possession and patrimony services.
type PossessionHandler struct {
	possessionService *service.PossessionService
	patrimonyService  *service.PatrimonyService
}

// NewPossessionHandler creates a new PossessionHandler with the provided service dependencies.
func NewPossessionHandler(possessionService *service.PossessionService, patrimonyService *service.PatrimonyService) *PossessionHandler {
	return &PossessionHandler{
		possessionService: possessionService,
		patrimonyService:  patrimonyService,
	}
}

// Possessions handles GET requests to list possessions.
//
// Endpoint: GET /api/possession
// Query Parameters: owner (optional) restricts the list to one owner
// Response: 200 OK with array of valuation.Possession
// Error: 500 Internal Server Error if retrieval fails
func (h *PossessionHandler) Possessions(w http.ResponseWriter, r *http.Request) {
	possessions, err := h.possessionService.GetPossessions(r.Context(), r.URL.Query().Get("owner"))
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePossessions.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, possessions)
}

// GetPossession handles GET requests to retrieve a single possession by label.
//
// Endpoint: GET /api/possession/{label}
// Response: 200 OK with valuation.Possession
// Error: 400 Bad Request if label is invalid (validated by middleware)
// Error: 404 Not Found if possession not found
// Error: 500 Internal Server Error if retrieval fails
func (h *PossessionHandler) GetPossession(w http.ResponseWriter, r *http.Request) {
	label := chi.URLParam(r, "label")

	possession, err := h.possessionService.GetPossession(r.Context(), label)
	if err != nil {
		if errors.Is(err, apperrors.ErrPossessionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPossessionNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePossession.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, possession)
}

// CreatePossession handles POST requests to create a new possession.
//
// Endpoint: POST /api/possession
// Request Body: CreatePossessionRequest
// Response: 201 Created with valuation.Possession
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 409 Conflict if the label is already taken
// Error: 500 Internal Server Error if creation fails
func (h *PossessionHandler) CreatePossession(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreatePossessionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreatePossession(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	possession, err := h.possessionService.CreatePossession(r.Context(), req)
	if err != nil {
		h.respondWriteError(w, err, apperrors.ErrFailedToCreatePossession)
		return
	}

	response.RespondJSON(w, http.StatusCreated, possession)
}

// UpdatePossession handles PUT requests to set the end date of a possession.
// Setting an end date is the only change allowed after creation; it can also move
// an existing end date in either direction.
//
// Endpoint: PUT /api/possession/{label}
// Request Body: UpdatePossessionRequest (endDate)
// Response: 200 OK with updated valuation.Possession
// Error: 400 Bad Request if validation fails or the end date is before the start date
// Error: 404 Not Found if possession not found
// Error: 500 Internal Server Error if update fails
func (h *PossessionHandler) UpdatePossession(w http.ResponseWriter, r *http.Request) {
	label := chi.URLParam(r, "label")

	req, err := parseJSON[request.UpdatePossessionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdatePossession(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	h.close(w, r, label, req.EndDate)
}

// ClosePossession handles POST requests to close a possession. The body is optional;
// without an endDate the possession is closed today.
//
// Endpoint: POST /api/possession/{label}/close
// Request Body: ClosePossessionRequest (endDate, optional)
// Response: 200 OK with closed valuation.Possession
// Error: 400 Bad Request if validation fails or the end date is before the start date
// Error: 404 Not Found if possession not found
// Error: 500 Internal Server Error if closing fails
func (h *PossessionHandler) ClosePossession(w http.ResponseWriter, r *http.Request) {
	label := chi.URLParam(r, "label")

	req, err := parseOptionalJSON[request.ClosePossessionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateClosePossession(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	h.close(w, r, label, req.EndDate)
}

func (h *PossessionHandler) close(w http.ResponseWriter, r *http.Request, label, endDate string) {
	var end valuation.Date
	if endDate != "" {
		var err error
		end, err = valuation.ParseDate(endDate)
		if err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid date", err.Error())
			return
		}
	}

	possession, err := h.possessionService.ClosePossession(r.Context(), label, end)
	if err != nil {
		h.respondWriteError(w, err, apperrors.ErrFailedToClosePossession)
		return
	}

	response.RespondJSON(w, http.StatusOK, possession)
}

// DeletePossession handles DELETE requests to remove a possession.
//
// Endpoint: DELETE /api/possession/{label}
// Response: 204 No Content on successful deletion
// Error: 400 Bad Request if label is invalid (validated by middleware)
// Error: 404 Not Found if possession not found
// Error: 500 Internal Server Error if deletion fails
func (h *PossessionHandler) DeletePossession(w http.ResponseWriter, r *http.Request) {
	label := chi.URLParam(r, "label")

	if err := h.possessionService.DeletePossession(r.Context(), label); err != nil {
		if errors.Is(err, apperrors.ErrPossessionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPossessionNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToDeletePossession.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// PossessionValue handles GET requests to value one possession on a date.
// A closed possession reports the value frozen at its end date.
//
// Endpoint: GET /api/possession/{label}/value
// Query Parameters: date (optional, YYYY-MM-DD, defaults to today)
// Response: 200 OK with model.PossessionValue
// Error: 400 Bad Request if the date is malformed
// Error: 404 Not Found if possession not found
// Error: 422 Unprocessable Entity if the stored record is invalid
// Error: 500 Internal Server Error if valuation fails
func (h *PossessionHandler) PossessionValue(w http.ResponseWriter, r *http.Request) {
	label := chi.URLParam(r, "label")

	on, err := parseDateParam(r.URL.Query().Get("date"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid date", err.Error())
		return
	}

	value, err := h.patrimonyService.GetPossessionValue(r.Context(), label, on)
	if err != nil {
		respondValuationError(w, err, apperrors.ErrFailedToComputePatrimony)
		return
	}

	response.RespondJSON(w, http.StatusOK, value)
}

// respondWriteError maps errors of possession writes. Invariant violations come from
// the client input here, so they are a 400 rather than a 422.
func (h *PossessionHandler) respondWriteError(w http.ResponseWriter, err error, fallback error) {
	var invalidDate *valuation.InvalidDateError
	var invalidPossession *valuation.InvalidPossessionError

	switch {
	case errors.As(err, &invalidDate):
		response.RespondError(w, http.StatusBadRequest, "invalid date", err.Error())
	case errors.As(err, &invalidPossession):
		response.RespondError(w, http.StatusBadRequest, "invalid possession", err.Error())
	case errors.Is(err, apperrors.ErrPossessionNotFound):
		response.RespondError(w, http.StatusNotFound, apperrors.ErrPossessionNotFound.Error(), err.Error())
	case errors.Is(err, apperrors.ErrDuplicateLabel):
		response.RespondError(w, http.StatusConflict, apperrors.ErrDuplicateLabel.Error(), err.Error())
	default:
		response.RespondError(w, http.StatusInternalServerError, fallback.Error(), err.Error())
	}
}
