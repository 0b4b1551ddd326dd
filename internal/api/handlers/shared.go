package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Tafita-R/Examen-Web2/internal/api/response"
	"github.com/Tafita-R/Examen-Web2/internal/apperrors"
	"github.com/Tafita-R/Examen-Web2/internal/valuation"
)

// maxBodyBytes caps the size of a JSON request body.
const maxBodyBytes = 1 << 20

// parseJSON decodes the request body into a T. Unknown fields are rejected.
func parseJSON[T any](r *http.Request) (T, error) {
	var req T

	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&req); err != nil {
		return req, fmt.Errorf("failed to decode request body: %w", err)
	}
	return req, nil
}

// parseOptionalJSON is parseJSON for endpoints whose body may be omitted.
// An empty body yields the zero T.
func parseOptionalJSON[T any](r *http.Request) (T, error) {
	var zero T
	if r.Body == nil || r.ContentLength == 0 {
		return zero, nil
	}

	req, err := parseJSON[T](r)
	if errors.Is(err, io.EOF) {
		return zero, nil
	}
	return req, err
}

// parseDateParam parses a date from a path or query parameter. An empty value
// yields today.
func parseDateParam(value string) (valuation.Date, error) {
	if value == "" {
		return valuation.Today(), nil
	}
	return valuation.ParseDate(value)
}

// respondValuationError maps an error from a valuation call onto its HTTP status.
// fallback is the message used for unexpected failures.
func respondValuationError(w http.ResponseWriter, err error, fallback error) {
	var invalidDate *valuation.InvalidDateError
	var invalidPossession *valuation.InvalidPossessionError

	switch {
	case errors.As(err, &invalidDate):
		response.RespondError(w, http.StatusBadRequest, "invalid date", err.Error())
	case errors.Is(err, valuation.ErrInvalidRange), errors.Is(err, valuation.ErrInvalidStep):
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidDateRange.Error(), err.Error())
	case errors.Is(err, apperrors.ErrPossessionNotFound):
		response.RespondError(w, http.StatusNotFound, apperrors.ErrPossessionNotFound.Error(), err.Error())
	case errors.As(err, &invalidPossession):
		response.RespondError(w, http.StatusUnprocessableEntity, "invalid possession record", err.Error())
	default:
		response.RespondError(w, http.StatusInternalServerError, fallback.Error(), err.Error())
	}
}
