// Package middleware provides HTTP middleware for request validation and processing.
package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Tafita-R/Examen-Web2/internal/api/response"
	"github.com/Tafita-R/Examen-Web2/internal/validation"
)

// ValidateLabelMiddleware validates that the label URL parameter is present and is a
// well-formed possession label.
// Returns 400 Bad Request if the label is missing or invalid.
//
// Example usage in router:
//
//	r.Route("/{label}", func(r chi.Router) {
//	    r.Use(middleware.ValidateLabelMiddleware)
//	    r.Get("/", handler.GetPossession)
//	    r.Put("/", handler.UpdatePossession)
//	})
func ValidateLabelMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		label := chi.URLParam(r, "label")

		if label == "" {
			response.RespondError(w, http.StatusBadRequest, "possession label is required", "")
			return
		}

		if err := validation.ValidateLabel(label); err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid possession label", err.Error())
			return
		}

		next.ServeHTTP(w, r)
	})
}
