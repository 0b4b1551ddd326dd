package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Tafita-R/Examen-Web2/internal/api/handlers"
	custommiddleware "github.com/Tafita-R/Examen-Web2/internal/api/middleware"
	"github.com/Tafita-R/Examen-Web2/internal/config"
	"github.com/Tafita-R/Examen-Web2/internal/service"
)

// Services groups the services the router dispatches to.
type Services struct {
	System     *service.SystemService
	Possession *service.PossessionService
	Patrimony  *service.PatrimonyService
	Snapshot   *service.SnapshotService
}

// NewRouter creates and configures the HTTP router
func NewRouter(services Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(services.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/possession", func(r chi.Router) {
			possessionHandler := handlers.NewPossessionHandler(services.Possession, services.Patrimony)
			r.Get("/", possessionHandler.Possessions)
			r.Post("/", possessionHandler.CreatePossession)

			r.Route("/{label}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateLabelMiddleware)
				r.Get("/", possessionHandler.GetPossession)
				r.Put("/", possessionHandler.UpdatePossession)
				r.Delete("/", possessionHandler.DeletePossession)
				r.Post("/close", possessionHandler.ClosePossession)
				r.Get("/value", possessionHandler.PossessionValue)
			})
		})

		r.Route("/patrimony", func(r chi.Router) {
			patrimonyHandler := handlers.NewPatrimonyHandler(services.Patrimony)
			snapshotHandler := handlers.NewSnapshotHandler(services.Snapshot)

			// Static segments take precedence over {date}.
			r.Get("/report", patrimonyHandler.Report)
			r.Post("/range", patrimonyHandler.PatrimonyRange)
			r.Post("/series", patrimonyHandler.PatrimonySeries)
			r.Get("/snapshots", snapshotHandler.Snapshots)
			r.Post("/snapshots/refresh", snapshotHandler.RefreshSnapshot)

			r.Get("/{date}", patrimonyHandler.Patrimony)
			r.Get("/{date}/breakdown", patrimonyHandler.Breakdown)
		})
	})

	return r
}
