package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/Tafita-R/Examen-Web2/internal/api"
	"github.com/Tafita-R/Examen-Web2/internal/config"
	"github.com/Tafita-R/Examen-Web2/internal/database"
	"github.com/Tafita-R/Examen-Web2/internal/logging"
	"github.com/Tafita-R/Examen-Web2/internal/repository"
	"github.com/Tafita-R/Examen-Web2/internal/service"
	"github.com/Tafita-R/Examen-Web2/internal/version"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logging.Get().Fatalw("failed to load configuration", "error", err)
	}

	logging.Init(cfg.Env)
	defer logging.Sync()
	log := logging.Get()

	// Amounts are JSON numbers on the wire.
	decimal.MarshalJSONWithoutQuotes = true

	cipher, err := repository.NewOwnerCipher(cfg.Database.OwnerEncryptionKey)
	if err != nil {
		log.Fatalw("invalid owner encryption key", "error", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalw("failed to open database", "path", cfg.Database.Path, "error", err)
	}
	defer db.Close()

	log.Infow("connected to database", "path", cfg.Database.Path, "owner_encryption", cipher != nil)

	// Create repositories
	possessionRepo := repository.NewPossessionRepository(db, cipher)
	snapshotRepo := repository.NewSnapshotRepository(db)

	// Create services
	systemService := service.NewSystemService(db, cfg.Patrimony.Currency)
	snapshotService := service.NewSnapshotService(possessionRepo, snapshotRepo)
	possessionService := service.NewPossessionService(possessionRepo, snapshotService)
	patrimonyService := service.NewPatrimonyService(possessionRepo, cfg.Patrimony.Currency)

	// Create router
	router := api.NewRouter(api.Services{
		System:     systemService,
		Possession: possessionService,
		Patrimony:  patrimonyService,
		Snapshot:   snapshotService,
	}, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Infow("starting server", "addr", cfg.Server.Addr, "version", version.Version)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if cfg.Patrimony.SnapshotSchedule != "" {
		scheduler, err := service.NewScheduler(cfg.Patrimony.SnapshotSchedule, snapshotService)
		if err != nil {
			log.Fatalw("failed to create snapshot scheduler", "error", err)
		}
		log.Infow("snapshot scheduler enabled", "schedule", cfg.Patrimony.SnapshotSchedule)
		g.Go(func() error {
			return scheduler.Run(gctx)
		})
	}

	// Wait for interrupt signal or a failed component, then shut down gracefully
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Errorw("server stopped with error", "error", err)
		logging.Sync()
		os.Exit(1)
	}

	log.Info("server exited")
}
