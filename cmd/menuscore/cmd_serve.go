package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/Menuscore/internal/api"
	"github.com/MikeSquared-Agency/Menuscore/internal/config"
	"github.com/MikeSquared-Agency/Menuscore/internal/dataset"
	"github.com/MikeSquared-Agency/Menuscore/internal/hermes"
	"github.com/MikeSquared-Agency/Menuscore/internal/scoring"
	"github.com/MikeSquared-Agency/Menuscore/internal/store"
)

func newServeCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the scoring API",
		Long: `Start the scoring API and the metrics server.

At startup the latest dataset is loaded from the store when one is
configured, falling back to the CSV at dataset.path. New datasets can be
uploaded to POST /api/v1/datasets.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			applyDebugFlag(cmd, cfg)
			logger := newLogger(os.Stdout, cfg.Logging)
			slog.SetDefault(logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, logger)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to config file")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	// Store (optional)
	var db store.Store
	if cfg.StoreEnabled() {
		s, err := store.Open(ctx, store.Driver(cfg.Database.Driver), cfg.Database.URL)
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		defer s.Close()
		db = s
		logger.Info("connected to store", "driver", cfg.Database.Driver)
	}

	// Hermes (optional)
	var hermesClient hermes.Client
	if cfg.Hermes.URL != "" {
		hc, err := hermes.NewNATSClient(ctx, cfg.Hermes.URL, logger)
		if err != nil {
			logger.Warn("failed to connect to hermes, running without events", "error", err)
		} else {
			hermesClient = hc
			defer hc.Close()
			logger.Info("connected to hermes")
		}
	}

	analyzer := scoring.NewAnalyzer(cfg.Scoring.Workers, logger)
	svc := dataset.New(analyzer, db, hermesClient, logger)

	sources := dataset.FirstAvailable{}
	if db != nil {
		sources = append(sources, dataset.StoreSource{Store: db})
	}
	sources = append(sources, dataset.FileSource{Path: cfg.Dataset.Path})
	if err := svc.Load(ctx, sources); err != nil {
		if !errors.Is(err, dataset.ErrNoDataset) {
			return fmt.Errorf("failed to load dataset: %w", err)
		}
		logger.Warn("starting without a dataset", "path", cfg.Dataset.Path)
	}

	if err := svc.FollowImports(ctx); err != nil {
		logger.Warn("failed to follow dataset imports", "error", err)
	}

	apiServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: api.NewRouter(svc, cfg.Server, logger),
	}
	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler: api.NewMetricsRouter(),
	}

	go func() {
		logger.Info("API server starting", "port", cfg.Server.Port)
		if err := apiServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("API server error", "error", err)
		}
	}()

	go func() {
		logger.Info("metrics server starting", "port", cfg.Server.MetricsPort)
		if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = apiServer.Shutdown(shutdownCtx)
	_ = metricsServer.Shutdown(shutdownCtx)

	logger.Info("shutdown complete")
	return nil
}
