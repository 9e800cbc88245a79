package main

import (
	"context"

	"github.com/danielgremista/ecoview-server/internal/config"
	"github.com/danielgremista/ecoview-server/internal/db"
	"github.com/danielgremista/ecoview-server/internal/repository"
	"github.com/danielgremista/ecoview-server/internal/router"
	"github.com/danielgremista/ecoview-server/internal/server"
	"github.com/danielgremista/ecoview-server/internal/service"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func startServer(
	lc fx.Lifecycle,
	srv *server.Server,
	cfg *config.Config,
	logger *zap.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("starting http server",
				zap.Int("port", cfg.ServicePort))
			srv.Start(cfg.ServicePort)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := srv.Stop(ctx); err != nil {
				logger.Error("failed to stop http server", zap.Error(err))
				return err
			}
			logger.Info("http server stopped gracefully")
			return nil
		},
	})
}

// ProvideStores builds the process-wide store alias table
func ProvideStores(lc fx.Lifecycle, logger *zap.Logger, cfg *config.Config) (*db.Stores, error) {
	return db.NewStores(lc, logger, cfg.Stores.DSNs())
}

// ProvideRouter creates the store router over the alias table
func ProvideRouter(stores *db.Stores) *router.Router {
	return router.NewRouter(stores)
}

// ProvideRepository creates a new repository instance
func ProvideRepository(stores *db.Stores) *repository.Repository {
	return repository.NewRepository(stores)
}

// ProvideIngestService creates the ingestion orchestrator
func ProvideIngestService(repo *repository.Repository, rt *router.Router, logger *zap.Logger) *service.IngestService {
	return service.NewIngestService(repo, rt, logger)
}

// ProvideAccessService creates the RFID access-check service
func ProvideAccessService(repo *repository.Repository, logger *zap.Logger) *service.AccessService {
	return service.NewAccessService(repo, logger)
}

// ProvideMetrics creates the server's prometheus counters
func ProvideMetrics() *server.Metrics {
	return server.NewMetrics()
}

// ProvideServer wires the HTTP server
func ProvideServer(ingest *service.IngestService, access *service.AccessService, metrics *server.Metrics, logger *zap.Logger) *server.Server {
	return server.NewServer(ingest, access, metrics, logger)
}
