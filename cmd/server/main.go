package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/skyroutes/planner/backend/internal/config"
	"github.com/skyroutes/planner/backend/internal/engine"
	"github.com/skyroutes/planner/backend/internal/factstore"
	"github.com/skyroutes/planner/backend/internal/ingest"
	"github.com/skyroutes/planner/backend/internal/logging"
	"github.com/skyroutes/planner/backend/internal/routing"
	"github.com/skyroutes/planner/backend/internal/server"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging)

	mirror := buildMirror(ctx, logger, cfg)
	defer func() {
		if mirror != nil {
			if err := mirror.Close(context.Background()); err != nil {
				logger.Warn("closing symbolic store failed", "error", err)
			}
		}
	}()

	loader := &ingest.Loader{
		KBPath:  cfg.Ingest.KnowledgeBasePath,
		CSVPath: cfg.Ingest.DatasetCSVPath,
		Store:   mirror,
		Logger:  logger.With("component", "ingest"),
	}

	store := routing.NewStore()
	eng := engine.New(store, ingest.CityCoordinates(), mirrorOrNil(mirror), logger)
	eng.Reload(loader.LoadInitialConnections(ctx))

	apiHandlers := server.NewAPIHandlers(logger, eng, loader)
	router := server.NewRouter(logger, server.RouterDependencies{
		Health:           server.MirrorHealthService{Client: mirror},
		API:              apiHandlers,
		AllowedOrigins:   server.ParseAllowedOrigins(cfg.HTTP.AllowedOriginsCSV),
		AllowCredentials: true,
	})

	srv := server.New(logger, cfg.HTTP, router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("server stopped unexpectedly", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

// buildMirror connects to the symbolic store when configured. The service
// runs without one: routing is fully served from the in-process graph.
func buildMirror(ctx context.Context, logger *slog.Logger, cfg config.Config) factstore.Client {
	if cfg.Mirror.URI == "" {
		logger.Info("no symbolic store configured, facts stay local")
		return nil
	}

	client, err := factstore.NewNeo4jClient(ctx, factstore.Options{
		URI:            cfg.Mirror.URI,
		Database:       cfg.Mirror.Database,
		Username:       cfg.Mirror.Username,
		Password:       cfg.Mirror.Password,
		MaxConnections: cfg.Mirror.MaxConnections,
	})
	if err != nil {
		logger.Warn("symbolic store unavailable, continuing without mirror", "error", err)
		return nil
	}
	logger.Info("connected to symbolic store", "uri", cfg.Mirror.URI)
	return client
}

// mirrorOrNil avoids handing the engine a typed-nil interface value.
func mirrorOrNil(client factstore.Client) engine.Mirror {
	if client == nil {
		return nil
	}
	return client
}
