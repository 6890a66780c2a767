// Command ingest loads a connection dataset (knowledge-base text or CSV)
// and pushes every fact into the symbolic store, so a freshly provisioned
// store starts in sync with the planner's seed data.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/skyroutes/planner/backend/internal/config"
	"github.com/skyroutes/planner/backend/internal/domain"
	"github.com/skyroutes/planner/backend/internal/factstore"
	"github.com/skyroutes/planner/backend/internal/ingest"
	"github.com/skyroutes/planner/backend/internal/logging"
)

func main() {
	var (
		datasetPath = flag.String("dataset", "", "Path to a .metta knowledge base or .csv dataset (defaults to the built-in sample)")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging).With("component", "ingest")

	conns, err := loadDataset(*datasetPath)
	if err != nil {
		logger.Error("failed to load dataset", "error", err, "path", *datasetPath)
		os.Exit(1)
	}
	if len(conns) == 0 {
		logger.Error("dataset contains no connections", "path", *datasetPath)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cfg.Mirror.URI == "" {
		logger.Error("MIRROR_URI is required for ingestion")
		os.Exit(1)
	}
	client, err := factstore.NewNeo4jClient(ctx, factstore.Options{
		URI:            cfg.Mirror.URI,
		Database:       cfg.Mirror.Database,
		Username:       cfg.Mirror.Username,
		Password:       cfg.Mirror.Password,
		MaxConnections: cfg.Mirror.MaxConnections,
	})
	if err != nil {
		logger.Error("failed to connect to symbolic store", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := client.Close(context.Background()); err != nil {
			logger.Warn("closing symbolic store failed", "error", err)
		}
	}()

	start := time.Now()
	logger.Info("ingesting connections", "count", len(conns))
	for _, conn := range conns {
		if err := client.MergeConnection(ctx, conn); err != nil {
			logger.Error("merge failed", "error", err,
				"origin", conn.Origin, "destination", conn.Destination)
			os.Exit(1)
		}
	}
	logger.Info("ingestion complete", "duration", time.Since(start).String(), "connections", len(conns))
}

func loadDataset(path string) ([]domain.Connection, error) {
	if path == "" {
		return ingest.SampleConnections(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return ingest.ParseCSV(f)
	}
	return ingest.ParseKnowledgeBase(f)
}
