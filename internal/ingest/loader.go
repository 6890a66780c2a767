package ingest

import (
	"context"
	"log/slog"
	"os"

	"github.com/skyroutes/planner/backend/internal/domain"
	"github.com/skyroutes/planner/backend/internal/factstore"
)

// Loader assembles the initial connection list at boot. Sources are layered
// in order — built-in sample dataset, CSV dataset, knowledge-base file,
// symbolic store — with later sources overriding earlier ones for the same
// ordered pair (the graph store's upsert is last-write-wins). Every external
// source is best effort: a missing file or unreachable store logs a warning
// and the chain continues.
type Loader struct {
	KBPath  string
	CSVPath string
	Store   factstore.Client
	Logger  *slog.Logger
}

// LoadInitialConnections returns the boot dataset. It never returns an empty
// slice: the built-in sample dataset is always the base layer.
func (l *Loader) LoadInitialConnections(ctx context.Context) []domain.Connection {
	conns := SampleConnections()
	l.Logger.Info("loaded sample dataset", "connections", len(conns))

	if l.CSVPath != "" {
		if extra, ok := l.loadCSV(); ok {
			conns = append(conns, extra...)
		}
	}
	if l.KBPath != "" {
		if extra, ok := l.loadKB(); ok {
			conns = append(conns, extra...)
		}
	}
	if l.Store != nil {
		if extra, ok := l.loadStore(ctx); ok {
			conns = append(conns, extra...)
		}
	}
	return conns
}

func (l *Loader) loadCSV() ([]domain.Connection, bool) {
	f, err := os.Open(l.CSVPath)
	if err != nil {
		l.Logger.Warn("csv dataset unavailable", "path", l.CSVPath, "error", err)
		return nil, false
	}
	defer f.Close()

	conns, err := ParseCSV(f)
	if err != nil {
		l.Logger.Warn("csv dataset unreadable", "path", l.CSVPath, "error", err)
		return nil, false
	}
	l.Logger.Info("loaded csv dataset", "path", l.CSVPath, "connections", len(conns))
	return conns, true
}

func (l *Loader) loadKB() ([]domain.Connection, bool) {
	f, err := os.Open(l.KBPath)
	if err != nil {
		l.Logger.Warn("knowledge base unavailable", "path", l.KBPath, "error", err)
		return nil, false
	}
	defer f.Close()

	conns, err := ParseKnowledgeBase(f)
	if err != nil {
		l.Logger.Warn("knowledge base unreadable", "path", l.KBPath, "error", err)
		return nil, false
	}
	l.Logger.Info("loaded knowledge base", "path", l.KBPath, "connections", len(conns))
	return conns, true
}

func (l *Loader) loadStore(ctx context.Context) ([]domain.Connection, bool) {
	conns, err := l.Store.FetchConnections(ctx)
	if err != nil {
		l.Logger.Warn("symbolic store fetch failed", "error", err)
		return nil, false
	}
	l.Logger.Info("loaded symbolic store facts", "connections", len(conns))
	return conns, true
}
