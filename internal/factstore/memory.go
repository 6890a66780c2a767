package factstore

import (
	"context"
	"sync"

	"github.com/skyroutes/planner/backend/internal/domain"
)

// MemoryStore is an in-memory implementation of the Client interface used
// for unit testing and for running the service without a symbolic store
// backend. Merged facts are kept keyed by ordered pair, mirroring the
// last-write-wins semantics of the route graph.
type MemoryStore struct {
	mu           sync.Mutex
	facts        map[[2]domain.LocationID]domain.Connection
	mergeErr     error
	fetchErr     error
	connectivity error
}

// NewMemoryStore instantiates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{facts: make(map[[2]domain.LocationID]domain.Connection)}
}

// WithMergeError configures MergeConnection to fail with err.
func (m *MemoryStore) WithMergeError(err error) *MemoryStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mergeErr = err
	return m
}

// WithFetchError configures FetchConnections to fail with err.
func (m *MemoryStore) WithFetchError(err error) *MemoryStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetchErr = err
	return m
}

// WithConnectivityError forces VerifyConnectivity to return err.
func (m *MemoryStore) WithConnectivityError(err error) *MemoryStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connectivity = err
	return m
}

// Seed preloads facts, typically before exercising FetchConnections.
func (m *MemoryStore) Seed(conns []domain.Connection) *MemoryStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, conn := range conns {
		m.facts[[2]domain.LocationID{conn.Origin, conn.Destination}] = conn
	}
	return m
}

func (m *MemoryStore) MergeConnection(_ context.Context, conn domain.Connection) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.mergeErr != nil {
		return m.mergeErr
	}
	m.facts[[2]domain.LocationID{conn.Origin, conn.Destination}] = conn
	return nil
}

func (m *MemoryStore) FetchConnections(context.Context) ([]domain.Connection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	conns := make([]domain.Connection, 0, len(m.facts))
	for _, conn := range m.facts {
		conns = append(conns, conn)
	}
	return conns, nil
}

func (m *MemoryStore) VerifyConnectivity(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connectivity
}

func (m *MemoryStore) Close(context.Context) error { return nil }

// Facts returns a snapshot of the merged connection facts.
func (m *MemoryStore) Facts() []domain.Connection {
	m.mu.Lock()
	defer m.mu.Unlock()
	conns := make([]domain.Connection, 0, len(m.facts))
	for _, conn := range m.facts {
		conns = append(conns, conn)
	}
	return conns
}
