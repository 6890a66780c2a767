package routing

import (
	"sort"
	"sync"

	"github.com/skyroutes/planner/backend/internal/domain"
)

// Store is the in-memory directed route graph shared across requests. It
// holds at most one connection per ordered (origin, destination) pair; a
// second upsert for the same pair replaces the first. All accessors take a
// read lock so searches never observe a graph being concurrently rewritten.
type Store struct {
	mu        sync.RWMutex
	outgoing  map[domain.LocationID]map[domain.LocationID]domain.Connection
	locations map[domain.LocationID]struct{}
}

// NewStore returns an empty route graph.
func NewStore() *Store {
	return &Store{
		outgoing:  make(map[domain.LocationID]map[domain.LocationID]domain.Connection),
		locations: make(map[domain.LocationID]struct{}),
	}
}

// Upsert inserts or replaces the connection for its (origin, destination)
// key and ensures both endpoints are members of the location set.
func (s *Store) Upsert(conn domain.Connection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upsertLocked(conn)
}

func (s *Store) upsertLocked(conn domain.Connection) {
	edges, ok := s.outgoing[conn.Origin]
	if !ok {
		edges = make(map[domain.LocationID]domain.Connection)
		s.outgoing[conn.Origin] = edges
	}
	edges[conn.Destination] = conn
	s.locations[conn.Origin] = struct{}{}
	s.locations[conn.Destination] = struct{}{}
}

// Clear empties the store.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outgoing = make(map[domain.LocationID]map[domain.LocationID]domain.Connection)
	s.locations = make(map[domain.LocationID]struct{})
}

// Replace performs a clear-then-repopulate under a single lock acquisition,
// so a reload is atomic from the perspective of concurrent readers.
func (s *Store) Replace(conns []domain.Connection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outgoing = make(map[domain.LocationID]map[domain.LocationID]domain.Connection, len(conns))
	s.locations = make(map[domain.LocationID]struct{}, 2*len(conns))
	for _, conn := range conns {
		s.upsertLocked(conn)
	}
}

// HasLocation reports whether id appears as an endpoint of any connection.
func (s *Store) HasLocation(id domain.LocationID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.locations[id]
	return ok
}

// Connection returns the connection stored for the ordered pair, if any.
func (s *Store) Connection(origin, destination domain.LocationID) (domain.Connection, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	conn, ok := s.outgoing[origin][destination]
	return conn, ok
}

// ConnectionsFrom returns the outgoing connections of origin, ordered by
// destination for stable output.
func (s *Store) ConnectionsFrom(origin domain.LocationID) []domain.Connection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	edges := s.outgoing[origin]
	if len(edges) == 0 {
		return nil
	}
	conns := make([]domain.Connection, 0, len(edges))
	for _, conn := range edges {
		conns = append(conns, conn)
	}
	sort.Slice(conns, func(i, j int) bool { return conns[i].Destination < conns[j].Destination })
	return conns
}

// AllConnections returns a snapshot of every stored connection, ordered by
// (origin, destination).
func (s *Store) AllConnections() []domain.Connection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var conns []domain.Connection
	for _, edges := range s.outgoing {
		for _, conn := range edges {
			conns = append(conns, conn)
		}
	}
	sort.Slice(conns, func(i, j int) bool {
		if conns[i].Origin != conns[j].Origin {
			return conns[i].Origin < conns[j].Origin
		}
		return conns[i].Destination < conns[j].Destination
	})
	return conns
}

// Locations returns the sorted set of known location IDs.
func (s *Store) Locations() []domain.LocationID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]domain.LocationID, 0, len(s.locations))
	for id := range s.locations {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
