package routing

import (
	"errors"

	"github.com/skyroutes/planner/backend/internal/domain"
)

const (
	// LayoverPenaltyPerHopHours is the flat penalty charged per traversed
	// connection when the layover weight is non-zero. It is deliberately not
	// proportional to the connection's own layover count: weighting is
	// evaluated per edge during search, before the full path is known, so
	// the term models a cost per additional hop.
	LayoverPenaltyPerHopHours = 1.5

	// costScale converts fare amounts into the same order of magnitude as
	// flight durations in hours.
	costScale = 100.0
)

// ErrNegativeWeight rejects weight vectors with negative components. A
// negative component would make edge weights negative or the heuristic
// inadmissible, breaking search optimality.
var ErrNegativeWeight = errors.New("weight components must be non-negative")

// ValidateWeights checks the invariant the search algorithms rely on.
func ValidateWeights(w domain.WeightVector) error {
	if w.Duration < 0 || w.Cost < 0 || w.Layovers < 0 {
		return ErrNegativeWeight
	}
	return nil
}

// EdgeWeight maps a connection's raw attributes and a weight vector to the
// scalar cost used by the path search.
func EdgeWeight(conn domain.Connection, w domain.WeightVector) float64 {
	return w.Duration*conn.DurationHours +
		w.Cost*(conn.CostAmount/costScale) +
		w.Layovers*LayoverPenaltyPerHopHours
}

// WeightedConnection is a connection annotated with its computed scalar
// weight for one request.
type WeightedConnection struct {
	domain.Connection
	Weight float64
}

// Projection is a request-scoped weighted copy of the route graph. Building
// it takes a single read-locked snapshot of the store, so in-flight searches
// are isolated from concurrent mutation.
type Projection struct {
	adjacency map[domain.LocationID][]WeightedConnection
	locations map[domain.LocationID]struct{}
}

// NewProjection materializes the weighted projection of store under w.
func NewProjection(store *Store, w domain.WeightVector) *Projection {
	conns := store.AllConnections()
	p := &Projection{
		adjacency: make(map[domain.LocationID][]WeightedConnection, len(conns)),
		locations: make(map[domain.LocationID]struct{}, 2*len(conns)),
	}
	for _, conn := range conns {
		p.adjacency[conn.Origin] = append(p.adjacency[conn.Origin], WeightedConnection{
			Connection: conn,
			Weight:     EdgeWeight(conn, w),
		})
		p.locations[conn.Origin] = struct{}{}
		p.locations[conn.Destination] = struct{}{}
	}
	return p
}

// HasLocation reports membership of id in the projection's location set.
func (p *Projection) HasLocation(id domain.LocationID) bool {
	_, ok := p.locations[id]
	return ok
}

// Outgoing returns the weighted connections leaving origin.
func (p *Projection) Outgoing(origin domain.LocationID) []WeightedConnection {
	return p.adjacency[origin]
}

// Edge returns the weighted connection for the ordered pair, if present.
func (p *Projection) Edge(origin, destination domain.LocationID) (WeightedConnection, bool) {
	for _, wc := range p.adjacency[origin] {
		if wc.Destination == destination {
			return wc, true
		}
	}
	return WeightedConnection{}, false
}
