// Package engine exposes the routing core to the request layer: itinerary
// queries over the shared route graph, fact insertion mirrored into the
// external symbolic store, and wholesale reloads.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/skyroutes/planner/backend/internal/domain"
	"github.com/skyroutes/planner/backend/internal/routing"
)

// Mirror is the external symbolic knowledge store that fact insertions are
// replicated into so the two data sources stay in sync for the lifetime of
// the process.
type Mirror interface {
	MergeConnection(ctx context.Context, conn domain.Connection) error
}

// ErrInvalidConnection rejects connection facts with empty endpoints or
// negative numeric attributes.
var ErrInvalidConnection = errors.New("invalid connection")

// MirrorError reports that a connection was stored locally but failed to
// replicate into the symbolic store. The local write is not rolled back;
// callers should report the inconsistency rather than retry blindly, since
// retry semantics belong to the external store's contract.
type MirrorError struct {
	Err error
}

func (e *MirrorError) Error() string {
	return fmt.Sprintf("connection stored locally but mirror update failed: %v", e.Err)
}

func (e *MirrorError) Unwrap() error { return e.Err }

// Query carries the caller-controlled knobs of one routing request.
type Query struct {
	Strategy    domain.Strategy
	Weights     domain.WeightVector
	MaxLayovers *int
}

// Engine owns the shared route graph and orchestrates path searches into
// composed itineraries.
type Engine struct {
	store  *routing.Store
	coords routing.CoordIndex
	mirror Mirror
	logger *slog.Logger
}

// New constructs an Engine. mirror may be nil when no symbolic store is
// configured; coords may be empty, degrading heuristic search to uniform
// cost.
func New(store *routing.Store, coords routing.CoordIndex, mirror Mirror, logger *slog.Logger) *Engine {
	return &Engine{
		store:  store,
		coords: coords,
		mirror: mirror,
		logger: logger,
	}
}

// QueryRoute computes a one-way itinerary.
func (e *Engine) QueryRoute(origin, destination domain.LocationID, q Query) (domain.Itinerary, error) {
	return e.solve([][2]domain.LocationID{{origin, destination}}, q)
}

// QueryRoundTrip computes two independent legs, out and back, under the same
// weights and strategy. The return leg is not constrained to avoid the
// outbound leg's connections.
func (e *Engine) QueryRoundTrip(origin, destination domain.LocationID, q Query) (domain.Itinerary, error) {
	return e.solve([][2]domain.LocationID{
		{origin, destination},
		{destination, origin},
	}, q)
}

// QueryMultiCity chains legs through the given intermediate stops. The first
// segment with no route fails the whole itinerary, identifying the ordered
// pair that failed.
func (e *Engine) QueryMultiCity(origin domain.LocationID, stops []domain.LocationID, destination domain.LocationID, q Query) (domain.Itinerary, error) {
	waypoints := make([]domain.LocationID, 0, len(stops)+2)
	waypoints = append(waypoints, origin)
	waypoints = append(waypoints, stops...)
	waypoints = append(waypoints, destination)

	pairs := make([][2]domain.LocationID, 0, len(waypoints)-1)
	for i := 0; i+1 < len(waypoints); i++ {
		pairs = append(pairs, [2]domain.LocationID{waypoints[i], waypoints[i+1]})
	}
	return e.solve(pairs, q)
}

func (e *Engine) solve(pairs [][2]domain.LocationID, q Query) (domain.Itinerary, error) {
	if err := routing.ValidateWeights(q.Weights); err != nil {
		return domain.Itinerary{}, err
	}

	// One weighted snapshot serves every leg of the request.
	proj := routing.NewProjection(e.store, q.Weights)

	legs := make([]domain.Leg, 0, len(pairs))
	for _, pair := range pairs {
		leg, err := e.solveLeg(proj, pair[0], pair[1], q)
		if err != nil {
			return domain.Itinerary{}, err
		}
		legs = append(legs, leg)
	}
	return compose(legs), nil
}

func (e *Engine) solveLeg(proj *routing.Projection, origin, destination domain.LocationID, q Query) (domain.Leg, error) {
	var h routing.Heuristic
	if q.Strategy == domain.StrategyHeuristic {
		h = routing.DurationHeuristic(e.coords, destination, q.Weights.Duration)
	}

	path, ok := routing.FindPath(proj, origin, destination, h)
	if !ok {
		return domain.Leg{}, &domain.NoRouteError{Origin: origin, Destination: destination}
	}

	leg := buildLeg(proj, path)
	if q.MaxLayovers != nil && leg.Totals.Layovers > *q.MaxLayovers {
		return domain.Leg{}, &domain.NoRouteError{Origin: origin, Destination: destination}
	}
	return leg, nil
}

func buildLeg(proj *routing.Projection, path []domain.LocationID) domain.Leg {
	leg := domain.Leg{Path: path}
	var duration, cost, score float64
	for i := 0; i+1 < len(path); i++ {
		edge, _ := proj.Edge(path[i], path[i+1])
		leg.Edges = append(leg.Edges, edge.Connection)
		duration += edge.DurationHours
		cost += edge.CostAmount
		score += edge.Weight
	}
	leg.Totals = domain.Totals{
		DurationHours: round2(duration),
		CostAmount:    round2(cost),
		Layovers:      legLayovers(path),
		Score:         round3(score),
	}
	return leg
}

// legLayovers is max(0, hops-1): a direct flight has zero layovers.
func legLayovers(path []domain.LocationID) int {
	if len(path) < 3 {
		return 0
	}
	return len(path) - 2
}

// compose concatenates leg paths, dropping each subsequent leg's leading
// (shared) location, and sums the per-leg totals. Scores are summed rather
// than recomputed from the concatenated path, which guards against
// double-counting junction-adjacent attributes.
func compose(legs []domain.Leg) domain.Itinerary {
	it := domain.Itinerary{Legs: legs}
	for i, leg := range legs {
		if i == 0 {
			it.Path = append(it.Path, leg.Path...)
		} else if len(leg.Path) > 1 {
			it.Path = append(it.Path, leg.Path[1:]...)
		}
		it.Totals.DurationHours += leg.Totals.DurationHours
		it.Totals.CostAmount += leg.Totals.CostAmount
		it.Totals.Layovers += leg.Totals.Layovers
		it.Totals.Score += leg.Totals.Score
	}
	it.Totals.DurationHours = round2(it.Totals.DurationHours)
	it.Totals.CostAmount = round2(it.Totals.CostAmount)
	it.Totals.Score = round3(it.Totals.Score)
	return it
}

// AddConnection validates the fact, upserts it into the local route graph
// and then notifies the symbolic store. A mirror failure after the local
// upsert has succeeded is surfaced as a MirrorError, never rolled back.
func (e *Engine) AddConnection(ctx context.Context, conn domain.Connection) error {
	if conn.Origin == "" || conn.Destination == "" {
		return fmt.Errorf("%w: origin and destination are required", ErrInvalidConnection)
	}
	if conn.DurationHours < 0 || conn.CostAmount < 0 || conn.Layovers < 0 {
		return fmt.Errorf("%w: numeric attributes must be non-negative", ErrInvalidConnection)
	}

	e.store.Upsert(conn)

	if e.mirror == nil {
		return nil
	}
	if err := e.mirror.MergeConnection(ctx, conn); err != nil {
		e.logger.Warn("mirror update failed after local upsert",
			"origin", conn.Origin,
			"destination", conn.Destination,
			"error", err,
		)
		return &MirrorError{Err: err}
	}
	return nil
}

// Reload clears and repopulates the route graph atomically.
func (e *Engine) Reload(conns []domain.Connection) {
	e.store.Replace(conns)
	e.logger.Info("route graph reloaded", "connections", len(conns))
}

// Connections returns a read-only snapshot of every stored connection.
func (e *Engine) Connections() []domain.Connection {
	return e.store.AllConnections()
}

// Locations returns the sorted set of known locations.
func (e *Engine) Locations() []domain.LocationID {
	return e.store.Locations()
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
