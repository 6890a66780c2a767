package domain

import (
	"fmt"
	"strings"
)

// Strategy selects the shortest-path algorithm used for a query.
type Strategy string

const (
	// StrategyUniformCost is classic Dijkstra over the weighted projection.
	StrategyUniformCost Strategy = "dijkstra"
	// StrategyHeuristic is A* guided by the great-circle duration estimate.
	StrategyHeuristic Strategy = "a_star"
)

// ParseStrategy normalizes the method names accepted on the wire. Unknown
// values fall back to uniform-cost, matching the permissive API behaviour.
func ParseStrategy(raw string) Strategy {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "a_star", "astar", "a*":
		return StrategyHeuristic
	default:
		return StrategyUniformCost
	}
}

// WeightVector holds the caller-supplied multipliers trading off duration,
// fare cost and hop count in the scalar edge weight. It lives only for the
// duration of one routing request.
type WeightVector struct {
	Duration float64
	Cost     float64
	Layovers float64
}

// DefaultWeights optimizes for duration only.
func DefaultWeights() WeightVector {
	return WeightVector{Duration: 1.0}
}

// Totals aggregates the traversed connections of a leg or itinerary.
type Totals struct {
	DurationHours float64
	CostAmount    float64
	Layovers      int
	Score         float64
}

// Leg is the result of a single path-search invocation.
type Leg struct {
	Path   []LocationID
	Edges  []Connection
	Totals Totals
}

// Itinerary is the user-facing aggregation of one or more legs. Path is the
// per-leg paths concatenated with duplicated junction locations dropped;
// Totals is the element-wise sum of the per-leg totals.
type Itinerary struct {
	Path   []LocationID
	Legs   []Leg
	Totals Totals
}

// NoRouteError reports that no itinerary leg connects the given ordered pair.
// Routing absence is an expected outcome, surfaced as a typed result rather
// than a fault.
type NoRouteError struct {
	Origin      LocationID
	Destination LocationID
}

func (e *NoRouteError) Error() string {
	return fmt.Sprintf("no route from %s to %s", e.Origin, e.Destination)
}
