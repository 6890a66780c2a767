package routing

import (
	"math"

	"github.com/skyroutes/planner/backend/internal/domain"
)

const (
	// EarthRadiusKM is the mean Earth radius used by the haversine formula.
	EarthRadiusKM = 6371.0088
	// cruiseSpeedKMPH converts great-circle distance into an estimated
	// flight duration.
	cruiseSpeedKMPH = 800.0
)

// CoordIndex maps locations to their static geographic coordinates.
type CoordIndex map[domain.LocationID]domain.Coordinate

// Lookup makes the missing-coordinate case explicit at the call site.
func (c CoordIndex) Lookup(id domain.LocationID) (domain.Coordinate, bool) {
	coord, ok := c[id]
	return coord, ok
}

// HaversineKM computes the great-circle surface distance between two
// coordinates using the spherical law of haversines.
func HaversineKM(a, b domain.Coordinate) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lon1 := a.Longitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	lon2 := b.Longitude * math.Pi / 180

	dLat := lat2 - lat1
	dLon := lon2 - lon1
	h := math.Pow(math.Sin(dLat/2), 2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dLon/2), 2)
	return 2 * EarthRadiusKM * math.Asin(math.Sqrt(h))
}

// Heuristic estimates the remaining cost from a location to the goal.
type Heuristic func(from domain.LocationID) float64

// DurationHeuristic builds the estimate used by heuristic-guided search:
// great-circle distance to goal divided by cruise speed, scaled by the
// duration weight. It covers only the duration component of the edge weight;
// cost and layover terms are non-negative and omitted, so the true remaining
// cost is never underestimated. Either endpoint lacking a coordinate degrades
// the estimate to zero, which falls back to uniform-cost behaviour for that
// pair instead of failing.
func DurationHeuristic(coords CoordIndex, goal domain.LocationID, wDuration float64) Heuristic {
	goalCoord, goalKnown := coords.Lookup(goal)
	return func(from domain.LocationID) float64 {
		if !goalKnown {
			return 0
		}
		fromCoord, ok := coords.Lookup(from)
		if !ok {
			return 0
		}
		return wDuration * (HaversineKM(fromCoord, goalCoord) / cruiseSpeedKMPH)
	}
}
