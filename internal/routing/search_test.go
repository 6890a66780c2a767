package routing

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skyroutes/planner/backend/internal/domain"
)

// sampleGraph mirrors the seed dataset: six European/North American cities
// with ten scheduled connections.
func sampleGraph() *Store {
	store := NewStore()
	for _, c := range []domain.Connection{
		conn("Toronto", "NewYork", 1.5, 220),
		conn("Toronto", "London", 7.2, 520),
		conn("NewYork", "London", 6.8, 480),
		conn("NewYork", "Paris", 7.1, 510),
		conn("London", "Paris", 1.1, 120),
		conn("London", "Frankfurt", 1.4, 140),
		conn("Frankfurt", "Paris", 1.2, 130),
		conn("Toronto", "Frankfurt", 7.5, 540),
		conn("Paris", "Rome", 2.0, 160),
		conn("Frankfurt", "Rome", 2.0, 150),
	} {
		store.Upsert(c)
	}
	return store
}

func sampleCoords() CoordIndex {
	return CoordIndex{
		"Toronto":   {Latitude: 43.65107, Longitude: -79.347015},
		"NewYork":   {Latitude: 40.712776, Longitude: -74.005974},
		"London":    {Latitude: 51.507351, Longitude: -0.127758},
		"Paris":     {Latitude: 48.856613, Longitude: 2.352222},
		"Frankfurt": {Latitude: 50.110924, Longitude: 8.682127},
		"Rome":      {Latitude: 41.902782, Longitude: 12.496366},
	}
}

func pathWeight(p *Projection, path []domain.LocationID) float64 {
	var total float64
	for i := 0; i+1 < len(path); i++ {
		edge, ok := p.Edge(path[i], path[i+1])
		if !ok {
			return -1
		}
		total += edge.Weight
	}
	return total
}

func TestFindPathDirectConnectionPreferred(t *testing.T) {
	proj := NewProjection(sampleGraph(), domain.DefaultWeights())

	// Direct Toronto-London (7.2h) beats Toronto-NewYork-London (8.3h).
	path, ok := FindPath(proj, "Toronto", "London", nil)
	require.True(t, ok)
	require.Equal(t, []domain.LocationID{"Toronto", "London"}, path)
}

func TestFindPathMultiHop(t *testing.T) {
	proj := NewProjection(sampleGraph(), domain.DefaultWeights())

	// Toronto-Frankfurt-Rome at 9.5h is the duration optimum.
	path, ok := FindPath(proj, "Toronto", "Rome", nil)
	require.True(t, ok)
	require.Equal(t, []domain.LocationID{"Toronto", "Frankfurt", "Rome"}, path)
	require.InDelta(t, 9.5, pathWeight(proj, path), 1e-9)
}

func TestFindPathSourceEqualsDestination(t *testing.T) {
	proj := NewProjection(sampleGraph(), domain.DefaultWeights())

	path, ok := FindPath(proj, "Paris", "Paris", nil)
	require.True(t, ok)
	require.Equal(t, []domain.LocationID{"Paris"}, path)
}

func TestFindPathNoRoute(t *testing.T) {
	proj := NewProjection(sampleGraph(), domain.DefaultWeights())

	// Rome has no outgoing connections.
	_, ok := FindPath(proj, "Rome", "Toronto", nil)
	require.False(t, ok)
}

func TestFindPathUnknownEndpoints(t *testing.T) {
	proj := NewProjection(sampleGraph(), domain.DefaultWeights())

	_, ok := FindPath(proj, "Atlantis", "Rome", nil)
	require.False(t, ok)
	_, ok = FindPath(proj, "Toronto", "Atlantis", nil)
	require.False(t, ok)
}

func TestUniformCostAndHeuristicAgreeOnScore(t *testing.T) {
	store := sampleGraph()
	coords := sampleCoords()

	weightVectors := []domain.WeightVector{
		{Duration: 1},
		{Cost: 1},
		{Duration: 1, Cost: 0.5},
		{Duration: 1, Cost: 1, Layovers: 1},
	}
	origins := []domain.LocationID{"Toronto", "NewYork", "London"}
	destinations := []domain.LocationID{"London", "Paris", "Rome"}

	for _, w := range weightVectors {
		proj := NewProjection(store, w)
		for _, src := range origins {
			for _, dst := range destinations {
				ucPath, ucOK := FindPath(proj, src, dst, nil)
				h := DurationHeuristic(coords, dst, w.Duration)
				aPath, aOK := FindPath(proj, src, dst, h)

				require.Equal(t, ucOK, aOK, "%s->%s weights %+v", src, dst, w)
				if !ucOK {
					continue
				}
				require.InDelta(t, pathWeight(proj, ucPath), pathWeight(proj, aPath), 1e-9,
					"%s->%s weights %+v", src, dst, w)
			}
		}
	}
}

func TestHeuristicSearchWithoutCoordinatesMatchesUniformCost(t *testing.T) {
	// An empty coordinate index degrades every estimate to zero; the
	// heuristic run must still find an optimal path.
	proj := NewProjection(sampleGraph(), domain.DefaultWeights())
	h := DurationHeuristic(CoordIndex{}, "Rome", 1.0)

	ucPath, ok := FindPath(proj, "Toronto", "Rome", nil)
	require.True(t, ok)
	aPath, ok := FindPath(proj, "Toronto", "Rome", h)
	require.True(t, ok)
	require.InDelta(t, pathWeight(proj, ucPath), pathWeight(proj, aPath), 1e-9)
}
