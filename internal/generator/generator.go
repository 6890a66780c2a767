package generator

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/skyroutes/planner/backend/internal/domain"
	"github.com/skyroutes/planner/backend/internal/routing"
)

// Dataset contains a generated route network: scheduled connections plus the
// coordinate index the heuristic search needs.
type Dataset struct {
	Connections []domain.Connection
	Coordinates routing.CoordIndex
}

// Generator produces synthetic route networks aligned with the planner's
// connection schema. Durations and fares are derived from real great-circle
// distances so generated graphs behave plausibly under every weight vector.
type Generator struct {
	cfg  Config
	rand *rand.Rand
}

type city struct {
	id    domain.LocationID
	coord domain.Coordinate
}

var cityPool = []city{
	{"Toronto", domain.Coordinate{Latitude: 43.65107, Longitude: -79.347015}},
	{"NewYork", domain.Coordinate{Latitude: 40.712776, Longitude: -74.005974}},
	{"London", domain.Coordinate{Latitude: 51.507351, Longitude: -0.127758}},
	{"Paris", domain.Coordinate{Latitude: 48.856613, Longitude: 2.352222}},
	{"Frankfurt", domain.Coordinate{Latitude: 50.110924, Longitude: 8.682127}},
	{"Rome", domain.Coordinate{Latitude: 41.902782, Longitude: 12.496366}},
	{"Madrid", domain.Coordinate{Latitude: 40.416775, Longitude: -3.70379}},
	{"Amsterdam", domain.Coordinate{Latitude: 52.367573, Longitude: 4.904139}},
	{"Vienna", domain.Coordinate{Latitude: 48.208176, Longitude: 16.373819}},
	{"Lisbon", domain.Coordinate{Latitude: 38.722252, Longitude: -9.139337}},
	{"Dublin", domain.Coordinate{Latitude: 53.349805, Longitude: -6.26031}},
	{"Zurich", domain.Coordinate{Latitude: 47.376887, Longitude: 8.541694}},
	{"Istanbul", domain.Coordinate{Latitude: 41.008238, Longitude: 28.978359}},
	{"Chicago", domain.Coordinate{Latitude: 41.878113, Longitude: -87.629799}},
	{"Boston", domain.Coordinate{Latitude: 42.360082, Longitude: -71.05888}},
	{"Montreal", domain.Coordinate{Latitude: 45.501689, Longitude: -73.567256}},
}

var carrierPool = []string{
	"AirCanada", "Delta", "BA", "Lufthansa", "AirFrance", "KLM", "Iberia", "Swiss",
}

// New returns a configured Generator instance.
func New(cfg Config) *Generator {
	if cfg.NumCities <= 0 || cfg.NumCities > len(cityPool) {
		cfg.NumCities = DefaultConfig().NumCities
	}
	if cfg.AvgDegree <= 0 {
		cfg.AvgDegree = DefaultConfig().AvgDegree
	}
	if cfg.DirectChance <= 0 || cfg.DirectChance > 1 {
		cfg.DirectChance = DefaultConfig().DirectChance
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return &Generator{
		cfg:  cfg,
		rand: rand.New(rand.NewSource(cfg.Seed)),
	}
}

// Generate synthesises a route network. It respects context cancellation.
func (g *Generator) Generate(ctx context.Context) (Dataset, error) {
	cities := make([]city, len(cityPool))
	copy(cities, cityPool)
	g.rand.Shuffle(len(cities), func(i, j int) { cities[i], cities[j] = cities[j], cities[i] })
	cities = cities[:g.cfg.NumCities]

	dataset := Dataset{Coordinates: make(routing.CoordIndex, len(cities))}
	for _, c := range cities {
		dataset.Coordinates[c.id] = c.coord
	}

	seen := make(map[[2]domain.LocationID]struct{})
	for _, origin := range cities {
		if err := ctx.Err(); err != nil {
			return Dataset{}, err
		}
		for hop := 0; hop < g.cfg.AvgDegree; hop++ {
			destination := cities[g.rand.Intn(len(cities))]
			if destination.id == origin.id {
				continue
			}
			key := [2]domain.LocationID{origin.id, destination.id}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			dataset.Connections = append(dataset.Connections, g.connection(origin, destination))
		}
	}
	return dataset, nil
}

// connection derives schedule attributes from the great-circle distance:
// block time at cruise speed plus taxi/climb overhead, and a fare roughly
// linear in distance. Layovers appear on a minority of long connections.
func (g *Generator) connection(origin, destination city) domain.Connection {
	km := routing.HaversineKM(origin.coord, destination.coord)

	duration := km/800.0 + 0.4 + g.rand.Float64()*0.3
	cost := 60 + km*0.11*(0.85+g.rand.Float64()*0.3)

	layovers := 0
	if km > 3000 && g.rand.Float64() > g.cfg.DirectChance {
		layovers = 1
	}

	return domain.Connection{
		Origin:        origin.id,
		Destination:   destination.id,
		Carrier:       carrierPool[g.rand.Intn(len(carrierPool))],
		DurationHours: math.Round(duration*10) / 10,
		CostAmount:    math.Round(cost),
		Layovers:      layovers,
	}
}
