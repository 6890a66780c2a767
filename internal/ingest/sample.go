package ingest

import (
	"github.com/skyroutes/planner/backend/internal/domain"
	"github.com/skyroutes/planner/backend/internal/routing"
)

// SampleConnections is the built-in constant dataset the loader falls back
// on, so the service boots with a routable graph even with no external data
// source configured.
func SampleConnections() []domain.Connection {
	return []domain.Connection{
		{Origin: "Toronto", Destination: "NewYork", Carrier: "AirCanada", DurationHours: 1.5, CostAmount: 220},
		{Origin: "Toronto", Destination: "London", Carrier: "AirCanada", DurationHours: 7.2, CostAmount: 520},
		{Origin: "NewYork", Destination: "London", Carrier: "Delta", DurationHours: 6.8, CostAmount: 480},
		{Origin: "NewYork", Destination: "Paris", Carrier: "Delta", DurationHours: 7.1, CostAmount: 510},
		{Origin: "London", Destination: "Paris", Carrier: "BA", DurationHours: 1.1, CostAmount: 120},
		{Origin: "London", Destination: "Frankfurt", Carrier: "Lufthansa", DurationHours: 1.4, CostAmount: 140},
		{Origin: "Frankfurt", Destination: "Paris", Carrier: "Lufthansa", DurationHours: 1.2, CostAmount: 130},
		{Origin: "Toronto", Destination: "Frankfurt", Carrier: "Lufthansa", DurationHours: 7.5, CostAmount: 540},
		{Origin: "Paris", Destination: "Rome", Carrier: "AirFrance", DurationHours: 2.0, CostAmount: 160},
		{Origin: "Frankfurt", Destination: "Rome", Carrier: "Lufthansa", DurationHours: 2.0, CostAmount: 150},
	}
}

// CityCoordinates provides the static coordinate index backing the search
// heuristic. Locations missing from the index are still routable; only the
// heuristic degrades.
func CityCoordinates() routing.CoordIndex {
	return routing.CoordIndex{
		"Toronto":   {Latitude: 43.65107, Longitude: -79.347015},
		"NewYork":   {Latitude: 40.712776, Longitude: -74.005974},
		"London":    {Latitude: 51.507351, Longitude: -0.127758},
		"Paris":     {Latitude: 48.856613, Longitude: 2.352222},
		"Frankfurt": {Latitude: 50.110924, Longitude: 8.682127},
		"Rome":      {Latitude: 41.902782, Longitude: 12.496366},
	}
}
