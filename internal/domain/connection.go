package domain

// LocationID identifies a city or airport node in the route graph.
type LocationID string

// Connection is one directly operable leg between two locations. Identity is
// the ordered (Origin, Destination) pair; inserting a second connection for
// the same pair replaces the first.
type Connection struct {
	Origin        LocationID
	Destination   LocationID
	Carrier       string
	DurationHours float64
	CostAmount    float64
	Layovers      int
}

// Coordinate holds a static geographic position for a location. It feeds the
// search heuristic only; locations without a coordinate are still routable.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}
