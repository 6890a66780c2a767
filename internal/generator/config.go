package generator

// Config drives the synthetic route-network generator.
type Config struct {
	NumCities    int
	AvgDegree    int
	DirectChance float64
	Seed         int64
}

// DefaultConfig returns baseline settings producing a well-connected network
// of a size convenient for local development.
func DefaultConfig() Config {
	return Config{
		NumCities:    12,
		AvgDegree:    3,
		DirectChance: 0.85,
		Seed:         42,
	}
}
