package factstore

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/skyroutes/planner/backend/internal/domain"
)

const (
	mergeConnectionCypher = `
MERGE (a:City {name: $origin})
MERGE (b:City {name: $destination})
MERGE (a)-[r:CONNECTION]->(b)
SET r.carrier = $carrier,
    r.duration = $duration,
    r.cost = $cost,
    r.layovers = $layovers`

	fetchConnectionsCypher = `
MATCH (a:City)-[r:CONNECTION]->(b:City)
RETURN a.name AS origin, b.name AS destination,
       r.carrier AS carrier, r.duration AS duration,
       r.cost AS cost, r.layovers AS layovers
ORDER BY origin, destination`
)

// NewNeo4jClient establishes a Bolt connection using the official Neo4j
// driver.
func NewNeo4jClient(ctx context.Context, opts Options) (Client, error) {
	if opts.URI == "" {
		return nil, ErrMissingURI
	}

	auth := neo4j.NoAuth()
	if opts.Username != "" {
		auth = neo4j.BasicAuth(opts.Username, opts.Password, "")
	}

	driver, err := neo4j.NewDriverWithContext(opts.URI, auth, func(c *neo4j.Config) {
		if opts.MaxConnections > 0 {
			c.MaxConnectionPoolSize = opts.MaxConnections
		}
	})
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("verify factstore connectivity: %w", err)
	}

	return &neo4jClient{
		driver:   driver,
		database: opts.Database,
	}, nil
}

type neo4jClient struct {
	driver   neo4j.DriverWithContext
	database string
}

func (c *neo4jClient) MergeConnection(ctx context.Context, conn domain.Connection) error {
	session := c.driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: c.database,
		AccessMode:   neo4j.AccessModeWrite,
	})
	defer session.Close(ctx)

	res, err := session.Run(ctx, mergeConnectionCypher, map[string]any{
		"origin":      string(conn.Origin),
		"destination": string(conn.Destination),
		"carrier":     conn.Carrier,
		"duration":    conn.DurationHours,
		"cost":        conn.CostAmount,
		"layovers":    conn.Layovers,
	})
	if err != nil {
		return err
	}
	_, err = res.Consume(ctx)
	return err
}

func (c *neo4jClient) FetchConnections(ctx context.Context) ([]domain.Connection, error) {
	session := c.driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: c.database,
		AccessMode:   neo4j.AccessModeRead,
	})
	defer session.Close(ctx)

	res, err := session.Run(ctx, fetchConnectionsCypher, nil)
	if err != nil {
		return nil, err
	}

	var conns []domain.Connection
	for res.Next(ctx) {
		rec := res.Record()
		conn, ok := connectionFromRecord(rec)
		if !ok {
			continue
		}
		conns = append(conns, conn)
	}
	if err := res.Err(); err != nil {
		return nil, err
	}
	return conns, nil
}

func (c *neo4jClient) VerifyConnectivity(ctx context.Context) error {
	return c.driver.VerifyConnectivity(ctx)
}

func (c *neo4jClient) Close(ctx context.Context) error {
	return c.driver.Close(ctx)
}

// connectionFromRecord tolerates partially populated relationships: numeric
// attributes default to zero, but both endpoints must be present.
func connectionFromRecord(rec *neo4j.Record) (domain.Connection, bool) {
	origin, _ := rec.Get("origin")
	destination, _ := rec.Get("destination")
	originStr, okO := origin.(string)
	destStr, okD := destination.(string)
	if !okO || !okD || originStr == "" || destStr == "" {
		return domain.Connection{}, false
	}

	conn := domain.Connection{
		Origin:      domain.LocationID(originStr),
		Destination: domain.LocationID(destStr),
	}
	if carrier, ok := rec.Get("carrier"); ok {
		if s, ok := carrier.(string); ok {
			conn.Carrier = s
		}
	}
	if duration, ok := rec.Get("duration"); ok {
		conn.DurationHours = asFloat(duration)
	}
	if cost, ok := rec.Get("cost"); ok {
		conn.CostAmount = asFloat(cost)
	}
	if layovers, ok := rec.Get("layovers"); ok {
		conn.Layovers = int(asFloat(layovers))
	}
	return conn, true
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	default:
		return 0
	}
}
