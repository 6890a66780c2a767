// Package factstore talks to the external symbolic knowledge store that
// flight-route facts are mirrored into. The route graph core never reads it
// on the query path; it serves as a boot-time connection source and as the
// replication target of the fact mutator.
package factstore

import (
	"context"
	"errors"

	"github.com/skyroutes/planner/backend/internal/domain"
)

// Client is the minimal contract the engine and ingestion layer need from
// the symbolic store.
type Client interface {
	MergeConnection(ctx context.Context, conn domain.Connection) error
	FetchConnections(ctx context.Context) ([]domain.Connection, error)
	VerifyConnectivity(ctx context.Context) error
	Close(ctx context.Context) error
}

// Options configures a factstore client implementation.
type Options struct {
	URI            string
	Database       string
	Username       string
	Password       string
	MaxConnections int
}

// ErrMissingURI indicates the store URI is not provided.
var ErrMissingURI = errors.New("factstore URI is required")
