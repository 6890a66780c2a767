package server

import (
	"context"

	"github.com/skyroutes/planner/backend/internal/factstore"
)

// HealthService defines behaviour for readiness probes.
type HealthService interface {
	Probe(ctx context.Context) error
}

// MirrorHealthService verifies symbolic-store connectivity as part of health
// checks. The routing core itself has no external dependencies to probe.
type MirrorHealthService struct {
	Client factstore.Client
}

// Probe implements the HealthService interface.
func (s MirrorHealthService) Probe(ctx context.Context) error {
	if s.Client == nil {
		return nil
	}
	return s.Client.VerifyConnectivity(ctx)
}
