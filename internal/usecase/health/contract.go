package health

import "context"

// Checker verifies one external collaborator's availability.
type Checker interface {
	HealthCheck(ctx context.Context) error
}

// Pinger checks cache store availability.
type Pinger interface {
	Ping(ctx context.Context) error
}
