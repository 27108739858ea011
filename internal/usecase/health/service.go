package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks across the external collaborators.
type Service struct {
	embedding Checker
	extractor Checker
	cache     Pinger
}

// New creates a Service. Any collaborator can be nil and is then skipped.
func New(embedding, extractor Checker, cache Pinger) *Service {
	return &Service{embedding: embedding, extractor: extractor, cache: cache}
}

// Check runs health checks against all configured components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if s.embedding != nil {
		checks["embedding"] = toResult(s.embedding.HealthCheck(ctx))
	}
	if s.extractor != nil {
		checks["extractor"] = toResult(s.extractor.HealthCheck(ctx))
	}
	if s.cache != nil {
		checks["cache"] = toResult(s.cache.Ping(ctx))
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks}
}

func toResult(err error) CheckResult {
	if err != nil {
		return CheckError
	}
	return CheckOK
}
