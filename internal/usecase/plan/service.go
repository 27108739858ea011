// Package plan validates and normalizes extractor output into search tasks.
package plan

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/bazaar-labs/bazaarsearch/internal/domain/task"
	"github.com/bazaar-labs/bazaarsearch/internal/metrics"
)

// FailurePolicy picks what a failed extraction degrades to.
type FailurePolicy string

const (
	// PolicyFallback degrades to a single unconstrained semantic search.
	// Default: an NLU outage should not turn a reasonable query into an
	// empty page.
	PolicyFallback FailurePolicy = "fallback"
	// PolicyEmpty degrades to no tasks, so the request returns no results.
	PolicyEmpty FailurePolicy = "empty"
)

const (
	defaultTimeout  = 10 * time.Second
	defaultMaxTasks = 5
)

// Service plans search tasks from a raw query. Extraction failures never
// escape it; they resolve through the configured policy.
type Service struct {
	extractor Extractor
	policy    FailurePolicy
	timeout   time.Duration
	maxTasks  int
	logger    *zap.Logger
}

// New creates a planner with the default fallback policy.
func New(extractor Extractor, logger *zap.Logger) *Service {
	return &Service{
		extractor: extractor,
		policy:    PolicyFallback,
		timeout:   defaultTimeout,
		maxTasks:  defaultMaxTasks,
		logger:    logger,
	}
}

// WithPolicy overrides the extraction-failure policy.
func (s *Service) WithPolicy(p FailurePolicy) *Service {
	s.policy = p
	return s
}

// WithTimeout overrides the extractor call timeout.
func (s *Service) WithTimeout(d time.Duration) *Service {
	if d > 0 {
		s.timeout = d
	}
	return s
}

// WithMaxTasks bounds how many tasks one query may decompose into.
func (s *Service) WithMaxTasks(n int) *Service {
	if n > 0 {
		s.maxTasks = n
	}
	return s
}

// Plan turns a raw query into zero or more search tasks, in extractor order.
//
// An empty task list is a meaningful outcome, not an error: either the
// extractor explicitly found no product intent, or extraction failed under
// PolicyEmpty. Under PolicyFallback a failure yields one unconstrained task.
func (s *Service) Plan(ctx context.Context, rawQuery string) []task.Task {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.extractor.Extract(ctx, rawQuery)
	if err != nil {
		s.logger.Warn("intent extraction failed", zap.Error(err))
		return s.applyFailurePolicy()
	}

	tasks, err := task.Parse(raw)
	if err != nil {
		s.logger.Warn("intent output not parseable",
			zap.Error(err),
			zap.Int("output_len", len(raw)),
		)
		return s.applyFailurePolicy()
	}

	if len(tasks) > s.maxTasks {
		tasks = tasks[:s.maxTasks]
	}
	return tasks
}

func (s *Service) applyFailurePolicy() []task.Task {
	metrics.ExtractionFallbacksTotal.WithLabelValues(string(s.policy)).Inc()
	if s.policy == PolicyEmpty {
		return nil
	}
	// One fully unconstrained task forces a pure semantic search.
	return []task.Task{{}}
}
