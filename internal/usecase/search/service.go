// Package search runs the per-task retrieval pipeline and merges task
// results into one bounded, deduplicated response.
package search

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/bazaar-labs/bazaarsearch/internal/domain"
	"github.com/bazaar-labs/bazaarsearch/internal/domain/product"
	"github.com/bazaar-labs/bazaarsearch/internal/domain/task"
	"github.com/bazaar-labs/bazaarsearch/internal/logger"
)

const (
	defaultResultLimit = 5
	defaultCandidateK  = 10000
)

// Service executes the decomposition-and-retrieval pipeline for one query.
type Service struct {
	planner    Planner
	embed      Embedder
	idx        Index
	catalog    Catalog
	limit      int
	candidateK int
}

// New creates a search service with default limits.
func New(planner Planner, embed Embedder, idx Index, catalog Catalog) *Service {
	return &Service{
		planner:    planner,
		embed:      embed,
		idx:        idx,
		catalog:    catalog,
		limit:      defaultResultLimit,
		candidateK: defaultCandidateK,
	}
}

// WithLimits overrides the global result cap and per-task candidate fetch size.
func (s *Service) WithLimits(resultLimit, candidateK int) *Service {
	if resultLimit > 0 {
		s.limit = resultLimit
	}
	if candidateK > 0 {
		s.candidateK = candidateK
	}
	return s
}

// Search answers one raw query: plan tasks, retrieve per task, merge.
// Tasks run sequentially in plan order; the shared accumulator makes result
// order and cap enforcement deterministic.
func (s *Service) Search(ctx context.Context, rawQuery string) ([]product.Product, error) {
	if strings.TrimSpace(rawQuery) == "" {
		return nil, domain.ErrMissingQuery
	}

	tasks := s.planner.Plan(ctx, rawQuery)
	if len(tasks) == 0 {
		return []product.Product{}, nil
	}

	log := logger.FromContext(ctx)
	log.Debug("query planned", zap.Int("tasks", len(tasks)))

	acc := NewAccumulator(s.limit)
	multiTask := len(tasks) > 1

	for _, t := range tasks {
		if acc.Full() {
			break
		}
		if err := s.retrieve(ctx, rawQuery, t, acc, multiTask); err != nil {
			return nil, err
		}
	}

	return acc.Results(), nil
}

// retrieve runs one task: embed its semantic query, fetch nearest candidates,
// post-filter, and feed survivors to the accumulator in distance order.
//
// With multiple tasks, a task cedes the scan once it has contributed an even
// number of results, approximating round-robin fairness so one intent's
// denser catalog cannot starve the others. A task whose candidates all fail
// the filters simply contributes nothing.
func (s *Service) retrieve(
	ctx context.Context, rawQuery string, t task.Task, acc *Accumulator, multiTask bool,
) error {
	embResult, err := s.embed.Embed(ctx, t.SemanticQuery(rawQuery))
	if err != nil {
		return fmt.Errorf("vectorize query: %w", err)
	}

	candidates, err := s.idx.Search(embResult.Embedding, s.candidateK)
	if err != nil {
		return fmt.Errorf("search index: %w", err)
	}

	filters := t.Filters()
	accepted := 0

	for _, cand := range candidates {
		p, err := s.catalog.Resolve(cand.Row)
		if err != nil {
			// Index/catalog misalignment is a build defect, not a
			// recoverable request condition.
			return fmt.Errorf("resolve candidate: %w", err)
		}
		if acc.Seen(p.ID) {
			continue
		}
		if !filters.Matches(p) {
			continue
		}

		acc.Accept(p)
		accepted++

		if acc.Full() {
			return nil
		}
		if multiTask && accepted%2 == 0 {
			return nil
		}
	}
	return nil
}
