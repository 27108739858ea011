package search

import (
	"context"

	"github.com/bazaar-labs/bazaarsearch/internal/domain"
	"github.com/bazaar-labs/bazaarsearch/internal/domain/product"
	"github.com/bazaar-labs/bazaarsearch/internal/domain/task"
	"github.com/bazaar-labs/bazaarsearch/internal/index"
)

type mockPlanner struct {
	tasks []task.Task
	calls int
	query string
}

func (m *mockPlanner) Plan(_ context.Context, rawQuery string) []task.Task {
	m.calls++
	m.query = rawQuery
	return m.tasks
}

type mockEmbedder struct {
	vec   []float32
	err   error
	calls int
	texts []string
}

func (m *mockEmbedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	m.calls++
	m.texts = append(m.texts, text)
	if m.err != nil {
		return domain.EmbeddingResult{}, m.err
	}
	return domain.EmbeddingResult{Embedding: m.vec, TotalTokens: 3}, nil
}

type mockIndex struct {
	candidates []index.Candidate
	err        error
	calls      int
	lastK      int
}

func (m *mockIndex) Search(_ []float32, k int) ([]index.Candidate, error) {
	m.calls++
	m.lastK = k
	if m.err != nil {
		return nil, m.err
	}
	if k < len(m.candidates) {
		return m.candidates[:k], nil
	}
	return m.candidates, nil
}

// mockCatalog serves products by row, like the artifact-backed store.
type mockCatalog struct {
	products []product.Product
}

func (m *mockCatalog) Resolve(row int) (product.Product, error) {
	if row < 0 || row >= len(m.products) {
		return product.Product{}, domain.NewRowOutOfRange(row, len(m.products))
	}
	return m.products[row], nil
}

func (m *mockCatalog) Len() int {
	return len(m.products)
}

// allRows returns candidates covering every catalog row in row order, with
// distances increasing so the ranking is unambiguous.
func allRows(n int) []index.Candidate {
	out := make([]index.Candidate, n)
	for i := range out {
		out[i] = index.Candidate{Row: i, Distance: float32(i)}
	}
	return out
}

func strPtr(s string) *string { return &s }

func resultIDs(products []product.Product) []string {
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}
