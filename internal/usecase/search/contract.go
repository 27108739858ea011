package search

import (
	"context"

	"github.com/bazaar-labs/bazaarsearch/internal/domain"
	"github.com/bazaar-labs/bazaarsearch/internal/domain/product"
	"github.com/bazaar-labs/bazaarsearch/internal/domain/task"
	"github.com/bazaar-labs/bazaarsearch/internal/index"
)

// Planner decomposes a raw query into search tasks.
type Planner interface {
	Plan(ctx context.Context, rawQuery string) []task.Task
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// Index returns the k nearest catalog rows by distance, ascending.
type Index interface {
	Search(query []float32, k int) ([]index.Candidate, error)
}

// Catalog resolves index rows to product records.
type Catalog interface {
	Resolve(row int) (product.Product, error)
}
