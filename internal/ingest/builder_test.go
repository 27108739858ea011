package ingest

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.uber.org/zap"

	"github.com/bazaar-labs/bazaarsearch/internal/domain"
	"github.com/bazaar-labs/bazaarsearch/internal/domain/product"
)

// seqEmbedder returns a distinct vector per call so row alignment is
// observable. It has no batch path, exercising the fallback.
type seqEmbedder struct {
	next  float32
	calls int
	err   error
}

func (s *seqEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	if s.err != nil {
		return domain.EmbeddingResult{}, s.err
	}
	s.calls++
	s.next++
	return domain.EmbeddingResult{Embedding: []float32{s.next, 0}}, nil
}

type batchEmbedder struct {
	seqEmbedder
	batchCalls int
}

func (b *batchEmbedder) BatchEmbed(_ context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	b.batchCalls++
	out := make([][]float32, len(texts))
	for i := range texts {
		b.next++
		out[i] = []float32{b.next, 0}
	}
	return domain.BatchEmbeddingResult{Embeddings: out}, nil
}

func feedOf(n int) []product.Product {
	products := make([]product.Product, n)
	for i := range products {
		products[i] = product.Product{
			ID:    fmt.Sprintf("p%d", i),
			Title: fmt.Sprintf("Item %d", i),
		}
	}
	return products
}

func TestBuildIndex_RowAlignment(t *testing.T) {
	emb := &seqEmbedder{}
	b := NewBuilder(emb, zap.NewNop())

	flat, err := b.BuildIndex(context.Background(), feedOf(3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if flat.Len() != 3 {
		t.Fatalf("expected 3 rows, got %d", flat.Len())
	}
	if emb.calls != 3 {
		t.Errorf("expected one embed per row, got %d", emb.calls)
	}

	// Row i holds the i-th embedded vector, so nearest to (1,0) is row 0.
	got, err := flat.Search([]float32{1, 0}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0].Row != 0 {
		t.Errorf("row alignment broken: nearest row %d, want 0", got[0].Row)
	}
}

func TestBuildIndex_UsesBatchPath(t *testing.T) {
	emb := &batchEmbedder{}
	b := NewBuilder(emb, zap.NewNop())

	// 130 rows span three batches of at most 64.
	flat, err := b.BuildIndex(context.Background(), feedOf(130))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if flat.Len() != 130 {
		t.Fatalf("expected 130 rows, got %d", flat.Len())
	}
	if emb.batchCalls != 3 {
		t.Errorf("expected 3 batch calls, got %d", emb.batchCalls)
	}
	if emb.calls != 0 {
		t.Errorf("single embed path must not run, got %d calls", emb.calls)
	}
}

func TestBuildIndex_EmptyFeed(t *testing.T) {
	b := NewBuilder(&seqEmbedder{}, zap.NewNop())
	if _, err := b.BuildIndex(context.Background(), nil); err == nil {
		t.Fatal("expected error for empty feed")
	}
}

func TestBuildIndex_EmbedError(t *testing.T) {
	b := NewBuilder(&seqEmbedder{err: errors.New("provider down")}, zap.NewNop())
	if _, err := b.BuildIndex(context.Background(), feedOf(2)); err == nil {
		t.Fatal("expected embed error to surface")
	}
}
