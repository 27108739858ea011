package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/bazaar-labs/bazaarsearch/internal/domain"
	"github.com/bazaar-labs/bazaarsearch/internal/domain/product"
	"github.com/bazaar-labs/bazaarsearch/internal/index"
)

const embedBatchSize = 64

// Builder embeds catalog records and assembles the similarity index.
type Builder struct {
	embed  domain.Embedder
	logger *zap.Logger
}

// NewBuilder creates an index builder.
func NewBuilder(embed domain.Embedder, logger *zap.Logger) *Builder {
	return &Builder{embed: embed, logger: logger}
}

// BuildIndex embeds every record's combined text, in row order, into a flat
// index. Row i of the returned index corresponds to products[i]; that
// alignment is the integrity invariant the service relies on at query time.
func (b *Builder) BuildIndex(ctx context.Context, products []product.Product) (*index.Flat, error) {
	if len(products) == 0 {
		return nil, fmt.Errorf("no products to index")
	}

	texts := make([]string, len(products))
	for i, p := range products {
		texts[i] = p.CombinedText()
	}

	var flat *index.Flat
	for start := 0; start < len(texts); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(texts) {
			end = len(texts)
		}

		res, err := b.embedBatch(ctx, texts[start:end])
		if err != nil {
			return nil, fmt.Errorf("embed rows %d..%d: %w", start, end-1, err)
		}

		for i, vec := range res.Embeddings {
			if flat == nil {
				flat, err = index.NewFlat(len(vec))
				if err != nil {
					return nil, err
				}
			}
			if err := flat.Add(vec); err != nil {
				return nil, fmt.Errorf("add row %d: %w", start+i, err)
			}
		}

		b.logger.Info("embedded batch",
			zap.Int("rows_done", end),
			zap.Int("rows_total", len(texts)),
			zap.Int("tokens", res.TotalTokens),
		)
	}

	return flat, nil
}

func (b *Builder) embedBatch(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	if be, ok := b.embed.(domain.BatchEmbedder); ok {
		return be.BatchEmbed(ctx, texts)
	}
	return domain.BatchFallback(ctx, b.embed, texts)
}

// WriteCatalog writes the row-ordered catalog artifact.
func WriteCatalog(path string, products []product.Product) error {
	data, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}
	if err := os.WriteFile(filepath.Clean(path), data, 0o644); err != nil {
		return fmt.Errorf("write catalog %s: %w", path, err)
	}
	return nil
}
