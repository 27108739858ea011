// Command indexbuilder builds the row-aligned catalog and vector artifacts
// from a raw product feed. Run it whenever the feed changes; the API server
// loads its output at startup.
package main

import (
	"context"
	"flag"
	"time"

	"go.uber.org/zap"

	"github.com/bazaar-labs/bazaarsearch/internal/config"
	"github.com/bazaar-labs/bazaarsearch/internal/ingest"
	logpkg "github.com/bazaar-labs/bazaarsearch/internal/logger"
	openaiTransport "github.com/bazaar-labs/bazaarsearch/internal/transport/openai"
)

func main() {
	source := flag.String("source", "product_data.json", "path to the raw product feed")
	timeout := flag.Duration("timeout", 30*time.Minute, "overall build timeout")
	flag.Parse()

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Building search artifacts",
		zap.String("source", *source),
		zap.String("catalog_path", cfg.Artifacts.CatalogPath),
		zap.String("vectors_path", cfg.Artifacts.VectorsPath),
		zap.String("embedding_model", cfg.Embedding.Model),
	)

	products, err := ingest.LoadSource(*source)
	if err != nil {
		logger.Fatal("Failed to load product feed", zap.Error(err))
	}
	logger.Info("Product feed loaded", zap.Int("unique_products", len(products)))

	embedder := openaiTransport.NewEmbedder(&openaiTransport.EmbedderConfig{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Logger:     logger,
	})

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	builder := ingest.NewBuilder(embedder, logger)
	flat, err := builder.BuildIndex(ctx, products)
	if err != nil {
		logger.Fatal("Failed to build vector index", zap.Error(err))
	}

	if err := ingest.WriteCatalog(cfg.Artifacts.CatalogPath, products); err != nil {
		logger.Fatal("Failed to write catalog artifact", zap.Error(err))
	}
	if err := flat.Save(cfg.Artifacts.VectorsPath); err != nil {
		logger.Fatal("Failed to write vectors artifact", zap.Error(err))
	}

	logger.Info("Artifacts written",
		zap.Int("rows", flat.Len()),
		zap.Int("dimensions", flat.Dimension()),
	)
}
