package openai

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/bazaar-labs/bazaarsearch/internal/domain"
	"github.com/bazaar-labs/bazaarsearch/internal/metrics"
)

// Extractor is the intent extraction provider using a chat-completion model.
// Its output is untrusted free text; parsing and validation happen in the
// planner, not here.
type Extractor struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// ExtractorConfig holds the extractor provider settings.
type ExtractorConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Logger  *zap.Logger
}

// NewExtractor creates an OpenAI-compatible chat extractor.
func NewExtractor(cfg *ExtractorConfig) *Extractor {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Extractor{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
		logger: cfg.Logger,
	}
}

// Extract sends the raw query to the chat model and returns its text output.
func (e *Extractor) Extract(ctx context.Context, query string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: nluPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("Query: %q", query)},
		},
	}

	start := time.Now()

	resp, err := e.client.CreateChatCompletion(ctx, req)

	duration := time.Since(start)

	if err != nil {
		metrics.ExtractionRequestsTotal.WithLabelValues(e.model, "error").Inc()
		return "", parseAPIError("extraction", err, domain.ErrExtractorProviderError)
	}

	if len(resp.Choices) == 0 {
		metrics.ExtractionRequestsTotal.WithLabelValues(e.model, "error").Inc()
		return "", fmt.Errorf("empty extraction response: %w", domain.ErrExtractorProviderError)
	}

	metrics.ExtractionRequestsTotal.WithLabelValues(e.model, "success").Inc()
	metrics.ExtractionRequestDuration.WithLabelValues(e.model).Observe(duration.Seconds())

	return resp.Choices[0].Message.Content, nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (e *Extractor) HealthCheck(ctx context.Context) error {
	if _, err := e.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}
