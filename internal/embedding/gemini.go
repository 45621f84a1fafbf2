package embedding

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/spigell/resume-scorer/internal/utils"
)

const (
	defaultGeminiModel     = "text-embedding-004"
	defaultGeminiBatchSize = 100
	defaultMaxLogLength    = 200

	semanticSimilarityTask = "SEMANTIC_SIMILARITY"
)

type contentEmbedder interface {
	EmbedContent(ctx context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error)
}

// Gemini embeds texts with the Gemini embedding API.
type Gemini struct {
	models    contentEmbedder
	model     string
	batchSize int
	maxLogLen int
	logger    *zap.Logger
}

// NewGemini creates a provider configured for the Gemini API backend.
func NewGemini(ctx context.Context, apiKey, model string, batchSize, maxLogLength int, logger *zap.Logger) (*Gemini, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return newGemini(client.Models, model, batchSize, maxLogLength, logger), nil
}

func newGemini(models contentEmbedder, model string, batchSize, maxLogLength int, logger *zap.Logger) *Gemini {
	if model = strings.TrimSpace(model); model == "" {
		model = defaultGeminiModel
	}
	if batchSize <= 0 {
		batchSize = defaultGeminiBatchSize
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Gemini{
		models:    models,
		model:     model,
		batchSize: batchSize,
		maxLogLen: maxLogLength,
		logger:    logger,
	}
}

// Embed sends texts in batches and returns one vector per text, in input order.
func (g *Gemini) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if g == nil || g.models == nil {
		return nil, errors.New("gemini provider is not initialized")
	}

	vectors := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += g.batchSize {
		end := min(start+g.batchSize, len(texts))
		batch := texts[start:end]

		g.logger.Debug("gemini embed content request",
			zap.Int("batch_start", start),
			zap.Int("batch_size", len(batch)),
			zap.String("batch_preview", utils.TruncateForLog(strings.Join(batch, ", "), g.maxLogLen)),
		)

		contents := make([]*genai.Content, 0, len(batch))
		for _, text := range batch {
			contents = append(contents, &genai.Content{
				Role:  genai.RoleUser,
				Parts: []*genai.Part{{Text: text}},
			})
		}

		resp, err := g.models.EmbedContent(ctx, g.model, contents, &genai.EmbedContentConfig{
			TaskType: semanticSimilarityTask,
		})
		if err != nil {
			return nil, fmt.Errorf("embed content: %w", err)
		}

		if resp == nil || len(resp.Embeddings) != len(batch) {
			got := 0
			if resp != nil {
				got = len(resp.Embeddings)
			}
			return nil, fmt.Errorf("gemini api returned %d embeddings for %d texts", got, len(batch))
		}

		for i, embedding := range resp.Embeddings {
			if embedding == nil || len(embedding.Values) == 0 {
				return nil, fmt.Errorf("gemini api returned empty embedding for %q", batch[i])
			}
			vectors = append(vectors, embedding.Values)
		}
	}

	return vectors, nil
}

func (g *Gemini) Name() string { return ProviderGemini }

func (g *Gemini) Model() string {
	if g == nil {
		return ""
	}
	return g.model
}
