package embed

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"github.com/docsage/docsage/internal/model"
	"github.com/docsage/docsage/internal/worker"
)

// openAIDimensions maps known embedding models to their vector sizes.
var openAIDimensions = map[string]int{
	"text-embedding-3-small": 1536,
	"text-embedding-3-large": 3072,
	"text-embedding-ada-002": 1536,
}

// OpenAIEmbedder produces embeddings via OpenAI's embeddings API.
type OpenAIEmbedder struct {
	client    *openai.Client
	model     string
	dimension int
	limiter   *worker.Limiter
}

// NewOpenAIEmbedder creates a new OpenAI embedder. The limiter is optional;
// when set, every API call waits for the "openai-embeddings" endpoint.
func NewOpenAIEmbedder(cfg model.EmbeddingConfig, limiter *worker.Limiter) (*OpenAIEmbedder, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required for embeddings")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	embeddingModel := cfg.Model
	if embeddingModel == "" {
		embeddingModel = "text-embedding-3-small"
	}
	dimension, ok := openAIDimensions[embeddingModel]
	if !ok {
		return nil, fmt.Errorf("unknown embedding model: %s", embeddingModel)
	}

	return &OpenAIEmbedder{
		client:    openai.NewClientWithConfig(clientConfig),
		model:     embeddingModel,
		dimension: dimension,
		limiter:   limiter,
	}, nil
}

// Name returns the embedder name
func (e *OpenAIEmbedder) Name() string {
	return "openai"
}

// Dimension returns the vector length of the configured model
func (e *OpenAIEmbedder) Dimension() int {
	return e.dimension
}

// Embed requests an embedding for the given text
func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	if e.limiter != nil {
		if err := e.limiter.Wait(ctx, "openai-embeddings"); err != nil {
			return nil, err
		}
	}

	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.EmbeddingModel(e.model),
	})
	if err != nil {
		return nil, fmt.Errorf("OpenAI embeddings API error: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("no embedding returned")
	}

	vec := make([]float64, len(resp.Data[0].Embedding))
	for i, v := range resp.Data[0].Embedding {
		vec[i] = float64(v)
	}
	return vec, nil
}
