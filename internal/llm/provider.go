package llm

import (
	"context"

	"github.com/docsage/docsage/internal/model"
)

// Provider defines the interface for text-completion providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete generates a completion for the given request
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// CompletionRequest contains the input for a text completion
type CompletionRequest struct {
	// Prompt is the full user prompt
	Prompt string

	// System is the optional system/persona prompt
	System string

	// Model is the specific model to use (provider-specific)
	Model string

	// Temperature controls sampling randomness; nil uses the provider default
	Temperature *float64

	// MaxTokens limits the response length
	MaxTokens int
}

// CompletionResponse is the typed result contract for a completion call.
// Text is "" when the provider yielded no usable text; callers must treat
// that as a valid empty answer, never as a fault.
type CompletionResponse struct {
	// Text is the generated completion
	Text string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption where the provider reports it
	TokensUsed int
}

// Config holds completion provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// Temperature is the default sampling temperature
	Temperature float64

	// MaxTokens for response generation
	MaxTokens int

	// Persona is the system prompt applied to every request
	Persona string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:    "", // Disabled by default
		Model:       "",
		Timeout:     30,
		Temperature: 0.3,
		MaxTokens:   2048,
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(modelConfig model.LLMConfig) Config {
	return Config{
		Provider:    modelConfig.Provider,
		Model:       modelConfig.Model,
		APIKey:      modelConfig.APIKey,
		BaseURL:     modelConfig.BaseURL,
		Timeout:     modelConfig.Timeout,
		Temperature: modelConfig.Temperature,
		MaxTokens:   modelConfig.MaxTokens,
		Persona:     modelConfig.Persona,
	}
}
