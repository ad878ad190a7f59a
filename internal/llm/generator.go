package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// maxTranscriptTurns bounds the chat transcript sent back to the model.
const maxTranscriptTurns = 10

// Interaction records one completed prompt/response exchange
type Interaction struct {
	Prompt     string
	Response   string
	Model      string
	TokensUsed int
}

// Stats summarizes generator usage
type Stats struct {
	Provider          string  `json:"provider"`
	Model             string  `json:"model"`
	Temperature       float64 `json:"temperature"`
	TotalInteractions int     `json:"total_interactions"`
	TotalTokens       int     `json:"total_tokens"`
	HasPersona        bool    `json:"has_persona"`
}

type transcriptTurn struct {
	role string // "user" or "assistant"
	text string
}

// Generator wraps a completion provider with a persona and conversation state.
// A Generator with no provider is disabled: it answers with a diagnostic
// message instead of failing the caller.
type Generator struct {
	provider Provider
	config   Config

	mu           sync.Mutex
	persona      string
	interactions []Interaction
	transcript   []transcriptTurn
	totalTokens  int
}

// NewGenerator creates a generator from configuration. An empty provider
// name yields a disabled generator, not an error.
func NewGenerator(config Config) (*Generator, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, fmt.Errorf("create LLM provider: %w", err)
	}

	return &Generator{
		provider: provider,
		config:   config,
		persona:  config.Persona,
	}, nil
}

// NewGeneratorWithProvider wraps an existing provider
func NewGeneratorWithProvider(provider Provider, config Config) *Generator {
	return &Generator{
		provider: provider,
		config:   config,
		persona:  config.Persona,
	}
}

// IsEnabled returns true if a provider is configured
func (g *Generator) IsEnabled() bool {
	return g.provider != nil
}

// ProviderName returns the name of the configured provider
func (g *Generator) ProviderName() string {
	if g.provider == nil {
		return ""
	}
	return g.provider.Name()
}

// SetPersona sets the system prompt applied to every request
func (g *Generator) SetPersona(persona string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.persona = persona
}

// Persona returns the current system prompt
func (g *Generator) Persona() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.persona
}

// Generate produces a completion for the prompt. A disabled generator
// returns a diagnostic message with a nil error so callers can surface it
// directly to the user.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	if g.provider == nil {
		return "Language model is not available. Configure an LLM provider to enable answer generation.", nil
	}

	g.mu.Lock()
	persona := g.persona
	g.mu.Unlock()

	resp, err := g.provider.Complete(ctx, CompletionRequest{
		Prompt: prompt,
		System: persona,
	})
	if err != nil {
		return "", fmt.Errorf("generate completion: %w", err)
	}

	g.mu.Lock()
	g.interactions = append(g.interactions, Interaction{
		Prompt:     prompt,
		Response:   resp.Text,
		Model:      resp.Model,
		TokensUsed: resp.TokensUsed,
	})
	g.totalTokens += resp.TokensUsed
	g.mu.Unlock()

	return resp.Text, nil
}

// Chat sends a message as part of a running conversation. Only the most
// recent turns are replayed to the model.
func (g *Generator) Chat(ctx context.Context, message string) (string, error) {
	g.mu.Lock()
	g.transcript = append(g.transcript, transcriptTurn{role: "user", text: message})
	prompt := g.buildChatPromptLocked()
	g.mu.Unlock()

	reply, err := g.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}

	g.mu.Lock()
	g.transcript = append(g.transcript, transcriptTurn{role: "assistant", text: reply})
	g.mu.Unlock()

	return reply, nil
}

// buildChatPromptLocked renders the bounded transcript. Caller holds g.mu.
func (g *Generator) buildChatPromptLocked() string {
	turns := g.transcript
	if len(turns) > maxTranscriptTurns {
		turns = turns[len(turns)-maxTranscriptTurns:]
	}

	var convo []string
	for _, turn := range turns {
		prefix := "USER"
		if turn.role == "assistant" {
			prefix = "ASSISTANT"
		}
		convo = append(convo, fmt.Sprintf("%s: %s", prefix, turn.text))
	}
	convo = append(convo, "ASSISTANT:")

	return strings.Join(convo, "\n\n")
}

// ClearHistory resets both the interaction log and the chat transcript
func (g *Generator) ClearHistory() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.interactions = nil
	g.transcript = nil
	g.totalTokens = 0
}

// History returns a copy of all recorded interactions
func (g *Generator) History() []Interaction {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]Interaction, len(g.interactions))
	copy(out, g.interactions)
	return out
}

// GetStats returns generator usage statistics
func (g *Generator) GetStats() Stats {
	g.mu.Lock()
	defer g.mu.Unlock()
	return Stats{
		Provider:          g.ProviderName(),
		Model:             g.config.Model,
		Temperature:       g.config.Temperature,
		TotalInteractions: len(g.interactions),
		TotalTokens:       g.totalTokens,
		HasPersona:        g.persona != "",
	}
}
