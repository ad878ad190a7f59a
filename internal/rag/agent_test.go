package rag

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/docsage/docsage/internal/cache"
	"github.com/docsage/docsage/internal/llm"
	"github.com/docsage/docsage/internal/model"
)

// stubStore implements store.Store with canned query results
type stubStore struct {
	passages []model.RetrievedPassage
	queryErr error

	added struct {
		ids       []string
		texts     []string
		metadatas []map[string]any
	}
	count int
}

func (s *stubStore) Add(ctx context.Context, ids []string, texts []string, metadatas []map[string]any) error {
	s.added.ids = append(s.added.ids, ids...)
	s.added.texts = append(s.added.texts, texts...)
	s.added.metadatas = append(s.added.metadatas, metadatas...)
	s.count += len(ids)
	return nil
}

func (s *stubStore) Query(ctx context.Context, query string, topK int) ([]model.RetrievedPassage, error) {
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	if len(s.passages) > topK {
		return s.passages[:topK], nil
	}
	return s.passages, nil
}

func (s *stubStore) Count(ctx context.Context) (int, error) {
	return s.count, nil
}

func (s *stubStore) DeleteAll(ctx context.Context) error {
	s.count = 0
	s.passages = nil
	return nil
}

// stubProvider implements llm.Provider, recording every prompt
type stubProvider struct {
	response string
	err      error
	prompts  []string
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	p.prompts = append(p.prompts, req.Prompt)
	if p.err != nil {
		return nil, p.err
	}
	return &llm.CompletionResponse{Text: p.response, Model: "stub-model"}, nil
}

func (p *stubProvider) IsAvailable(ctx context.Context) bool { return true }

func sim(v float64) *float64 { return &v }

func newTestAgent(st *stubStore, provider *stubProvider) *Agent {
	gen := llm.NewGeneratorWithProvider(provider, llm.Config{Model: "stub-model"})
	kb := NewKnowledgeBase(st, nil, "", "docs")
	return NewAgent(kb, gen, 3, false)
}

func TestAgent_Answer_WithSources(t *testing.T) {
	st := &stubStore{passages: []model.RetrievedPassage{
		{
			ID:         "c1",
			Text:       "Registration is free and open to all students.",
			Metadata:   map[string]any{"source": "guide.txt"},
			Similarity: sim(0.91),
		},
		{
			ID:         "c2",
			Text:       "Events run from 9:00 AM to 5:00 PM.",
			Metadata:   map[string]any{"source": "schedule.txt"},
			Similarity: sim(0.72),
		},
	}}
	provider := &stubProvider{response: "According to Source 1, registration is free."}
	agent := newTestAgent(st, provider)

	result := agent.Answer(context.Background(), "Is registration free?")

	if !result.HasSources {
		t.Error("Expected HasSources to be true")
	}
	if result.NumSources != 2 {
		t.Errorf("Expected 2 sources, got %d", result.NumSources)
	}
	if result.Answer != "According to Source 1, registration is free." {
		t.Errorf("Unexpected answer: %q", result.Answer)
	}
	if result.Sources[0].Similarity != 0.91 {
		t.Errorf("Expected similarity 0.91, got %v", result.Sources[0].Similarity)
	}

	// The grounded prompt carries numbered source blocks and the
	// citation instructions
	if len(provider.prompts) != 1 {
		t.Fatalf("Expected 1 generation, got %d", len(provider.prompts))
	}
	prompt := provider.prompts[0]
	for _, want := range []string{
		"=== KNOWLEDGE BASE CONTEXT ===",
		"[Source 1: guide.txt]",
		"[Source 2: schedule.txt]",
		"=== USER QUESTION ===",
		"Is registration free?",
		"=== INSTRUCTIONS ===",
		`"According to Source 1..."`,
		"DO NOT make up information",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Expected prompt to contain %q", want)
		}
	}
}

func TestAgent_Answer_NoSources(t *testing.T) {
	st := &stubStore{} // empty store
	provider := &stubProvider{response: "I don't have that information available."}
	agent := newTestAgent(st, provider)

	result := agent.Answer(context.Background(), "What is the meaning of life?")

	if result.HasSources {
		t.Error("Expected HasSources to be false")
	}
	if result.NumSources != 0 {
		t.Errorf("Expected 0 sources, got %d", result.NumSources)
	}
	if len(result.Sources) != 0 {
		t.Errorf("Expected empty sources, got %v", result.Sources)
	}

	// The decline prompt instructs the model to answer honestly
	prompt := provider.prompts[0]
	if !strings.Contains(prompt, "don't have any relevant information") {
		t.Errorf("Expected decline prompt, got %q", prompt)
	}
	if strings.Contains(prompt, "=== KNOWLEDGE BASE CONTEXT ===") {
		t.Error("Expected no context block without passages")
	}
}

func TestAgent_Answer_RetrievalFailure(t *testing.T) {
	st := &stubStore{queryErr: errors.New("connection refused")}
	provider := &stubProvider{response: "I don't have that information."}
	agent := newTestAgent(st, provider)

	result := agent.Answer(context.Background(), "Is registration free?")

	// Retrieval failure degrades to an honest no-context answer
	if result.HasSources {
		t.Error("Expected HasSources to be false after retrieval failure")
	}
	if result.Answer == "" {
		t.Error("Expected an answer despite retrieval failure")
	}
}

func TestAgent_Answer_GenerationFailure(t *testing.T) {
	st := &stubStore{passages: []model.RetrievedPassage{
		{ID: "c1", Text: "Some context.", Metadata: map[string]any{"source": "a.txt"}},
	}}
	provider := &stubProvider{err: errors.New("API rate limit exceeded")}
	agent := newTestAgent(st, provider)

	result := agent.Answer(context.Background(), "A question")

	if !strings.Contains(result.Answer, "unable to generate") {
		t.Errorf("Expected degraded answer, got %q", result.Answer)
	}
	if !strings.Contains(result.Answer, "rate limit") {
		t.Errorf("Expected underlying cause in answer, got %q", result.Answer)
	}
	// Sources still reported so the user sees what was retrieved
	if !result.HasSources {
		t.Error("Expected sources to survive generation failure")
	}
}

func TestAgent_Answer_SourcePreviewTruncation(t *testing.T) {
	long := strings.Repeat("word ", 100) // 500 chars
	st := &stubStore{passages: []model.RetrievedPassage{
		{ID: "c1", Text: long, Metadata: map[string]any{"source": "a.txt"}},
	}}
	provider := &stubProvider{response: "ok"}
	agent := newTestAgent(st, provider)

	result := agent.Answer(context.Background(), "q")

	preview := result.Sources[0].Text
	if !strings.HasSuffix(preview, "...") {
		t.Errorf("Expected ellipsis suffix, got %q", preview)
	}
	if len([]rune(preview)) != previewLimit+3 {
		t.Errorf("Expected %d chars, got %d", previewLimit+3, len([]rune(preview)))
	}

	// The full text still goes to the model
	if !strings.Contains(provider.prompts[0], long) {
		t.Error("Expected untruncated text in the prompt")
	}
}

func TestAgent_Answer_ShortSourceNotTruncated(t *testing.T) {
	st := &stubStore{passages: []model.RetrievedPassage{
		{ID: "c1", Text: "Short passage.", Metadata: map[string]any{"source": "a.txt"}},
	}}
	provider := &stubProvider{response: "ok"}
	agent := newTestAgent(st, provider)

	result := agent.Answer(context.Background(), "q")
	if result.Sources[0].Text != "Short passage." {
		t.Errorf("Expected untruncated text, got %q", result.Sources[0].Text)
	}
}

func TestAgent_Answer_UnknownSourceLabel(t *testing.T) {
	st := &stubStore{passages: []model.RetrievedPassage{
		{ID: "c1", Text: "Passage without metadata."},
	}}
	provider := &stubProvider{response: "ok"}
	agent := newTestAgent(st, provider)

	agent.Answer(context.Background(), "q")

	if !strings.Contains(provider.prompts[0], "[Source 1: Unknown Source]") {
		t.Errorf("Expected Unknown Source label, got %q", provider.prompts[0])
	}
}

func TestAgent_Answer_NilKnowledgeBase(t *testing.T) {
	provider := &stubProvider{response: "I don't have that information."}
	gen := llm.NewGeneratorWithProvider(provider, llm.Config{})
	agent := NewAgent(nil, gen, 3, false)

	result := agent.Answer(context.Background(), "q")

	if result.HasSources {
		t.Error("Expected no sources without a knowledge base")
	}
	if result.Answer == "" {
		t.Error("Expected an answer without a knowledge base")
	}
}

func TestAgent_Answer_CacheHit(t *testing.T) {
	st := &stubStore{passages: []model.RetrievedPassage{
		{ID: "c1", Text: "Cached context.", Metadata: map[string]any{"source": "a.txt"}},
	}}
	provider := &stubProvider{response: "cached answer"}
	agent := newTestAgent(st, provider)

	ac := cache.NewAnswerCache(cache.NewMemoryCache(time.Minute, time.Minute), time.Minute)
	agent.WithAnswerCache(ac, "stub-model")

	first := agent.Answer(context.Background(), "q")
	second := agent.Answer(context.Background(), "q")

	if len(provider.prompts) != 1 {
		t.Errorf("Expected 1 generation with cache, got %d", len(provider.prompts))
	}
	if first.Answer != second.Answer {
		t.Errorf("Expected identical answers, got %q vs %q", first.Answer, second.Answer)
	}
}

func TestAgent_Answer_DegradedAnswerNotCached(t *testing.T) {
	st := &stubStore{passages: []model.RetrievedPassage{
		{ID: "c1", Text: "Context.", Metadata: map[string]any{"source": "a.txt"}},
	}}
	provider := &stubProvider{err: errors.New("boom")}
	agent := newTestAgent(st, provider)

	ac := cache.NewAnswerCache(cache.NewMemoryCache(time.Minute, time.Minute), time.Minute)
	agent.WithAnswerCache(ac, "stub-model")

	agent.Answer(context.Background(), "q")

	// Recover the provider; the next call must regenerate
	provider.err = nil
	provider.response = "real answer"

	result := agent.Answer(context.Background(), "q")
	if result.Answer != "real answer" {
		t.Errorf("Expected fresh answer after recovery, got %q", result.Answer)
	}
}

func TestAgent_Chat_CarriesConversation(t *testing.T) {
	st := &stubStore{passages: []model.RetrievedPassage{
		{ID: "c1", Text: "GDG events are free.", Metadata: map[string]any{"source": "faq.txt"}},
	}}
	provider := &stubProvider{response: "They are free."}
	agent := newTestAgent(st, provider)

	agent.Chat(context.Background(), "Do events cost money?")
	agent.Chat(context.Background(), "And where are they held?")

	if len(provider.prompts) != 2 {
		t.Fatalf("Expected 2 generations, got %d", len(provider.prompts))
	}

	// The second turn replays the first assistant reply
	if !strings.Contains(provider.prompts[1], "ASSISTANT: They are free.") {
		t.Errorf("Expected prior turn in conversation prompt, got %q", provider.prompts[1])
	}
}

func TestAgent_Retrieve_TopK(t *testing.T) {
	st := &stubStore{passages: []model.RetrievedPassage{
		{ID: "a", Text: "one"}, {ID: "b", Text: "two"},
		{ID: "c", Text: "three"}, {ID: "d", Text: "four"},
	}}
	provider := &stubProvider{response: "ok"}
	gen := llm.NewGeneratorWithProvider(provider, llm.Config{})
	kb := NewKnowledgeBase(st, nil, "", "docs")
	agent := NewAgent(kb, gen, 2, false)

	passages := agent.Retrieve(context.Background(), "q")
	if len(passages) != 2 {
		t.Errorf("Expected topK=2 passages, got %d", len(passages))
	}
}

func TestNewAgent_DefaultPersona(t *testing.T) {
	provider := &stubProvider{response: "ok"}
	gen := llm.NewGeneratorWithProvider(provider, llm.Config{})
	NewAgent(nil, gen, 0, false)

	if !strings.Contains(gen.Persona(), "cite the source documents") {
		t.Errorf("Expected default persona to be applied, got %q", gen.Persona())
	}
}

func TestBuildPrompt_Empty(t *testing.T) {
	prompt := BuildPrompt("anything?", nil)
	if !strings.Contains(prompt, "respond honestly") {
		t.Errorf("Expected honest-decline instruction, got %q", prompt)
	}
}
