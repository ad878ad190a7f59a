package rag

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/docsage/docsage/internal/cache"
	"github.com/docsage/docsage/internal/llm"
	"github.com/docsage/docsage/internal/model"
)

// previewLimit bounds the source text carried in an AnswerResult.
const previewLimit = 300

// defaultTopK is how many passages ground an answer when unset.
const defaultTopK = 3

// Agent answers questions by retrieving passages from a knowledge base
// and asking a language model to answer from them, with cited sources.
type Agent struct {
	kb        *KnowledgeBase
	generator *llm.Generator
	topK      int
	verbose   bool

	answerCache *cache.AnswerCache
	cacheModel  string
}

// NewAgent creates an agent over a knowledge base and a generator.
// A nil knowledge base degrades retrieval to no sources; the agent still
// answers, honestly declining for lack of context.
func NewAgent(kb *KnowledgeBase, generator *llm.Generator, topK int, verbose bool) *Agent {
	if topK <= 0 {
		topK = defaultTopK
	}

	if generator != nil && generator.Persona() == "" {
		generator.SetPersona(model.DefaultPersona)
	}

	return &Agent{
		kb:        kb,
		generator: generator,
		topK:      topK,
		verbose:   verbose,
	}
}

// SetKnowledgeBase connects a knowledge base to the agent
func (a *Agent) SetKnowledgeBase(kb *KnowledgeBase) {
	a.kb = kb
}

// WithAnswerCache enables answer caching. cacheModel keys entries so a
// model switch never serves stale answers.
func (a *Agent) WithAnswerCache(ac *cache.AnswerCache, cacheModel string) *Agent {
	a.answerCache = ac
	a.cacheModel = cacheModel
	return a
}

// Retrieve fetches the passages most relevant to the query. Store
// failures degrade to an empty result so a single bad query never kills
// an interactive session.
func (a *Agent) Retrieve(ctx context.Context, query string) []model.RetrievedPassage {
	if a.kb == nil {
		if a.verbose {
			fmt.Fprintln(os.Stderr, "Warning: no knowledge base connected")
		}
		return nil
	}

	passages, err := a.kb.Query(ctx, query, a.topK)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: retrieval failed: %v\n", err)
		return nil
	}
	return passages
}

// BuildPrompt renders the grounded prompt for the model. With no
// passages it instructs the model to decline honestly instead of
// answering from parametric knowledge.
func BuildPrompt(query string, passages []model.RetrievedPassage) string {
	if len(passages) == 0 {
		return fmt.Sprintf(`The user asked: %q

You don't have any relevant information in your knowledge base to answer this question.
Please respond honestly that you don't have this information available, and suggest
that the user might need to provide relevant documents or ask a different question.`, query)
	}

	var b strings.Builder
	b.WriteString("=== KNOWLEDGE BASE CONTEXT ===\n\n")
	b.WriteString("Here are relevant excerpts from the knowledge base:\n\n")

	for i, p := range passages {
		source := "Unknown Source"
		if s, ok := p.Metadata["source"].(string); ok && s != "" {
			source = s
		}
		fmt.Fprintf(&b, "[Source %d: %s]\n%s\n\n", i+1, source, p.Text)
	}

	fmt.Fprintf(&b, `=== USER QUESTION ===

%s

=== INSTRUCTIONS ===

Please answer the user's question using ONLY the information provided in the context above.

Important guidelines:
1. Cite which source(s) you used (e.g., "According to Source 1...", "Source 2 states...")
2. If the context contains the answer, provide it clearly and concisely
3. If the context doesn't fully answer the question, say so and explain what information is available
4. DO NOT make up information or use knowledge outside the provided context
5. Be helpful and conversational while staying factual

Your answer:`, query)

	return b.String()
}

// Answer runs the full retrieve-prompt-generate pipeline for one query
func (a *Agent) Answer(ctx context.Context, query string) *model.AnswerResult {
	return a.answer(ctx, query, false)
}

// Chat answers a query as part of a running conversation: the generation
// step replays recent turns so follow-up questions keep their context.
func (a *Agent) Chat(ctx context.Context, query string) *model.AnswerResult {
	return a.answer(ctx, query, true)
}

func (a *Agent) answer(ctx context.Context, query string, conversational bool) *model.AnswerResult {
	collection := ""
	if a.kb != nil {
		collection = a.kb.collection
	}

	if a.answerCache != nil && !conversational {
		if cached := a.answerCache.Get(a.cacheModel, collection, query); cached != nil {
			if a.verbose {
				fmt.Fprintln(os.Stderr, "Answer served from cache")
			}
			return cached
		}
	}

	if a.verbose {
		fmt.Fprintf(os.Stderr, "Query: %q\n", query)
	}

	passages := a.Retrieve(ctx, query)

	if a.verbose {
		if len(passages) > 0 {
			fmt.Fprintf(os.Stderr, "Found %d relevant chunks\n", len(passages))
		} else {
			fmt.Fprintln(os.Stderr, "No relevant context found")
		}
	}

	prompt := BuildPrompt(query, passages)

	var answer string
	var err error
	if conversational {
		answer, err = a.generator.Chat(ctx, prompt)
	} else {
		answer, err = a.generator.Generate(ctx, prompt)
	}
	if err != nil {
		// Generation failure degrades the answer, never the process
		answer = fmt.Sprintf("I was unable to generate an answer: %v. Please try again.", err)
	}

	result := &model.AnswerResult{
		Query:      query,
		Answer:     answer,
		Sources:    summarizeSources(passages),
		NumSources: len(passages),
		HasSources: len(passages) > 0,
	}

	if a.answerCache != nil && !conversational && err == nil {
		a.answerCache.Put(a.cacheModel, collection, query, result)
	}

	return result
}

// summarizeSources truncates passages into answer-sized previews
func summarizeSources(passages []model.RetrievedPassage) []model.SourceSummary {
	sources := make([]model.SourceSummary, 0, len(passages))
	for _, p := range passages {
		similarity := 0.0
		if p.Similarity != nil {
			similarity = *p.Similarity
		}
		sources = append(sources, model.SourceSummary{
			Text:       truncate(p.Text, previewLimit),
			Metadata:   p.Metadata,
			Similarity: similarity,
		})
	}
	return sources
}

// truncate shortens text to limit characters with a trailing ellipsis
func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
