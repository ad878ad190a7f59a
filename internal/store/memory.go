package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/docsage/docsage/internal/embed"
	"github.com/docsage/docsage/internal/model"
	"github.com/docsage/docsage/internal/vector"
)

// Memory is an in-process vector store using brute-force cosine similarity.
// Contents do not survive the process; suitable for small collections and
// one-shot CLI runs.
type Memory struct {
	mu       sync.RWMutex
	embedder embed.Embedder
	ids      []string
	texts    []string
	metas    []map[string]any
	vectors  [][]float64
}

// NewMemory creates an empty in-memory store around the given embedder.
func NewMemory(embedder embed.Embedder) *Memory {
	return &Memory{embedder: embedder}
}

// Add embeds and indexes the given texts.
func (s *Memory) Add(ctx context.Context, ids []string, texts []string, metadatas []map[string]any) error {
	if len(ids) != len(texts) || len(texts) != len(metadatas) {
		return fmt.Errorf("ids, texts, and metadatas must have equal lengths: %d/%d/%d",
			len(ids), len(texts), len(metadatas))
	}

	vectors := make([][]float64, len(texts))
	for i, text := range texts {
		vec, err := s.embedder.Embed(ctx, text)
		if err != nil {
			return fmt.Errorf("embed text %d: %w", i, err)
		}
		vectors[i] = vec
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = append(s.ids, ids...)
	s.texts = append(s.texts, texts...)
	s.metas = append(s.metas, metadatas...)
	s.vectors = append(s.vectors, vectors...)

	return nil
}

// Query embeds the query text and returns the topK most similar passages.
func (s *Memory) Query(ctx context.Context, query string, topK int) ([]model.RetrievedPassage, error) {
	queryVec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if topK <= 0 {
		topK = 3
	}

	type scored struct {
		index int
		score float64
	}
	scores := make([]scored, len(s.vectors))
	for i := range s.vectors {
		score, err := vector.Cosine(queryVec, s.vectors[i])
		if err != nil {
			return nil, err
		}
		scores[i] = scored{index: i, score: score}
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].score > scores[j].score
	})

	if topK > len(scores) {
		topK = len(scores)
	}
	passages := make([]model.RetrievedPassage, 0, topK)
	for _, sc := range scores[:topK] {
		similarity := sc.score
		passages = append(passages, model.RetrievedPassage{
			ID:         s.ids[sc.index],
			Text:       s.texts[sc.index],
			Metadata:   s.metas[sc.index],
			Similarity: &similarity,
		})
	}

	return passages, nil
}

// Count reports the number of indexed passages.
func (s *Memory) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids), nil
}

// DeleteAll removes every indexed passage.
func (s *Memory) DeleteAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = nil
	s.texts = nil
	s.metas = nil
	s.vectors = nil
	return nil
}
