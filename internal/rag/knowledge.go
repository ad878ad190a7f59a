// Package rag wires retrieval and generation into a question-answering
// agent: documents are chunked and indexed into a vector store, and
// queries are answered from the retrieved passages with cited sources.
package rag

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/docsage/docsage/internal/chunk"
	"github.com/docsage/docsage/internal/model"
	"github.com/docsage/docsage/internal/store"
)

// KnowledgeBase chunks documents and indexes them in a vector store
type KnowledgeBase struct {
	store      store.Store
	chunker    *chunk.Chunker
	method     chunk.Method
	collection string
}

// KnowledgeBaseStats describes the state of a knowledge base
type KnowledgeBaseStats struct {
	Collection  string `json:"collection_name"`
	TotalChunks int    `json:"total_chunks"`
}

// NewKnowledgeBase creates a knowledge base over the given store
func NewKnowledgeBase(s store.Store, chunker *chunk.Chunker, method chunk.Method, collection string) *KnowledgeBase {
	return &KnowledgeBase{
		store:      s,
		chunker:    chunker,
		method:     method,
		collection: collection,
	}
}

// AddDocument chunks a document and indexes every chunk. Returns the IDs
// of the chunks that were added. Document-level metadata is copied onto
// each chunk alongside its position and word count.
func (kb *KnowledgeBase) AddDocument(ctx context.Context, text string, metadata map[string]any) ([]string, error) {
	chunks, err := kb.chunker.Chunk(text, kb.method)
	if err != nil {
		return nil, fmt.Errorf("chunk document: %w", err)
	}
	if len(chunks) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(chunks))
	texts := make([]string, 0, len(chunks))
	metadatas := make([]map[string]any, 0, len(chunks))

	for _, c := range chunks {
		ids = append(ids, uuid.NewString())
		texts = append(texts, c.Text)

		chunkMeta := make(map[string]any, len(metadata)+3)
		for k, v := range metadata {
			chunkMeta[k] = v
		}
		chunkMeta["chunk_id"] = c.Index
		chunkMeta["word_count"] = c.WordCount
		chunkMeta["method"] = string(c.Method)
		metadatas = append(metadatas, chunkMeta)
	}

	if err := kb.store.Add(ctx, ids, texts, metadatas); err != nil {
		return nil, fmt.Errorf("index chunks: %w", err)
	}

	return ids, nil
}

// Query searches the knowledge base for passages relevant to the query
func (kb *KnowledgeBase) Query(ctx context.Context, query string, topK int) ([]model.RetrievedPassage, error) {
	return kb.store.Query(ctx, query, topK)
}

// Collection returns the collection name
func (kb *KnowledgeBase) Collection() string {
	return kb.collection
}

// Stats returns the current state of the knowledge base
func (kb *KnowledgeBase) Stats(ctx context.Context) (KnowledgeBaseStats, error) {
	count, err := kb.store.Count(ctx)
	if err != nil {
		return KnowledgeBaseStats{}, fmt.Errorf("count chunks: %w", err)
	}
	return KnowledgeBaseStats{
		Collection:  kb.collection,
		TotalChunks: count,
	}, nil
}

// Clear removes all indexed documents
func (kb *KnowledgeBase) Clear(ctx context.Context) error {
	if err := kb.store.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clear knowledge base: %w", err)
	}
	return nil
}
