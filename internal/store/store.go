// Package store defines the vector store collaborator: an opaque service
// that indexes text by embedding and answers nearest-neighbor queries.
// Implementations own the embedding computation.
package store

import (
	"context"

	"github.com/docsage/docsage/internal/model"
)

// Store persists embedded text and supports similarity search.
type Store interface {
	// Add indexes the given texts. ids, texts, and metadatas must have
	// equal lengths.
	Add(ctx context.Context, ids []string, texts []string, metadatas []map[string]any) error

	// Query returns up to topK passages most similar to the query text,
	// best first. No matches, or an empty collection, yield an empty
	// slice, not an error.
	Query(ctx context.Context, query string, topK int) ([]model.RetrievedPassage, error)

	// Count reports the number of indexed passages.
	Count(ctx context.Context) (int, error)

	// DeleteAll removes every indexed passage.
	DeleteAll(ctx context.Context) error
}
