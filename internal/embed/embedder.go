// Package embed converts text into fixed-length numeric vectors for the
// vector store. The store owns its embedder; callers never see vectors.
package embed

import "context"

// Embedder converts free text into a numeric vector representation.
type Embedder interface {
	// Name returns the embedder name
	Name() string

	// Embed converts text into a vector of Dimension() components
	Embed(ctx context.Context, text string) ([]float64, error)

	// Dimension returns the length of every vector this embedder produces
	Dimension() int
}
