package embed

import (
	"context"
	"hash/fnv"
	"math"

	"github.com/docsage/docsage/internal/text"
)

// HashingEmbedder is a deterministic, offline embedder: tokens are hashed
// into a fixed number of buckets and the resulting count vector is
// L2-normalized. Similar token sets land close under cosine similarity.
// It has no semantic awareness and exists for offline and test use.
type HashingEmbedder struct {
	dimension int
}

// NewHashingEmbedder creates a hashing embedder with the given dimension.
func NewHashingEmbedder(dimension int) *HashingEmbedder {
	if dimension <= 0 {
		dimension = 256
	}
	return &HashingEmbedder{dimension: dimension}
}

// Name returns the embedder name
func (e *HashingEmbedder) Name() string {
	return "hashing"
}

// Dimension returns the configured vector length
func (e *HashingEmbedder) Dimension() int {
	return e.dimension
}

// Embed hashes each normalized token into a bucket and normalizes the
// bucket counts. A text with no tokens yields the zero vector.
func (e *HashingEmbedder) Embed(_ context.Context, input string) ([]float64, error) {
	vec := make([]float64, e.dimension)

	for _, token := range text.Tokenize(input) {
		h := fnv.New32a()
		_, _ = h.Write([]byte(token))
		vec[int(h.Sum32())%e.dimension]++
	}

	var mag float64
	for _, v := range vec {
		mag += v * v
	}
	if mag == 0 {
		return vec, nil
	}
	mag = math.Sqrt(mag)
	for i := range vec {
		vec[i] /= mag
	}

	return vec, nil
}
