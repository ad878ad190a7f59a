// Package vector provides numeric similarity primitives for fixed-length
// embedding vectors.
package vector

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrDimensionMismatch is returned when two vectors have different lengths.
var ErrDimensionMismatch = errors.New("vectors must be the same length")

// Cosine computes the cosine similarity of a and b: their dot product over
// the product of their magnitudes. A zero-magnitude vector is a defined
// degenerate case and yields 0.0, not an error. The result lies in [-1, 1];
// for non-negative embedding vectors it lies in [0, 1].
func Cosine(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: got %d and %d", ErrDimensionMismatch, len(a), len(b))
	}

	var dot, magA, magB float64
	for i := range a {
		dot += a[i] * b[i]
		magA += a[i] * a[i]
		magB += b[i] * b[i]
	}
	if magA == 0 || magB == 0 {
		return 0, nil
	}

	return dot / (math.Sqrt(magA) * math.Sqrt(magB)), nil
}

// Interpret buckets a similarity score into a qualitative band.
func Interpret(score float64) string {
	switch {
	case score >= 0.9:
		return "Nearly identical!"
	case score >= 0.7:
		return "Very similar"
	case score >= 0.5:
		return "Somewhat similar"
	case score >= 0.3:
		return "A bit related"
	default:
		return "Quite different"
	}
}

// Named pairs a label with a vector for bulk comparison.
type Named struct {
	Name   string
	Vector []float64
}

// Comparison is one scored entry of a bulk comparison.
type Comparison struct {
	Name  string
	Score float64
}

// CompareMany scores base against each named vector and returns the
// results ordered by descending score. Ties keep the input order.
func CompareMany(base []float64, vectors []Named) ([]Comparison, error) {
	results := make([]Comparison, 0, len(vectors))
	for _, v := range vectors {
		score, err := Cosine(base, v.Vector)
		if err != nil {
			return nil, fmt.Errorf("compare %q: %w", v.Name, err)
		}
		results = append(results, Comparison{Name: v.Name, Score: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return results, nil
}
