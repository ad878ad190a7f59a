package vector

import (
	"errors"
	"math"
	"testing"
)

func TestCosine_SelfSimilarity(t *testing.T) {
	v := []float64{0.3, -1.2, 4.5, 0.01}
	got, err := Cosine(v, v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got-1.0) > 1e-9 {
		t.Errorf("expected self-similarity 1.0, got %f", got)
	}
}

func TestCosine_Orthogonal(t *testing.T) {
	got, err := Cosine([]float64{1, 0}, []float64{0, 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0.0 {
		t.Errorf("expected 0.0 for orthogonal unit vectors, got %f", got)
	}
}

func TestCosine_Opposite(t *testing.T) {
	got, err := Cosine([]float64{1, 2}, []float64{-1, -2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got+1.0) > 1e-9 {
		t.Errorf("expected -1.0 for opposite vectors, got %f", got)
	}
}

func TestCosine_DimensionMismatch(t *testing.T) {
	_, err := Cosine([]float64{1, 2, 3}, []float64{1, 2})
	if err == nil {
		t.Fatal("expected error for mismatched lengths")
	}
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestCosine_ZeroMagnitude(t *testing.T) {
	got, err := Cosine([]float64{0, 0, 0}, []float64{1, 2, 3})
	if err != nil {
		t.Fatalf("zero-magnitude vector should not be an error, got %v", err)
	}
	if got != 0.0 {
		t.Errorf("expected 0.0 for zero-magnitude vector, got %f", got)
	}
}

func TestInterpret_Bands(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{0.95, "Nearly identical!"},
		{0.9, "Nearly identical!"},
		{0.7, "Very similar"},
		{0.5, "Somewhat similar"},
		{0.3, "A bit related"},
		{0.29, "Quite different"},
		{-0.4, "Quite different"},
	}

	for _, tt := range tests {
		if got := Interpret(tt.score); got != tt.want {
			t.Errorf("Interpret(%f) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestCompareMany_Ordering(t *testing.T) {
	base := []float64{1, 0}
	vectors := []Named{
		{Name: "orthogonal", Vector: []float64{0, 1}},
		{Name: "same", Vector: []float64{2, 0}},
		{Name: "diagonal", Vector: []float64{1, 1}},
	}

	got, err := CompareMany(base, vectors)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantOrder := []string{"same", "diagonal", "orthogonal"}
	for i, name := range wantOrder {
		if got[i].Name != name {
			t.Errorf("position %d: got %q, want %q", i, got[i].Name, name)
		}
	}
}

func TestCompareMany_StableTies(t *testing.T) {
	base := []float64{1, 0}
	vectors := []Named{
		{Name: "first", Vector: []float64{3, 0}},
		{Name: "second", Vector: []float64{5, 0}},
	}

	got, err := CompareMany(base, vectors)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0].Name != "first" || got[1].Name != "second" {
		t.Errorf("tied scores should keep input order, got %q then %q", got[0].Name, got[1].Name)
	}
}

func TestCompareMany_PropagatesMismatch(t *testing.T) {
	_, err := CompareMany([]float64{1, 0}, []Named{{Name: "bad", Vector: []float64{1}}})
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}
