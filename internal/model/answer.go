package model

// RetrievedPassage is one nearest-neighbor hit returned by the vector store.
// It lives only for the duration of a single query.
type RetrievedPassage struct {
	ID       string         `json:"id"`
	Text     string         `json:"text"`
	Metadata map[string]any `json:"metadata,omitempty"`

	// Similarity is nil when the backend did not report a relevance metric.
	Similarity *float64 `json:"similarity,omitempty"`
}

// SourceSummary is a truncated view of a retrieved passage, small enough to
// carry in an AnswerResult payload.
type SourceSummary struct {
	Text       string         `json:"text"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Similarity float64        `json:"similarity"`
}

// AnswerResult packages a generated answer together with the provenance of
// every passage it was grounded on. Built once per query, never mutated.
type AnswerResult struct {
	Query      string          `json:"query"`
	Answer     string          `json:"answer"`
	Sources    []SourceSummary `json:"sources"`
	NumSources int             `json:"num_sources"`
	HasSources bool            `json:"has_sources"`
}
