package model

// FAQEntry is a question/answer pair loaded into the lexical matcher.
// NormalizedQuestion is derived once at load time and never changes.
type FAQEntry struct {
	Question           string `json:"question"`
	Answer             string `json:"answer"`
	NormalizedQuestion string `json:"-"`
}

// SimilarityResult is the outcome of scoring a query against the FAQ corpus.
// Entry is nil when no entry scored at or above the caller's threshold;
// Score still carries the best raw score for diagnostics.
type SimilarityResult struct {
	Score float64   `json:"score"`
	Entry *FAQEntry `json:"entry,omitempty"`
}
