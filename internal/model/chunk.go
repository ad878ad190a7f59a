package model

// ChunkMethod identifies the segmentation strategy that produced a chunk.
type ChunkMethod string

const (
	MethodWordBased     ChunkMethod = "word-based"
	MethodSentenceBased ChunkMethod = "sentence-based"
)

// WordSpan records the half-open token range a word-based chunk covers
// within its source document.
type WordSpan struct {
	Start int `json:"start_word"`
	End   int `json:"end_word"`
}

// Chunk is a bounded contiguous excerpt of a source document.
// Index starts at 0 and increments by 1 per chunk in document order.
type Chunk struct {
	Index     int         `json:"chunk_id"`
	Text      string      `json:"text"`
	WordCount int         `json:"word_count"`
	Method    ChunkMethod `json:"method"`

	// Span is set only for word-based chunks.
	Span *WordSpan `json:"span,omitempty"`

	// SentenceCount is set only for sentence-based chunks.
	SentenceCount int `json:"sentence_count,omitempty"`
}
