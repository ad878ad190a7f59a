// Package chunk splits raw text into bounded, overlapping units suitable
// for embedding and retrieval.
package chunk

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/docsage/docsage/internal/model"
)

// Method selects the segmentation strategy.
type Method string

const (
	// ByWords produces fixed-size windows of whitespace-delimited tokens.
	ByWords Method = "words"

	// BySentences greedily packs whole sentences up to the target size.
	BySentences Method = "sentences"
)

var (
	// ErrNoChunks is returned by Stats when given an empty chunk sequence.
	ErrNoChunks = errors.New("no chunks provided")

	// boundaryRe matches a sentence boundary: terminal punctuation
	// followed by whitespace. The punctuation stays with the sentence.
	boundaryRe = regexp.MustCompile(`([.!?]+)\s+`)
)

// Chunker segments text into chunks of roughly Size words.
type Chunker struct {
	size    int
	overlap int
}

// New creates a chunker. Size must be positive and overlap must satisfy
// 0 <= overlap < size: an overlap at or above the window size would stop
// the word-based window from advancing.
func New(size, overlap int) (*Chunker, error) {
	if size <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", size)
	}
	if overlap < 0 || overlap >= size {
		return nil, fmt.Errorf("overlap must be in [0, size), got overlap=%d size=%d", overlap, size)
	}
	return &Chunker{size: size, overlap: overlap}, nil
}

// Chunk segments text with the given strategy.
func (c *Chunker) Chunk(text string, method Method) ([]model.Chunk, error) {
	switch method {
	case ByWords:
		return c.chunkByWords(text), nil
	case BySentences:
		return c.chunkBySentences(text), nil
	default:
		return nil, fmt.Errorf("unknown chunking method: %q", method)
	}
}

// chunkByWords produces successive windows of size words, each window
// starting overlap words before the previous window's end. The final
// window may be shorter.
func (c *Chunker) chunkByWords(text string) []model.Chunk {
	words := strings.Fields(text)

	var chunks []model.Chunk
	start := 0
	for start < len(words) {
		end := start + c.size
		if end > len(words) {
			end = len(words)
		}
		window := words[start:end]

		chunks = append(chunks, model.Chunk{
			Index:     len(chunks),
			Text:      strings.Join(window, " "),
			WordCount: len(window),
			Method:    model.MethodWordBased,
			Span:      &model.WordSpan{Start: start, End: end},
		})

		if end == len(words) {
			break
		}
		next := end - c.overlap
		// Termination guard: the constructor rejects overlap >= size, so
		// this only trips on degenerate inputs, but a stuck window must
		// never loop forever.
		if next <= start {
			break
		}
		start = next
	}

	return chunks
}

// chunkBySentences accumulates whole sentences until adding the next one
// would exceed the target word count, then closes the chunk and seeds the
// next one with the last two sentences of the closed chunk. Sentences are
// never split: one longer than the target still goes whole into an
// otherwise-empty chunk. The configured overlap is not used here.
func (c *Chunker) chunkBySentences(text string) []model.Chunk {
	sentences := SplitSentences(text)

	var chunks []model.Chunk
	var current []string
	currentWords := 0

	for _, sentence := range sentences {
		sentenceWords := len(strings.Fields(sentence))

		if currentWords+sentenceWords > c.size && len(current) > 0 {
			chunks = append(chunks, model.Chunk{
				Index:         len(chunks),
				Text:          strings.Join(current, " "),
				WordCount:     currentWords,
				Method:        model.MethodSentenceBased,
				SentenceCount: len(current),
			})

			carry := current
			if len(carry) > 2 {
				carry = carry[len(carry)-2:]
			}
			current = append([]string(nil), carry...)
			currentWords = 0
			for _, s := range current {
				currentWords += len(strings.Fields(s))
			}
		}

		current = append(current, sentence)
		currentWords += sentenceWords
	}

	if len(current) > 0 {
		chunks = append(chunks, model.Chunk{
			Index:         len(chunks),
			Text:          strings.Join(current, " "),
			WordCount:     currentWords,
			Method:        model.MethodSentenceBased,
			SentenceCount: len(current),
		})
	}

	return chunks
}

// SplitSentences splits text on terminal punctuation followed by
// whitespace, keeping the punctuation with the preceding sentence. A
// trailing fragment without terminal punctuation is kept as a sentence.
func SplitSentences(text string) []string {
	var sentences []string
	start := 0
	for _, m := range boundaryRe.FindAllStringSubmatchIndex(text, -1) {
		// m[3] is the end of the punctuation group, m[1] the end of the
		// full match including trailing whitespace.
		s := strings.TrimSpace(text[start:m[3]])
		if s != "" {
			sentences = append(sentences, s)
		}
		start = m[1]
	}
	if tail := strings.TrimSpace(text[start:]); tail != "" {
		sentences = append(sentences, tail)
	}
	return sentences
}
