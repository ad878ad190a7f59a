// Package faq implements lexical FAQ matching: token-set Jaccard scoring
// over normalized questions, with stop-word removal and synonym expansion.
package faq

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/docsage/docsage/internal/model"
	"github.com/docsage/docsage/internal/text"
)

// Delimiter separates question from answer in a corpus line.
const Delimiter = "|"

// DefaultThreshold is the minimum Jaccard score for a confident match.
const DefaultThreshold = 0.15

// Result is the user-facing answer to an FAQ lookup.
type Result struct {
	Answer          string  `json:"answer"`
	Confidence      float64 `json:"confidence"`
	MatchedQuestion string  `json:"matched_question,omitempty"`
	Matched         bool    `json:"matched"`
}

// Matcher scores queries against a fixed, read-only FAQ corpus. The corpus
// is loaded once and safe for concurrent readers afterwards.
type Matcher struct {
	entries   []model.FAQEntry
	stopWords map[string]struct{}
	synonyms  map[string][]string
}

// NewMatcher creates an empty matcher with the built-in stop-word set and
// synonym table.
func NewMatcher() *Matcher {
	return &Matcher{
		stopWords: defaultStopWords(),
		synonyms:  defaultSynonyms(),
	}
}

// Add appends a question/answer pair to the corpus. The normalized form of
// the question is derived once, here.
func (m *Matcher) Add(question, answer string) {
	m.entries = append(m.entries, model.FAQEntry{
		Question:           question,
		Answer:             answer,
		NormalizedQuestion: text.Normalize(question),
	})
}

// LoadFile reads a line-oriented corpus: one "question|answer" pair per
// line. Lines without the delimiter are silently skipped. An open or read
// failure is returned to the caller but leaves already-loaded entries
// usable.
func (m *Matcher) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open FAQ corpus: %w", err)
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || !strings.Contains(line, Delimiter) {
			continue
		}
		parts := strings.SplitN(line, Delimiter, 2)
		m.Add(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]))
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read FAQ corpus: %w", err)
	}

	return nil
}

// Len reports the number of loaded entries.
func (m *Matcher) Len() int {
	return len(m.entries)
}

// Match scans the whole corpus and returns the entry with the strictly
// greatest Jaccard score; ties keep the first-seen entry. When the best
// score falls below threshold the result carries a nil entry and the raw
// best score for diagnostics.
func (m *Matcher) Match(query string, threshold float64) model.SimilarityResult {
	queryWords := m.queryTokens(query)

	var best *model.FAQEntry
	bestScore := 0.0

	for i := range m.entries {
		entryWords := m.queryTokens(m.entries[i].NormalizedQuestion)
		score := Jaccard(queryWords, entryWords)
		if score > bestScore {
			bestScore = score
			best = &m.entries[i]
		}
	}

	if bestScore < threshold {
		return model.SimilarityResult{Score: bestScore}
	}
	return model.SimilarityResult{Score: bestScore, Entry: best}
}

// FindAnswer wraps Match with the canned responses for the empty-corpus
// and no-confident-match cases.
func (m *Matcher) FindAnswer(query string, threshold float64) Result {
	if len(m.entries) == 0 {
		return Result{Answer: "No FAQs loaded.", Confidence: 0.0}
	}

	match := m.Match(query, threshold)
	if match.Entry == nil {
		return Result{
			Answer:     "I couldn't find a good answer to that question.",
			Confidence: match.Score,
		}
	}

	return Result{
		Answer:          match.Entry.Answer,
		Confidence:      match.Score,
		MatchedQuestion: match.Entry.Question,
		Matched:         true,
	}
}

// queryTokens normalizes s into a token set, removes stop words, and
// expands synonyms. If stop-word removal empties the set, the unfiltered
// set is used instead: a query must never match against nothing.
func (m *Matcher) queryTokens(s string) map[string]struct{} {
	raw := text.TokenSet(s)

	filtered := make(map[string]struct{}, len(raw))
	for t := range raw {
		if _, stop := m.stopWords[t]; !stop {
			filtered[t] = struct{}{}
		}
	}
	if len(filtered) == 0 {
		filtered = raw
	}

	return m.expandSynonyms(filtered)
}

// expandSynonyms adds the table-listed synonyms of every token present in
// the synonym table. Expansion is one level deep.
func (m *Matcher) expandSynonyms(words map[string]struct{}) map[string]struct{} {
	expanded := make(map[string]struct{}, len(words))
	for w := range words {
		expanded[w] = struct{}{}
	}
	for w := range words {
		for _, syn := range m.synonyms[w] {
			expanded[syn] = struct{}{}
		}
	}
	return expanded
}

// Jaccard computes intersection size over union size of two token sets.
// Two empty sets score 0, not NaN. Symmetric by construction.
func Jaccard(a, b map[string]struct{}) float64 {
	intersection := 0
	for t := range a {
		if _, ok := b[t]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}

func defaultStopWords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "is", "are", "am", "be", "to", "of", "in",
		"on", "at", "for", "with", "do", "does", "i", "you", "we",
		"they", "there", "can", "will", "it", "what", "how", "when", "where",
	}
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

func defaultSynonyms() map[string][]string {
	return map[string][]string{
		"sign":     {"register", "signup", "join", "enroll"},
		"register": {"sign", "signup", "join", "enroll"},
		"signup":   {"sign", "register", "join", "enroll"},
		"pay":      {"fee", "cost", "price", "money", "charge"},
		"fee":      {"pay", "cost", "price", "money", "charge"},
		"cost":     {"pay", "fee", "price", "money", "charge"},
		"start":    {"schedule", "time", "begin", "when"},
		"time":     {"schedule", "start", "when"},
		"when":     {"time", "schedule", "start"},
		"where":    {"venue", "location", "place"},
		"venue":    {"where", "location", "place"},
		"location": {"where", "venue", "place"},
	}
}
