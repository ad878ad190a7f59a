package faq

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/docsage/docsage/internal/text"
)

func TestFindAnswer_SynonymBridge(t *testing.T) {
	m := NewMatcher()
	m.Add("How do I register?", "Click the register button.")

	result := m.FindAnswer("How can I sign up?", 0.15)

	if !result.Matched {
		t.Fatalf("expected a confident match, got confidence %f", result.Confidence)
	}
	if result.Answer != "Click the register button." {
		t.Errorf("expected the register answer, got %q", result.Answer)
	}
	if result.MatchedQuestion != "How do I register?" {
		t.Errorf("expected matched question %q, got %q", "How do I register?", result.MatchedQuestion)
	}
}

func TestFindAnswer_EmptyCorpus(t *testing.T) {
	m := NewMatcher()

	result := m.FindAnswer("anything at all", 0.15)

	if result.Matched {
		t.Error("expected no match on an empty corpus")
	}
	if result.Answer != "No FAQs loaded." {
		t.Errorf("expected the no-FAQs answer, got %q", result.Answer)
	}
	if result.Confidence != 0.0 {
		t.Errorf("expected confidence 0.0, got %f", result.Confidence)
	}
}

func TestFindAnswer_BelowThreshold(t *testing.T) {
	m := NewMatcher()
	m.Add("How do I register?", "Click the register button.")

	result := m.FindAnswer("completely unrelated quantum flux topic", 0.15)

	if result.Matched {
		t.Errorf("expected no confident match, got %q", result.Answer)
	}
	if result.MatchedQuestion != "" {
		t.Errorf("expected no matched question, got %q", result.MatchedQuestion)
	}
}

func TestMatch_TiesKeepFirstEntry(t *testing.T) {
	m := NewMatcher()
	m.Add("opening hours today", "First answer.")
	m.Add("today opening hours", "Second answer.")

	// Both entries normalize to the same token set, so scores tie exactly.
	result := m.Match("opening hours today", 0.1)
	if result.Entry == nil {
		t.Fatal("expected a match")
	}
	if result.Entry.Answer != "First answer." {
		t.Errorf("tie should keep the first-seen entry, got %q", result.Entry.Answer)
	}
}

func TestMatch_BelowThresholdKeepsScore(t *testing.T) {
	m := NewMatcher()
	m.Add("How do I register?", "Click the register button.")

	result := m.Match("How do I register?", 1.1)

	if result.Entry != nil {
		t.Error("expected nil entry above an unreachable threshold")
	}
	if result.Score <= 0 {
		t.Errorf("expected the raw best score preserved for diagnostics, got %f", result.Score)
	}
}

func TestStopWordRemoval_FallbackToUnfiltered(t *testing.T) {
	m := NewMatcher()
	// "what is it" is all stop words; the unfiltered set must be used.
	tokens := m.queryTokens("what is it")
	if len(tokens) == 0 {
		t.Fatal("stop-word removal must never empty the token set")
	}
	for _, want := range []string{"what", "is", "it"} {
		if _, ok := tokens[want]; !ok {
			t.Errorf("expected fallback token %q in set %v", want, tokens)
		}
	}
}

func TestExpandSynonyms_SignGroup(t *testing.T) {
	m := NewMatcher()
	expanded := m.expandSynonyms(map[string]struct{}{"sign": {}})

	for _, want := range []string{"sign", "register", "signup", "join", "enroll"} {
		if _, ok := expanded[want]; !ok {
			t.Errorf("expected %q in expansion of {sign}, got %v", want, expanded)
		}
	}
}

func TestJaccard_Symmetric(t *testing.T) {
	a := text.TokenSet("the quick brown fox")
	b := text.TokenSet("quick red fox jumps")

	if Jaccard(a, b) != Jaccard(b, a) {
		t.Errorf("Jaccard must be symmetric: %f vs %f", Jaccard(a, b), Jaccard(b, a))
	}
}

func TestJaccard_EmptyUnion(t *testing.T) {
	if got := Jaccard(map[string]struct{}{}, map[string]struct{}{}); got != 0.0 {
		t.Errorf("expected 0.0 for empty union, got %f", got)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "faqs.txt")
	content := "How do I register?|Click the register button.\n" +
		"malformed line without delimiter\n" +
		"\n" +
		"Where is the venue?|Main Street 42.\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	m := NewMatcher()
	if err := m.LoadFile(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Len() != 2 {
		t.Errorf("expected 2 entries (malformed and blank lines skipped), got %d", m.Len())
	}

	result := m.FindAnswer("Where is the venue located?", 0.15)
	if !result.Matched {
		t.Errorf("expected a match for the venue question, confidence %f", result.Confidence)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	m := NewMatcher()
	if err := m.LoadFile(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Error("expected an error for a missing corpus file")
	}
	// The matcher stays usable after a load failure.
	if got := m.FindAnswer("anything", 0.15); got.Answer != "No FAQs loaded." {
		t.Errorf("matcher should remain usable, got %q", got.Answer)
	}
}
