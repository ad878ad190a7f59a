package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/docsage/docsage/internal/faq"
)

var (
	faqFile      string
	faqThreshold float64
	faqShowScore bool
)

// faqCmd represents the faq command
var faqCmd = &cobra.Command{
	Use:   "faq <question>",
	Short: "Answer a question from an FAQ corpus, no model required",
	Long: `FAQ matches a question lexically against a corpus of question|answer
pairs. Matching is deterministic and offline: questions are normalized,
stop words dropped, synonyms expanded, and candidates scored by token
overlap. The best match above the threshold wins.

Example:
  docsage faq "How can I sign up?" --file faqs.txt
  docsage faq "Is there a fee?" --file faqs.txt --threshold 0.2 --score`,
	Args: cobra.ExactArgs(1),
	RunE: runFAQ,
}

func init() {
	rootCmd.AddCommand(faqCmd)

	faqCmd.Flags().StringVar(&faqFile, "file", "", "FAQ corpus file, one question|answer per line")
	faqCmd.Flags().Float64Var(&faqThreshold, "threshold", 0, "minimum match score (default from config)")
	faqCmd.Flags().BoolVar(&faqShowScore, "score", false, "print the match score and matched question")
}

func runFAQ(cmd *cobra.Command, args []string) error {
	question := args[0]

	cfg := loadConfig()
	if faqFile != "" {
		cfg.FAQ.File = faqFile
	}
	if faqThreshold > 0 {
		cfg.FAQ.Threshold = faqThreshold
	}
	if cfg.FAQ.File == "" {
		return fmt.Errorf("no FAQ corpus configured: pass --file or set faq.file in the config")
	}

	matcher := faq.NewMatcher()
	if err := matcher.LoadFile(cfg.FAQ.File); err != nil {
		return fmt.Errorf("load FAQ corpus: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Loaded %d FAQ entries from %s\n", matcher.Len(), cfg.FAQ.File)
	}

	result := matcher.FindAnswer(question, cfg.FAQ.Threshold)

	fmt.Println(result.Answer)

	if faqShowScore {
		fmt.Println()
		if result.Matched {
			fmt.Printf("Matched: %q (score %.3f)\n", result.MatchedQuestion, result.Confidence)
		} else {
			fmt.Printf("No match above threshold %.2f (best score %.3f)\n", cfg.FAQ.Threshold, result.Confidence)
		}
	}

	return nil
}
