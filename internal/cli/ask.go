package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/docsage/docsage/internal/faq"
	"github.com/docsage/docsage/internal/model"
)

var (
	askDocs      string
	askFAQFile   string
	askTopK      int
	askTimeout   time.Duration
	askNoCache   bool
	llmProvider  string
	llmModel     string
	storeBackend string
	storeURL     string
	collection   string
	embProvider  string
	embModel     string
)

// askCmd represents the ask command
var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Answer a question from your documents",
	Long: `Ask retrieves the passages most relevant to your question and asks a
language model to answer from them, citing sources.

When an FAQ corpus is configured, the question is first matched lexically
against it; a confident match answers instantly without any model call.

Example:
  docsage ask "How do I register?" --docs ./docs
  docsage ask "What are the prerequisites?" --docs ./docs --llm-provider openai
  docsage ask "Is there a fee?" --faq faqs.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)

	askCmd.Flags().StringVar(&askDocs, "docs", "", "file or directory to ingest before answering")
	askCmd.Flags().StringVar(&askFAQFile, "faq", "", "FAQ corpus file (question|answer per line), tried before retrieval")
	askCmd.Flags().IntVar(&askTopK, "top-k", 0, "passages to retrieve (default from config)")
	askCmd.Flags().DurationVar(&askTimeout, "timeout", 2*time.Minute, "overall timeout")
	askCmd.Flags().BoolVar(&askNoCache, "no-cache", false, "disable the answer cache")

	askCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM provider (openai, anthropic, ollama)")
	askCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")

	askCmd.Flags().StringVar(&storeBackend, "store", "", "vector store backend (memory, qdrant)")
	askCmd.Flags().StringVar(&storeURL, "store-url", "", "vector store URL (qdrant)")
	askCmd.Flags().StringVar(&collection, "collection", "", "vector store collection name")
	askCmd.Flags().StringVar(&embProvider, "embedding-provider", "", "embedding provider (openai, hashing)")
	askCmd.Flags().StringVar(&embModel, "embedding-model", "", "embedding model name")
}

// applySharedFlags overlays command-line flags onto the loaded config
func applySharedFlags(cfg *model.Config) {
	if llmProvider != "" {
		cfg.LLM.Provider = llmProvider
	}
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}
	if storeBackend != "" {
		cfg.Store.Backend = storeBackend
	}
	if storeURL != "" {
		cfg.Store.URL = storeURL
	}
	if collection != "" {
		cfg.Store.Collection = collection
	}
	if embProvider != "" {
		cfg.Embedding.Provider = embProvider
	}
	if embModel != "" {
		cfg.Embedding.Model = embModel
	}
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), askTimeout)
	defer cancel()

	cfg := loadConfig()
	applySharedFlags(cfg)
	if askTopK > 0 {
		cfg.Output.TopK = askTopK
	}
	if askNoCache {
		cfg.Cache.Enabled = false
	}
	if askFAQFile != "" {
		cfg.FAQ.File = askFAQFile
	}

	// Try the FAQ corpus first: a confident lexical match needs no model
	if cfg.FAQ.File != "" {
		matcher := faq.NewMatcher()
		if err := matcher.LoadFile(cfg.FAQ.File); err != nil {
			return fmt.Errorf("load FAQ corpus: %w", err)
		}

		if result := matcher.FindAnswer(question, cfg.FAQ.Threshold); result.Matched {
			if verbose {
				fmt.Fprintf(os.Stderr, "FAQ match: %q (confidence %.2f)\n", result.MatchedQuestion, result.Confidence)
			}
			fmt.Println(result.Answer)
			return nil
		}
		if verbose {
			fmt.Fprintln(os.Stderr, "No FAQ match, falling back to retrieval")
		}
	}

	agent, kb, err := buildAgent(cfg)
	if err != nil {
		return err
	}

	if askDocs != "" {
		if verbose {
			fmt.Fprintf(os.Stderr, "Ingesting documents from %s\n", askDocs)
		}
		results, err := ingestPath(ctx, cfg, kb, askDocs)
		if err != nil {
			return fmt.Errorf("ingest documents: %w", err)
		}
		for _, r := range results {
			if r.Error != nil {
				fmt.Fprintf(os.Stderr, "Warning: %s: %v\n", r.Path, r.Error)
			}
		}
	}

	result := agent.Answer(ctx, question)
	printAnswer(result)

	return nil
}
