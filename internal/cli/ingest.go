package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	ingestWorkers int
	ingestTimeout time.Duration
	chunkSize     int
	chunkOverlap  int
	chunkMethod   string
	ingestClear   bool
)

// ingestCmd represents the ingest command
var ingestCmd = &cobra.Command{
	Use:   "ingest <path>",
	Short: "Index documents into the vector store",
	Long: `Ingest loads documents (txt, md, html), chunks them into retrievable
passages, and indexes the chunks in the vector store. Files are processed
in parallel with a configurable worker count.

With the qdrant backend the index persists across runs, so a one-time
ingest serves later ask and chat sessions.

Example:
  docsage ingest ./docs
  docsage ingest ./docs --store qdrant --store-url http://localhost:6333
  docsage ingest notes.md --chunk-size 300 --chunk-method words`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().IntVar(&ingestWorkers, "workers", 0, "concurrent ingestion workers (default from config)")
	ingestCmd.Flags().DurationVar(&ingestTimeout, "timeout", 10*time.Minute, "total ingestion timeout")
	ingestCmd.Flags().IntVar(&chunkSize, "chunk-size", 0, "target words per chunk (default from config)")
	ingestCmd.Flags().IntVar(&chunkOverlap, "chunk-overlap", -1, "overlap words for word-based chunking")
	ingestCmd.Flags().StringVar(&chunkMethod, "chunk-method", "", "chunking method (words, sentences)")
	ingestCmd.Flags().BoolVar(&ingestClear, "clear", false, "clear the collection before ingesting")

	ingestCmd.Flags().StringVar(&storeBackend, "store", "", "vector store backend (memory, qdrant)")
	ingestCmd.Flags().StringVar(&storeURL, "store-url", "", "vector store URL (qdrant)")
	ingestCmd.Flags().StringVar(&collection, "collection", "", "vector store collection name")
	ingestCmd.Flags().StringVar(&embProvider, "embedding-provider", "", "embedding provider (openai, hashing)")
	ingestCmd.Flags().StringVar(&embModel, "embedding-model", "", "embedding model name")
}

func runIngest(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), ingestTimeout)
	defer cancel()

	cfg := loadConfig()
	applySharedFlags(cfg)
	if ingestWorkers > 0 {
		cfg.Concurrency.IngestWorkers = ingestWorkers
	}
	if chunkSize > 0 {
		cfg.Chunking.Size = chunkSize
	}
	if chunkOverlap >= 0 {
		cfg.Chunking.Overlap = chunkOverlap
	}
	if chunkMethod != "" {
		cfg.Chunking.Method = chunkMethod
	}

	if err := resolveAPIKeys(cfg); err != nil {
		return err
	}

	st, err := buildStore(cfg, nil)
	if err != nil {
		return err
	}
	kb, err := buildKnowledgeBase(cfg, st)
	if err != nil {
		return err
	}

	if ingestClear {
		if verbose {
			fmt.Fprintf(os.Stderr, "Clearing collection %q\n", cfg.Store.Collection)
		}
		if err := kb.Clear(ctx); err != nil {
			return err
		}
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Ingesting %s with %d workers (%s chunks of ~%d words)\n",
			path, cfg.Concurrency.IngestWorkers, cfg.Chunking.Method, cfg.Chunking.Size)
	}

	results, err := ingestPath(ctx, cfg, kb, path)
	if err != nil {
		return err
	}

	succeeded := 0
	failed := 0
	totalChunks := 0
	for _, r := range results {
		if r.Error != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", r.Path, r.Error)
			continue
		}
		succeeded++
		totalChunks += len(r.ChunkIDs)
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ %s (%d chunks)\n", r.Path, len(r.ChunkIDs))
		}
	}

	stats, err := kb.Stats(ctx)
	if err != nil {
		return fmt.Errorf("read stats: %w", err)
	}

	fmt.Printf("Ingested %d file(s), %d chunk(s); %d failed\n", succeeded, totalChunks, failed)
	fmt.Printf("Collection %q now holds %d chunk(s)\n", stats.Collection, stats.TotalChunks)

	if failed > 0 {
		return fmt.Errorf("%d file(s) failed to ingest", failed)
	}
	return nil
}
