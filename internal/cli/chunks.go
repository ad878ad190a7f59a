package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docsage/docsage/internal/chunk"
)

var chunksPreview int

// chunksCmd represents the chunks command
var chunksCmd = &cobra.Command{
	Use:   "chunks <file>",
	Short: "Preview how a document would be chunked",
	Long: `Chunks splits a document exactly as ingestion would and prints each
chunk with summary statistics, useful for tuning chunk size and method
before indexing a corpus.

Example:
  docsage chunks notes.md
  docsage chunks notes.md --chunk-size 300 --chunk-method words --preview 2`,
	Args: cobra.ExactArgs(1),
	RunE: runChunks,
}

func init() {
	rootCmd.AddCommand(chunksCmd)

	chunksCmd.Flags().IntVar(&chunkSize, "chunk-size", 0, "target words per chunk (default from config)")
	chunksCmd.Flags().IntVar(&chunkOverlap, "chunk-overlap", -1, "overlap words for word-based chunking")
	chunksCmd.Flags().StringVar(&chunkMethod, "chunk-method", "", "chunking method (words, sentences)")
	chunksCmd.Flags().IntVar(&chunksPreview, "preview", 0, "print the first N chunks in full")
}

func runChunks(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if chunkSize > 0 {
		cfg.Chunking.Size = chunkSize
	}
	if chunkOverlap >= 0 {
		cfg.Chunking.Overlap = chunkOverlap
	}
	if chunkMethod != "" {
		cfg.Chunking.Method = chunkMethod
	}

	text, err := readDocument(args[0])
	if err != nil {
		return err
	}

	chunker, err := chunk.New(cfg.Chunking.Size, cfg.Chunking.Overlap)
	if err != nil {
		return fmt.Errorf("configure chunker: %w", err)
	}

	chunks, err := chunker.Chunk(text, chunk.Method(cfg.Chunking.Method))
	if err != nil {
		return err
	}

	stats, err := chunk.ComputeStats(chunks)
	if err != nil {
		return fmt.Errorf("document produced no chunks")
	}

	fmt.Printf("Method:        %s\n", stats.Method)
	fmt.Printf("Chunks:        %d\n", stats.TotalChunks)
	fmt.Printf("Total words:   %d\n", stats.TotalWords)
	fmt.Printf("Words/chunk:   avg %.1f, min %d, max %d\n", stats.AvgWords, stats.MinWords, stats.MaxWords)

	for i, c := range chunks {
		if i >= chunksPreview {
			break
		}
		fmt.Printf("\n--- chunk %d (%d words) ---\n%s\n", c.Index, c.WordCount, c.Text)
	}

	return nil
}
