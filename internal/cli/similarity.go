package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docsage/docsage/internal/vector"
)

// similarityCmd represents the similarity command
var similarityCmd = &cobra.Command{
	Use:   "similarity <text> <candidate>...",
	Short: "Score texts against each other by embedding similarity",
	Long: `Similarity embeds the first text and every candidate with the
configured embedding provider and prints cosine similarity scores,
best match first.

Example:
  docsage similarity "machine learning" "deep learning" "cooking recipes"
  docsage similarity "refund policy" "returns and refunds" --embedding-provider openai`,
	Args: cobra.MinimumNArgs(2),
	RunE: runSimilarity,
}

func init() {
	rootCmd.AddCommand(similarityCmd)

	similarityCmd.Flags().StringVar(&embProvider, "embedding-provider", "", "embedding provider (openai, hashing)")
	similarityCmd.Flags().StringVar(&embModel, "embedding-model", "", "embedding model name")
}

func runSimilarity(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg := loadConfig()
	applySharedFlags(cfg)
	if err := resolveAPIKeys(cfg); err != nil {
		return err
	}

	embedder, err := buildEmbedder(cfg, nil)
	if err != nil {
		return err
	}

	base, err := embedder.Embed(ctx, args[0])
	if err != nil {
		return fmt.Errorf("embed base text: %w", err)
	}

	candidates := make([]vector.Named, 0, len(args)-1)
	for _, text := range args[1:] {
		vec, err := embedder.Embed(ctx, text)
		if err != nil {
			return fmt.Errorf("embed %q: %w", text, err)
		}
		candidates = append(candidates, vector.Named{Name: text, Vector: vec})
	}

	comparisons, err := vector.CompareMany(base, candidates)
	if err != nil {
		return err
	}

	fmt.Printf("Base: %q (%s, %d dims)\n\n", args[0], embedder.Name(), embedder.Dimension())
	for i, c := range comparisons {
		fmt.Printf("%d. %-40q %.4f  %s\n", i+1, c.Name, c.Score, vector.Interpret(c.Score))
	}

	return nil
}
