package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var chatDocs string

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive question answering session",
	Long: `Chat starts an interactive session over your documents. Each question
is answered from retrieved passages; recent turns are replayed to the
model so follow-up questions keep their context.

Type 'quit' or 'exit' to leave.

Example:
  docsage chat --docs ./docs
  docsage chat --store qdrant --collection my-docs --llm-provider ollama --llm-model llama3.1:8b`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().StringVar(&chatDocs, "docs", "", "file or directory to ingest before chatting")
	chatCmd.Flags().IntVar(&askTopK, "top-k", 0, "passages to retrieve per question")

	chatCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM provider (openai, anthropic, ollama)")
	chatCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
	chatCmd.Flags().StringVar(&storeBackend, "store", "", "vector store backend (memory, qdrant)")
	chatCmd.Flags().StringVar(&storeURL, "store-url", "", "vector store URL (qdrant)")
	chatCmd.Flags().StringVar(&collection, "collection", "", "vector store collection name")
	chatCmd.Flags().StringVar(&embProvider, "embedding-provider", "", "embedding provider (openai, hashing)")
	chatCmd.Flags().StringVar(&embModel, "embedding-model", "", "embedding model name")
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg := loadConfig()
	applySharedFlags(cfg)
	if askTopK > 0 {
		cfg.Output.TopK = askTopK
	}

	agent, kb, err := buildAgent(cfg)
	if err != nil {
		return err
	}

	if chatDocs != "" {
		fmt.Fprintf(os.Stderr, "Ingesting documents from %s...\n", chatDocs)
		results, err := ingestPath(ctx, cfg, kb, chatDocs)
		if err != nil {
			return fmt.Errorf("ingest documents: %w", err)
		}
		for _, r := range results {
			if r.Error != nil {
				fmt.Fprintf(os.Stderr, "Warning: %s: %v\n", r.Path, r.Error)
			}
		}
	}

	if stats, err := kb.Stats(ctx); err == nil {
		fmt.Printf("Knowledge base: %s (%d chunks)\n", stats.Collection, stats.TotalChunks)
	}
	fmt.Println("Type 'quit' to exit")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Print("You: ")
		if !scanner.Scan() {
			break
		}

		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		switch strings.ToLower(question) {
		case "quit", "exit", "q":
			fmt.Println("\nGoodbye!")
			return nil
		}

		result := agent.Chat(ctx, question)

		fmt.Printf("\nAgent: %s\n\n", result.Answer)

		if result.HasSources {
			fmt.Printf("Sources (%d):\n", result.NumSources)
			for i, source := range result.Sources {
				name := "Unknown"
				if s, ok := source.Metadata["source"].(string); ok && s != "" {
					name = s
				}
				fmt.Printf("   %d. %s\n", i+1, name)
			}
			fmt.Println()
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	fmt.Println("\nGoodbye!")
	return nil
}
