package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/docsage/docsage/internal/cache"
	"github.com/docsage/docsage/internal/chunk"
	"github.com/docsage/docsage/internal/embed"
	"github.com/docsage/docsage/internal/llm"
	"github.com/docsage/docsage/internal/loader"
	"github.com/docsage/docsage/internal/model"
	"github.com/docsage/docsage/internal/rag"
	"github.com/docsage/docsage/internal/store"
	"github.com/docsage/docsage/internal/worker"
)

// loadConfig builds the effective configuration: defaults, overlaid with
// any values from the config file and DOCSAGE_* environment variables.
// Flags are applied by each command on top of this.
func loadConfig() *model.Config {
	cfg := model.DefaultConfig()

	if v := viper.GetString("store.backend"); v != "" {
		cfg.Store.Backend = v
	}
	if v := viper.GetString("store.url"); v != "" {
		cfg.Store.URL = v
	}
	if v := viper.GetString("store.collection"); v != "" {
		cfg.Store.Collection = v
	}
	if v := viper.GetString("embedding.provider"); v != "" {
		cfg.Embedding.Provider = v
	}
	if v := viper.GetString("embedding.model"); v != "" {
		cfg.Embedding.Model = v
	}
	if v := viper.GetInt("embedding.dimension"); v > 0 {
		cfg.Embedding.Dimension = v
	}
	if v := viper.GetString("llm.provider"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := viper.GetString("llm.model"); v != "" {
		cfg.LLM.Model = v
	}
	if v := viper.GetString("llm.persona"); v != "" {
		cfg.LLM.Persona = v
	}
	if viper.IsSet("llm.temperature") {
		cfg.LLM.Temperature = viper.GetFloat64("llm.temperature")
	}
	if v := viper.GetString("chunking.method"); v != "" {
		cfg.Chunking.Method = v
	}
	if v := viper.GetInt("chunking.size"); v > 0 {
		cfg.Chunking.Size = v
	}
	if viper.IsSet("chunking.overlap") {
		cfg.Chunking.Overlap = viper.GetInt("chunking.overlap")
	}
	if v := viper.GetString("faq.file"); v != "" {
		cfg.FAQ.File = v
	}
	if viper.IsSet("faq.threshold") {
		cfg.FAQ.Threshold = viper.GetFloat64("faq.threshold")
	}
	if viper.IsSet("cache.enabled") {
		cfg.Cache.Enabled = viper.GetBool("cache.enabled")
	}
	if v := viper.GetInt("output.top_k"); v > 0 {
		cfg.Output.TopK = v
	}
	if v := viper.GetInt("concurrency.ingest_workers"); v > 0 {
		cfg.Concurrency.IngestWorkers = v
	}

	cfg.Output.Verbose = verbose
	return cfg
}

// resolveAPIKeys fills in API keys from the conventional environment
// variables when the config does not carry them.
func resolveAPIKeys(cfg *model.Config) error {
	if cfg.Embedding.Provider == "openai" && cfg.Embedding.APIKey == "" {
		cfg.Embedding.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.Embedding.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set (required by the openai embedding provider)")
		}
	}

	switch cfg.LLM.Provider {
	case "openai":
		if cfg.LLM.APIKey == "" {
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		}
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		if cfg.LLM.APIKey == "" {
			cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		}
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" && cfg.LLM.BaseURL == "" {
			cfg.LLM.BaseURL = baseURL
		}
	}

	if cfg.Store.Backend == "qdrant" && cfg.Store.APIKey == "" {
		cfg.Store.APIKey = os.Getenv("QDRANT_API_KEY")
	}

	return nil
}

// buildEmbedder constructs the embedding provider the store will own
func buildEmbedder(cfg *model.Config, limiter *worker.Limiter) (embed.Embedder, error) {
	switch cfg.Embedding.Provider {
	case "openai":
		return embed.NewOpenAIEmbedder(cfg.Embedding, limiter)
	case "hashing", "":
		return embed.NewHashingEmbedder(cfg.Embedding.Dimension), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s (supported: openai, hashing)", cfg.Embedding.Provider)
	}
}

// buildStore constructs the vector store backend
func buildStore(cfg *model.Config, limiter *worker.Limiter) (store.Store, error) {
	embedder, err := buildEmbedder(cfg, limiter)
	if err != nil {
		return nil, err
	}

	switch cfg.Store.Backend {
	case "memory", "":
		return store.NewMemory(embedder), nil
	case "qdrant":
		return store.NewQdrant(store.QdrantConfig{
			URL:        cfg.Store.URL,
			APIKey:     cfg.Store.APIKey,
			Collection: cfg.Store.Collection,
			Timeout:    cfg.Store.Timeout,
		}, embedder), nil
	default:
		return nil, fmt.Errorf("unknown store backend: %s (supported: memory, qdrant)", cfg.Store.Backend)
	}
}

// buildKnowledgeBase wires the chunker and store into a knowledge base
func buildKnowledgeBase(cfg *model.Config, st store.Store) (*rag.KnowledgeBase, error) {
	chunker, err := chunk.New(cfg.Chunking.Size, cfg.Chunking.Overlap)
	if err != nil {
		return nil, fmt.Errorf("configure chunker: %w", err)
	}
	return rag.NewKnowledgeBase(st, chunker, chunk.Method(cfg.Chunking.Method), cfg.Store.Collection), nil
}

// buildAgent assembles the full answering pipeline from configuration
func buildAgent(cfg *model.Config) (*rag.Agent, *rag.KnowledgeBase, error) {
	if err := resolveAPIKeys(cfg); err != nil {
		return nil, nil, err
	}

	limiter := worker.NewLimiter(cfg.Concurrency.RequestsPerSecond, 1)

	st, err := buildStore(cfg, limiter)
	if err != nil {
		return nil, nil, err
	}

	kb, err := buildKnowledgeBase(cfg, st)
	if err != nil {
		return nil, nil, err
	}

	generator, err := llm.NewGenerator(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return nil, nil, err
	}

	agent := rag.NewAgent(kb, generator, cfg.Output.TopK, cfg.Output.Verbose)

	if cfg.Cache.Enabled {
		agent.WithAnswerCache(buildAnswerCache(cfg), cfg.LLM.Model)
	}

	return agent, kb, nil
}

// buildAnswerCache builds the layered answer cache
func buildAnswerCache(cfg *model.Config) *cache.AnswerCache {
	dir := cfg.Cache.Dir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			dir = filepath.Join(home, ".docsage", "cache")
		} else {
			dir = filepath.Join(os.TempDir(), "docsage-cache")
		}
	}

	backend := cache.NewLayeredCache(cfg.Cache.MemoryTTL, dir, cfg.Cache.DiskTTL)
	ttl := cfg.Cache.DiskTTL
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	return cache.NewAnswerCache(backend, ttl)
}

// readDocument loads a file into plain text for ingestion
func readDocument(path string) (string, error) {
	doc, err := loader.Load(path)
	if err != nil {
		return "", err
	}
	return doc.Text, nil
}

// ingestPath loads one file or a directory tree into the knowledge base,
// chunking and indexing files concurrently. Returns per-file results.
func ingestPath(ctx context.Context, cfg *model.Config, kb *rag.KnowledgeBase, path string) ([]*worker.IngestResult, error) {
	paths, err := loader.Discover(path)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no loadable documents under %s", path)
	}

	processor := worker.NewBatchProcessor(kb, readDocument, cfg.Concurrency.IngestWorkers)
	return processor.ProcessFiles(ctx, paths), nil
}

// printAnswer renders an answer with its sources to stdout
func printAnswer(result *model.AnswerResult) {
	fmt.Println(result.Answer)

	if result.HasSources {
		fmt.Println()
		fmt.Printf("Sources (%d):\n", result.NumSources)
		for i, source := range result.Sources {
			name := "Unknown"
			if s, ok := source.Metadata["source"].(string); ok && s != "" {
				name = s
			}
			if source.Similarity > 0 {
				fmt.Printf("  %d. %s (similarity: %.2f)\n", i+1, name, source.Similarity)
			} else {
				fmt.Printf("  %d. %s\n", i+1, name)
			}
		}
	}
}
