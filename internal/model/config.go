package model

import "time"

// Config is the complete docsage configuration
type Config struct {
	Chunking    ChunkingConfig    `yaml:"chunking" json:"chunking"`
	FAQ         FAQConfig         `yaml:"faq" json:"faq"`
	Store       StoreConfig       `yaml:"store" json:"store"`
	Embedding   EmbeddingConfig   `yaml:"embedding" json:"embedding"`
	LLM         LLMConfig         `yaml:"llm" json:"llm"`
	Cache       CacheConfig       `yaml:"cache" json:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" json:"concurrency"`
	Output      OutputConfig      `yaml:"output" json:"output"`
}

// ChunkingConfig controls document segmentation at ingestion time
type ChunkingConfig struct {
	// Method is "words" or "sentences"
	Method string `yaml:"method" json:"method"`

	// Size is the target words per chunk
	Size int `yaml:"size" json:"size"`

	// Overlap is the words shared between consecutive word-based chunks.
	// The sentence strategy uses a fixed 2-sentence overlap instead.
	Overlap int `yaml:"overlap" json:"overlap"`
}

// FAQConfig controls the lexical matcher
type FAQConfig struct {
	// File is a line-oriented corpus, one "question|answer" per line
	File string `yaml:"file" json:"file"`

	// Threshold is the minimum Jaccard score for a confident match
	Threshold float64 `yaml:"threshold" json:"threshold"`
}

// StoreConfig selects and configures the vector store backend
type StoreConfig struct {
	// Backend is "memory" or "qdrant"
	Backend string `yaml:"backend" json:"backend"`

	URL        string        `yaml:"url" json:"url"`
	APIKey     string        `yaml:"api_key,omitempty" json:"-"`
	Collection string        `yaml:"collection" json:"collection"`
	Timeout    time.Duration `yaml:"timeout" json:"timeout"`
}

// EmbeddingConfig selects the embedding provider owned by the vector store
type EmbeddingConfig struct {
	// Provider is "openai" or "hashing" (local, deterministic, offline)
	Provider string `yaml:"provider" json:"provider"`

	Model   string `yaml:"model" json:"model"`
	APIKey  string `yaml:"api_key,omitempty" json:"-"`
	BaseURL string `yaml:"base_url,omitempty" json:"base_url,omitempty"`

	// Dimension applies to the hashing provider only
	Dimension int `yaml:"dimension" json:"dimension"`
}

// LLMConfig configures the text-completion collaborator
type LLMConfig struct {
	// Provider name: "openai", "anthropic", "ollama", "" (disabled)
	Provider string `yaml:"provider" json:"provider"`

	Model   string `yaml:"model" json:"model"`
	APIKey  string `yaml:"api_key,omitempty" json:"-"`
	BaseURL string `yaml:"base_url,omitempty" json:"base_url,omitempty"`

	// Timeout for completion requests, in seconds
	Timeout int `yaml:"timeout" json:"timeout"`

	Temperature float64 `yaml:"temperature" json:"temperature"`
	MaxTokens   int     `yaml:"max_tokens" json:"max_tokens"`

	// Persona is the system prompt prepended to every generation
	Persona string `yaml:"persona,omitempty" json:"persona,omitempty"`
}

// CacheConfig controls answer caching
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" json:"enabled"`
	Dir       string        `yaml:"dir" json:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" json:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" json:"disk_ttl"`
}

// ConcurrencyConfig controls worker pools
type ConcurrencyConfig struct {
	// IngestWorkers is the number of documents chunked/embedded in parallel
	IngestWorkers int `yaml:"ingest_workers" json:"ingest_workers"`

	// RequestsPerSecond paces calls against remote embedding/completion APIs
	RequestsPerSecond float64 `yaml:"requests_per_second" json:"requests_per_second"`
}

// OutputConfig controls CLI output
type OutputConfig struct {
	Verbose bool `yaml:"verbose" json:"verbose"`
	TopK    int  `yaml:"top_k" json:"top_k"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Chunking: ChunkingConfig{
			Method:  "sentences",
			Size:    500,
			Overlap: 50,
		},
		FAQ: FAQConfig{
			Threshold: 0.15,
		},
		Store: StoreConfig{
			Backend:    "memory",
			URL:        "http://localhost:6333",
			Collection: "docsage",
			Timeout:    15 * time.Second,
		},
		Embedding: EmbeddingConfig{
			Provider:  "hashing",
			Model:     "text-embedding-3-small",
			Dimension: 256,
		},
		LLM: LLMConfig{
			Provider:    "",
			Temperature: 0.3,
			Timeout:     30,
			MaxTokens:   2048,
			Persona:     DefaultPersona,
		},
		Cache: CacheConfig{
			Enabled:   true,
			MemoryTTL: 10 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			IngestWorkers:     4,
			RequestsPerSecond: 2,
		},
		Output: OutputConfig{
			TopK: 3,
		},
	}
}

// DefaultPersona is the system prompt used when none is configured.
const DefaultPersona = "You are a helpful AI assistant with access to a knowledge base. " +
	"When answering questions, you ALWAYS cite the source documents you used. " +
	"If you don't find relevant information in the knowledge base, you say so honestly. " +
	"You are accurate, helpful, and always provide context from the documents. " +
	"You never make up information - you only use what's in the provided context."
