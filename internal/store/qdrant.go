package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/docsage/docsage/internal/embed"
	"github.com/docsage/docsage/internal/model"
)

// Qdrant is a minimal REST client to a Qdrant collection configured for
// cosine distance. The collection is created on first use.
type Qdrant struct {
	baseURL    string
	apiKey     string
	collection string
	embedder   embed.Embedder
	client     *http.Client

	initOnce sync.Once
	initErr  error
}

// QdrantConfig configures the Qdrant store.
type QdrantConfig struct {
	URL        string
	APIKey     string
	Collection string
	Timeout    time.Duration
}

// NewQdrant creates a Qdrant-backed store around the given embedder.
func NewQdrant(cfg QdrantConfig, embedder embed.Embedder) *Qdrant {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	collection := cfg.Collection
	if collection == "" {
		collection = "docsage"
	}
	return &Qdrant{
		baseURL:    strings.TrimSuffix(cfg.URL, "/"),
		apiKey:     cfg.APIKey,
		collection: collection,
		embedder:   embedder,
		client:     &http.Client{Timeout: timeout},
	}
}

// ensureCollection creates the collection if it does not exist yet.
// Qdrant answers 200 for an existing collection with the same schema.
func (s *Qdrant) ensureCollection(ctx context.Context) error {
	s.initOnce.Do(func() {
		body := map[string]any{
			"vectors": map[string]any{
				"size":     s.embedder.Dimension(),
				"distance": "Cosine",
			},
		}
		s.initErr = s.putJSON(ctx, s.collectionURL(""), body)
	})
	return s.initErr
}

// Add embeds and upserts the given texts as points.
func (s *Qdrant) Add(ctx context.Context, ids []string, texts []string, metadatas []map[string]any) error {
	if len(ids) != len(texts) || len(texts) != len(metadatas) {
		return fmt.Errorf("ids, texts, and metadatas must have equal lengths: %d/%d/%d",
			len(ids), len(texts), len(metadatas))
	}
	if err := s.ensureCollection(ctx); err != nil {
		return fmt.Errorf("ensure collection: %w", err)
	}

	points := make([]map[string]any, len(ids))
	for i := range ids {
		vec, err := s.embedder.Embed(ctx, texts[i])
		if err != nil {
			return fmt.Errorf("embed text %d: %w", i, err)
		}
		payload := map[string]any{"text": texts[i]}
		for k, v := range metadatas[i] {
			payload[k] = v
		}
		points[i] = map[string]any{
			"id":      ids[i],
			"vector":  vec,
			"payload": payload,
		}
	}

	body := map[string]any{"points": points}
	return s.putJSON(ctx, s.collectionURL("/points?wait=true"), body)
}

// Query embeds the query and runs a nearest-neighbor search. Qdrant's
// cosine search reports a similarity score directly, so no distance
// conversion applies here.
func (s *Qdrant) Query(ctx context.Context, query string, topK int) ([]model.RetrievedPassage, error) {
	if topK <= 0 {
		topK = 3
	}
	vec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	req := map[string]any{
		"vector":       vec,
		"limit":        topK,
		"with_payload": true,
	}
	var resp struct {
		Result []struct {
			ID      any            `json:"id"`
			Score   float64        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}
	if err := s.postJSON(ctx, s.collectionURL("/points/search"), req, &resp); err != nil {
		return nil, err
	}

	passages := make([]model.RetrievedPassage, 0, len(resp.Result))
	for _, r := range resp.Result {
		similarity := r.Score
		passage := model.RetrievedPassage{
			ID:         fmt.Sprintf("%v", r.ID),
			Metadata:   make(map[string]any, len(r.Payload)),
			Similarity: &similarity,
		}
		for k, v := range r.Payload {
			if k == "text" {
				passage.Text, _ = v.(string)
				continue
			}
			passage.Metadata[k] = v
		}
		passages = append(passages, passage)
	}

	return passages, nil
}

// Count reports the number of stored points.
func (s *Qdrant) Count(ctx context.Context) (int, error) {
	var resp struct {
		Result struct {
			Count int `json:"count"`
		} `json:"result"`
	}
	err := s.postJSON(ctx, s.collectionURL("/points/count"), map[string]any{"exact": true}, &resp)
	if err != nil {
		return 0, err
	}
	return resp.Result.Count, nil
}

// DeleteAll drops and recreates the collection.
func (s *Qdrant) DeleteAll(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, s.collectionURL(""), nil)
	if err != nil {
		return err
	}
	s.setHeaders(req)
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("delete collection: %w", err)
	}
	_ = resp.Body.Close()

	// Recreate so subsequent Adds find a fresh collection.
	s.initOnce = sync.Once{}
	return s.ensureCollection(ctx)
}

func (s *Qdrant) collectionURL(suffix string) string {
	return fmt.Sprintf("%s/collections/%s%s", s.baseURL, s.collection, suffix)
}

func (s *Qdrant) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}
}

func (s *Qdrant) putJSON(ctx context.Context, url string, body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	s.setHeaders(req)
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant PUT %s failed: %s", url, resp.Status)
	}
	return nil
}

func (s *Qdrant) postJSON(ctx context.Context, url string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	s.setHeaders(req)
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant POST %s failed: %s", url, resp.Status)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
