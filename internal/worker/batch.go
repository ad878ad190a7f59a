package worker

import (
	"context"
	"path/filepath"
)

// Ingestor defines the interface for adding a document to the knowledge base
type Ingestor interface {
	AddDocument(ctx context.Context, text string, metadata map[string]any) ([]string, error)
}

// ReadFunc loads a document file into plain text
type ReadFunc func(path string) (string, error)

// IngestJob represents a single-document ingestion job
type IngestJob struct {
	Path     string
	Read     ReadFunc
	Ingestor Ingestor
}

// Execute executes the ingestion job
func (j *IngestJob) Execute(ctx context.Context) Result {
	text, err := j.Read(j.Path)
	if err != nil {
		return &IngestResult{Path: j.Path, Error: err}
	}

	metadata := map[string]any{
		"source": filepath.Base(j.Path),
		"path":   j.Path,
	}
	ids, err := j.Ingestor.AddDocument(ctx, text, metadata)
	if err != nil {
		return &IngestResult{Path: j.Path, Error: err}
	}

	return &IngestResult{Path: j.Path, ChunkIDs: ids}
}

// IngestResult represents the result of an ingestion job
type IngestResult struct {
	Path     string
	ChunkIDs []string
	Error    error
}

// GetError returns the error from the ingestion result
func (r *IngestResult) GetError() error {
	return r.Error
}

// BatchProcessor ingests multiple document files concurrently
type BatchProcessor struct {
	ingestor    Ingestor
	read        ReadFunc
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(ingestor Ingestor, read ReadFunc, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		ingestor:    ingestor,
		read:        read,
		concurrency: concurrency,
	}
}

// ProcessFiles ingests the given files concurrently and returns one result
// per file. A failed file never aborts the batch.
func (b *BatchProcessor) ProcessFiles(ctx context.Context, paths []string) []*IngestResult {
	if len(paths) == 0 {
		return []*IngestResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, path := range paths {
		pool.Submit(&IngestJob{
			Path:     path,
			Read:     b.read,
			Ingestor: b.ingestor,
		})
	}

	results := pool.Wait()

	ingestResults := make([]*IngestResult, len(results))
	for i, result := range results {
		ingestResults[i] = result.(*IngestResult)
	}

	return ingestResults
}
