package chunk

import "github.com/docsage/docsage/internal/model"

// Stats summarizes a chunk sequence.
type Stats struct {
	TotalChunks int               `json:"total_chunks"`
	AvgWords    float64           `json:"avg_words_per_chunk"`
	MinWords    int               `json:"min_words"`
	MaxWords    int               `json:"max_words"`
	TotalWords  int               `json:"total_words"`
	Method      model.ChunkMethod `json:"method"`
}

// ComputeStats aggregates word counts over chunks. An empty sequence is an
// input validation fault and returns ErrNoChunks.
func ComputeStats(chunks []model.Chunk) (Stats, error) {
	if len(chunks) == 0 {
		return Stats{}, ErrNoChunks
	}

	stats := Stats{
		TotalChunks: len(chunks),
		MinWords:    chunks[0].WordCount,
		MaxWords:    chunks[0].WordCount,
		Method:      chunks[0].Method,
	}
	for _, c := range chunks {
		stats.TotalWords += c.WordCount
		if c.WordCount < stats.MinWords {
			stats.MinWords = c.WordCount
		}
		if c.WordCount > stats.MaxWords {
			stats.MaxWords = c.WordCount
		}
	}
	stats.AvgWords = float64(stats.TotalWords) / float64(len(chunks))

	return stats, nil
}
