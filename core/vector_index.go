package core

import "context"

// IndexHit is a single result returned by a vector index search.
type IndexHit struct {
	ID       string         `json:"id"`
	Text     string         `json:"text"`
	Score    float64        `json:"score,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// VectorIndex is the external similarity-search collaborator a memory store
// can forward writes to. Both operations accept an optional precomputed
// embedding; when vector is nil implementations fall back to a metadata or
// text filter match.
type VectorIndex interface {
	Upsert(ctx context.Context, userID, text string, metadata map[string]any, vector []float64) error
	Search(ctx context.Context, userID, query string, topK int, vector []float64) ([]IndexHit, error)
}
