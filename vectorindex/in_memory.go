package vectorindex

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/hupe1980/synapseflow/core"
)

// InMemory is a naive process-local VectorIndex. Search ignores vectors and
// runs a case-insensitive substring match over the user's entries. Suitable
// only for tests and demos.
type InMemory struct {
	mu      sync.RWMutex
	entries map[string][]core.IndexHit
}

// NewInMemory creates an empty in-memory index.
func NewInMemory() *InMemory {
	return &InMemory{entries: make(map[string][]core.IndexHit)}
}

// Upsert implements core.VectorIndex.
func (m *InMemory) Upsert(_ context.Context, userID, text string, metadata map[string]any, _ []float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[userID] = append(m.entries[userID], core.IndexHit{
		ID:       uuid.NewString(),
		Text:     text,
		Score:    1.0,
		Metadata: metadata,
	})
	return nil
}

// Search implements core.VectorIndex.
func (m *InMemory) Search(_ context.Context, userID, query string, topK int, _ []float64) ([]core.IndexHit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	q := strings.ToLower(query)

	var hits []core.IndexHit
	for _, e := range m.entries[userID] {
		if len(hits) >= topK {
			break
		}
		if q == "" || strings.Contains(strings.ToLower(e.Text), q) {
			hits = append(hits, e)
		}
	}
	return hits, nil
}
