package vectorindex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/hupe1980/synapseflow/core"
)

// QdrantOptions configures the Qdrant REST adapter.
type QdrantOptions struct {
	// URL is the Qdrant base URL. Defaults to http://localhost:6333.
	URL string
	// APIKey is sent as the api-key header when set.
	APIKey string
	// Collection defaults to "synapseflow_memory".
	Collection string
	// VectorSize is the collection's vector dimension. Defaults to 384.
	// Upserts without a precomputed embedding store a zero vector of this
	// size so payload filtering still works.
	VectorSize int
	// HTTPClient defaults to a client with a 30s timeout.
	HTTPClient *http.Client
}

// Qdrant talks to a Qdrant instance over its REST API. Only the small
// surface the memory store needs is covered: collection bootstrap, point
// upsert and vector/filter search.
type Qdrant struct {
	url        string
	apiKey     string
	collection string
	vectorSize int
	httpClient *http.Client
}

// NewQdrant creates a Qdrant index adapter.
func NewQdrant(optFns ...func(o *QdrantOptions)) *Qdrant {
	opts := QdrantOptions{
		URL:        "http://localhost:6333",
		Collection: "synapseflow_memory",
		VectorSize: 384,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Qdrant{
		url:        opts.URL,
		apiKey:     opts.APIKey,
		collection: opts.Collection,
		vectorSize: opts.VectorSize,
		httpClient: opts.HTTPClient,
	}
}

// EnsureCollection creates the collection if it does not exist yet. Qdrant
// answers 409 for an existing collection, which is treated as success.
func (q *Qdrant) EnsureCollection(ctx context.Context) error {
	body := map[string]any{
		"vectors": map[string]any{
			"size":     q.vectorSize,
			"distance": "Cosine",
		},
	}

	status, _, err := q.do(ctx, http.MethodPut, fmt.Sprintf("/collections/%s", q.collection), body)
	if err != nil {
		return err
	}
	if status != http.StatusOK && status != http.StatusConflict {
		return fmt.Errorf("qdrant: create collection returned status %d", status)
	}
	return nil
}

// Upsert implements core.VectorIndex. A nil vector is padded to a zero
// vector of the collection's size.
func (q *Qdrant) Upsert(ctx context.Context, userID, text string, metadata map[string]any, vector []float64) error {
	if vector == nil {
		vector = make([]float64, q.vectorSize)
	}

	body := map[string]any{
		"points": []map[string]any{{
			"id":     uuid.NewString(),
			"vector": vector,
			"payload": map[string]any{
				"user_id": userID,
				"text":    text,
				"meta":    metadata,
			},
		}},
	}

	status, _, err := q.do(ctx, http.MethodPut, fmt.Sprintf("/collections/%s/points", q.collection), body)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("qdrant: upsert returned status %d", status)
	}
	return nil
}

// Search implements core.VectorIndex. With a vector it runs a similarity
// search; without one it falls back to scrolling the user's points by
// payload filter.
func (q *Qdrant) Search(ctx context.Context, userID, query string, topK int, vector []float64) ([]core.IndexHit, error) {
	if vector != nil {
		return q.searchByVector(ctx, topK, vector)
	}
	return q.scrollByUser(ctx, userID, topK)
}

type qdrantPoint struct {
	ID      any            `json:"id"`
	Score   float64        `json:"score"`
	Payload map[string]any `json:"payload"`
}

func (q *Qdrant) searchByVector(ctx context.Context, topK int, vector []float64) ([]core.IndexHit, error) {
	body := map[string]any{
		"vector":       vector,
		"limit":        topK,
		"with_payload": true,
	}

	status, raw, err := q.do(ctx, http.MethodPost, fmt.Sprintf("/collections/%s/points/search", q.collection), body)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("qdrant: search returned status %d", status)
	}

	var resp struct {
		Result []qdrantPoint `json:"result"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("qdrant: decode search response: %w", err)
	}
	return toHits(resp.Result), nil
}

func (q *Qdrant) scrollByUser(ctx context.Context, userID string, topK int) ([]core.IndexHit, error) {
	body := map[string]any{
		"limit":        topK,
		"with_payload": true,
		"filter": map[string]any{
			"must": []map[string]any{{
				"key":   "user_id",
				"match": map[string]any{"value": userID},
			}},
		},
	}

	status, raw, err := q.do(ctx, http.MethodPost, fmt.Sprintf("/collections/%s/points/scroll", q.collection), body)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("qdrant: scroll returned status %d", status)
	}

	var resp struct {
		Result struct {
			Points []qdrantPoint `json:"points"`
		} `json:"result"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("qdrant: decode scroll response: %w", err)
	}
	return toHits(resp.Result.Points), nil
}

func toHits(points []qdrantPoint) []core.IndexHit {
	hits := make([]core.IndexHit, 0, len(points))
	for _, p := range points {
		hit := core.IndexHit{
			ID:       fmt.Sprintf("%v", p.ID),
			Score:    p.Score,
			Metadata: p.Payload,
		}
		if text, ok := p.Payload["text"].(string); ok {
			hit.Text = text
		}
		hits = append(hits, hit)
	}
	return hits
}

func (q *Qdrant) do(ctx context.Context, method, path string, body any) (int, []byte, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return 0, nil, fmt.Errorf("qdrant: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, q.url+path, bytes.NewReader(raw))
	if err != nil {
		return 0, nil, fmt.Errorf("qdrant: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if q.apiKey != "" {
		req.Header.Set("api-key", q.apiKey)
	}

	resp, err := q.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("qdrant: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("qdrant: read response: %w", err)
	}
	return resp.StatusCode, out, nil
}
