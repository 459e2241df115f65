package model

import (
	"context"
	"errors"
	"fmt"
)

// ErrStreamingUnsupported is returned through the error channel of Stream by
// backends without a streaming implementation.
var ErrStreamingUnsupported = errors.New("streaming not supported by this model")

// Info contains metadata about a model implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "openai", "anthropic", "mock", etc.
}

// Model is the completion/streaming service contract. Stream returns a lazy,
// finite, non-restartable fragment sequence: the fragment channel closes when
// the response finishes and a failure terminates the sequence through the
// error channel. Cancelling ctx stops consumption without corrupting
// partially collected output.
type Model interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Stream(ctx context.Context, prompt string) (<-chan string, <-chan error)

	// Info returns information about the model implementation.
	Info() Info
}

// Embedder is implemented by models that can produce embedding vectors for
// vector-index forwarding.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// MockModel is a lightweight in-memory Model useful for tests & examples.
type MockModel struct {
	info      Info
	responses map[string]string
}

// NewMockModel constructs a MockModel.
func NewMockModel(name string) *MockModel {
	return &MockModel{
		info:      Info{Name: name, Provider: "mock"},
		responses: make(map[string]string),
	}
}

// AddResponse registers a deterministic canned completion for a prompt.
func (m *MockModel) AddResponse(prompt, response string) { m.responses[prompt] = response }

func (m *MockModel) completion(prompt string) string {
	if full, ok := m.responses[prompt]; ok {
		return full
	}
	return fmt.Sprintf("Mock response to: %s", prompt)
}

// Complete implements Model.
func (m *MockModel) Complete(_ context.Context, prompt string) (string, error) {
	return m.completion(prompt), nil
}

// Stream implements Model; emits the canned completion one rune at a time.
func (m *MockModel) Stream(ctx context.Context, prompt string) (<-chan string, <-chan error) {
	out := make(chan string, 16)
	errCh := make(chan error, 1)

	go func() {
		defer close(out)
		defer close(errCh)

		for _, r := range m.completion(prompt) {
			select {
			case <-ctx.Done():
				errCh <- ctx.Err()
				return
			case out <- string(r):
			}
		}
	}()

	return out, errCh
}

// Embed implements Embedder with a trivial deterministic vector.
func (m *MockModel) Embed(_ context.Context, text string) ([]float64, error) {
	vec := make([]float64, 8)
	for i, b := range []byte(text) {
		vec[i%len(vec)] += float64(b) / 255
	}
	return vec, nil
}

// Info implements Model.
func (m *MockModel) Info() Info { return m.info }
