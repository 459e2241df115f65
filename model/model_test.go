package model

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockModelComplete(t *testing.T) {
	m := NewMockModel("test")
	m.AddResponse("hello", "world")

	out, err := m.Complete(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "world", out)

	out, err = m.Complete(context.Background(), "unseen prompt")
	require.NoError(t, err)
	assert.Equal(t, "Mock response to: unseen prompt", out)
}

func TestMockModelStream(t *testing.T) {
	m := NewMockModel("test")
	m.AddResponse("hi", "streamed reply")

	out, errCh := m.Stream(context.Background(), "hi")

	var b strings.Builder
	for chunk := range out {
		b.WriteString(chunk)
	}
	require.NoError(t, <-errCh)
	assert.Equal(t, "streamed reply", b.String())
}

func TestMockModelStreamCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := NewMockModel("test")
	m.AddResponse("hi", strings.Repeat("long response ", 100))

	out, errCh := m.Stream(ctx, "hi")
	for range out {
	}
	assert.ErrorIs(t, <-errCh, context.Canceled)
}

func TestMockModelEmbedIsDeterministic(t *testing.T) {
	m := NewMockModel("test")

	a, err := m.Embed(context.Background(), "some text")
	require.NoError(t, err)
	b, err := m.Embed(context.Background(), "some text")
	require.NoError(t, err)

	assert.Len(t, a, 8)
	assert.Equal(t, a, b)
}

func TestMockModelInfo(t *testing.T) {
	m := NewMockModel("test")
	assert.Equal(t, Info{Name: "test", Provider: "mock"}, m.Info())
}
