package vectorindex

import (
	"context"

	"github.com/hupe1980/synapseflow/core"
	"github.com/hupe1980/synapseflow/logging"
	"github.com/hupe1980/synapseflow/model"
)

// EmbeddedOptions configures an Embedded index.
type EmbeddedOptions struct {
	// Logger receives embedding fallback warnings. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Embedded decorates a VectorIndex with embedding computation: writes and
// searches without a precomputed vector get one from the embedder first. An
// embedding failure degrades to the wrapped index's filter behavior instead
// of failing the operation.
type Embedded struct {
	index    core.VectorIndex
	embedder model.Embedder
	logger   logging.Logger
}

// NewEmbedded wraps index with the given embedder.
func NewEmbedded(index core.VectorIndex, embedder model.Embedder, optFns ...func(o *EmbeddedOptions)) *Embedded {
	opts := EmbeddedOptions{Logger: logging.NoOpLogger{}}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Embedded{index: index, embedder: embedder, logger: opts.Logger}
}

// Upsert implements core.VectorIndex.
func (e *Embedded) Upsert(ctx context.Context, userID, text string, metadata map[string]any, vector []float64) error {
	if vector == nil {
		emb, err := e.embedder.Embed(ctx, text)
		if err != nil {
			e.logger.Warn("vectorindex.embed.upsert_fallback", "error", err.Error())
		} else {
			vector = emb
		}
	}
	return e.index.Upsert(ctx, userID, text, metadata, vector)
}

// Search implements core.VectorIndex.
func (e *Embedded) Search(ctx context.Context, userID, query string, topK int, vector []float64) ([]core.IndexHit, error) {
	if vector == nil {
		emb, err := e.embedder.Embed(ctx, query)
		if err != nil {
			e.logger.Warn("vectorindex.embed.search_fallback", "error", err.Error())
		} else {
			vector = emb
		}
	}
	return e.index.Search(ctx, userID, query, topK, vector)
}
