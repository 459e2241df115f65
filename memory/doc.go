// Package memory contains the context store: an append-only per-user log of
// records with lexical-overlap retrieval scoring, best-effort persistence to
// a durable sink and optional forwarding to an external vector index. The
// sink and index contracts live in the core package; this package provides
// the store plus file, BoltDB and Redis backed sink implementations selected
// at wiring time.
package memory
