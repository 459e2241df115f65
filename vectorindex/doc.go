// Package vectorindex contains concrete VectorIndex implementations. The
// index contract and IndexHit type reside in the core package; depend on
// core.VectorIndex in your code and select an implementation (Qdrant REST,
// the embedding wrapper or the in-memory index) at wiring time.
package vectorindex
