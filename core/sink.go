package core

// Sink is the durable storage collaborator backing a memory store. The whole
// per-user mapping is rewritten on every save; there is no append-only log
// format. Save failures are best-effort territory for callers: a single
// attempt, logged and ignored, never retried by the engine.
type Sink interface {
	// Load returns the full persisted mapping. A missing backing store yields
	// an empty mapping, not an error.
	Load() (map[string][]Record, error)

	// Save persists the full mapping, replacing whatever was stored before.
	Save(records map[string][]Record) error
}
