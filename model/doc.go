// Package model defines the completion/streaming collaborator contract
// consumed by the engine's outer surfaces, plus a deterministic MockModel for
// tests and examples. Provider adapters live in the openai and anthropic
// subpackages; the core orchestration loop never depends on a model, so an
// unconfigured model only fails the operations that need one.
package model
