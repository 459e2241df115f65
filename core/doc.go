// Package core provides the foundational domain types and collaborator
// contracts used by SynapseFlow. It defines the core abstractions for:
//
//   - Capabilities (named, invocable units of work exposed to agents)
//   - Records (immutable per-user memory entries)
//   - Invocation results (explicit Ok / Failed outcomes at isolation boundaries)
//   - Pluggable collaborators: durable sinks, vector indexes, discovery
//     sources and trace hooks
//
// The package intentionally keeps implementation concerns (persistence,
// scoring heuristics, run-loop orchestration) out of scope, exposing small
// interfaces so custom backends can be plugged in without dependency cycles.
package core
