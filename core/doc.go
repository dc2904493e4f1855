// Package core provides the foundational domain types and contracts used by
// MeetingMesh. It defines the core abstractions for:
//
//   - Meetings, time slots and recurrence specifications
//   - Extracted intents (the NLU wire contract) and the typed field map
//   - Sessions (per-conversation containers with bounded chat history)
//   - The pending-context sum type tracked across conversation turns
//   - Pluggable calendar stores and response renderers
//
// The package intentionally keeps implementation concerns (persistence, NLU
// providers, the dialogue loop) out of scope, exposing small interfaces to
// enable custom backends and extensions.
package core
