// Package core provides the foundational domain types and interfaces used by
// ChatMesh. It defines the core abstractions for:
//
//   - Sessions (named, ordered conversations owning a message-id order)
//   - Messages (a closed tagged union of text, card and file variants)
//   - Snapshots (the versioned durable form of sessions + messages)
//   - Pluggable stores for snapshot bytes and attachment blobs
//   - The error-kind taxonomy shared by every conversation operation
//
// The package intentionally keeps implementation concerns (persistence, the
// conversation engine, concrete blob backends) out of scope, exposing small
// interfaces so custom backends can be wired without touching calling code.
package core
