// Package engine orchestrates conversations and manages the complete
// lifecycle of a single in-flight assistant generation within ChatMesh.
//
// The Engine serves as the central coordination point that bridges UI-level
// intents (send text, send files, regenerate, delete, reset) with the
// underlying stores. It provides:
//
// Core Responsibilities:
//   - Message Ordering: every mutation keeps the session registry's
//     message-id order mirrored through the message store
//   - Generation Management: exactly one assistant generation is in flight;
//     starting a new one cancels and fails the previous streaming target
//   - Progressive Delivery: full completions are staged into placeholder
//     messages through the streaming writer
//   - Durability: state is snapshotted to the persistence gateway at every
//     visible transition (advisory, best-effort)
//   - Attachment Handling: file blobs are stored best-effort and purged on
//     session delete
//
// Error Handling:
//   - Validation failures (empty input) are silent no-ops
//   - Cancellation is a distinguishable expected outcome, never logged as a
//     fault
//   - Transport failures mark the placeholder failed; the send path
//     propagates them, the file path swallows them after logging
//   - Storage failures are logged and never block message-store mutations
package engine
