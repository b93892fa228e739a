// Package persist houses the PersistenceGateway: it serializes the
// conversation state (sessions + messages) into the versioned snapshot
// envelope and back. Durability is advisory: saves are synchronous,
// best-effort and never surfaced to callers of conversation operations;
// loads degrade to the empty state when the stored snapshot is absent or
// unparsable.
//
// The raw byte storage is abstracted behind core.SnapshotStore so additional
// backends (database, cloud object storage) can be added without changing
// any calling code.
package persist
