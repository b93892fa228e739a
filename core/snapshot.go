package core

// SnapshotVersion is the current durable snapshot schema version.
const SnapshotVersion = 1

// Snapshot is the versioned envelope written to durable storage.
type Snapshot struct {
	Version int          `json:"version"`
	Data    SnapshotData `json:"data"`
}

// SnapshotData holds the serializable conversation state: the ordered session
// list plus the per-session message lists keyed by session id.
type SnapshotData struct {
	Sessions []Session            `json:"sessions"`
	Messages map[string][]Message `json:"messages"`
}

// EmptySnapshotData returns the canonical empty state used when no snapshot
// exists or the stored one cannot be parsed.
func EmptySnapshotData() SnapshotData {
	return SnapshotData{Sessions: []Session{}, Messages: map[string][]Message{}}
}

// SnapshotStore persists raw snapshot bytes. Implementations should be
// thread-safe. Read returns (nil, nil) when no snapshot has been written yet;
// Clear removes any stored snapshot and is a no-op when none exists.
type SnapshotStore interface {
	Read() ([]byte, error)
	Write(data []byte) error
	Clear() error
}
