package persist

import "sync"

// MemoryStore is a volatile core.SnapshotStore keeping the snapshot bytes in
// process memory. Best suited for tests and ephemeral demos. Bytes are copied
// on write and read to prevent external mutation.
type MemoryStore struct {
	mu   sync.RWMutex
	data []byte
}

// NewMemoryStore returns an empty in-memory snapshot store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Read returns a copy of the stored bytes, or (nil, nil) when nothing has
// been written yet.
func (s *MemoryStore) Read() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data == nil {
		return nil, nil
	}
	cp := make([]byte, len(s.data))
	copy(cp, s.data)
	return cp, nil
}

// Write stores a copy of the snapshot bytes.
func (s *MemoryStore) Write(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	s.data = cp
	return nil
}

// Clear drops the stored snapshot.
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = nil
	return nil
}
