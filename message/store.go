package message

import (
	"sync"

	"github.com/hupe1980/chatmesh/core"
	"github.com/hupe1980/chatmesh/session"
)

// Store owns the per-session ordered message lists. It is safe for concurrent
// access; readers receive defensive copies. Every structural mutation keeps
// the session registry's message-id order in sync.
type Store struct {
	mu       sync.RWMutex
	registry *session.Registry
	messages map[string][]core.Message
}

// NewStore constructs an empty message store mirroring into the registry.
func NewStore(registry *session.Registry) *Store {
	return &Store{
		registry: registry,
		messages: make(map[string][]core.Message),
	}
}

// GetOrCreate returns a copy of the session's message list, creating an empty
// one on first access.
func (s *Store) GetOrCreate(sessionID string) []core.Message {
	s.mu.Lock()
	s.getOrCreateLocked(sessionID)
	s.mu.Unlock()
	return s.Messages(sessionID)
}

// Messages returns a copy of the session's message list (nil-safe).
func (s *Store) Messages(sessionID string) []core.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	msgs := s.messages[sessionID]
	out := make([]core.Message, len(msgs))
	copy(out, msgs)
	return out
}

// Find locates a message by id within a session.
func (s *Store) Find(sessionID, id string) (core.Message, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.messages[sessionID] {
		if m.ID == id {
			return m, true
		}
	}
	return core.Message{}, false
}

// Append pushes a message onto the session's list and mirrors its id into
// the registry.
func (s *Store) Append(sessionID string, msg core.Message) {
	s.mu.Lock()
	list := s.getOrCreateLocked(sessionID)
	s.messages[sessionID] = append(list, msg)
	s.mu.Unlock()

	s.registry.AppendMessageID(sessionID, msg.ID)
}

// InsertAfter places a message immediately after the message with id afterID,
// preserving the card contiguity invariant, and rewrites the registry order.
// Falls back to Append when afterID is not found.
func (s *Store) InsertAfter(sessionID, afterID string, msg core.Message) {
	s.mu.Lock()
	list := s.getOrCreateLocked(sessionID)
	idx := -1
	for i, m := range list {
		if m.ID == afterID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.messages[sessionID] = append(list, msg)
		s.mu.Unlock()
		s.registry.AppendMessageID(sessionID, msg.ID)
		return
	}

	out := make([]core.Message, 0, len(list)+1)
	out = append(out, list[:idx+1]...)
	out = append(out, msg)
	out = append(out, list[idx+1:]...)
	s.messages[sessionID] = out
	ids := idsOf(out)
	s.mu.Unlock()

	s.registry.ReplaceMessageIDs(sessionID, ids)
}

// Update locates a message by id and applies an in-place mutation. A missing
// target is treated as already resolved: the call is a silent no-op.
func (s *Store) Update(sessionID, id string, mutate func(*core.Message)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.messages[sessionID]
	for i := range list {
		if list[i].ID == id {
			mutate(&list[i])
			return
		}
	}
}

// Replace overwrites the session's message list and rewrites the registry
// order. Used by regeneration to trim a contiguous suffix.
func (s *Store) Replace(sessionID string, msgs []core.Message) {
	s.mu.Lock()
	list := make([]core.Message, len(msgs))
	copy(list, msgs)
	s.messages[sessionID] = list
	ids := idsOf(list)
	s.mu.Unlock()

	s.registry.ReplaceMessageIDs(sessionID, ids)
}

// Remove drops the session's message list entirely (session delete cascade).
func (s *Store) Remove(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.messages, sessionID)
}

// StreamingCount reports how many messages store-wide are in streaming state.
// The conversation engine keeps this at most 1 at every instant.
func (s *Store) StreamingCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, list := range s.messages {
		for _, m := range list {
			if m.IsStreaming() {
				n++
			}
		}
	}
	return n
}

// Snapshot returns a deep copy of all message lists for persistence.
func (s *Store) Snapshot() map[string][]core.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string][]core.Message, len(s.messages))
	for sid, list := range s.messages {
		cp := make([]core.Message, len(list))
		copy(cp, list)
		out[sid] = cp
	}
	return out
}

// Restore replaces the store content with the given message lists. The
// registry order is not rewritten: a loaded snapshot already carries it.
func (s *Store) Restore(messages map[string][]core.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = make(map[string][]core.Message, len(messages))
	for sid, list := range messages {
		cp := make([]core.Message, len(list))
		copy(cp, list)
		s.messages[sid] = cp
	}
}

// Reset drops all message lists.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = make(map[string][]core.Message)
}

// getOrCreateLocked ensures a list exists for the session. Caller holds the
// write lock.
func (s *Store) getOrCreateLocked(sessionID string) []core.Message {
	list, ok := s.messages[sessionID]
	if !ok {
		list = make([]core.Message, 0, 16)
		s.messages[sessionID] = list
	}
	return list
}

func idsOf(msgs []core.Message) []string {
	ids := make([]string, len(msgs))
	for i, m := range msgs {
		ids[i] = m.ID
	}
	return ids
}
