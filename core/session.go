package core

import "time"

// Session is a named, ordered conversation. MessageIDs is exactly the
// creation-order projection of the session's messages: it is never reordered,
// only appended to or fully replaced (regeneration trims a contiguous
// suffix). UpdatedAt is monotonically non-decreasing.
type Session struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	MessageIDs []string  `json:"messageIds"`
}

// NewSession creates a session with a fresh id and the given title.
func NewSession(title string) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:         NewID(),
		Title:      title,
		CreatedAt:  now,
		UpdatedAt:  now,
		MessageIDs: []string{},
	}
}

// Clone returns a deep copy of the session safe for independent mutation.
func (s *Session) Clone() *Session {
	clone := *s
	clone.MessageIDs = make([]string, len(s.MessageIDs))
	copy(clone.MessageIDs, s.MessageIDs)
	return &clone
}

// HasMessageID reports whether the id is already mirrored into the session.
func (s *Session) HasMessageID(id string) bool {
	for _, existing := range s.MessageIDs {
		if existing == id {
			return true
		}
	}
	return false
}

// Touch bumps UpdatedAt, keeping it monotonically non-decreasing even if the
// wall clock steps backwards.
func (s *Session) Touch() {
	if now := time.Now().UTC(); now.After(s.UpdatedAt) {
		s.UpdatedAt = now
	}
}
