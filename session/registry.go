package session

import (
	"fmt"
	"regexp"
	"sort"
	"sync"

	"github.com/hupe1980/chatmesh/core"
)

// autoTitleRe matches auto-generated titles so Create can find the smallest
// free number.
var autoTitleRe = regexp.MustCompile(`^New Conversation ([0-9]+)$`)

// Registry is the single owner of session metadata: an ordered session list
// (most recent first) plus the active-session pointer. It is safe for
// concurrent access; all readers receive defensive clones.
type Registry struct {
	mu       sync.RWMutex
	sessions []*core.Session
	activeID string
}

// NewRegistry constructs an empty in-memory session registry.
func NewRegistry() *Registry {
	return &Registry{sessions: []*core.Session{}}
}

// Create provisions a new session, inserts it at the front of the list and
// makes it active. When title is empty an auto-generated "New Conversation N"
// title is used, where N is the smallest positive integer not already taken.
func (r *Registry) Create(title string) *core.Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	if title == "" {
		title = r.nextAutoTitleLocked()
	}

	sess := core.NewSession(title)
	r.sessions = append([]*core.Session{sess}, r.sessions...)
	r.activeID = sess.ID

	return sess.Clone()
}

// nextAutoTitleLocked scans existing auto-generated titles, collects their
// numbers and returns the first gap (or max+1). Caller holds the write lock.
func (r *Registry) nextAutoTitleLocked() string {
	var used []int
	for _, sess := range r.sessions {
		m := autoTitleRe.FindStringSubmatch(sess.Title)
		if m == nil {
			continue
		}
		var n int
		if _, err := fmt.Sscanf(m[1], "%d", &n); err == nil && n > 0 {
			used = append(used, n)
		}
	}
	sort.Ints(used)

	next := 1
	for _, n := range used {
		if n > next {
			break
		}
		if n == next {
			next++
		}
	}
	return fmt.Sprintf("New Conversation %d", next)
}

// Get returns a clone of the session with the given id.
func (r *Registry) Get(id string) (*core.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if sess := r.findLocked(id); sess != nil {
		return sess.Clone(), true
	}
	return nil, false
}

// List returns clones of all sessions in display order (most recent first).
func (r *Registry) List() []*core.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*core.Session, len(r.sessions))
	for i, sess := range r.sessions {
		out[i] = sess.Clone()
	}
	return out
}

// Len reports the number of sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Active returns a clone of the active session, if any.
func (r *Registry) Active() (*core.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if sess := r.findLocked(r.activeID); sess != nil {
		return sess.Clone(), true
	}
	return nil, false
}

// ActiveID returns the id of the active session or "".
func (r *Registry) ActiveID() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.activeID
}

// SetActive moves the active pointer. No-op when the session does not exist.
func (r *Registry) SetActive(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findLocked(id) != nil {
		r.activeID = id
	}
}

// Rename sets the session title and bumps UpdatedAt. No-op when missing.
func (r *Registry) Rename(id, title string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if sess := r.findLocked(id); sess != nil {
		sess.Title = title
		sess.Touch()
	}
}

// Touch bumps the session's UpdatedAt. No-op when missing.
func (r *Registry) Touch(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if sess := r.findLocked(id); sess != nil {
		sess.Touch()
	}
}

// Delete removes the session. When it was active, the active pointer falls
// back to the new first session or to none. Returns whether a session was
// removed.
func (r *Registry) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := -1
	for i, sess := range r.sessions {
		if sess.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	r.sessions = append(r.sessions[:idx], r.sessions[idx+1:]...)
	if r.activeID == id {
		r.activeID = ""
		if len(r.sessions) > 0 {
			r.activeID = r.sessions[0].ID
		}
	}
	return true
}

// AppendMessageID mirrors a message id into the session's order. Idempotent:
// appending an id already present leaves the order unchanged and does not
// bump UpdatedAt.
func (r *Registry) AppendMessageID(sessionID, msgID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess := r.findLocked(sessionID)
	if sess == nil || sess.HasMessageID(msgID) {
		return
	}
	sess.MessageIDs = append(sess.MessageIDs, msgID)
	sess.Touch()
}

// ReplaceMessageIDs overwrites the session's message-id order. Used by
// regeneration when a contiguous suffix is trimmed.
func (r *Registry) ReplaceMessageIDs(sessionID string, ids []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess := r.findLocked(sessionID)
	if sess == nil {
		return
	}
	sess.MessageIDs = make([]string, len(ids))
	copy(sess.MessageIDs, ids)
	sess.Touch()
}

// Snapshot returns value copies of all sessions for persistence.
func (r *Registry) Snapshot() []core.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]core.Session, len(r.sessions))
	for i, sess := range r.sessions {
		out[i] = *sess.Clone()
	}
	return out
}

// Restore replaces the registry content with the given sessions, keeping
// their order. The active pointer moves to the first session or to none.
func (r *Registry) Restore(sessions []core.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions = make([]*core.Session, len(sessions))
	for i := range sessions {
		sess := sessions[i]
		r.sessions[i] = sess.Clone()
	}
	r.activeID = ""
	if len(r.sessions) > 0 {
		r.activeID = r.sessions[0].ID
	}
}

// Reset drops all sessions and clears the active pointer.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions = []*core.Session{}
	r.activeID = ""
}

// findLocked returns the live session pointer or nil. Caller holds a lock.
func (r *Registry) findLocked(id string) *core.Session {
	if id == "" {
		return nil
	}
	for _, sess := range r.sessions {
		if sess.ID == id {
			return sess
		}
	}
	return nil
}
