package engine

import (
	"errors"

	"github.com/hupe1980/chatmesh/blob"
	"github.com/hupe1980/chatmesh/core"
)

// NewSession explicitly creates a session (lazy creation happens on first
// send). An empty title is auto-numbered. The new session becomes active.
func (e *Engine) NewSession(title string) *core.Session {
	sess := e.registry.Create(title)
	e.persist()
	return sess
}

// RenameSession sets the session title. No-op when the session is missing.
func (e *Engine) RenameSession(id, title string) {
	e.registry.Rename(id, title)
	e.persist()
}

// SetActiveSession moves the active pointer. No-op when the session is missing.
func (e *Engine) SetActiveSession(id string) {
	e.registry.SetActive(id)
}

// Sessions returns all sessions in display order.
func (e *Engine) Sessions() []*core.Session {
	return e.registry.List()
}

// ActiveSession returns the active session, if any.
func (e *Engine) ActiveSession() (*core.Session, bool) {
	return e.registry.Active()
}

// Messages returns the session's ordered message list.
func (e *Engine) Messages(sessionID string) []core.Message {
	return e.messages.Messages(sessionID)
}

// DeleteSession removes the session and cascades: its in-flight generation
// (if any) is cancelled, its messages are removed, their attachment blobs
// are purged best-effort and, when it was active, the active pointer falls
// back to the new first session or to none. A failed blob delete never
// prevents the removal.
func (e *Engine) DeleteSession(id string) {
	e.cancelGeneration(id)

	for _, m := range e.messages.Messages(id) {
		if m.Type != core.TypeFile || m.Attachment == nil {
			continue
		}
		if err := e.blobs.Delete(m.Attachment.StorageKey); err != nil && !errors.Is(err, blob.ErrNotFound) {
			e.logger.Warn("blob delete failed key=%s: %v", m.Attachment.StorageKey, err)
		}
	}

	e.messages.Remove(id)
	e.registry.Delete(id)
	e.persist()
}

// Attachment fetches the blob bytes backing a file message. An absent or
// unreadable blob is a logged miss, not an error: the message may outlive
// its payload by design.
func (e *Engine) Attachment(sessionID, messageID string) []byte {
	msg, ok := e.messages.Find(sessionID, messageID)
	if !ok || msg.Type != core.TypeFile || msg.Attachment == nil {
		return nil
	}
	data, err := e.blobs.Get(msg.Attachment.StorageKey)
	if err != nil {
		e.logger.Warn("blob get failed key=%s: %v", msg.Attachment.StorageKey, err)
		return nil
	}
	return data
}

// ResetAll clears sessions, messages, the active pointer, all attachment
// blobs and the persisted snapshot. A subsequent Load returns the empty
// state.
func (e *Engine) ResetAll() {
	e.cancelGeneration("")

	e.registry.Reset()
	e.messages.Reset()
	if err := e.blobs.ClearAll(); err != nil {
		e.logger.Warn("blob clear failed: %v", err)
	}
	_ = e.gateway.Clear()
}
