package testutil

import (
	"github.com/hupe1980/chatmesh/core"
)

// ConversationBuilder helps construct ordered message histories with fluent
// chaining for tests. Example:
//
//	msgs := NewConversationBuilder("sess-1").
//		User("hi").
//		Assistant("hello").
//		Build()
type ConversationBuilder struct {
	sessionID string
	msgs      []core.Message
}

// NewConversationBuilder creates a builder for the given session id.
// Use chainable methods (User, Assistant, Message) then call Build.
func NewConversationBuilder(sessionID string) *ConversationBuilder {
	return &ConversationBuilder{sessionID: sessionID}
}

// User appends a sent user text message (chainable).
func (b *ConversationBuilder) User(text string) *ConversationBuilder {
	b.msgs = append(b.msgs, core.NewTextMessage(b.sessionID, core.RoleUser, text, core.StatusSent))
	return b
}

// Assistant appends a sent assistant text message (chainable).
func (b *ConversationBuilder) Assistant(text string) *ConversationBuilder {
	b.msgs = append(b.msgs, core.NewTextMessage(b.sessionID, core.RoleAssistant, text, core.StatusSent))
	return b
}

// Placeholder appends an empty streaming assistant message (chainable).
func (b *ConversationBuilder) Placeholder() *ConversationBuilder {
	b.msgs = append(b.msgs, core.NewPlaceholder(b.sessionID))
	return b
}

// Message appends an arbitrary prebuilt message (chainable).
func (b *ConversationBuilder) Message(msg core.Message) *ConversationBuilder {
	b.msgs = append(b.msgs, msg)
	return b
}

// Build returns the ordered message slice.
func (b *ConversationBuilder) Build() []core.Message {
	out := make([]core.Message, len(b.msgs))
	copy(out, b.msgs)
	return out
}
