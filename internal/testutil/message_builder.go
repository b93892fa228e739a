package testutil

import (
	"github.com/hupe1980/chatmesh/core"
)

// MessageBuilder provides a fluent helper for constructing messages in tests.
// Example:
//
//	msg := NewMessageBuilder("sess-1").Assistant().Content("hello").Build()
//
// Chain only the parts you need; the default is a sent user text message.
type MessageBuilder struct {
	msg core.Message
}

// NewMessageBuilder creates a builder for a message in the given session.
func NewMessageBuilder(sessionID string) *MessageBuilder {
	return &MessageBuilder{msg: core.NewTextMessage(sessionID, core.RoleUser, "", core.StatusSent)}
}

// ID overrides the auto-generated message ID (chainable). Use mainly in tests
// where determinism matters.
func (b *MessageBuilder) ID(id string) *MessageBuilder { b.msg.ID = id; return b }

// User sets the user role (chainable).
func (b *MessageBuilder) User() *MessageBuilder { b.msg.Role = core.RoleUser; return b }

// Assistant sets the assistant role (chainable).
func (b *MessageBuilder) Assistant() *MessageBuilder { b.msg.Role = core.RoleAssistant; return b }

// Content sets the message text (chainable).
func (b *MessageBuilder) Content(text string) *MessageBuilder { b.msg.Content = text; return b }

// Status sets the delivery status (chainable).
func (b *MessageBuilder) Status(s core.Status) *MessageBuilder { b.msg.Status = s; return b }

// Streaming marks the message as owned by the streaming writer (chainable).
func (b *MessageBuilder) Streaming() *MessageBuilder {
	b.msg.Status = core.StatusStreaming
	return b
}

// Attachment turns the message into a user file message for att (chainable).
func (b *MessageBuilder) Attachment(att core.Attachment) *MessageBuilder {
	b.msg.Role = core.RoleUser
	b.msg.Type = core.TypeFile
	b.msg.Content = att.Name
	b.msg.Attachment = &att
	return b
}

// Card turns the message into an assistant card message (chainable).
func (b *MessageBuilder) Card(card core.CardPayload) *MessageBuilder {
	b.msg.Role = core.RoleAssistant
	b.msg.Type = core.TypeCard
	b.msg.Content = card.Title
	b.msg.Card = &card
	return b
}

// Build returns the constructed core.Message value.
func (b *MessageBuilder) Build() core.Message { return b.msg }
