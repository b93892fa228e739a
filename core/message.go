package core

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Role identifies the author of a message.
type Role string

const (
	// RoleUser marks messages authored by the user.
	RoleUser Role = "user"
	// RoleAssistant marks messages authored by the completion backend.
	RoleAssistant Role = "assistant"
	// RoleSystem marks synthetic system messages.
	RoleSystem Role = "system"
)

// MessageType is the discriminant of the message tagged union. Each variant
// carries its own required payload: text has none, file requires Attachment,
// card requires Card. Consumers switch exhaustively on this field.
type MessageType string

const (
	// TypeText is a plain conversational text message.
	TypeText MessageType = "text"
	// TypeCard is an assistant message carrying a structured card payload.
	// Card messages always immediately follow the assistant text message
	// that produced them.
	TypeCard MessageType = "card"
	// TypeFile is a user message referencing an uploaded attachment.
	TypeFile MessageType = "file"
)

// Status tracks the delivery lifecycle of a message.
type Status string

const (
	// StatusPending is the initial state of a message not yet dispatched.
	StatusPending Status = "pending"
	// StatusStreaming marks a message actively being written to by the
	// streaming writer. At most one message store-wide holds this status.
	StatusStreaming Status = "streaming"
	// StatusSent marks a fully delivered message.
	StatusSent Status = "sent"
	// StatusError marks a message whose generation was cancelled or failed.
	StatusError Status = "error"
)

// Attachment describes the stored blob backing a file message.
type Attachment struct {
	Name       string `json:"name"`
	Size       int64  `json:"size"`
	Mime       string `json:"mime"`
	StorageKey string `json:"storageKey"`
}

// CardPayload is the structured content of a card message.
type CardPayload struct {
	CardType    string `json:"cardType"` // "contact" or "article"
	Title       string `json:"title"`
	Description string `json:"description"`
	ActionText  string `json:"actionText"`
	ActionURL   string `json:"actionUrl"`
}

// Message is one unit of conversation content. Content holds the text for
// text messages, the display title for card messages and the filename for
// file messages. Content only grows while streaming; it is never truncated
// except by a regeneration reset.
type Message struct {
	ID         string       `json:"id"`
	SessionID  string       `json:"sessionId"`
	Role       Role         `json:"role"`
	Type       MessageType  `json:"type"`
	Content    string       `json:"content"`
	CreatedAt  time.Time    `json:"createdAt"`
	Status     Status       `json:"status"`
	Attachment *Attachment  `json:"attachment,omitempty"`
	Card       *CardPayload `json:"card,omitempty"`
}

// NewID generates a new unique identifier for sessions and messages.
func NewID() string { return uuid.NewString() }

// NewTextMessage creates a text message with the given role, content and status.
func NewTextMessage(sessionID string, role Role, content string, status Status) Message {
	return Message{
		ID:        NewID(),
		SessionID: sessionID,
		Role:      role,
		Type:      TypeText,
		Content:   content,
		CreatedAt: time.Now().UTC(),
		Status:    status,
	}
}

// NewPlaceholder creates an empty assistant text message in streaming state,
// to be filled by the streaming writer.
func NewPlaceholder(sessionID string) Message {
	return NewTextMessage(sessionID, RoleAssistant, "", StatusStreaming)
}

// NewFileMessage creates a user file message for the given attachment. The
// message content mirrors the attachment filename.
func NewFileMessage(sessionID string, id string, att Attachment) Message {
	return Message{
		ID:         id,
		SessionID:  sessionID,
		Role:       RoleUser,
		Type:       TypeFile,
		Content:    att.Name,
		CreatedAt:  time.Now().UTC(),
		Status:     StatusSent,
		Attachment: &att,
	}
}

// NewCardMessage creates an assistant card message. The message content
// mirrors the card title so plain-text consumers still render something.
func NewCardMessage(sessionID string, card CardPayload) Message {
	return Message{
		ID:        NewID(),
		SessionID: sessionID,
		Role:      RoleAssistant,
		Type:      TypeCard,
		Content:   card.Title,
		CreatedAt: time.Now().UTC(),
		Status:    StatusSent,
		Card:      &card,
	}
}

// IsStreaming reports whether the message is currently owned by the
// streaming writer.
func (m Message) IsStreaming() bool { return m.Status == StatusStreaming }

// Validate checks the per-variant payload requirements of the tagged union.
func (m Message) Validate() error {
	switch m.Type {
	case TypeText:
		return nil
	case TypeFile:
		if m.Attachment == nil {
			return fmt.Errorf("file message %s has no attachment", m.ID)
		}
		return nil
	case TypeCard:
		if m.Card == nil {
			return fmt.Errorf("card message %s has no card payload", m.ID)
		}
		return nil
	default:
		return fmt.Errorf("message %s has unknown type %q", m.ID, m.Type)
	}
}
