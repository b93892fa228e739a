package model

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Finish reasons reported by completion backends.
const (
	FinishStop   = "stop"
	FinishLength = "length"
)

// ChatMessage is one {role, content} line of the context window.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request captures the normalized completion input produced by the engine.
type Request struct {
	Model    string        `json:"model"`
	Messages []ChatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

// Usage captures token usage statistics for a completion.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Choice is one candidate completion.
type Choice struct {
	Index        int         `json:"index"`
	Message      ChatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"` // "stop" or "length"
}

// Completion is the full response body of a completion request.
type Completion struct {
	ID      string   `json:"id"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

// Card is the structured payload a backend may attach to a reply. The engine
// materializes it as a card message immediately following the assistant text.
type Card struct {
	CardType    string `json:"cardType"` // "contact" or "article"
	Title       string `json:"title"`
	Description string `json:"description"`
	ActionText  string `json:"actionText"`
	ActionURL   string `json:"actionUrl"`
}

// Result pairs the completion with its optional card.
type Result struct {
	Response Completion `json:"response"`
	Card     *Card      `json:"card,omitempty"`
}

// Text returns the first choice's content, or "" when no choice exists.
func (r *Result) Text() string {
	if r == nil || len(r.Response.Choices) == 0 {
		return ""
	}
	return r.Response.Choices[0].Message.Content
}

// Info contains metadata about a model implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "openai", "anthropic", "mock", etc.
}

// Model is the minimal interface required by the engine to drive generation.
// Complete blocks until the full response is available; cancellation arrives
// through ctx.
type Model interface {
	Complete(ctx context.Context, req Request) (*Result, error)

	// Info returns information about the model implementation.
	Info() Info
}

// MockModel is a lightweight in-memory Model useful for tests & examples.
// Responses and cards are keyed by the last message content of the request.
// An optional gate channel lets tests hold a completion in flight until it
// is cancelled or released.
type MockModel struct {
	info      Info
	responses map[string]string
	cards     map[string]Card
	err       error
	gate      <-chan struct{}
}

// NewMockModel constructs a MockModel.
func NewMockModel(name, provider string) *MockModel {
	return &MockModel{
		info:      Info{Name: name, Provider: provider},
		responses: make(map[string]string),
		cards:     make(map[string]Card),
	}
}

// AddResponse registers a deterministic canned completion for an input prompt.
func (m *MockModel) AddResponse(prompt, response string) { m.responses[prompt] = response }

// AddCard registers a card to be attached to the completion for an input prompt.
func (m *MockModel) AddCard(prompt string, card Card) { m.cards[prompt] = card }

// FailWith makes every subsequent Complete return err.
func (m *MockModel) FailWith(err error) { m.err = err }

// GateOn makes Complete block until the channel is closed (or the context is
// cancelled), so tests can overlap generations deterministically.
func (m *MockModel) GateOn(gate <-chan struct{}) { m.gate = gate }

// Complete implements Model with canned responses.
func (m *MockModel) Complete(ctx context.Context, req Request) (*Result, error) {
	if m.gate != nil {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-m.gate:
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.err != nil {
		return nil, m.err
	}
	if len(req.Messages) == 0 {
		return nil, fmt.Errorf("no messages provided")
	}

	prompt := req.Messages[len(req.Messages)-1].Content
	full, ok := m.responses[prompt]
	if !ok {
		full = fmt.Sprintf("Mock response to: %s", prompt)
	}

	promptTokens := 0
	for _, msg := range req.Messages {
		promptTokens += len(strings.Fields(msg.Content))
	}
	completionTokens := len(strings.Fields(full))

	result := &Result{
		Response: Completion{
			ID:      "mock-" + uuid.NewString(),
			Created: time.Now().Unix(),
			Model:   m.info.Name,
			Choices: []Choice{{
				Index:        0,
				Message:      ChatMessage{Role: "assistant", Content: full},
				FinishReason: FinishStop,
			}},
			Usage: Usage{
				PromptTokens:     promptTokens,
				CompletionTokens: completionTokens,
				TotalTokens:      promptTokens + completionTokens,
			},
		},
	}
	if card, ok := m.cards[prompt]; ok {
		result.Card = &card
	}
	return result, nil
}

// Info returns metadata describing this mock model.
func (m *MockModel) Info() Info { return m.info }
