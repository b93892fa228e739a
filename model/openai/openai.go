// Package openai provides an implementation of model.Model using the OpenAI
// Chat Completions API. It adapts ChatMesh's normalized Request/Result
// structures into the SDK's message format and back. The engine always
// consumes the full response, so only the non-streaming endpoint is used;
// progressive delivery happens in the streaming writer.
package openai

import (
	"context"
	"fmt"

	"github.com/hupe1980/chatmesh/model"
	"github.com/openai/openai-go"
)

// Options configure the OpenAI model adapter.
// Fields mirror a subset of Chat Completion parameters intentionally kept
// minimal; extend via functional options without breaking callers.
type Options struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int64
}

// Model wraps the OpenAI Chat Completions API behind the generic model.Model interface.
type Model struct {
	client *openai.Client
	opts   Options
}

// NewModel creates a new OpenAI model using the official client
func NewModel(optFns ...func(o *Options)) *Model {
	client := openai.NewClient()
	return NewModelFromClient(&client, optFns...)
}

// NewModelFromClient creates a new OpenAI model from an existing client
func NewModelFromClient(client *openai.Client, optFns ...func(o *Options)) *Model {
	opts := Options{
		Model:               openai.ChatModelGPT4oMini,
		Temperature:         0.7,
		MaxCompletionTokens: 4096,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Model{client: client, opts: opts}
}

// Complete implements model.Model over the non-streaming completions endpoint.
func (m *Model) Complete(ctx context.Context, req model.Request) (*model.Result, error) {
	params := openai.ChatCompletionNewParams{
		Messages:            buildMessages(req.Messages),
		Model:               m.modelID(req),
		Temperature:         openai.Float(m.opts.Temperature),
		MaxCompletionTokens: openai.Int(m.opts.MaxCompletionTokens),
	}

	resp, err := m.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices returned")
	}

	choices := make([]model.Choice, len(resp.Choices))
	for i, ch := range resp.Choices {
		choices[i] = model.Choice{
			Index:        int(ch.Index),
			Message:      model.ChatMessage{Role: "assistant", Content: ch.Message.Content},
			FinishReason: normalizeFinishReason(ch.FinishReason),
		}
	}

	return &model.Result{
		Response: model.Completion{
			ID:      resp.ID,
			Created: resp.Created,
			Model:   resp.Model,
			Choices: choices,
			Usage: model.Usage{
				PromptTokens:     int(resp.Usage.PromptTokens),
				CompletionTokens: int(resp.Usage.CompletionTokens),
				TotalTokens:      int(resp.Usage.TotalTokens),
			},
		},
	}, nil
}

// modelID prefers the model requested by the engine, falling back to the
// adapter default.
func (m *Model) modelID(req model.Request) string {
	if req.Model != "" && req.Model != "default" {
		return req.Model
	}
	return m.opts.Model
}

// buildMessages converts normalized context-window lines into OpenAI chat messages.
func buildMessages(msgs []model.ChatMessage) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(msgs))
	for _, msg := range msgs {
		switch msg.Role {
		case "system":
			out = append(out, openai.SystemMessage(msg.Content))
		case "assistant":
			out = append(out, openai.AssistantMessage(msg.Content))
		default:
			out = append(out, openai.UserMessage(msg.Content))
		}
	}
	return out
}

// normalizeFinishReason maps provider finish reasons onto the wire contract
// ("stop" | "length").
func normalizeFinishReason(reason string) string {
	if reason == "length" {
		return model.FinishLength
	}
	return model.FinishStop
}

// Info returns metadata describing this OpenAI model implementation.
func (m *Model) Info() model.Info {
	return model.Info{
		Name:     m.opts.Model,
		Provider: "openai",
	}
}
