package model

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockModel_CannedResponse(t *testing.T) {
	m := NewMockModel("mock-1", "mock")
	m.AddResponse("Hello", "Hi there")

	res, err := m.Complete(context.Background(), Request{
		Model:    "mock-1",
		Messages: []ChatMessage{{Role: "user", Content: "Hello"}},
		Stream:   true,
	})
	require.NoError(t, err)
	require.Len(t, res.Response.Choices, 1)

	assert.Equal(t, "Hi there", res.Text())
	assert.Equal(t, "assistant", res.Response.Choices[0].Message.Role)
	assert.Equal(t, FinishStop, res.Response.Choices[0].FinishReason)
	assert.Equal(t, 1, res.Response.Usage.PromptTokens)
	assert.Equal(t, 2, res.Response.Usage.CompletionTokens)
	assert.Equal(t, 3, res.Response.Usage.TotalTokens)
	assert.Nil(t, res.Card)
}

func TestMockModel_CardAttached(t *testing.T) {
	m := NewMockModel("mock-1", "mock")
	m.AddResponse("contact", "Reach us here")
	m.AddCard("contact", Card{CardType: "contact", Title: "Support", ActionText: "Call", ActionURL: "tel:123"})

	res, err := m.Complete(context.Background(), Request{
		Messages: []ChatMessage{{Role: "user", Content: "contact"}},
	})
	require.NoError(t, err)
	require.NotNil(t, res.Card)
	assert.Equal(t, "contact", res.Card.CardType)
	assert.Equal(t, "Support", res.Card.Title)
}

func TestMockModel_DefaultResponseAndErrors(t *testing.T) {
	m := NewMockModel("mock-1", "mock")

	res, err := m.Complete(context.Background(), Request{
		Messages: []ChatMessage{{Role: "user", Content: "anything"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Mock response to: anything", res.Text())

	_, err = m.Complete(context.Background(), Request{})
	assert.Error(t, err)

	boom := errors.New("boom")
	m.FailWith(boom)
	_, err = m.Complete(context.Background(), Request{
		Messages: []ChatMessage{{Role: "user", Content: "x"}},
	})
	assert.ErrorIs(t, err, boom)
}

func TestMockModel_GateObservesCancellation(t *testing.T) {
	m := NewMockModel("mock-1", "mock")
	gate := make(chan struct{})
	m.GateOn(gate)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := m.Complete(ctx, Request{Messages: []ChatMessage{{Role: "user", Content: "x"}}})
		done <- err
	}()

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}
