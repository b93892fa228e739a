package engine

import (
	"context"

	"github.com/hupe1980/chatmesh/core"
	"github.com/hupe1980/chatmesh/model"
)

// Regenerate re-runs the single turn that produced the given assistant
// message: it trims the message's stale trailing cards, resets it to an
// empty streaming state and generates a fresh reply from just the nearest
// preceding user message (not the multi-turn window).
//
// No-op when there is no active session, the message is not part of it, or
// no user message precedes it. Nothing positioned at or before the located
// user message is ever mutated.
func (e *Engine) Regenerate(ctx context.Context, messageID string) error {
	sess, ok := e.registry.Active()
	if !ok {
		return nil
	}

	msgs := e.messages.Messages(sess.ID)
	idx := -1
	for i, m := range msgs {
		if m.ID == messageID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	userIdx := -1
	for i := idx - 1; i >= 0; i-- {
		if msgs[i].Role == core.RoleUser {
			userIdx = i
			break
		}
	}
	if userIdx < 0 {
		return nil
	}

	// Drop the contiguous run of stale card messages right after the target.
	end := idx + 1
	for end < len(msgs) && msgs[end].Type == core.TypeCard {
		end++
	}
	if end > idx+1 {
		trimmed := make([]core.Message, 0, len(msgs)-(end-idx-1))
		trimmed = append(trimmed, msgs[:idx+1]...)
		trimmed = append(trimmed, msgs[end:]...)
		e.messages.Replace(sess.ID, trimmed)
		e.persist()
	}

	genCtx, cancel := e.claimStream(ctx, sess.ID, messageID)
	e.messages.Update(sess.ID, messageID, func(m *core.Message) {
		m.Content = ""
		m.Status = core.StatusStreaming
	})

	err := e.generate(genCtx, sess.ID, messageID, []model.ChatMessage{{
		Role:    string(core.RoleUser),
		Content: msgs[userIdx].Content,
	}})
	e.releaseStream(messageID, cancel)
	if err != nil {
		return err
	}

	e.registry.Touch(sess.ID)
	e.persist()
	return nil
}
