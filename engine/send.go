package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/hupe1980/chatmesh/core"
	"github.com/hupe1980/chatmesh/model"
)

// SendText runs one full conversational turn: it records the user message,
// creates a streaming placeholder, persists, then drives the generation into
// the placeholder and persists again.
//
// Empty or whitespace-only input is a silent no-op. Cancellation (a newer
// generation superseding this one, or ctx firing) returns a
// core.KindCancelled error; transport failures are logged, mark the
// placeholder failed and propagate as core.KindTransport.
func (e *Engine) SendText(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	sess := e.ensureActiveSession()
	e.messages.Append(sess.ID, core.NewTextMessage(sess.ID, core.RoleUser, text, core.StatusSent))

	placeholder := core.NewPlaceholder(sess.ID)
	genCtx, cancel := e.claimStream(ctx, sess.ID, placeholder.ID)
	e.messages.Append(sess.ID, placeholder)
	// Persist before generating so a reload mid-flight shows the placeholder.
	e.persist()

	err := e.generate(genCtx, sess.ID, placeholder.ID, e.contextWindow(sess.ID))
	e.releaseStream(placeholder.ID, cancel)
	if err != nil {
		return err
	}

	e.registry.Touch(sess.ID)
	e.persist()
	return nil
}

// FileUpload is one file of a send-files batch.
type FileUpload struct {
	Name string
	Mime string
	Data []byte
}

// SendFiles appends one user file message per upload (blob writes are
// best-effort) and then runs the same placeholder + generation sequence as
// SendText, with the context window extended by one synthetic line
// summarizing the uploads. The synthetic line reaches the backend but is
// never materialized as a visible message.
//
// File persistence success is independent of the assistant reply: generation
// failures and cancellations are swallowed after marking the placeholder
// failed, and never unwind the appended file messages.
func (e *Engine) SendFiles(ctx context.Context, files []FileUpload) error {
	if len(files) == 0 {
		return nil
	}

	sess := e.ensureActiveSession()

	names := make([]string, 0, len(files))
	for _, f := range files {
		id := core.NewID()
		key := core.BlobKey(id)
		if err := e.blobs.Put(key, f.Data); err != nil {
			e.logger.Warn("blob put failed key=%s: %v", key, err)
		}
		e.messages.Append(sess.ID, core.NewFileMessage(sess.ID, id, core.Attachment{
			Name:       f.Name,
			Size:       int64(len(f.Data)),
			Mime:       f.Mime,
			StorageKey: key,
		}))
		names = append(names, f.Name)
	}

	placeholder := core.NewPlaceholder(sess.ID)
	genCtx, cancel := e.claimStream(ctx, sess.ID, placeholder.ID)
	e.messages.Append(sess.ID, placeholder)
	e.persist()

	window := append(e.contextWindow(sess.ID), model.ChatMessage{
		Role:    string(core.RoleUser),
		Content: uploadSummary(names),
	})

	// Non-cancellation failures were already logged by generate; either way
	// the file messages above stay recorded.
	_ = e.generate(genCtx, sess.ID, placeholder.ID, window)
	e.releaseStream(placeholder.ID, cancel)

	e.registry.Touch(sess.ID)
	e.persist()
	return nil
}

// uploadSummary is the synthetic context line describing an upload batch.
func uploadSummary(names []string) string {
	return fmt.Sprintf("The user uploaded %d file(s): %s", len(names), strings.Join(names, ", "))
}
