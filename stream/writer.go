package stream

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/hupe1980/chatmesh/core"
	"github.com/hupe1980/chatmesh/message"
)

// Options configure the streaming writer.
type Options struct {
	// ChunkSize is the number of bytes appended per write step.
	ChunkSize int
	// Delay is an optional pause between chunks so UIs can render
	// progressively. Zero means no pause (the mode tests run in).
	Delay time.Duration
}

// Writer drives chunks from a Source into a target message. On cancellation
// it stops silently, no error bubbles past this layer; the caller inspects
// its own context to distinguish a cancelled write from a completed one. Any
// other delivery error propagates.
type Writer struct {
	store *message.Store
	opts  Options
}

// NewWriter constructs a streaming writer over the message store.
func NewWriter(store *message.Store, optFns ...func(o *Options)) *Writer {
	opts := Options{ChunkSize: DefaultChunkSize}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Writer{store: store, opts: opts}
}

// Write resets the target message to empty streaming state, then appends the
// content chunk by chunk, checking the cancellation token before each chunk.
func (w *Writer) Write(ctx context.Context, sessionID, targetID, content string) error {
	w.store.Update(sessionID, targetID, func(m *core.Message) {
		m.Content = ""
		m.Status = core.StatusStreaming
	})

	src := NewSource(content, w.opts.ChunkSize)
	for {
		chunk, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			if core.IsCancelled(err) {
				return nil
			}
			return err
		}

		w.store.Update(sessionID, targetID, func(m *core.Message) {
			m.Content += chunk
		})

		if w.opts.Delay > 0 {
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(w.opts.Delay):
			}
		}
	}
}
