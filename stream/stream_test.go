package stream

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/hupe1980/chatmesh/core"
	"github.com/hupe1980/chatmesh/message"
	"github.com/hupe1980/chatmesh/session"
)

func TestSource_ChunksInOrder(t *testing.T) {
	src := NewSource("abcdefg", 3)
	ctx := context.Background()

	var got []string
	for {
		chunk, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		got = append(got, chunk)
	}

	want := []string{"abc", "def", "g"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("chunk %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSource_ClampsChunkSize(t *testing.T) {
	src := NewSource("xy", 0)
	chunk, err := src.Next(context.Background())
	if err != nil || chunk != "xy" {
		t.Fatalf("Next = %q, %v", chunk, err)
	}
}

func TestSource_CancellationKind(t *testing.T) {
	src := NewSource("abcdef", 2)
	ctx, cancel := context.WithCancel(context.Background())

	if _, err := src.Next(ctx); err != nil {
		t.Fatalf("first Next: %v", err)
	}
	cancel()

	_, err := src.Next(ctx)
	if !core.IsCancelled(err) {
		t.Fatalf("Next after cancel = %v, want cancellation kind", err)
	}
}

func newTarget(t *testing.T) (*message.Store, string, string) {
	t.Helper()
	reg := session.NewRegistry()
	sess := reg.Create("t")
	store := message.NewStore(reg)
	target := core.NewPlaceholder(sess.ID)
	store.Append(sess.ID, target)
	return store, sess.ID, target.ID
}

func TestWriter_WritesFullContent(t *testing.T) {
	store, sid, targetID := newTarget(t)
	w := NewWriter(store, func(o *Options) { o.ChunkSize = 2 })

	if err := w.Write(context.Background(), sid, targetID, "Hi there"); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, _ := store.Find(sid, targetID)
	if got.Content != "Hi there" {
		t.Fatalf("content = %q, want Hi there", got.Content)
	}
	if got.Status != core.StatusStreaming {
		t.Error("writer itself must not finalize status; the engine does")
	}
}

func TestWriter_ResetsPreviousContent(t *testing.T) {
	store, sid, targetID := newTarget(t)
	store.Update(sid, targetID, func(m *core.Message) { m.Content = "stale draft" })

	w := NewWriter(store)
	if err := w.Write(context.Background(), sid, targetID, "fresh"); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, _ := store.Find(sid, targetID)
	if got.Content != "fresh" {
		t.Fatalf("content = %q, regeneration must reset before regrowing", got.Content)
	}
}

func TestWriter_CancellationStopsSilently(t *testing.T) {
	store, sid, targetID := newTarget(t)
	w := NewWriter(store, func(o *Options) { o.ChunkSize = 4 })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := w.Write(ctx, sid, targetID, "never fully written"); err != nil {
		t.Fatalf("cancelled write must not return an error, got %v", err)
	}

	got, _ := store.Find(sid, targetID)
	if got.Content != "" {
		t.Fatalf("pre-cancelled write should append nothing, got %q", got.Content)
	}
}
