package message

import (
	"testing"

	"github.com/hupe1980/chatmesh/core"
	"github.com/hupe1980/chatmesh/internal/testutil"
	"github.com/hupe1980/chatmesh/session"
)

func newStore(t *testing.T) (*Store, *core.Session, *session.Registry) {
	t.Helper()
	reg := session.NewRegistry()
	sess := reg.Create("test")
	return NewStore(reg), sess, reg
}

func TestStore_AppendMirrorsIDs(t *testing.T) {
	store, sess, reg := newStore(t)

	m1 := core.NewTextMessage(sess.ID, core.RoleUser, "hi", core.StatusSent)
	m2 := core.NewTextMessage(sess.ID, core.RoleAssistant, "hello", core.StatusSent)
	store.Append(sess.ID, m1)
	store.Append(sess.ID, m2)

	got, _ := reg.Get(sess.ID)
	if len(got.MessageIDs) != 2 || got.MessageIDs[0] != m1.ID || got.MessageIDs[1] != m2.ID {
		t.Fatalf("registry order mismatch: %v", got.MessageIDs)
	}
	if len(store.Messages(sess.ID)) != 2 {
		t.Fatal("expected 2 stored messages")
	}
}

func TestStore_GetOrCreateEmpty(t *testing.T) {
	store, _, _ := newStore(t)
	msgs := store.GetOrCreate("fresh")
	if len(msgs) != 0 {
		t.Fatalf("expected empty list, got %d", len(msgs))
	}
}

func TestStore_UpdateMissingIsNoOp(t *testing.T) {
	store, sess, _ := newStore(t)

	called := false
	store.Update(sess.ID, "nope", func(m *core.Message) { called = true })
	if called {
		t.Error("mutation must not run for a missing target")
	}

	m := testutil.NewMessageBuilder(sess.ID).Assistant().Streaming().Build()
	store.Append(sess.ID, m)
	store.Update(sess.ID, m.ID, func(m *core.Message) {
		m.Content = "done"
		m.Status = core.StatusSent
	})

	got, ok := store.Find(sess.ID, m.ID)
	if !ok || got.Content != "done" || got.Status != core.StatusSent {
		t.Fatalf("update not applied: %+v", got)
	}
}

func TestStore_InsertAfterKeepsContiguity(t *testing.T) {
	store, sess, reg := newStore(t)

	a := core.NewTextMessage(sess.ID, core.RoleAssistant, "answer", core.StatusSent)
	u := core.NewTextMessage(sess.ID, core.RoleUser, "next", core.StatusSent)
	store.Append(sess.ID, a)
	store.Append(sess.ID, u)

	card := core.NewCardMessage(sess.ID, core.CardPayload{CardType: "contact", Title: "Call us"})
	store.InsertAfter(sess.ID, a.ID, card)

	msgs := store.Messages(sess.ID)
	if len(msgs) != 3 || msgs[1].ID != card.ID || msgs[2].ID != u.ID {
		t.Fatalf("card must sit immediately after its text message: %v", idsOf(msgs))
	}
	got, _ := reg.Get(sess.ID)
	if got.MessageIDs[1] != card.ID {
		t.Fatalf("registry order must mirror insertion: %v", got.MessageIDs)
	}
}

func TestStore_ReplaceRewritesOrder(t *testing.T) {
	store, sess, reg := newStore(t)
	msgs := testutil.NewConversationBuilder(sess.ID).User("a").Assistant("b").Build()
	for _, m := range msgs {
		store.Append(sess.ID, m)
	}
	m1 := msgs[0]

	store.Replace(sess.ID, []core.Message{m1})

	got, _ := reg.Get(sess.ID)
	if len(got.MessageIDs) != 1 || got.MessageIDs[0] != m1.ID {
		t.Fatalf("expected order [%s], got %v", m1.ID, got.MessageIDs)
	}
}

func TestStore_SnapshotRestoreRoundTrip(t *testing.T) {
	store, sess, reg := newStore(t)
	store.Append(sess.ID, core.NewTextMessage(sess.ID, core.RoleUser, "hi", core.StatusSent))

	snap := store.Snapshot()

	fresh := NewStore(reg)
	fresh.Restore(snap)
	if len(fresh.Messages(sess.ID)) != 1 {
		t.Fatal("restore should reproduce message lists")
	}

	fresh.Reset()
	if len(fresh.Messages(sess.ID)) != 0 {
		t.Fatal("reset should drop all lists")
	}
}

func TestStore_StreamingCount(t *testing.T) {
	store, sess, _ := newStore(t)
	store.Append(sess.ID, core.NewPlaceholder(sess.ID))
	store.Append(sess.ID, core.NewTextMessage(sess.ID, core.RoleUser, "x", core.StatusSent))

	if got := store.StreamingCount(); got != 1 {
		t.Fatalf("StreamingCount = %d, want 1", got)
	}
}

func TestStore_MessagesReturnsCopy(t *testing.T) {
	store, sess, _ := newStore(t)
	m := core.NewTextMessage(sess.ID, core.RoleUser, "orig", core.StatusSent)
	store.Append(sess.ID, m)

	msgs := store.Messages(sess.ID)
	msgs[0].Content = "tampered"

	got, _ := store.Find(sess.ID, m.ID)
	if got.Content != "orig" {
		t.Error("Messages must return a defensive copy")
	}
}
