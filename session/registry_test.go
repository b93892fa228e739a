package session

import (
	"testing"
	"time"
)

func TestRegistry_CreateAutoTitleFillsGap(t *testing.T) {
	r := NewRegistry()
	r.Create("New Conversation 1")
	r.Create("New Conversation 3")

	sess := r.Create("")
	if sess.Title != "New Conversation 2" {
		t.Fatalf("expected gap title New Conversation 2, got %q", sess.Title)
	}

	// Gap filled, next auto title continues past the max.
	next := r.Create("")
	if next.Title != "New Conversation 4" {
		t.Fatalf("expected New Conversation 4, got %q", next.Title)
	}
}

func TestRegistry_CreateInsertsFrontAndActivates(t *testing.T) {
	r := NewRegistry()
	first := r.Create("a")
	second := r.Create("b")

	list := r.List()
	if len(list) != 2 || list[0].ID != second.ID || list[1].ID != first.ID {
		t.Fatal("newest session should be at the front")
	}
	if r.ActiveID() != second.ID {
		t.Error("newly created session should be active")
	}
}

func TestRegistry_AppendMessageIDIdempotent(t *testing.T) {
	r := NewRegistry()
	sess := r.Create("t")

	r.AppendMessageID(sess.ID, "m1")
	r.AppendMessageID(sess.ID, "m1")

	got, _ := r.Get(sess.ID)
	if len(got.MessageIDs) != 1 {
		t.Fatalf("duplicate append must not grow order, got %d ids", len(got.MessageIDs))
	}

	r.AppendMessageID("missing", "m2") // no-op, must not panic
}

func TestRegistry_ReplaceMessageIDs(t *testing.T) {
	r := NewRegistry()
	sess := r.Create("t")
	r.AppendMessageID(sess.ID, "m1")
	r.AppendMessageID(sess.ID, "m2")
	r.AppendMessageID(sess.ID, "m3")

	r.ReplaceMessageIDs(sess.ID, []string{"m1"})

	got, _ := r.Get(sess.ID)
	if len(got.MessageIDs) != 1 || got.MessageIDs[0] != "m1" {
		t.Fatalf("expected [m1], got %v", got.MessageIDs)
	}
}

func TestRegistry_DeleteMovesActivePointer(t *testing.T) {
	r := NewRegistry()
	a := r.Create("a")
	b := r.Create("b") // active, front of list

	if !r.Delete(b.ID) {
		t.Fatal("delete should report removal")
	}
	if r.ActiveID() != a.ID {
		t.Error("active should fall back to the new first session")
	}

	r.Delete(a.ID)
	if r.ActiveID() != "" {
		t.Error("active should clear when the last session is deleted")
	}
	if r.Delete(a.ID) {
		t.Error("deleting a missing session should report false")
	}
}

func TestRegistry_RenameAndTouch(t *testing.T) {
	r := NewRegistry()
	sess := r.Create("old")
	before := sess.UpdatedAt

	time.Sleep(2 * time.Millisecond)
	r.Rename(sess.ID, "new")

	got, _ := r.Get(sess.ID)
	if got.Title != "new" {
		t.Errorf("title = %q, want new", got.Title)
	}
	if got.UpdatedAt.Before(before) {
		t.Error("UpdatedAt must not decrease on rename")
	}

	r.Rename("missing", "x") // no-op
	r.Touch("missing")       // no-op
}

func TestRegistry_RestoreSetsActiveToFirst(t *testing.T) {
	r := NewRegistry()
	a := r.Create("a")
	r.Create("b")
	snap := r.Snapshot()

	fresh := NewRegistry()
	fresh.Restore(snap)
	if fresh.Len() != 2 {
		t.Fatalf("expected 2 restored sessions, got %d", fresh.Len())
	}
	if fresh.ActiveID() != snap[0].ID {
		t.Error("restore should activate the first session")
	}
	_ = a

	fresh.Reset()
	if fresh.Len() != 0 || fresh.ActiveID() != "" {
		t.Error("reset should clear sessions and active pointer")
	}
}

func TestRegistry_ListReturnsClones(t *testing.T) {
	r := NewRegistry()
	sess := r.Create("t")
	r.AppendMessageID(sess.ID, "m1")

	list := r.List()
	list[0].MessageIDs[0] = "tampered"

	got, _ := r.Get(sess.ID)
	if got.MessageIDs[0] != "m1" {
		t.Error("List must return defensive clones")
	}
}
