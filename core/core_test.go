package core

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestMessage_Validate(t *testing.T) {
	text := NewTextMessage("s1", RoleUser, "hi", StatusSent)
	if err := text.Validate(); err != nil {
		t.Fatalf("text message should validate: %v", err)
	}

	file := NewFileMessage("s1", NewID(), Attachment{Name: "a.txt", Size: 3, Mime: "text/plain", StorageKey: "file_x"})
	if err := file.Validate(); err != nil {
		t.Fatalf("file message should validate: %v", err)
	}

	broken := file
	broken.Attachment = nil
	if err := broken.Validate(); err == nil {
		t.Error("file message without attachment should fail validation")
	}

	card := NewCardMessage("s1", CardPayload{CardType: "article", Title: "Read me"})
	if card.Content != "Read me" {
		t.Errorf("card content should mirror title, got %q", card.Content)
	}
	card.Card = nil
	if err := card.Validate(); err == nil {
		t.Error("card message without payload should fail validation")
	}
}

func TestSession_CloneIsIndependent(t *testing.T) {
	s := NewSession("First")
	s.MessageIDs = append(s.MessageIDs, "m1", "m2")

	clone := s.Clone()
	if clone == s {
		t.Fatal("Clone should return a different pointer")
	}

	clone.MessageIDs = append(clone.MessageIDs, "m3")
	if len(s.MessageIDs) != 2 {
		t.Errorf("original should keep 2 ids, got %d", len(s.MessageIDs))
	}
	if !s.HasMessageID("m2") || s.HasMessageID("m3") {
		t.Error("HasMessageID mismatch after clone mutation")
	}
}

func TestSession_TouchMonotonic(t *testing.T) {
	s := NewSession("t")
	before := s.UpdatedAt
	s.Touch()
	if s.UpdatedAt.Before(before) {
		t.Error("UpdatedAt must be monotonically non-decreasing")
	}
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", NewError(KindTransport, "send", errors.New("boom")))
	kind, ok := KindOf(wrapped)
	if !ok || kind != KindTransport {
		t.Fatalf("expected transport kind, got %v ok=%v", kind, ok)
	}

	if !IsCancelled(context.Canceled) {
		t.Error("bare context.Canceled should classify as cancelled")
	}
	if !IsCancelled(NewError(KindCancelled, "send", context.Canceled)) {
		t.Error("wrapped cancellation should classify as cancelled")
	}
	if IsCancelled(errors.New("plain")) {
		t.Error("plain error should not classify as cancelled")
	}
}

func TestBlobKey(t *testing.T) {
	if got := BlobKey("abc"); got != "file_abc" {
		t.Errorf("BlobKey = %q, want file_abc", got)
	}
}
