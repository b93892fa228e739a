// Package chatmesh provides a high-level façade over the core Engine and
// service abstractions (sessions, messages, blobs, snapshots & logging) for
// building conversational applications. Most applications interact with this
// package by:
//  1. Creating a ChatMesh via New() (optionally overriding default in-memory services)
//  2. Restoring persisted state with Load()
//  3. Driving the conversation via SendText, SendFiles and Regenerate
//
// The façade delegates orchestration to engine.Engine while keeping setup and
// usage ergonomics concise. All defaults are safe for local development and
// testing; production deployments typically supply durable store
// implementations, a real model backend and a structured logger.
package chatmesh

import (
	"context"

	"github.com/hupe1980/chatmesh/blob"
	"github.com/hupe1980/chatmesh/core"
	"github.com/hupe1980/chatmesh/engine"
	"github.com/hupe1980/chatmesh/logging"
	"github.com/hupe1980/chatmesh/model"
	"github.com/hupe1980/chatmesh/persist"
)

// FileUpload is one file of a send-files batch.
type FileUpload = engine.FileUpload

// Options configures the ChatMesh instance.
type Options struct {
	// Engine configuration (context window, streaming chunk size & pacing)
	EngineConfig engine.Config

	// Model is the completion backend. Defaults to a MockModel suitable for
	// local development.
	Model model.Model

	// Stores (defaults to in-memory implementations if not provided)
	BlobStore     core.BlobStore
	SnapshotStore core.SnapshotStore

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// ChatMesh is the high-level façade aggregating the underlying engine and services.
type ChatMesh struct {
	opts   Options
	engine *engine.Engine
}

// New creates a new ChatMesh instance with optional overrides. Any unset
// service is initialized with an in-memory implementation.
func New(optFns ...func(o *Options)) *ChatMesh {
	opts := Options{
		EngineConfig:  engine.DefaultConfig,
		Model:         model.NewMockModel("mock", "mock"),
		BlobStore:     blob.NewInMemoryStore(),
		SnapshotStore: persist.NewMemoryStore(),
		Logger:        logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	e := engine.New(func(o *engine.Options) {
		o.Config = opts.EngineConfig
		o.Model = opts.Model
		o.Blobs = opts.BlobStore
		o.Snapshots = opts.SnapshotStore
		o.Logger = opts.Logger
	})

	return &ChatMesh{opts: opts, engine: e}
}

// Load replaces the in-memory state with the persisted snapshot, if any.
// Typically called once at startup, before any conversation activity.
func (m *ChatMesh) Load() { m.engine.Load() }

// SendText runs one full conversational turn against the active session,
// blocking until the assistant reply is delivered. See engine.Engine.SendText.
func (m *ChatMesh) SendText(ctx context.Context, text string) error {
	return m.engine.SendText(ctx, text)
}

// SendFiles records an upload batch and requests an assistant acknowledgement.
// See engine.Engine.SendFiles.
func (m *ChatMesh) SendFiles(ctx context.Context, files []FileUpload) error {
	return m.engine.SendFiles(ctx, files)
}

// Regenerate re-runs the turn that produced the given assistant message.
func (m *ChatMesh) Regenerate(ctx context.Context, messageID string) error {
	return m.engine.Regenerate(ctx, messageID)
}

// NewSession explicitly creates a session and makes it active.
func (m *ChatMesh) NewSession(title string) *core.Session { return m.engine.NewSession(title) }

// RenameSession sets a session's title.
func (m *ChatMesh) RenameSession(id, title string) { m.engine.RenameSession(id, title) }

// SetActiveSession moves the active-session pointer.
func (m *ChatMesh) SetActiveSession(id string) { m.engine.SetActiveSession(id) }

// Sessions returns all sessions in display order (most recent first).
func (m *ChatMesh) Sessions() []*core.Session { return m.engine.Sessions() }

// ActiveSession returns the active session, if any.
func (m *ChatMesh) ActiveSession() (*core.Session, bool) { return m.engine.ActiveSession() }

// Messages returns the ordered message list of a session.
func (m *ChatMesh) Messages(sessionID string) []core.Message { return m.engine.Messages(sessionID) }

// Attachment fetches the blob bytes backing a file message, or nil.
func (m *ChatMesh) Attachment(sessionID, messageID string) []byte {
	return m.engine.Attachment(sessionID, messageID)
}

// DeleteSession removes a session together with its messages and blobs.
func (m *ChatMesh) DeleteSession(id string) { m.engine.DeleteSession(id) }

// ResetAll clears all sessions, messages, blobs and the persisted snapshot.
func (m *ChatMesh) ResetAll() { m.engine.ResetAll() }
