package engine

import (
	"context"
	"sync"
	"time"

	"github.com/hupe1980/chatmesh/blob"
	"github.com/hupe1980/chatmesh/core"
	"github.com/hupe1980/chatmesh/logging"
	"github.com/hupe1980/chatmesh/message"
	"github.com/hupe1980/chatmesh/model"
	"github.com/hupe1980/chatmesh/persist"
	"github.com/hupe1980/chatmesh/session"
	"github.com/hupe1980/chatmesh/stream"
)

// Config defines tuning parameters for the engine's conversational behavior.
type Config struct {
	// ContextWindow is the maximum number of prior text messages included
	// in a completion request.
	ContextWindow int

	// ChunkSize is the fragment width the streaming writer appends per step.
	ChunkSize int

	// ChunkDelay is an optional pause between writer steps so UIs can
	// render progressively. Zero disables pacing.
	ChunkDelay time.Duration

	// Model is the model identifier placed on completion requests.
	Model string
}

// DefaultConfig provides sensible defaults: an 8-message context window and
// unpaced 24-byte chunks.
var DefaultConfig = Config{
	ContextWindow: 8,
	ChunkSize:     24,
	Model:         "default",
}

// Options configures an Engine instance using the functional options pattern.
// All services have in-memory defaults so the engine is immediately usable in
// tests and prototypes; production wiring typically supplies a durable
// snapshot store, a filesystem or cloud blob store and a real model.
type Options struct {
	// Config contains operational parameters for the engine behavior.
	// Defaults to DefaultConfig if not specified.
	Config Config

	// Registry owns session metadata and the active-session pointer.
	// Defaults to a fresh in-memory registry if not provided.
	Registry *session.Registry

	// Messages owns the per-session ordered message lists. Defaults to a
	// fresh store mirroring into Registry.
	Messages *message.Store

	// Model is the completion backend. Defaults to a MockModel.
	Model model.Model

	// Blobs stores attachment payloads. Defaults to in-memory.
	Blobs core.BlobStore

	// Snapshots stores the durable snapshot bytes. Defaults to in-memory.
	Snapshots core.SnapshotStore

	// Logger provides structured logging. Defaults to NoOp if nil.
	Logger logging.Logger
}

// generation tracks the single in-flight assistant generation: the
// cancellation token plus the streaming-target message it owns.
type generation struct {
	cancel    context.CancelFunc
	sessionID string
	targetID  string
}

// Engine drives conversations. All public methods are safe for concurrent
// use; overlapping generations resolve by cancellation (the newest wins).
type Engine struct {
	config   Config
	registry *session.Registry
	messages *message.Store
	model    model.Model
	blobs    core.BlobStore
	gateway  *persist.Gateway
	writer   *stream.Writer
	logger   logging.Logger

	genMu   sync.Mutex
	current *generation
}

// New creates an Engine with sensible defaults and optional configuration.
func New(optFns ...func(o *Options)) *Engine {
	opts := Options{
		Config: DefaultConfig,
		Model:  model.NewMockModel("mock", "mock"),
		Blobs:  blob.NewInMemoryStore(),
		Logger: logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Registry == nil {
		opts.Registry = session.NewRegistry()
	}
	if opts.Messages == nil {
		opts.Messages = message.NewStore(opts.Registry)
	}
	if opts.Snapshots == nil {
		opts.Snapshots = persist.NewMemoryStore()
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	return &Engine{
		config:   opts.Config,
		registry: opts.Registry,
		messages: opts.Messages,
		model:    opts.Model,
		blobs:    opts.Blobs,
		gateway:  persist.NewGateway(opts.Snapshots, opts.Logger),
		writer: stream.NewWriter(opts.Messages, func(o *stream.Options) {
			o.ChunkSize = opts.Config.ChunkSize
			o.Delay = opts.Config.ChunkDelay
		}),
		logger: opts.Logger,
	}
}

// Load replaces the in-memory state with the persisted snapshot (or the
// empty state when none exists). A snapshot taken mid-generation may carry a
// streaming placeholder; no writer owns it in this process, so it is marked
// failed.
func (e *Engine) Load() {
	data := e.gateway.Load()
	e.registry.Restore(data.Sessions)
	e.messages.Restore(data.Messages)

	for sid, msgs := range data.Messages {
		for _, m := range msgs {
			if m.IsStreaming() {
				e.messages.Update(sid, m.ID, func(m *core.Message) {
					m.Status = core.StatusError
				})
			}
		}
	}
}

// persist snapshots the current state. Advisory durability: failures are
// logged by the gateway and never surfaced to conversation callers.
func (e *Engine) persist() {
	_ = e.gateway.Save(core.SnapshotData{
		Sessions: e.registry.Snapshot(),
		Messages: e.messages.Snapshot(),
	})
}

// ensureActiveSession returns the active session, lazily creating one on
// first send.
func (e *Engine) ensureActiveSession() *core.Session {
	if sess, ok := e.registry.Active(); ok {
		return sess
	}
	return e.registry.Create("")
}

// claimStream makes targetID the current streaming target. Any previous
// generation is cancelled and its target synchronously marked failed, so at
// most one message store-wide is ever in streaming state.
func (e *Engine) claimStream(parent context.Context, sessionID, targetID string) (context.Context, context.CancelFunc) {
	e.genMu.Lock()
	defer e.genMu.Unlock()

	if e.current != nil {
		e.current.cancel()
		e.messages.Update(e.current.sessionID, e.current.targetID, func(m *core.Message) {
			m.Status = core.StatusError
		})
		e.logger.Debug("superseded generation target=%s", e.current.targetID)
	}

	ctx, cancel := context.WithCancel(parent)
	e.current = &generation{cancel: cancel, sessionID: sessionID, targetID: targetID}
	return ctx, cancel
}

// releaseStream clears the streaming-target pointer when still owned by
// targetID and releases the generation's token.
func (e *Engine) releaseStream(targetID string, cancel context.CancelFunc) {
	e.genMu.Lock()
	if e.current != nil && e.current.targetID == targetID {
		e.current = nil
	}
	e.genMu.Unlock()
	cancel()
}

// cancelGeneration aborts the in-flight generation, if any. When owner is
// non-empty only a generation belonging to that session is aborted.
func (e *Engine) cancelGeneration(owner string) {
	e.genMu.Lock()
	defer e.genMu.Unlock()
	if e.current == nil {
		return
	}
	if owner != "" && e.current.sessionID != owner {
		return
	}
	e.current.cancel()
	e.current = nil
}

// generate issues the completion request and stages the response into the
// target message. On success the target ends sent with an optional card
// message inserted right after it. On failure the target ends failed; the
// returned error carries the cancellation or transport kind.
func (e *Engine) generate(ctx context.Context, sessionID, targetID string, window []model.ChatMessage) error {
	start := time.Now()

	res, err := e.model.Complete(ctx, model.Request{
		Model:    e.config.Model,
		Messages: window,
		Stream:   true,
	})
	if err != nil {
		e.failTarget(sessionID, targetID)
		if core.IsCancelled(err) || ctx.Err() != nil {
			return core.NewError(core.KindCancelled, "engine.generate", err)
		}
		e.logger.Error("completion request failed session_id=%s: %v", sessionID, err)
		return core.NewError(core.KindTransport, "engine.generate", err)
	}

	if err := e.writer.Write(ctx, sessionID, targetID, res.Text()); err != nil {
		e.failTarget(sessionID, targetID)
		e.logger.Error("stream delivery failed session_id=%s: %v", sessionID, err)
		return core.NewError(core.KindTransport, "engine.generate", err)
	}
	if ctx.Err() != nil {
		// The writer stops silently on the token; finish the abandonment here.
		e.failTarget(sessionID, targetID)
		return core.NewError(core.KindCancelled, "engine.generate", ctx.Err())
	}

	e.messages.Update(sessionID, targetID, func(m *core.Message) {
		m.Status = core.StatusSent
	})
	if res.Card != nil {
		e.messages.InsertAfter(sessionID, targetID, core.NewCardMessage(sessionID, core.CardPayload(*res.Card)))
	}

	e.logger.Debug("generation completed session_id=%s target=%s tokens=%d duration=%s",
		sessionID, targetID, res.Response.Usage.TotalTokens, time.Since(start))
	return nil
}

// failTarget marks the target message failed and persists the transition.
func (e *Engine) failTarget(sessionID, targetID string) {
	e.messages.Update(sessionID, targetID, func(m *core.Message) {
		m.Status = core.StatusError
	})
	e.persist()
}

// contextWindow builds the bounded completion context: the session's text
// messages not currently streaming, last ContextWindow entries in
// chronological order, projected to {role, content}.
func (e *Engine) contextWindow(sessionID string) []model.ChatMessage {
	msgs := e.messages.Messages(sessionID)

	eligible := make([]core.Message, 0, len(msgs))
	for _, m := range msgs {
		if m.Type == core.TypeText && m.Status != core.StatusStreaming {
			eligible = append(eligible, m)
		}
	}
	if limit := e.config.ContextWindow; limit > 0 && len(eligible) > limit {
		eligible = eligible[len(eligible)-limit:]
	}

	window := make([]model.ChatMessage, len(eligible))
	for i, m := range eligible {
		window[i] = model.ChatMessage{Role: string(m.Role), Content: m.Content}
	}
	return window
}
