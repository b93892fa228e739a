package persist

import (
	"encoding/json"
	"fmt"

	"github.com/hupe1980/chatmesh/core"
	"github.com/hupe1980/chatmesh/logging"
)

// Gateway serializes {sessions, messages} to and from a core.SnapshotStore
// using the versioned snapshot envelope.
type Gateway struct {
	store  core.SnapshotStore
	logger logging.Logger
}

// NewGateway constructs a gateway over the given snapshot store. A nil
// logger is substituted with a NoOpLogger.
func NewGateway(store core.SnapshotStore, logger logging.Logger) *Gateway {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &Gateway{store: store, logger: logger}
}

// Save writes the current state as a version-1 snapshot. Failures are logged
// and returned; callers on the conversation path ignore the return (advisory
// durability).
func (g *Gateway) Save(data core.SnapshotData) error {
	snap := core.Snapshot{Version: core.SnapshotVersion, Data: data}
	raw, err := json.Marshal(snap)
	if err != nil {
		g.logger.Warn("snapshot marshal failed: %v", err)
		return core.NewError(core.KindStorage, "persist.save", err)
	}
	if err := g.store.Write(raw); err != nil {
		g.logger.Warn("snapshot write failed: %v", err)
		return core.NewError(core.KindStorage, "persist.save", err)
	}
	g.logger.Debug("snapshot saved bytes=%d sessions=%d", len(raw), len(data.Sessions))
	return nil
}

// Load returns the most recent snapshot's data, or the empty state when no
// snapshot exists or the stored one cannot be parsed. Parse failures are
// logged and treated as empty.
func (g *Gateway) Load() core.SnapshotData {
	raw, err := g.store.Read()
	if err != nil {
		g.logger.Warn("snapshot read failed: %v", err)
		return core.EmptySnapshotData()
	}
	if len(raw) == 0 {
		return core.EmptySnapshotData()
	}

	var snap core.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		g.logger.Warn("snapshot parse failed, starting empty: %v", err)
		return core.EmptySnapshotData()
	}
	if snap.Version != core.SnapshotVersion {
		g.logger.Warn("snapshot version %d unsupported, starting empty", snap.Version)
		return core.EmptySnapshotData()
	}

	if snap.Data.Sessions == nil {
		snap.Data.Sessions = []core.Session{}
	}
	if snap.Data.Messages == nil {
		snap.Data.Messages = map[string][]core.Message{}
	}
	return snap.Data
}

// Clear removes the persisted snapshot (reset-all flow).
func (g *Gateway) Clear() error {
	if err := g.store.Clear(); err != nil {
		g.logger.Warn("snapshot clear failed: %v", err)
		return core.NewError(core.KindStorage, "persist.clear", fmt.Errorf("clear snapshot: %w", err))
	}
	return nil
}
