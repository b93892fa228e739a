package persist

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/hupe1980/chatmesh/core"
	"github.com/stretchr/testify/require"
)

// Interface compliance (compile-time assertions)
var (
	_ core.SnapshotStore = (*MemoryStore)(nil)
	_ core.SnapshotStore = (*FileStore)(nil)
)

func sampleData() core.SnapshotData {
	sess := core.NewSession("First")
	msg := core.NewTextMessage(sess.ID, core.RoleUser, "hello", core.StatusSent)
	sess.MessageIDs = append(sess.MessageIDs, msg.ID)
	return core.SnapshotData{
		Sessions: []core.Session{*sess},
		Messages: map[string][]core.Message{sess.ID: {msg}},
	}
}

func TestGateway_RoundTrip(t *testing.T) {
	g := NewGateway(NewMemoryStore(), nil)
	data := sampleData()

	require.NoError(t, g.Save(data))
	loaded := g.Load()

	require.Len(t, loaded.Sessions, 1)
	require.Equal(t, data.Sessions[0].ID, loaded.Sessions[0].ID)
	require.Equal(t, data.Sessions[0].MessageIDs, loaded.Sessions[0].MessageIDs)

	sid := data.Sessions[0].ID
	require.Len(t, loaded.Messages[sid], 1)
	require.Equal(t, data.Messages[sid][0].ID, loaded.Messages[sid][0].ID)
	require.Equal(t, data.Messages[sid][0].Content, loaded.Messages[sid][0].Content)
}

func TestGateway_LoadEmptyWhenAbsent(t *testing.T) {
	g := NewGateway(NewMemoryStore(), nil)

	loaded := g.Load()
	require.NotNil(t, loaded.Sessions)
	require.NotNil(t, loaded.Messages)
	require.Empty(t, loaded.Sessions)
	require.Empty(t, loaded.Messages)
}

func TestGateway_LoadEmptyOnCorruptSnapshot(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Write([]byte("{not json")))

	g := NewGateway(store, nil)
	loaded := g.Load()
	require.Empty(t, loaded.Sessions)
	require.Empty(t, loaded.Messages)
}

func TestGateway_LoadEmptyOnUnknownVersion(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Write([]byte(`{"version":99,"data":{"sessions":[{"id":"x"}],"messages":{}}}`)))

	g := NewGateway(store, nil)
	require.Empty(t, g.Load().Sessions)
}

func TestGateway_Clear(t *testing.T) {
	g := NewGateway(NewMemoryStore(), nil)
	require.NoError(t, g.Save(sampleData()))
	require.NoError(t, g.Clear())
	require.Empty(t, g.Load().Sessions)
}

type failingStore struct{}

func (failingStore) Read() ([]byte, error)  { return nil, errors.New("disk gone") }
func (failingStore) Write([]byte) error     { return errors.New("disk gone") }
func (failingStore) Clear() error           { return errors.New("disk gone") }

func TestGateway_StorageErrorsAreStorageKind(t *testing.T) {
	g := NewGateway(failingStore{}, nil)

	err := g.Save(sampleData())
	require.Error(t, err)
	kind, ok := core.KindOf(err)
	require.True(t, ok)
	require.Equal(t, core.KindStorage, kind)

	// Read failure degrades to empty state, never panics or propagates.
	require.Empty(t, g.Load().Sessions)
}

func TestFileStore_RoundTripAndClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "chatmesh.json")
	store, err := NewFileStore(path)
	require.NoError(t, err)

	raw, err := store.Read()
	require.NoError(t, err)
	require.Nil(t, raw)

	require.NoError(t, store.Write([]byte(`{"version":1}`)))
	raw, err = store.Read()
	require.NoError(t, err)
	require.JSONEq(t, `{"version":1}`, string(raw))

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear()) // idempotent
	raw, err = store.Read()
	require.NoError(t, err)
	require.Nil(t, raw)
}
