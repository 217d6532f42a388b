package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Astreocclu/pool-visualizer/pkg/logger"
	"github.com/Astreocclu/pool-visualizer/pkg/models"
)

func newFileStore(t *testing.T, tenantID string) *Store {
	t.Helper()
	t.Setenv(HomeEnvVar, t.TempDir())

	persister, err := NewFilePersister("state-" + tenantID + ".json")
	require.NoError(t, err)
	return New(tenantID, persister, logger.NewNop())
}

func TestStoreSeedsTenantDefaults(t *testing.T) {
	s := New("pools", nil, logger.NewNop())

	value, ok := s.Get("finish")
	require.True(t, ok)
	assert.Equal(t, "pebble_blue", value.Str)

	assert.True(t, s.Scope().HasWindows)
	assert.Equal(t, "all", s.Filters().Status)
	assert.Equal(t, "created_at", s.Filters().SortBy)
}

func TestStorePersistsAcrossRestart(t *testing.T) {
	home := t.TempDir()
	t.Setenv(HomeEnvVar, home)

	persister, err := NewFilePersister("state-pools.json")
	require.NoError(t, err)

	s := New("pools", persister, logger.NewNop())
	s.Set("finish", models.String("quartz_grey"))
	s.SetScope(Scope{HasWindows: true, WindowCount: 4})
	s.Flush()

	restored := New("pools", persister, logger.NewNop())

	value, ok := restored.Get("finish")
	require.True(t, ok)
	assert.Equal(t, "quartz_grey", value.Str)
	assert.Equal(t, 4, restored.Scope().WindowCount)

	// Untouched keys still carry defaults.
	size, ok := restored.Get("size")
	require.True(t, ok)
	assert.Equal(t, "classic", size.Str)
}

func TestStoreDiscardsMismatchedSnapshot(t *testing.T) {
	t.Setenv(HomeEnvVar, t.TempDir())

	persister, err := NewFilePersister("state-pools.json")
	require.NoError(t, err)

	// Persist a snapshot for a different tenant under the pools file.
	other := Snapshot{
		Version:    SnapshotVersion,
		TenantID:   "windows",
		Selections: models.Selections{"finish": models.String("quartz_grey")},
	}
	data, err := json.Marshal(other)
	require.NoError(t, err)
	require.NoError(t, persister.Save(context.Background(), data))

	s := New("pools", persister, logger.NewNop())

	value, ok := s.Get("finish")
	require.True(t, ok)
	assert.Equal(t, "pebble_blue", value.Str)
}

func TestStoreDiscardsCorruptSnapshot(t *testing.T) {
	t.Setenv(HomeEnvVar, t.TempDir())

	persister, err := NewFilePersister("state-pools.json")
	require.NoError(t, err)
	require.NoError(t, persister.Save(context.Background(), []byte("{not json")))

	s := New("pools", persister, logger.NewNop())

	value, ok := s.Get("shape")
	require.True(t, ok)
	assert.Equal(t, "rectangle", value.Str)
}

func TestStoreCapsWaterFeatures(t *testing.T) {
	s := New("pools", nil, logger.NewNop())

	s.Set("water_features", models.List("rock_waterfall", "deck_jets", "bubblers"))

	value, ok := s.Get("water_features")
	require.True(t, ok)
	assert.Equal(t, []string{"rock_waterfall", "deck_jets"}, value.List)
}

func TestStoreResetRestoresDefaults(t *testing.T) {
	s := newFileStore(t, "pools")

	s.Set("finish", models.String("quartz_grey"))
	s.SetScope(Scope{HasDoors: true, DoorCount: 2})
	s.Reset()

	value, ok := s.Get("finish")
	require.True(t, ok)
	assert.Equal(t, "pebble_blue", value.Str)
	assert.Equal(t, DefaultScope(), s.Scope())
}

func TestStoreSetFiltersMergesNonEmpty(t *testing.T) {
	s := New("pools", nil, logger.NewNop())

	s.SetFilters(Filters{Status: "failed"})

	filters := s.Filters()
	assert.Equal(t, "failed", filters.Status)
	assert.Equal(t, "all", filters.ScreenType)
	assert.Equal(t, "desc", filters.SortOrder)
}

func TestStoreUpsertRequest(t *testing.T) {
	s := New("pools", nil, logger.NewNop())

	s.CacheRequests([]models.VisualizationRequest{
		{ID: 1, Status: models.StatusPending},
		{ID: 2, Status: models.StatusComplete},
	})

	// Update in place.
	s.UpsertRequest(models.VisualizationRequest{ID: 1, Status: models.StatusComplete})
	requests := s.Requests()
	require.Len(t, requests, 2)
	assert.Equal(t, models.StatusComplete, requests[0].Status)

	// New ids prepend.
	s.UpsertRequest(models.VisualizationRequest{ID: 3, Status: models.StatusProcessing})
	requests = s.Requests()
	require.Len(t, requests, 3)
	assert.Equal(t, 3, requests[0].ID)

	s.RemoveRequest(2)
	assert.Len(t, s.Requests(), 2)

	stats := s.Stats()
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, 1, stats.Processing)
}

func TestFilePersisterClear(t *testing.T) {
	t.Setenv(HomeEnvVar, t.TempDir())

	persister, err := NewFilePersister("session.json")
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, persister.Save(ctx, []byte(`{}`)))

	_, err = persister.Load(ctx)
	require.NoError(t, err)

	require.NoError(t, persister.Clear(ctx))
	_, err = persister.Load(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	// Clearing twice is fine.
	require.NoError(t, persister.Clear(ctx))
}

// gatedPersister blocks its first Save until released, recording every
// payload in completion order.
type gatedPersister struct {
	mu      sync.Mutex
	saves   [][]byte
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func newGatedPersister() *gatedPersister {
	return &gatedPersister{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (p *gatedPersister) Load(ctx context.Context) ([]byte, error) {
	return nil, ErrNotFound
}

func (p *gatedPersister) Save(ctx context.Context, data []byte) error {
	var first bool
	p.once.Do(func() { first = true })
	if first {
		close(p.entered)
		<-p.release
	}

	p.mu.Lock()
	p.saves = append(p.saves, append([]byte(nil), data...))
	p.mu.Unlock()
	return nil
}

func (p *gatedPersister) Clear(ctx context.Context) error {
	return nil
}

func (p *gatedPersister) last() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.saves) == 0 {
		return nil
	}
	return p.saves[len(p.saves)-1]
}

func TestStoreSlowSaveCannotClobberNewerState(t *testing.T) {
	persister := newGatedPersister()
	s := New("pools", persister, logger.NewNop())

	s.Set("size", models.String("starter"))
	// The first mirror write is in flight and stuck.
	<-persister.entered

	s.Set("size", models.String("resort"))
	close(persister.release)
	s.Flush()

	var saved Snapshot
	require.NoError(t, json.Unmarshal(persister.last(), &saved))
	assert.Equal(t, "resort", saved.Selections["size"].Str)
}

func TestFilePersisterSaveReplacesCleanly(t *testing.T) {
	home := t.TempDir()
	t.Setenv(HomeEnvVar, home)

	persister, err := NewFilePersister("state-pools.json")
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, persister.Save(ctx, []byte(`{"version":1}`)))
	require.NoError(t, persister.Save(ctx, []byte(`{"version":2}`)))

	data, err := persister.Load(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":2}`, string(data))

	// No staging leftovers beside the target file.
	entries, err := os.ReadDir(filepath.Dir(persister.Path()))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "state-pools.json", entries[0].Name())
}
