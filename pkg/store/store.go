// Package store holds the client's persisted wizard state: per-tenant
// selections, the scope map, the cached request list, and screen type
// filters. Mutations are synchronous in memory and mirrored to durable
// storage by a background writer.
package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/Astreocclu/pool-visualizer/pkg/logger"
	"github.com/Astreocclu/pool-visualizer/pkg/metrics"
	"github.com/Astreocclu/pool-visualizer/pkg/models"
	"github.com/Astreocclu/pool-visualizer/pkg/tenants"
)

// SnapshotVersion is the schema version of the persisted envelope. Payloads
// with a different version are discarded on load.
const SnapshotVersion = 1

// MaxWaterFeatures caps how many water features a pool configuration may
// carry. Values beyond the cap are silently dropped, matching the product
// behavior of disabling further choices instead of erroring.
const MaxWaterFeatures = 2

const saveTimeout = 5 * time.Second

// Scope is the yes/no branching state used by the windows flow, with
// associated counts.
type Scope struct {
	HasPatio    bool   `json:"has_patio"`
	HasWindows  bool   `json:"has_windows"`
	HasDoors    bool   `json:"has_doors"`
	DoorType    string `json:"door_type,omitempty"`
	WindowCount int    `json:"window_count"`
	DoorCount   int    `json:"door_count"`
}

// DefaultScope returns the initial scope state.
func DefaultScope() Scope {
	return Scope{HasWindows: true}
}

// Filters are the cached request-list filter settings.
type Filters struct {
	Status     string `json:"status"`
	ScreenType string `json:"screen_type"`
	SortBy     string `json:"sort_by"`
	SortOrder  string `json:"sort_order"`
}

// DefaultFilters returns the initial filter settings.
func DefaultFilters() Filters {
	return Filters{
		Status:     "all",
		ScreenType: "all",
		SortBy:     "created_at",
		SortOrder:  "desc",
	}
}

// Snapshot is the versioned persisted envelope.
type Snapshot struct {
	Version     int                           `json:"version"`
	TenantID    string                        `json:"tenant_id"`
	Selections  models.Selections             `json:"selections"`
	Scope       Scope                         `json:"scope"`
	Requests    []models.VisualizationRequest `json:"requests,omitempty"`
	ScreenTypes []models.ScreenType           `json:"screen_types,omitempty"`
	Filters     Filters                       `json:"filters"`
}

// Store is the in-memory state container. All mutations are immediately
// visible to readers and mirrored asynchronously through the Persister; a
// failed mirror write is swallowed after a debug log. Mirror writes are
// serialized and coalesced to the latest snapshot, so durable storage
// always converges on the most recent state.
type Store struct {
	mu        sync.RWMutex
	snapshot  Snapshot
	persister Persister
	logger    logger.Logger
	wg        sync.WaitGroup

	saveMu  sync.Mutex
	pending []byte
	saving  bool
}

// New creates a store for the given tenant, seeding selections from the
// tenant defaults and overlaying any previously persisted snapshot. A nil
// persister keeps the store memory-only.
func New(tenantID string, persister Persister, log logger.Logger) *Store {
	s := &Store{
		snapshot: Snapshot{
			Version:    SnapshotVersion,
			TenantID:   tenantID,
			Selections: tenants.Defaults(tenantID),
			Scope:      DefaultScope(),
			Filters:    DefaultFilters(),
		},
		persister: persister,
		logger:    log,
	}

	s.restore(tenantID)

	return s
}

// restore overlays the persisted snapshot, if one exists for this tenant.
// Corrupt or mismatched payloads are discarded.
func (s *Store) restore(tenantID string) {
	if s.persister == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	data, err := s.persister.Load(ctx)
	if err != nil {
		if err != ErrNotFound {
			s.logger.WithError(err).Debugf("Failed to load persisted state")
		}
		return
	}

	var saved Snapshot
	if err := json.Unmarshal(data, &saved); err != nil {
		s.logger.WithError(err).Debugf("Discarding corrupt persisted state")
		return
	}

	if saved.Version != SnapshotVersion || saved.TenantID != tenantID {
		return
	}

	// Persisted selections overlay the defaults; keys the tenant no longer
	// declares are kept and ignored at submission time.
	for key, value := range saved.Selections {
		s.snapshot.Selections[key] = value
	}
	s.snapshot.Scope = saved.Scope
	s.snapshot.Requests = saved.Requests
	s.snapshot.ScreenTypes = saved.ScreenTypes
	if saved.Filters != (Filters{}) {
		s.snapshot.Filters = saved.Filters
	}
}

// TenantID returns the tenant this store was initialized for.
func (s *Store) TenantID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.TenantID
}

// Get returns the selection value for a key.
func (s *Store) Get(key string) (models.Value, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.snapshot.Selections[key]
	return value, ok
}

// Set stores a selection value and mirrors the snapshot to durable storage.
func (s *Store) Set(key string, value models.Value) {
	s.mu.Lock()
	s.snapshot.Selections[key] = capValue(key, value)
	s.mu.Unlock()

	s.persist()
}

// SetMany applies several selection updates in one mutation.
func (s *Store) SetMany(updates models.Selections) {
	s.mu.Lock()
	for key, value := range updates {
		s.snapshot.Selections[key] = capValue(key, value)
	}
	s.mu.Unlock()

	s.persist()
}

// Selections returns a copy of the current selections.
func (s *Store) Selections() models.Selections {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Selections.Clone()
}

// Reset restores the tenant defaults for selections and scope.
func (s *Store) Reset() {
	s.mu.Lock()
	s.snapshot.Selections = tenants.Defaults(s.snapshot.TenantID)
	s.snapshot.Scope = DefaultScope()
	s.mu.Unlock()

	s.persist()
}

// Scope returns the current scope state.
func (s *Store) Scope() Scope {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Scope
}

// SetScope replaces the scope state.
func (s *Store) SetScope(scope Scope) {
	s.mu.Lock()
	s.snapshot.Scope = scope
	s.mu.Unlock()

	s.persist()
}

// Filters returns the cached filter settings.
func (s *Store) Filters() Filters {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Filters
}

// SetFilters merges non-empty filter fields into the cached settings.
func (s *Store) SetFilters(filters Filters) {
	s.mu.Lock()
	if filters.Status != "" {
		s.snapshot.Filters.Status = filters.Status
	}
	if filters.ScreenType != "" {
		s.snapshot.Filters.ScreenType = filters.ScreenType
	}
	if filters.SortBy != "" {
		s.snapshot.Filters.SortBy = filters.SortBy
	}
	if filters.SortOrder != "" {
		s.snapshot.Filters.SortOrder = filters.SortOrder
	}
	s.mu.Unlock()

	s.persist()
}

// Requests returns the cached request list.
func (s *Store) Requests() []models.VisualizationRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.VisualizationRequest, len(s.snapshot.Requests))
	copy(out, s.snapshot.Requests)
	return out
}

// CacheRequests replaces the cached request list.
func (s *Store) CacheRequests(requests []models.VisualizationRequest) {
	s.mu.Lock()
	s.snapshot.Requests = requests
	s.mu.Unlock()

	s.persist()
}

// UpsertRequest inserts or updates a cached request by id, newest first.
func (s *Store) UpsertRequest(req models.VisualizationRequest) {
	s.mu.Lock()
	replaced := false
	for i := range s.snapshot.Requests {
		if s.snapshot.Requests[i].ID == req.ID {
			s.snapshot.Requests[i] = req
			replaced = true
			break
		}
	}
	if !replaced {
		s.snapshot.Requests = append([]models.VisualizationRequest{req}, s.snapshot.Requests...)
	}
	s.mu.Unlock()

	s.persist()
}

// RemoveRequest drops a cached request by id.
func (s *Store) RemoveRequest(id int) {
	s.mu.Lock()
	kept := s.snapshot.Requests[:0]
	for _, req := range s.snapshot.Requests {
		if req.ID != id {
			kept = append(kept, req)
		}
	}
	s.snapshot.Requests = kept
	s.mu.Unlock()

	s.persist()
}

// Stats derives status counts from the cached request list.
func (s *Store) Stats() models.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.ComputeStats(s.snapshot.Requests)
}

// ScreenTypes returns the cached screen type catalog.
func (s *Store) ScreenTypes() []models.ScreenType {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.ScreenType, len(s.snapshot.ScreenTypes))
	copy(out, s.snapshot.ScreenTypes)
	return out
}

// CacheScreenTypes replaces the cached screen type catalog.
func (s *Store) CacheScreenTypes(types []models.ScreenType) {
	s.mu.Lock()
	s.snapshot.ScreenTypes = types
	s.mu.Unlock()

	s.persist()
}

// Flush waits for any in-flight mirror writes to finish.
func (s *Store) Flush() {
	s.wg.Wait()
}

// persist mirrors the snapshot to durable storage in the background. Saves
// run on a single writer goroutine and intermediate snapshots are coalesced,
// so a slow earlier write can never clobber a later one. Errors are logged
// at debug and otherwise swallowed.
func (s *Store) persist() {
	if s.persister == nil {
		return
	}

	s.mu.RLock()
	data, err := json.Marshal(s.snapshot)
	s.mu.RUnlock()
	if err != nil {
		s.logger.WithError(err).Debugf("Failed to marshal state snapshot")
		metrics.StateSavesTotal.WithLabelValues("error").Inc()
		return
	}

	s.saveMu.Lock()
	s.pending = data
	if s.saving {
		s.saveMu.Unlock()
		return
	}
	s.saving = true
	s.saveMu.Unlock()

	s.wg.Add(1)
	go s.drainSaves()
}

// drainSaves writes pending snapshots until none remain. Only one instance
// runs at a time, guarded by the saving flag.
func (s *Store) drainSaves() {
	defer s.wg.Done()

	for {
		s.saveMu.Lock()
		data := s.pending
		s.pending = nil
		if data == nil {
			s.saving = false
			s.saveMu.Unlock()
			return
		}
		s.saveMu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		err := s.persister.Save(ctx, data)
		cancel()
		if err != nil {
			s.logger.WithError(err).Debugf("Failed to persist state snapshot")
			metrics.StateSavesTotal.WithLabelValues("error").Inc()
			continue
		}
		metrics.StateSavesTotal.WithLabelValues("ok").Inc()
	}
}

func capValue(key string, value models.Value) models.Value {
	if key == "water_features" && value.Kind == models.KindList && len(value.List) > MaxWaterFeatures {
		value.List = value.List[:MaxWaterFeatures]
	}
	return value
}
