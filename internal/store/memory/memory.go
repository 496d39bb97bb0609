// Package memory implements the store.Store interface with an in-process
// map. It honors the same pagination contract as the Postgres store and
// backs tests and single-process deployments.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/groblegark/pushconfig/internal/model"
	"github.com/groblegark/pushconfig/internal/store"
)

// recordKey is the composite key of one stored config.
type recordKey struct {
	taskID   string
	configID string
}

// record is one stored config with its creation timestamp.
type record struct {
	config    *model.PushConfig
	createdAt time.Time
}

// MemoryStore implements store.Store in process memory.
type MemoryStore struct {
	mu          sync.RWMutex
	maxPageSize int
	records     map[recordKey]*record

	now func() time.Time // injectable for tests
}

// Compile-time check that MemoryStore implements store.Store.
var _ store.Store = (*MemoryStore)(nil)

// New returns an empty in-memory store with the given page size cap.
func New(maxPageSize int) *MemoryStore {
	return &MemoryStore{
		maxPageSize: maxPageSize,
		records:     make(map[recordKey]*record),
		// Page tokens carry millisecond precision, so creation times are
		// truncated to keep cursor comparisons exact.
		now: func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

func (s *MemoryStore) SetInfo(_ context.Context, taskID string, config *model.PushConfig) (*model.PushConfig, error) {
	stored := cloneConfig(config)
	if stored.ID == "" {
		stored.ID = taskID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := recordKey{taskID: taskID, configID: stored.ID}
	if existing, ok := s.records[key]; ok {
		existing.config = stored
	} else {
		s.records[key] = &record{config: stored, createdAt: s.now()}
	}
	return cloneConfig(stored), nil
}

func (s *MemoryStore) ListInfo(_ context.Context, params model.ListParams) (*model.ListResult, error) {
	cursor, err := store.DecodePageToken(params.PageToken)
	if err != nil {
		return nil, err
	}
	pageSize := params.EffectivePageSize(s.maxPageSize)

	s.mu.RLock()
	var matched []*record
	for key, rec := range s.records {
		if key.taskID != params.TaskID {
			continue
		}
		matched = append(matched, rec)
	}
	s.mu.RUnlock()

	// Total order: descending ordering timestamp, ascending config ID.
	sort.Slice(matched, func(i, j int) bool {
		ti := store.OrderingTimestamp(matched[i].createdAt)
		tj := store.OrderingTimestamp(matched[j].createdAt)
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return matched[i].config.ID < matched[j].config.ID
	})

	if cursor != nil {
		matched = afterCursor(matched, cursor)
	}

	var nextPageToken string
	if len(matched) > pageSize {
		matched = matched[:pageSize]
		last := matched[len(matched)-1]
		nextPageToken = store.EncodePageToken(store.OrderingTimestamp(last.createdAt), last.config.ID)
	}

	configs := make([]*model.TaskPushConfig, 0, len(matched))
	for _, rec := range matched {
		configs = append(configs, &model.TaskPushConfig{
			TaskID: params.TaskID,
			Config: cloneConfig(rec.config),
			Tenant: params.Tenant,
		})
	}
	return &model.ListResult{Configs: configs, NextPageToken: nextPageToken}, nil
}

func (s *MemoryStore) DeleteInfo(_ context.Context, taskID, configID string) error {
	if configID == "" {
		configID = taskID
	}
	s.mu.Lock()
	delete(s.records, recordKey{taskID: taskID, configID: configID})
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) AllConfigs(_ context.Context) ([]*model.TaskPushConfig, error) {
	s.mu.RLock()
	configs := make([]*model.TaskPushConfig, 0, len(s.records))
	for key, rec := range s.records {
		configs = append(configs, &model.TaskPushConfig{
			TaskID: key.taskID,
			Config: cloneConfig(rec.config),
		})
	}
	s.mu.RUnlock()

	sort.Slice(configs, func(i, j int) bool {
		if configs[i].TaskID != configs[j].TaskID {
			return configs[i].TaskID < configs[j].TaskID
		}
		return configs[i].Config.ID < configs[j].Config.ID
	})
	return configs, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error { return nil }

// afterCursor drops the records at or before the cursor position in the
// sorted slice: keep rows with an earlier ordering timestamp, or the same
// timestamp and a greater config ID.
func afterCursor(recs []*record, cursor *store.Cursor) []*record {
	keep := recs[:0:0]
	for _, rec := range recs {
		ts := store.OrderingTimestamp(rec.createdAt)
		if ts.Before(cursor.Timestamp) || (ts.Equal(cursor.Timestamp) && rec.config.ID > cursor.ConfigID) {
			keep = append(keep, rec)
		}
	}
	return keep
}

// cloneConfig copies a config so stored state never aliases caller memory.
func cloneConfig(c *model.PushConfig) *model.PushConfig {
	clone := *c
	if c.Authentication != nil {
		auth := *c.Authentication
		auth.Schemes = append([]string(nil), c.Authentication.Schemes...)
		clone.Authentication = &auth
	}
	return &clone
}
