package store

import (
	"context"

	"github.com/groblegark/pushconfig/internal/model"
)

// Store defines the persistence interface for push notification configs.
// Implementations are selected explicitly at construction time (Postgres
// for production, memory for tests and single-process setups).
type Store interface {
	// SetInfo upserts the config for (taskID, config.ID). An empty
	// config.ID defaults to taskID. An existing record keeps its
	// original creation timestamp; only the payload is replaced.
	// Returns the config as stored, including the defaulted ID.
	SetInfo(ctx context.Context, taskID string, config *model.PushConfig) (*model.PushConfig, error)

	// ListInfo returns one page of configs for params.TaskID, ordered
	// by descending creation time with an ascending config-ID
	// tie-break. A malformed page token fails with ErrInvalidPageToken.
	ListInfo(ctx context.Context, params model.ListParams) (*model.ListResult, error)

	// DeleteInfo removes the config for (taskID, configID). An empty
	// configID defaults to taskID. Deleting an absent record is a
	// successful no-op.
	DeleteInfo(ctx context.Context, taskID, configID string) error

	// AllConfigs returns every stored config across all tasks, for
	// backup export. Ordered by (task_id, config_id).
	AllConfigs(ctx context.Context) ([]*model.TaskPushConfig, error)

	// Lifecycle
	Close() error
}
