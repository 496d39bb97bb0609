package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/groblegark/pushconfig/internal/model"
	"github.com/groblegark/pushconfig/internal/store"
)

// configColumns is the column list used for SELECT statements on the
// push_notification_configs table.
const configColumns = `task_id, config_id, config, created_at`

// executor is the interface satisfied by both *sql.DB and *sql.Tx.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// querySetInfo upserts the config for (taskID, config.ID), defaulting an
// empty config ID to the task ID. The ON CONFLICT clause replaces only
// the payload, so an existing record keeps its original created_at.
// created_at is truncated to milliseconds because page tokens carry
// millisecond precision; finer timestamps would make cursor comparisons
// skip rows sharing the boundary millisecond.
func querySetInfo(ctx context.Context, db executor, taskID string, config *model.PushConfig) (*model.PushConfig, error) {
	if config.ID == "" {
		stored := *config
		stored.ID = taskID
		config = &stored
	}

	payload, err := json.Marshal(config)
	if err != nil {
		slog.Error("failed to serialize push config", "task_id", taskID, "config_id", config.ID, "error", err)
		return nil, fmt.Errorf("serialize push config for task %q config %q: %w", taskID, config.ID, err)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO push_notification_configs (task_id, config_id, config, created_at)
		VALUES ($1, $2, $3, date_trunc('milliseconds', NOW()))
		ON CONFLICT (task_id, config_id) DO UPDATE SET config = EXCLUDED.config`,
		taskID, config.ID, payload,
	)
	if err != nil {
		return nil, fmt.Errorf("set push config: %w", err)
	}
	return config, nil
}

// queryListInfo runs the keyset page query for params.TaskID. It requests
// pageSize+1 rows; a full overflow row signals a further page, and the
// last row kept becomes the next page token.
func queryListInfo(ctx context.Context, db executor, params model.ListParams, pageSize int) (*model.ListResult, error) {
	cursor, err := store.DecodePageToken(params.PageToken)
	if err != nil {
		return nil, err
	}

	var (
		args    []any
		argIdx  int
		nextArg = func(v any) string {
			argIdx++
			args = append(args, v)
			return fmt.Sprintf("$%d", argIdx)
		}
	)

	taskArg := nextArg(params.TaskID)
	sentinelArg := nextArg(store.NullTimestampSentinel)

	query := `SELECT ` + configColumns + ` FROM push_notification_configs WHERE task_id = ` + taskArg
	if cursor != nil {
		tsArg := nextArg(cursor.Timestamp)
		idArg := nextArg(cursor.ConfigID)
		query += fmt.Sprintf(
			" AND (COALESCE(created_at, %[1]s) < %[2]s OR (COALESCE(created_at, %[1]s) = %[2]s AND config_id > %[3]s))",
			sentinelArg, tsArg, idArg,
		)
	}
	query += fmt.Sprintf(" ORDER BY COALESCE(created_at, %s) DESC, config_id ASC", sentinelArg)
	query += " LIMIT " + nextArg(pageSize+1)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list push configs: %w", err)
	}
	defer rows.Close()

	recs, err := scanConfigRecords(rows)
	if err != nil {
		return nil, fmt.Errorf("scan push configs: %w", err)
	}

	var nextPageToken string
	if len(recs) > pageSize {
		recs = recs[:pageSize]
		last := recs[len(recs)-1]
		nextPageToken = store.EncodePageToken(store.OrderingTimestamp(last.createdAt), last.configID)
	}

	configs := make([]*model.TaskPushConfig, 0, len(recs))
	for _, rec := range recs {
		var cfg model.PushConfig
		if err := json.Unmarshal(rec.payload, &cfg); err != nil {
			slog.Error("failed to deserialize push config", "task_id", params.TaskID, "config_id", rec.configID, "error", err)
			return nil, fmt.Errorf("deserialize push config for task %q config %q: %w", params.TaskID, rec.configID, err)
		}
		configs = append(configs, &model.TaskPushConfig{
			TaskID: params.TaskID,
			Config: &cfg,
			Tenant: params.Tenant,
		})
	}

	return &model.ListResult{Configs: configs, NextPageToken: nextPageToken}, nil
}

// queryDeleteInfo removes the config for (taskID, configID), defaulting
// an empty configID to taskID. Deleting an absent record is a no-op.
func queryDeleteInfo(ctx context.Context, db executor, taskID, configID string) error {
	if configID == "" {
		configID = taskID
	}
	_, err := db.ExecContext(ctx, `
		DELETE FROM push_notification_configs
		WHERE task_id = $1 AND config_id = $2`,
		taskID, configID,
	)
	if err != nil {
		return fmt.Errorf("delete push config: %w", err)
	}
	return nil
}

// queryAllConfigs returns every stored config, ordered by key. Used by
// the backup exporter.
func queryAllConfigs(ctx context.Context, db executor) ([]*model.TaskPushConfig, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT `+configColumns+`
		FROM push_notification_configs
		ORDER BY task_id, config_id`)
	if err != nil {
		return nil, fmt.Errorf("list all push configs: %w", err)
	}
	defer rows.Close()

	recs, err := scanConfigRecords(rows)
	if err != nil {
		return nil, fmt.Errorf("scan all push configs: %w", err)
	}

	configs := make([]*model.TaskPushConfig, 0, len(recs))
	for _, rec := range recs {
		var cfg model.PushConfig
		if err := json.Unmarshal(rec.payload, &cfg); err != nil {
			slog.Error("failed to deserialize push config", "task_id", rec.taskID, "config_id", rec.configID, "error", err)
			return nil, fmt.Errorf("deserialize push config for task %q config %q: %w", rec.taskID, rec.configID, err)
		}
		configs = append(configs, &model.TaskPushConfig{TaskID: rec.taskID, Config: &cfg})
	}
	return configs, nil
}
