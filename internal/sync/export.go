// Package sync periodically exports the full set of push notification
// configs as JSONL and ships it to one or more backup destinations.
package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/groblegark/pushconfig/internal/store"
)

// header is the first JSONL record written by ExportJSONL.
type header struct {
	Version     string    `json:"version"`
	Type        string    `json:"type"`
	Timestamp   time.Time `json:"timestamp"`
	ConfigCount int       `json:"config_count"`
}

// record wraps a single JSONL line with a type discriminator.
type record struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// ExportJSONL writes all push notification configs from the store as JSONL
// to w. The store returns them sorted by task ID then config ID, so the
// output is deterministic for unchanged data.
func ExportJSONL(ctx context.Context, s store.Store, w io.Writer) error {
	configs, err := s.AllConfigs(ctx)
	if err != nil {
		return fmt.Errorf("list configs: %w", err)
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(header{
		Version:     "1",
		Type:        "header",
		Timestamp:   time.Now().UTC(),
		ConfigCount: len(configs),
	}); err != nil {
		return fmt.Errorf("encode header: %w", err)
	}

	for _, c := range configs {
		if err := enc.Encode(record{Type: "push_config", Data: c}); err != nil {
			return fmt.Errorf("encode config %s/%s: %w", c.TaskID, c.Config.ID, err)
		}
	}

	return nil
}
