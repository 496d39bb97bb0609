package events

import (
	"context"
	"time"

	"github.com/groblegark/pushconfig/internal/idgen"
	"github.com/groblegark/pushconfig/internal/model"
)

// Event topic constants
const (
	TopicConfigSet     = "a2a.push_config.set"
	TopicConfigDeleted = "a2a.push_config.deleted"
)

// ConfigSet is emitted after a config is stored or replaced.
type ConfigSet struct {
	TaskID string            `json:"task_id"`
	Config *model.PushConfig `json:"push_notification_config"`
}

// ConfigDeleted is emitted after a delete, including no-op deletes of
// absent records (subscribers treat it as "key is now gone").
type ConfigDeleted struct {
	TaskID   string `json:"task_id"`
	ConfigID string `json:"config_id"`
}

// Envelope wraps an event payload with a unique ID and emission time so
// subscribers can deduplicate and order across reconnects.
type Envelope struct {
	ID         string    `json:"id"`
	Topic      string    `json:"topic"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data"`
}

// Wrap builds an envelope for the given topic and payload, assigning a
// fresh event ID.
func Wrap(topic string, data any) (Envelope, error) {
	id, err := idgen.Generate()
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{
		ID:         id,
		Topic:      topic,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}, nil
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}
