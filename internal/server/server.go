// Package server exposes the push notification config store over an
// HTTP/JSON API.
package server

import (
	"context"
	"log/slog"

	"github.com/groblegark/pushconfig/internal/events"
	"github.com/groblegark/pushconfig/internal/store"
)

// PushConfigServer serves the push notification config API backed by the
// given store. Event publishing is best-effort: a publish failure is
// logged and never fails the request that triggered it.
type PushConfigServer struct {
	store     store.Store
	publisher events.Publisher
}

// NewPushConfigServer returns a server backed by the given store and publisher.
func NewPushConfigServer(s store.Store, p events.Publisher) *PushConfigServer {
	return &PushConfigServer{store: s, publisher: p}
}

// publish wraps an event in an envelope and emits it. Failures are
// logged but do not block the caller.
func (s *PushConfigServer) publish(ctx context.Context, topic string, event any) {
	env, err := events.Wrap(topic, event)
	if err != nil {
		slog.Warn("failed to build event envelope", "topic", topic, "error", err)
		return
	}
	if err := s.publisher.Publish(ctx, topic, env); err != nil {
		slog.Warn("failed to publish event", "topic", topic, "event_id", env.ID, "error", err)
	}
}
