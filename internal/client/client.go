// Package client provides a transport-agnostic interface for the pushconfig
// service and an HTTP/JSON implementation that talks to its REST API.
package client

import (
	"context"

	"github.com/groblegark/pushconfig/internal/model"
)

// PushConfigClient is the interface that all pushconfig CLI commands use to
// communicate with the server. It is implemented by HTTPClient (default) and
// can be backed by any transport.
type PushConfigClient interface {
	// SetInfo creates or replaces a push notification config for a task.
	SetInfo(ctx context.Context, taskID string, config *model.PushConfig) (*model.PushConfig, error)

	// ListInfo returns one page of configs for a task. An empty page token
	// requests the first page.
	ListInfo(ctx context.Context, req *ListInfoRequest) (*model.ListResult, error)

	// DeleteInfo removes a config. Deleting an absent config is not an error.
	DeleteInfo(ctx context.Context, taskID, configID string) error

	// Health reports the server's health status string.
	Health(ctx context.Context) (string, error)

	// Lifecycle
	Close() error
}

// ListInfoRequest holds parameters for listing configs.
type ListInfoRequest struct {
	TaskID    string `json:"task_id"`
	PageSize  int    `json:"page_size,omitempty"`
	PageToken string `json:"page_token,omitempty"`
	Tenant    string `json:"tenant,omitempty"`
}
