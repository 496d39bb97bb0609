package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/groblegark/pushconfig/internal/events"
	"github.com/groblegark/pushconfig/internal/model"
	"github.com/groblegark/pushconfig/internal/store"
)

// handleSetInfo handles PUT /v1/tasks/{id}/push-configs.
// The body is the push config itself; an empty config ID defaults to the
// task ID. Responds with the config as stored.
func (s *PushConfigServer) handleSetInfo(w http.ResponseWriter, r *http.Request) {
	taskID := r.PathValue("id")
	if taskID == "" {
		writeError(w, http.StatusBadRequest, "task id is required")
		return
	}

	var cfg model.PushConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if cfg.URL == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}

	stored, err := s.store.SetInfo(r.Context(), taskID, &cfg)
	if err != nil {
		slog.Error("failed to set push config", "task_id", taskID, "config_id", cfg.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to set push notification config")
		return
	}

	s.publish(r.Context(), events.TopicConfigSet, events.ConfigSet{TaskID: taskID, Config: stored})

	writeJSON(w, http.StatusOK, stored)
}

// handleListInfo handles GET /v1/tasks/{id}/push-configs with optional
// page_size, page_token, and tenant query parameters.
func (s *PushConfigServer) handleListInfo(w http.ResponseWriter, r *http.Request) {
	taskID := r.PathValue("id")
	if taskID == "" {
		writeError(w, http.StatusBadRequest, "task id is required")
		return
	}

	params := model.ListParams{
		TaskID:    taskID,
		PageToken: r.URL.Query().Get("page_token"),
		Tenant:    r.URL.Query().Get("tenant"),
	}
	if raw := r.URL.Query().Get("page_size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "page_size must be an integer")
			return
		}
		params.PageSize = n
	}

	result, err := s.store.ListInfo(r.Context(), params)
	if err != nil {
		// A malformed page token is the caller's mistake; everything
		// else is internal. Keep the two distinct.
		if errors.Is(err, store.ErrInvalidPageToken) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("failed to list push configs", "task_id", taskID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list push notification configs")
		return
	}

	if result.Configs == nil {
		result.Configs = []*model.TaskPushConfig{}
	}
	writeJSON(w, http.StatusOK, result)
}

// handleDeleteInfo handles DELETE /v1/tasks/{id}/push-configs/{config_id}.
// Deleting an absent config still responds 204; the operation is idempotent.
func (s *PushConfigServer) handleDeleteInfo(w http.ResponseWriter, r *http.Request) {
	taskID := r.PathValue("id")
	configID := r.PathValue("config_id")
	if taskID == "" {
		writeError(w, http.StatusBadRequest, "task id is required")
		return
	}

	if err := s.store.DeleteInfo(r.Context(), taskID, configID); err != nil {
		slog.Error("failed to delete push config", "task_id", taskID, "config_id", configID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete push notification config")
		return
	}

	if configID == "" {
		configID = taskID
	}
	s.publish(r.Context(), events.TopicConfigDeleted, events.ConfigDeleted{TaskID: taskID, ConfigID: configID})

	w.WriteHeader(http.StatusNoContent)
}
