package model

// PushConfig describes where and how task update notifications are
// delivered for one (task, config) pair. The store treats the whole
// struct as an opaque payload; only ID participates in keying.
type PushConfig struct {
	// ID distinguishes multiple configurations for the same task.
	// When empty, the store assigns the task ID.
	ID    string `json:"id,omitempty"`
	URL   string `json:"url"`
	Token string `json:"token,omitempty"`

	Authentication *AuthenticationInfo `json:"authentication,omitempty"`
}

// AuthenticationInfo carries the credentials the notification receiver
// expects (e.g. a bearer scheme plus a shared secret).
type AuthenticationInfo struct {
	Schemes     []string `json:"schemes"`
	Credentials string   `json:"credentials,omitempty"`
}

// TaskPushConfig is the list-item shape returned by ListInfo: a stored
// config together with the task and tenant it was requested for.
type TaskPushConfig struct {
	TaskID string      `json:"task_id"`
	Config *PushConfig `json:"push_notification_config"`
	Tenant string      `json:"tenant,omitempty"`
}
