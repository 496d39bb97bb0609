package model

// ListParams selects one page of push notification configs for a task.
type ListParams struct {
	TaskID    string `json:"id"`
	PageSize  int    `json:"page_size,omitempty"`
	PageToken string `json:"page_token,omitempty"`
	Tenant    string `json:"tenant,omitempty"`
}

// EffectivePageSize clamps the requested page size against the
// process-wide maximum. A non-positive or too-large request resolves
// to maxPageSize.
func (p ListParams) EffectivePageSize(maxPageSize int) int {
	if p.PageSize <= 0 || p.PageSize > maxPageSize {
		return maxPageSize
	}
	return p.PageSize
}

// ListResult is one page of configs plus the token for the next page.
// NextPageToken is empty when no further page exists.
type ListResult struct {
	Configs       []*TaskPushConfig `json:"configs"`
	NextPageToken string            `json:"next_page_token,omitempty"`
}
