package toggl

import (
	"encoding/json"
	"time"
)

// TimeEntry is a tracked interval. A negative Duration marks an entry that
// is still running.
type TimeEntry struct {
	ID          int64      `json:"id"`
	WorkspaceID int64      `json:"workspace_id"`
	ProjectID   *int64     `json:"project_id"`
	TaskID      *int64     `json:"task_id"`
	UserID      int64      `json:"user_id"`
	Description string     `json:"description"`
	Start       time.Time  `json:"start"`
	Stop        *time.Time `json:"stop"`
	Duration    int64      `json:"duration"`
	Billable    bool       `json:"billable"`
	Tags        []string   `json:"tags"`
	TagIDs      []int64    `json:"tag_ids"`
}

// Fields returns the entry as a generic field map suitable for
// UpdateTimeEntry. Nil tag lists become empty lists so the map can be sent
// back to the API, which rejects null there.
func (e *TimeEntry) Fields() (map[string]any, error) {
	raw, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	if fields["tags"] == nil {
		fields["tags"] = []any{}
	}
	if fields["tag_ids"] == nil {
		fields["tag_ids"] = []any{}
	}
	return fields, nil
}

// Running reports whether the entry is still being tracked.
func (e *TimeEntry) Running() bool { return e.Duration < 0 }

// Workspace is the top-level tenant under which entries, projects and
// clients live.
type Workspace struct {
	ID             int64  `json:"id"`
	OrganizationID int64  `json:"organization_id"`
	Name           string `json:"name"`
	Premium        bool   `json:"premium"`
}

// Client is a customer record projects can be grouped under, not to be
// confused with the HTTP session.
type Client struct {
	ID          int64  `json:"id"`
	WorkspaceID int64  `json:"wid"`
	Name        string `json:"name"`
	Notes       string `json:"notes"`
	Archived    bool   `json:"archived"`
}

// Project belongs to a workspace and optionally to a client.
type Project struct {
	ID          int64  `json:"id"`
	WorkspaceID int64  `json:"workspace_id"`
	ClientID    *int64 `json:"client_id"`
	Name        string `json:"name"`
	Active      bool   `json:"active"`
	Private     bool   `json:"is_private"`
	Billable    bool   `json:"billable"`
	Color       string `json:"color"`
}

// Task belongs to a project and its workspace. Tasks are only available on
// paid Toggl plans.
type Task struct {
	ID               int64  `json:"id"`
	WorkspaceID      int64  `json:"workspace_id"`
	ProjectID        int64  `json:"project_id"`
	Name             string `json:"name"`
	Active           bool   `json:"active"`
	EstimatedSeconds int64  `json:"estimated_seconds"`
}
