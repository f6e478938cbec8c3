package toggl

import (
	"context"
	"net/http"
)

// GetProjectTasks returns all tasks of a project. Tasks require a paid
// Toggl plan; free workspaces answer with an HTTPError.
func (s *Session) GetProjectTasks(ctx context.Context, workspaceID, projectID any) ([]Task, error) {
	wid, err := toID("workspace_id", workspaceID)
	if err != nil {
		return nil, err
	}
	pid, err := toID("project_id", projectID)
	if err != nil {
		return nil, err
	}
	data, err := s.get(ctx, epProjectTasks(wid, pid), nil)
	if err != nil {
		return nil, err
	}
	v, err := decodeJSON(data)
	if err != nil {
		return nil, err
	}
	return decodeListInto[Task](v)
}

// TaskOptions carries the optional parameters of CreateTask.
type TaskOptions struct {
	// Active defaults to true when nil.
	Active           *bool
	EstimatedSeconds int64
}

// CreateTask creates a task under the project.
func (s *Session) CreateTask(ctx context.Context, name string, workspaceID, projectID any, opts *TaskOptions) (*Task, error) {
	if err := requireName(name); err != nil {
		return nil, err
	}
	wid, err := toID("workspace_id", workspaceID)
	if err != nil {
		return nil, err
	}
	pid, err := toID("project_id", projectID)
	if err != nil {
		return nil, err
	}
	if opts == nil {
		opts = &TaskOptions{}
	}
	active := true
	if opts.Active != nil {
		active = *opts.Active
	}
	body := map[string]any{
		"name":              name,
		"workspace_id":      wid,
		"project_id":        pid,
		"active":            active,
		"estimated_seconds": opts.EstimatedSeconds,
	}
	data, _, err := s.mutate(ctx, epProjectTasks(wid, pid), http.MethodPost, body)
	if err != nil {
		return nil, err
	}
	v, err := decodeJSON(data)
	if err != nil {
		return nil, err
	}
	return decodeInto[Task](v)
}
