package toggl

import "context"

// GetProjects returns every project visible to the authenticated user.
func (s *Session) GetProjects(ctx context.Context) ([]Project, error) {
	data, err := s.get(ctx, epProjects, nil)
	if err != nil {
		return nil, err
	}
	v, err := decodeJSON(data)
	if err != nil {
		return nil, err
	}
	return decodeListInto[Project](v)
}

// GetWorkspaceProjects returns all projects of one workspace.
func (s *Session) GetWorkspaceProjects(ctx context.Context, workspaceID any) ([]Project, error) {
	wid, err := toID("workspace_id", workspaceID)
	if err != nil {
		return nil, err
	}
	data, err := s.get(ctx, epWorkspaceProjects(wid), nil)
	if err != nil {
		return nil, err
	}
	v, err := decodeJSON(data)
	if err != nil {
		return nil, err
	}
	return decodeListInto[Project](v)
}

// GetProject returns one project by id, or nil when the API reports none.
func (s *Session) GetProject(ctx context.Context, workspaceID, projectID any) (*Project, error) {
	wid, err := toID("workspace_id", workspaceID)
	if err != nil {
		return nil, err
	}
	pid, err := toID("project_id", projectID)
	if err != nil {
		return nil, err
	}
	data, err := s.get(ctx, epWorkspaceProject(wid, pid), nil)
	if err != nil {
		return nil, err
	}
	v, err := decodeJSON(data)
	if err != nil {
		return nil, err
	}
	return decodeInto[Project](v)
}
