package toggl

import "context"

// GetWorkspaces returns every workspace visible to the authenticated user.
func (s *Session) GetWorkspaces(ctx context.Context) ([]Workspace, error) {
	data, err := s.get(ctx, epWorkspaces, nil)
	if err != nil {
		return nil, err
	}
	v, err := decodeJSON(data)
	if err != nil {
		return nil, err
	}
	return decodeListInto[Workspace](v)
}

// FindWorkspace returns the first workspace matching the given name or id,
// in server order, or nil when none matches. Matching is exact; the id wins
// when both are given. Supplying neither is a ValidationError.
func (s *Session) FindWorkspace(ctx context.Context, name string, id any) (*Workspace, error) {
	if name == "" && id == nil {
		return nil, invalidInputf("a workspace name or id is required")
	}
	var want int64
	if id != nil {
		var err error
		if want, err = toID("workspace_id", id); err != nil {
			return nil, err
		}
	}
	workspaces, err := s.GetWorkspaces(ctx)
	if err != nil {
		return nil, err
	}
	for i := range workspaces {
		if id != nil {
			if workspaces[i].ID == want {
				return &workspaces[i], nil
			}
		} else if workspaces[i].Name == name {
			return &workspaces[i], nil
		}
	}
	return nil, nil
}
