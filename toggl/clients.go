package toggl

import (
	"context"
	"net/http"
)

// GetClients returns every client visible to the authenticated user.
func (s *Session) GetClients(ctx context.Context) ([]Client, error) {
	data, err := s.get(ctx, epClients, nil)
	if err != nil {
		return nil, err
	}
	v, err := decodeJSON(data)
	if err != nil {
		return nil, err
	}
	return decodeListInto[Client](v)
}

// FindClient returns the first client matching the given name or id, in
// server order, or nil when none matches. Matching is exact; the id wins
// when both are given. Supplying neither is a ValidationError.
func (s *Session) FindClient(ctx context.Context, name string, id any) (*Client, error) {
	if name == "" && id == nil {
		return nil, invalidInputf("a client name or id is required")
	}
	var want int64
	if id != nil {
		var err error
		if want, err = toID("client_id", id); err != nil {
			return nil, err
		}
	}
	clients, err := s.GetClients(ctx)
	if err != nil {
		return nil, err
	}
	for i := range clients {
		if id != nil {
			if clients[i].ID == want {
				return &clients[i], nil
			}
		} else if clients[i].Name == name {
			return &clients[i], nil
		}
	}
	return nil, nil
}

// CreateClient creates a client in the workspace.
func (s *Session) CreateClient(ctx context.Context, name string, workspaceID any, notes string) (*Client, error) {
	if err := requireName(name); err != nil {
		return nil, err
	}
	wid, err := toID("workspace_id", workspaceID)
	if err != nil {
		return nil, err
	}
	body := map[string]any{
		"name":  name,
		"wid":   wid,
		"notes": notes,
	}
	data, _, err := s.mutate(ctx, epWorkspaceClients(wid), http.MethodPost, body)
	if err != nil {
		return nil, err
	}
	v, err := decodeJSON(data)
	if err != nil {
		return nil, err
	}
	return decodeInto[Client](v)
}

// UpdateClient updates a client's name and notes. All three payload fields
// are sent every time: the API treats an omitted optional field as unset,
// not unchanged, so callers must pass the current values they want kept.
func (s *Session) UpdateClient(ctx context.Context, workspaceID, clientID any, name, notes string) (*Client, error) {
	wid, err := toID("workspace_id", workspaceID)
	if err != nil {
		return nil, err
	}
	id, err := toID("client_id", clientID)
	if err != nil {
		return nil, err
	}
	body := map[string]any{
		"name":  name,
		"notes": notes,
		"wid":   wid,
	}
	data, _, err := s.mutate(ctx, epWorkspaceClient(wid, id), http.MethodPut, body)
	if err != nil {
		return nil, err
	}
	v, err := decodeJSON(data)
	if err != nil {
		return nil, err
	}
	return decodeInto[Client](v)
}

// DeleteClient deletes a client and returns the HTTP status code.
func (s *Session) DeleteClient(ctx context.Context, workspaceID, clientID any) (int, error) {
	wid, err := toID("workspace_id", workspaceID)
	if err != nil {
		return 0, err
	}
	id, err := toID("client_id", clientID)
	if err != nil {
		return 0, err
	}
	_, status, err := s.mutate(ctx, epWorkspaceClient(wid, id), http.MethodDelete, nil)
	return status, err
}
