package toggl

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// StartOptions carries the optional parameters of StartTimeEntry.
type StartOptions struct {
	// ProjectID accepts any integer-convertible value; nil leaves the entry
	// without a project.
	ProjectID any

	// Tag, when non-empty, becomes the single element of the entry's tag
	// list. The list is otherwise empty, never null.
	Tag string
}

// StartTimeEntry starts a new entry running from now. The API reads a
// duration of -unixtime as "running since start".
func (s *Session) StartTimeEntry(ctx context.Context, description string, workspaceID any, opts *StartOptions) (*TimeEntry, error) {
	wid, err := toID("workspace_id", workspaceID)
	if err != nil {
		return nil, err
	}
	if opts == nil {
		opts = &StartOptions{}
	}
	var pid any
	if opts.ProjectID != nil {
		id, err := toID("project_id", opts.ProjectID)
		if err != nil {
			return nil, err
		}
		pid = id
	}
	tags := []string{}
	if opts.Tag != "" {
		tags = append(tags, opts.Tag)
	}

	now := s.now().UTC()
	body := map[string]any{
		"tags":         tags,
		"start":        now.Format(time.RFC3339),
		"duration":     -1 * now.Unix(),
		"workspace_id": wid,
		"project_id":   pid,
		"description":  description,
		"created_with": s.userAgent,
	}
	data, _, err := s.mutate(ctx, epTimeEntries(wid), http.MethodPost, body)
	if err != nil {
		return nil, err
	}
	v, err := decodeJSON(data)
	if err != nil {
		return nil, err
	}
	return decodeInto[TimeEntry](v)
}

// CurrentTimeEntry returns the running entry, or nil when nothing is being
// tracked. An absent entry is not an error.
func (s *Session) CurrentTimeEntry(ctx context.Context) (*TimeEntry, error) {
	data, err := s.get(ctx, epCurrentTimeEntry, nil)
	if err != nil {
		return nil, err
	}
	v, err := decodeJSON(data)
	if err != nil {
		return nil, err
	}
	return decodeInto[TimeEntry](v)
}

// StopTimeEntry stops the running entry and returns its stopped state. A
// previously fetched entry may be passed to skip the current-entry lookup;
// pass nil to resolve it here. When nothing is running the call returns nil
// without touching the stop endpoint.
func (s *Session) StopTimeEntry(ctx context.Context, entry *TimeEntry) (*TimeEntry, error) {
	if entry == nil {
		var err error
		entry, err = s.CurrentTimeEntry(ctx)
		if err != nil {
			return nil, err
		}
	}
	if entry == nil {
		return nil, nil
	}
	data, _, err := s.mutate(ctx, epStopTimeEntry(entry.WorkspaceID, entry.ID), http.MethodPatch, nil)
	if err != nil {
		return nil, err
	}
	v, err := decodeJSON(data)
	if err != nil {
		return nil, err
	}
	return decodeInto[TimeEntry](v)
}

// CreateEntryOptions carries the optional parameters of CreateTimeEntry.
// Exactly one of ProjectID and ProjectName must identify a project.
type CreateEntryOptions struct {
	Description string

	// ProjectID takes precedence over ProjectName when both are set.
	ProjectID any

	// ProjectName is matched exactly against the workspace's projects.
	// ClientName, when set, narrows the match to that client's projects.
	ProjectName string
	ClientName  string

	// TaskID attaches a task (paid Toggl plans only).
	TaskID any

	// Zero date/time fields default to the current local time, field by
	// field.
	Year, Month, Day, Hour int

	Billable bool

	// HourDiff is added to Hour before the start is computed and defaults
	// to -2 when nil. The offset is inherited from the original client and
	// looks like a timezone workaround; the sum may leave the 0-23 range,
	// in which case the start rolls into the adjacent day.
	HourDiff *int
}

// CreateTimeEntry creates a completed entry lasting hourDuration hours.
func (s *Session) CreateTimeEntry(ctx context.Context, hourDuration float64, workspaceID any, opts *CreateEntryOptions) (*TimeEntry, error) {
	wid, err := toID("workspace_id", workspaceID)
	if err != nil {
		return nil, err
	}
	if opts == nil {
		opts = &CreateEntryOptions{}
	}

	var pid int64
	switch {
	case opts.ProjectID != nil:
		pid, err = toID("project_id", opts.ProjectID)
	case opts.ProjectName != "":
		pid, err = s.resolveProjectID(ctx, wid, opts.ClientName, opts.ProjectName)
	default:
		err = invalidInputf("a project id or a project name is required")
	}
	if err != nil {
		return nil, err
	}

	now := s.now()
	year, month, day, hour := opts.Year, opts.Month, opts.Day, opts.Hour
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}
	if day == 0 {
		day = now.Day()
	}
	if hour == 0 {
		hour = now.Hour()
	}
	hourDiff := -2
	if opts.HourDiff != nil {
		hourDiff = *opts.HourDiff
	}
	// time.Date normalizes an out-of-range hour into the adjacent day.
	start := time.Date(year, time.Month(month), day, hour+hourDiff, 0, 0, 0, time.UTC)

	body := map[string]any{
		"start":        start.Format("2006-01-02T15:04:05") + ".000Z",
		"duration":     int64(hourDuration * 3600),
		"pid":          pid,
		"billable":     opts.Billable,
		"created_with": s.userAgent,
	}
	if opts.Description != "" {
		body["description"] = opts.Description
	}
	if opts.TaskID != nil {
		tid, err := toID("task_id", opts.TaskID)
		if err != nil {
			return nil, err
		}
		body["tid"] = tid
	}

	data, _, err := s.mutate(ctx, epTimeEntries(wid), http.MethodPost, body)
	if err != nil {
		return nil, err
	}
	v, err := decodeJSON(data)
	if err != nil {
		return nil, err
	}
	return decodeInto[TimeEntry](v)
}

// resolveProjectID finds a project by exact name within the workspace,
// optionally requiring it to belong to the named client.
func (s *Session) resolveProjectID(ctx context.Context, wid int64, clientName, projectName string) (int64, error) {
	var clientID *int64
	if clientName != "" {
		cl, err := s.FindClient(ctx, clientName, nil)
		if err != nil {
			return 0, err
		}
		if cl == nil {
			return 0, invalidInputf("client %q not found", clientName)
		}
		clientID = &cl.ID
	}
	projects, err := s.GetWorkspaceProjects(ctx, wid)
	if err != nil {
		return 0, err
	}
	for _, p := range projects {
		if p.Name != projectName {
			continue
		}
		if clientID != nil && (p.ClientID == nil || *p.ClientID != *clientID) {
			continue
		}
		return p.ID, nil
	}
	return 0, invalidInputf("project %q not found in workspace %d", projectName, wid)
}

// UpdateTimeEntry PUTs the full field map back to the API. The map must
// already contain integer id and workspace_id values; pass a fetched entry
// through TimeEntry.Fields to round-trip it. Because the API treats omitted
// optional fields as unset rather than unchanged, the map should carry
// current values for everything the caller wants to keep.
func (s *Session) UpdateTimeEntry(ctx context.Context, fields map[string]any) (*TimeEntry, error) {
	if err := validateEntryFields(fields); err != nil {
		return nil, err
	}
	id, _ := toID("id", fields["id"])
	wid, _ := toID("workspace_id", fields["workspace_id"])

	data, _, err := s.mutate(ctx, epTimeEntry(wid, id), http.MethodPut, fields)
	if err != nil {
		return nil, err
	}
	v, err := decodeJSON(data)
	if err != nil {
		return nil, err
	}
	return decodeInto[TimeEntry](v)
}

// DeleteTimeEntry deletes an entry and returns the HTTP status code; DELETE
// responses carry no body.
func (s *Session) DeleteTimeEntry(ctx context.Context, workspaceID, entryID any) (int, error) {
	wid, err := toID("workspace_id", workspaceID)
	if err != nil {
		return 0, err
	}
	id, err := toID("id", entryID)
	if err != nil {
		return 0, err
	}
	_, status, err := s.mutate(ctx, epTimeEntry(wid, id), http.MethodDelete, nil)
	return status, err
}

// ListEntriesOptions bounds ListTimeEntries. Zero times are omitted.
type ListEntriesOptions struct {
	StartDate time.Time
	EndDate   time.Time
}

// ListTimeEntries returns the workspace's entries, optionally bounded to
// [StartDate, EndDate].
func (s *Session) ListTimeEntries(ctx context.Context, workspaceID any, opts *ListEntriesOptions) ([]TimeEntry, error) {
	wid, err := toID("workspace_id", workspaceID)
	if err != nil {
		return nil, err
	}
	var params url.Values
	if opts != nil {
		params = url.Values{}
		if !opts.StartDate.IsZero() {
			params.Set("start_date", opts.StartDate.Format(time.RFC3339))
		}
		if !opts.EndDate.IsZero() {
			params.Set("end_date", opts.EndDate.Format(time.RFC3339))
		}
	}
	data, err := s.get(ctx, epTimeEntries(wid), params)
	if err != nil {
		return nil, err
	}
	v, err := decodeJSON(data)
	if err != nil {
		return nil, err
	}
	return decodeListInto[TimeEntry](v)
}

// GetTimeEntry returns one entry by id, or nil when the API reports none.
func (s *Session) GetTimeEntry(ctx context.Context, workspaceID, entryID any) (*TimeEntry, error) {
	wid, err := toID("workspace_id", workspaceID)
	if err != nil {
		return nil, err
	}
	id, err := toID("id", entryID)
	if err != nil {
		return nil, err
	}
	data, err := s.get(ctx, epTimeEntry(wid, id), nil)
	if err != nil {
		return nil, err
	}
	v, err := decodeJSON(data)
	if err != nil {
		return nil, err
	}
	return decodeInto[TimeEntry](v)
}
