package toggl

import "fmt"

// DefaultBaseURL is the production Toggl Track API host.
const DefaultBaseURL = "https://api.track.toggl.com"

// Fixed endpoints of the Track API v9. Report endpoints are unimplemented
// upstream and deliberately absent here.
const (
	epClients          = "/api/v9/me/clients"
	epCurrentTimeEntry = "/api/v9/me/time_entries/current"
	epProjects         = "/api/v9/me/projects"
	epWorkspaces       = "/api/v9/me/workspaces"
)

// Workspace-scoped endpoint templates, resolved by substitution at call time.

func epTimeEntries(wid int64) string {
	return fmt.Sprintf("/api/v9/workspaces/%d/time_entries", wid)
}

func epTimeEntry(wid, id int64) string {
	return fmt.Sprintf("/api/v9/workspaces/%d/time_entries/%d", wid, id)
}

func epStopTimeEntry(wid, id int64) string {
	return fmt.Sprintf("/api/v9/workspaces/%d/time_entries/%d/stop", wid, id)
}

func epWorkspaceClients(wid int64) string {
	return fmt.Sprintf("/api/v9/workspaces/%d/clients", wid)
}

func epWorkspaceClient(wid, id int64) string {
	return fmt.Sprintf("/api/v9/workspaces/%d/clients/%d", wid, id)
}

func epWorkspaceProjects(wid int64) string {
	return fmt.Sprintf("/api/v9/workspaces/%d/projects", wid)
}

func epWorkspaceProject(wid, pid int64) string {
	return fmt.Sprintf("/api/v9/workspaces/%d/projects/%d", wid, pid)
}

func epProjectTasks(wid, pid int64) string {
	return fmt.Sprintf("/api/v9/workspaces/%d/projects/%d/tasks", wid, pid)
}
