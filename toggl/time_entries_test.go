package toggl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// echoEntry answers any mutating call with a minimal entry object.
func echoEntry(w http.ResponseWriter) {
	fmt.Fprint(w, `{"id": 42, "workspace_id": 10, "duration": 7200, "tag_ids": null, "start": "2024-01-15T07:00:00+00:00"}`)
}

func TestStartTimeEntry(t *testing.T) {
	fixed := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)

	newStarted := func(t *testing.T, log *requestLog) *Session {
		s := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
			log.record(r)
			echoEntry(w)
		})
		s.now = func() time.Time { return fixed }
		return s
	}

	t.Run("payload without tag", func(t *testing.T) {
		log := &requestLog{}
		s := newStarted(t, log)

		entry, err := s.StartTimeEntry(context.Background(), "Dev work", 10, nil)
		require.NoError(t, err)
		require.NotNil(t, entry)

		req := log.last(t)
		assert.Equal(t, http.MethodPost, req.Method)
		assert.Equal(t, "/api/v9/workspaces/10/time_entries", req.Path)

		var body map[string]any
		require.NoError(t, json.Unmarshal(req.Body, &body))
		assert.Equal(t, []any{}, body["tags"])
		assert.Equal(t, "2024-01-15T09:30:00Z", body["start"])
		assert.Equal(t, float64(-fixed.Unix()), body["duration"])
		assert.Equal(t, float64(10), body["workspace_id"])
		assert.Nil(t, body["project_id"])
		assert.Equal(t, "Dev work", body["description"])
		assert.Equal(t, testUserAgent, body["created_with"])
	})

	t.Run("single tag and project", func(t *testing.T) {
		log := &requestLog{}
		s := newStarted(t, log)

		_, err := s.StartTimeEntry(context.Background(), "Dev work", "10", &StartOptions{ProjectID: 20, Tag: "dev"})
		require.NoError(t, err)

		var body map[string]any
		require.NoError(t, json.Unmarshal(log.last(t).Body, &body))
		assert.Equal(t, []any{"dev"}, body["tags"])
		assert.Equal(t, float64(20), body["project_id"])
		assert.Equal(t, float64(10), body["workspace_id"])
	})

	t.Run("non-integer workspace id fails before any call", func(t *testing.T) {
		log := &requestLog{}
		s := newStarted(t, log)

		_, err := s.StartTimeEntry(context.Background(), "x", "not-a-number", nil)
		var vErr *ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Zero(t, log.count())
	})
}

func TestCurrentTimeEntryAbsent(t *testing.T) {
	s := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `null`)
	})

	entry, err := s.CurrentTimeEntry(context.Background())
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestStopTimeEntry(t *testing.T) {
	t.Run("nothing running issues no mutating call", func(t *testing.T) {
		log := &requestLog{}
		s := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
			log.record(r)
			fmt.Fprint(w, `null`)
		})

		entry, err := s.StopTimeEntry(context.Background(), nil)
		require.NoError(t, err)
		assert.Nil(t, entry)

		require.Equal(t, 1, log.count())
		assert.Equal(t, http.MethodGet, log.last(t).Method)
	})

	t.Run("running entry is patched", func(t *testing.T) {
		log := &requestLog{}
		s := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
			log.record(r)
			if r.Method == http.MethodGet {
				fmt.Fprint(w, `{"id": 42, "workspace_id": 10, "duration": -1705309200}`)
				return
			}
			echoEntry(w)
		})

		entry, err := s.StopTimeEntry(context.Background(), nil)
		require.NoError(t, err)
		require.NotNil(t, entry)

		req := log.last(t)
		assert.Equal(t, http.MethodPatch, req.Method)
		assert.Equal(t, "/api/v9/workspaces/10/time_entries/42/stop", req.Path)
	})

	t.Run("supplied state skips the lookup", func(t *testing.T) {
		log := &requestLog{}
		s := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
			log.record(r)
			echoEntry(w)
		})

		_, err := s.StopTimeEntry(context.Background(), &TimeEntry{ID: 7, WorkspaceID: 5, Duration: -1})
		require.NoError(t, err)

		require.Equal(t, 1, log.count())
		assert.Equal(t, http.MethodPatch, log.last(t).Method)
		assert.Equal(t, "/api/v9/workspaces/5/time_entries/7/stop", log.last(t).Path)
	})
}

func TestCreateTimeEntry(t *testing.T) {
	opts := func() *CreateEntryOptions {
		return &CreateEntryOptions{ProjectID: 20, Year: 2024, Month: 1, Day: 15, Hour: 9}
	}

	t.Run("payload with default hour diff", func(t *testing.T) {
		log := &requestLog{}
		s := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
			log.record(r)
			echoEntry(w)
		})

		_, err := s.CreateTimeEntry(context.Background(), 2, 10, opts())
		require.NoError(t, err)

		req := log.last(t)
		assert.Equal(t, "/api/v9/workspaces/10/time_entries", req.Path)

		var body map[string]any
		require.NoError(t, json.Unmarshal(req.Body, &body))
		assert.Equal(t, map[string]any{
			"start":        "2024-01-15T07:00:00.000Z",
			"duration":     float64(7200),
			"pid":          float64(20),
			"billable":     false,
			"created_with": testUserAgent,
		}, body)
	})

	t.Run("negative hour rolls into previous day", func(t *testing.T) {
		log := &requestLog{}
		s := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
			log.record(r)
			echoEntry(w)
		})

		o := opts()
		o.Hour = 1
		_, err := s.CreateTimeEntry(context.Background(), 1, 10, o)
		require.NoError(t, err)

		var body map[string]any
		require.NoError(t, json.Unmarshal(log.last(t).Body, &body))
		assert.Equal(t, "2024-01-14T23:00:00.000Z", body["start"])
	})

	t.Run("explicit hour diff", func(t *testing.T) {
		log := &requestLog{}
		s := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
			log.record(r)
			echoEntry(w)
		})

		diff := 0
		o := opts()
		o.HourDiff = &diff
		o.Description = "Planning"
		o.TaskID = 99
		_, err := s.CreateTimeEntry(context.Background(), 1.5, 10, o)
		require.NoError(t, err)

		var body map[string]any
		require.NoError(t, json.Unmarshal(log.last(t).Body, &body))
		assert.Equal(t, "2024-01-15T09:00:00.000Z", body["start"])
		assert.Equal(t, float64(5400), body["duration"])
		assert.Equal(t, "Planning", body["description"])
		assert.Equal(t, float64(99), body["tid"])
	})

	t.Run("missing project fails before any call", func(t *testing.T) {
		log := &requestLog{}
		s := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
			log.record(r)
			echoEntry(w)
		})

		_, err := s.CreateTimeEntry(context.Background(), 2, 10, &CreateEntryOptions{})
		var vErr *ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Zero(t, log.count())
	})
}

func TestCreateTimeEntryResolvesProjectByName(t *testing.T) {
	log := &requestLog{}
	s := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		log.record(r)
		switch r.URL.Path {
		case "/api/v9/me/clients":
			fmt.Fprint(w, `[{"id": 3, "name": "ACME", "wid": 10}]`)
		case "/api/v9/workspaces/10/projects":
			fmt.Fprint(w, `[
				{"id": 21, "name": "Website", "workspace_id": 10},
				{"id": 20, "name": "Website", "workspace_id": 10, "client_id": 3}
			]`)
		default:
			echoEntry(w)
		}
	})

	t.Run("client name narrows the match", func(t *testing.T) {
		_, err := s.CreateTimeEntry(context.Background(), 1, 10, &CreateEntryOptions{
			ProjectName: "Website",
			ClientName:  "ACME",
			Year:        2024, Month: 1, Day: 15, Hour: 9,
		})
		require.NoError(t, err)

		var body map[string]any
		require.NoError(t, json.Unmarshal(log.last(t).Body, &body))
		assert.Equal(t, float64(20), body["pid"])
	})

	t.Run("name alone takes the first match", func(t *testing.T) {
		_, err := s.CreateTimeEntry(context.Background(), 1, 10, &CreateEntryOptions{
			ProjectName: "Website",
			Year:        2024, Month: 1, Day: 15, Hour: 9,
		})
		require.NoError(t, err)

		var body map[string]any
		require.NoError(t, json.Unmarshal(log.last(t).Body, &body))
		assert.Equal(t, float64(21), body["pid"])
	})

	t.Run("unknown client fails", func(t *testing.T) {
		_, err := s.CreateTimeEntry(context.Background(), 1, 10, &CreateEntryOptions{
			ProjectName: "Website",
			ClientName:  "Nobody",
		})
		var vErr *ValidationError
		assert.True(t, errors.As(err, &vErr))
	})
}

func TestUpdateTimeEntry(t *testing.T) {
	t.Run("missing id fails before any call", func(t *testing.T) {
		log := &requestLog{}
		s := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
			log.record(r)
			echoEntry(w)
		})

		_, err := s.UpdateTimeEntry(context.Background(), map[string]any{"workspace_id": 5})
		var vErr *ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Zero(t, log.count())
	})

	t.Run("string id fails", func(t *testing.T) {
		log := &requestLog{}
		s := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
			log.record(r)
			echoEntry(w)
		})

		_, err := s.UpdateTimeEntry(context.Background(), map[string]any{"id": "7", "workspace_id": 5})
		var vErr *ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Zero(t, log.count())
	})

	t.Run("puts the full object", func(t *testing.T) {
		log := &requestLog{}
		s := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
			log.record(r)
			echoEntry(w)
		})

		fields := map[string]any{"id": 7, "workspace_id": 5, "description": "edited", "tag_ids": []any{}}
		_, err := s.UpdateTimeEntry(context.Background(), fields)
		require.NoError(t, err)

		req := log.last(t)
		assert.Equal(t, http.MethodPut, req.Method)
		assert.Equal(t, "/api/v9/workspaces/5/time_entries/7", req.Path)

		var body map[string]any
		require.NoError(t, json.Unmarshal(req.Body, &body))
		assert.Equal(t, "edited", body["description"])
		assert.Equal(t, []any{}, body["tag_ids"])
	})

	t.Run("integral JSON numbers are accepted", func(t *testing.T) {
		s := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
			echoEntry(w)
		})

		_, err := s.UpdateTimeEntry(context.Background(), map[string]any{"id": float64(7), "workspace_id": float64(5)})
		assert.NoError(t, err)
	})
}

func TestFieldsRoundTripsThroughUpdate(t *testing.T) {
	log := &requestLog{}
	s := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		log.record(r)
		echoEntry(w)
	})

	entry := &TimeEntry{ID: 7, WorkspaceID: 5, Description: "fetched"}
	fields, err := entry.Fields()
	require.NoError(t, err)
	assert.Equal(t, []any{}, fields["tags"])
	assert.Equal(t, []any{}, fields["tag_ids"])

	_, err = s.UpdateTimeEntry(context.Background(), fields)
	require.NoError(t, err)
	assert.Equal(t, "/api/v9/workspaces/5/time_entries/7", log.last(t).Path)
}

func TestDeleteTimeEntry(t *testing.T) {
	log := &requestLog{}
	s := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		log.record(r)
		w.WriteHeader(http.StatusOK)
	})

	status, err := s.DeleteTimeEntry(context.Background(), 10, 42)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)

	req := log.last(t)
	assert.Equal(t, http.MethodDelete, req.Method)
	assert.Equal(t, "/api/v9/workspaces/10/time_entries/42", req.Path)
}

func TestListTimeEntries(t *testing.T) {
	log := &requestLog{}
	s := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		log.record(r)
		fmt.Fprint(w, `[{"id": 1, "workspace_id": 10, "duration": 60}]`)
	})

	from := time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	entries, err := s.ListTimeEntries(context.Background(), 10, &ListEntriesOptions{StartDate: from, EndDate: to})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(1), entries[0].ID)

	q := log.last(t).Query
	assert.Equal(t, "2024-01-14T00:00:00Z", q.Get("start_date"))
	assert.Equal(t, "2024-01-15T00:00:00Z", q.Get("end_date"))
	assert.Equal(t, testUserAgent, q.Get("user_agent"))
}

func TestGetTimeEntry(t *testing.T) {
	log := &requestLog{}
	s := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		log.record(r)
		echoEntry(w)
	})

	entry, err := s.GetTimeEntry(context.Background(), 10, 42)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, int64(42), entry.ID)
	assert.Equal(t, "/api/v9/workspaces/10/time_entries/42", log.last(t).Path)
}
