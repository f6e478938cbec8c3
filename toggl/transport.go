package toggl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// Error bodies are truncated so a misbehaving proxy cannot balloon an
// HTTPError.
const maxErrorBody = 4096

// get issues a GET to path. A non-nil params set is URL-encoded onto the
// path, with the session user agent added under user_agent unless the
// caller supplied one; a nil params set issues a bare GET.
func (s *Session) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := s.baseURL + path
	if params != nil {
		if params.Get("user_agent") == "" {
			params.Set("user_agent", s.userAgent)
		}
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	data, _, err := s.do(req)
	return data, err
}

// mutate issues a POST, PUT, PATCH or DELETE with an optional JSON body.
// DELETE responses carry no JSON, so for DELETE only the status code is
// meaningful to the caller.
func (s *Session) mutate(ctx context.Context, path, method string, body any) ([]byte, int, error) {
	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("encode request body: %w", err)
		}
		payload = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, payload)
	if err != nil {
		return nil, 0, err
	}
	return s.do(req)
}

func (s *Session) do(req *http.Request) ([]byte, int, error) {
	for k, v := range s.headers {
		req.Header.Set(k, v)
	}
	req.Header.Set("User-Agent", s.userAgent)

	start := time.Now()
	resp, err := s.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response: %w", err)
	}
	s.log.Debug("toggl request",
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("dur", time.Since(start)),
	)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body := data
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return nil, resp.StatusCode, &HTTPError{Status: resp.StatusCode, Body: string(body)}
	}
	return data, resp.StatusCode, nil
}
