package toggl

import "fmt"

// ValidationError reports caller-supplied parameters that are missing or of
// the wrong type. It is always returned before any network call is made, so
// the caller can correct the input and retry.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string { return "toggl: invalid input: " + e.Err.Error() }

func (e *ValidationError) Unwrap() error { return e.Err }

// HTTPError is a non-2xx response from the API. The body is passed through
// unmodified; the library performs no retries, so retry policy is up to the
// caller.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("toggl: unexpected status %d: %s", e.Status, e.Body)
}

// ParseError means a response body was not valid JSON. It usually points at
// an API version mismatch or an interfering proxy rather than anything the
// caller can recover from.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return "toggl: invalid JSON response: " + e.Err.Error() }

func (e *ParseError) Unwrap() error { return e.Err }

func invalidInputf(format string, args ...any) error {
	return &ValidationError{Err: fmt.Errorf(format, args...)}
}
