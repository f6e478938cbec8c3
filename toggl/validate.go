package toggl

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// toID coerces a caller-supplied identifier to an int64. Integer kinds,
// floats (truncated), numeric strings and json.Number are accepted; anything
// else is a ValidationError.
func toID(field string, v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint64:
		return int64(n), nil
	case float32:
		return int64(n), nil
	case float64:
		return int64(n), nil
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
	case string:
		if i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64); err == nil {
			return i, nil
		}
	}
	return 0, invalidInputf("%s: %v is not an integer id", field, v)
}

var errNotInteger = errors.New("must be an integer")

// isInteger is a field rule for values that must already be integers.
// Integral JSON numbers decode as float64 and pass; strings do not.
func isInteger(v any) error {
	switch n := v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return nil
	case float64:
		if n == math.Trunc(n) {
			return nil
		}
	case float32:
		if float64(n) == math.Trunc(float64(n)) {
			return nil
		}
	case json.Number:
		if _, err := n.Int64(); err == nil {
			return nil
		}
	}
	return errNotInteger
}

// validateEntryFields enforces the identifiers an entry update requires.
func validateEntryFields(fields map[string]any) error {
	err := validation.Validate(fields, validation.Map(
		validation.Key("id", validation.Required, validation.By(isInteger)),
		validation.Key("workspace_id", validation.Required, validation.By(isInteger)),
	).AllowExtraKeys())
	if err != nil {
		return &ValidationError{Err: err}
	}
	return nil
}

// requireName rejects empty resource names before any call is made.
func requireName(name string) error {
	if err := validation.Validate(name, validation.Required); err != nil {
		return &ValidationError{Err: errors.New("name: " + err.Error())}
	}
	return nil
}
