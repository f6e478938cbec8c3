package toggl

import (
	"encoding/json"
	"time"

	"github.com/mitchellh/mapstructure"
)

// decodeJSON parses raw response bytes into a generic JSON value. The API
// returns tag_ids: null for entries without tags but rejects null for that
// field on write-back, so a null tag_ids on a top-level object is rewritten
// to an empty list, which makes round-tripping a fetched object through an
// update safe. Lists and all other shapes pass through untouched.
func decodeJSON(raw []byte) (any, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, &ParseError{Err: err}
	}
	if obj, ok := v.(map[string]any); ok {
		if ids, present := obj["tag_ids"]; present && ids == nil {
			obj["tag_ids"] = []any{}
		}
	}
	return v, nil
}

// decodeInto maps a decoded JSON object onto a typed record. A nil value
// (an absent resource, e.g. no running entry) yields a nil record.
func decodeInto[T any](v any) (*T, error) {
	if v == nil {
		return nil, nil
	}
	var out T
	if err := decodeValue(v, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// decodeListInto maps a decoded JSON list onto typed records.
func decodeListInto[T any](v any) ([]T, error) {
	if v == nil {
		return nil, nil
	}
	var out []T
	if err := decodeValue(v, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func decodeValue(v, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:    "json",
		Result:     out,
		DecodeHook: mapstructure.StringToTimeHookFunc(time.RFC3339),
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(v); err != nil {
		return &ParseError{Err: err}
	}
	return nil
}
