package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

var listKeys = []string{"items", "results", "data"}

// decodeItems accepts a bare JSON array or an object wrapping one under
// items, results or data. Anything else decodes to an empty list.
func decodeItems[T any](raw json.RawMessage) ([]T, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []T{}, nil
	}

	if raw[0] == '[' {
		var items []T
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("decode list: %w", err)
		}
		return items, nil
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return []T{}, nil
	}
	for _, key := range listKeys {
		inner := bytes.TrimSpace(wrapper[key])
		if len(inner) == 0 || inner[0] != '[' {
			continue
		}
		var items []T
		if err := json.Unmarshal(inner, &items); err != nil {
			return nil, fmt.Errorf("decode %s: %w", key, err)
		}
		return items, nil
	}
	return []T{}, nil
}

// unwrapList is the untyped counterpart of decodeItems.
func unwrapList(data any) []any {
	if list, ok := data.([]any); ok {
		return list
	}
	m, ok := data.(map[string]any)
	if !ok {
		return nil
	}
	for _, key := range listKeys {
		if list, ok := m[key].([]any); ok {
			return list
		}
	}
	return nil
}
