package variables

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Variables is a normalized variables bag. Leaves are strings, containers
// are map[string]any and []any. Any key may be missing.
type Variables map[string]any

// Get follows path through nested objects and arrays. Array segments are
// decimal indices.
func (v Variables) Get(path ...string) (any, bool) {
	var current any = map[string]any(v)
	for _, segment := range path {
		switch node := current.(type) {
		case map[string]any:
			next, ok := node[segment]
			if !ok {
				return nil, false
			}
			current = next
		case Variables:
			next, ok := node[segment]
			if !ok {
				return nil, false
			}
			current = next
		case []any:
			idx, err := strconv.Atoi(segment)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			current = node[idx]
		default:
			return nil, false
		}
	}
	return current, true
}

// String returns the text leaf at path. The second result is false when the
// leaf is absent or not text.
func (v Variables) String(path ...string) (string, bool) {
	value, ok := v.Get(path...)
	if !ok {
		return "", false
	}
	text, ok := value.(string)
	return text, ok
}

// StringOr returns the text leaf at path or fallback when it is absent.
func (v Variables) StringOr(fallback string, path ...string) string {
	if text, ok := v.String(path...); ok {
		return text
	}
	return fallback
}

// Lookup is Get with a dotted path, e.g. "items.0.id".
func (v Variables) Lookup(dotted string) (any, bool) {
	dotted = strings.Trim(dotted, ".")
	if dotted == "" {
		return map[string]any(v), true
	}
	return v.Get(strings.Split(dotted, ".")...)
}

// Keys returns the top-level keys in sorted order.
func (v Variables) Keys() []string {
	return sortedKeys(v)
}

// Decode copies the bag into T, typically a struct whose fields are *string,
// nested structs and slices mirroring the received shape.
func Decode[T any](v Variables) (T, error) {
	var out T
	data, err := json.Marshal(v)
	if err != nil {
		return out, fmt.Errorf("variables: encode bag: %w", err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("variables: decode bag: %w", err)
	}
	return out, nil
}

func sortedKeys[M ~map[string]any](payload M) []string {
	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
