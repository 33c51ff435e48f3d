// Package qs decodes and encodes nested query strings using bracket
// notation: a[b]=1, a[0][id]=2 and a[]=3. Repeated plain keys become arrays.
// Values are always text, which is why templates receive every variable as a
// string.
package qs

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

const (
	// DefaultDepth is the number of bracket segments parsed per key. Deeper
	// segments are kept as a single literal key.
	DefaultDepth = 5
	// DefaultArrayLimit is the highest index turned into an array slot.
	// Larger indices are kept as object keys.
	DefaultArrayLimit = 20
	// DefaultParameterLimit caps the number of values decoded.
	DefaultParameterLimit = 1000
)

// ErrTooManyParameters is returned when a query exceeds the parameter limit.
var ErrTooManyParameters = errors.New("qs: too many parameters")

// Options tunes Decode limits. Zero values use the defaults.
type Options struct {
	Depth          int
	ArrayLimit     int
	ParameterLimit int
	// Skip filters out keys before decoding, e.g. reserved props keys.
	Skip func(key string) bool
}

func (o Options) withDefaults() Options {
	if o.Depth <= 0 {
		o.Depth = DefaultDepth
	}
	if o.ArrayLimit <= 0 {
		o.ArrayLimit = DefaultArrayLimit
	}
	if o.ParameterLimit <= 0 {
		o.ParameterLimit = DefaultParameterLimit
	}
	return o
}

// Decode turns values into nested maps, slices and strings.
func Decode(values url.Values) (map[string]any, error) {
	return DecodeWithOptions(values, Options{})
}

// DecodeString parses a raw query (without the leading "?") and decodes it.
func DecodeString(raw string) (map[string]any, error) {
	values, err := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	if err != nil {
		return nil, fmt.Errorf("qs: parse query: %w", err)
	}
	return Decode(values)
}

// DecodeWithOptions is Decode with explicit limits.
func DecodeWithOptions(values url.Values, opts Options) (map[string]any, error) {
	opts = opts.withDefaults()

	count := 0
	for _, list := range values {
		count += len(list)
	}
	if count > opts.ParameterLimit {
		return nil, ErrTooManyParameters
	}

	root := make(map[string]any)
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if opts.Skip != nil && opts.Skip(key) {
			continue
		}
		segments := splitKey(key, opts.Depth)
		if len(segments) == 0 {
			continue
		}
		for _, value := range values[key] {
			if err := assign(root, segments, value, key); err != nil {
				return nil, err
			}
		}
	}

	for key, child := range root {
		root[key] = finalize(child, opts.ArrayLimit)
	}
	return root, nil
}

// splitKey breaks "a[b][0][]" into ["a","b","0",""].
func splitKey(key string, depth int) []string {
	if key == "" {
		return nil
	}
	open := strings.IndexByte(key, '[')
	if open <= 0 {
		return []string{key}
	}
	segments := []string{key[:open]}
	rest := key[open:]
	for len(rest) > 0 && len(segments) <= depth {
		if rest[0] != '[' {
			break
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			break
		}
		segments = append(segments, rest[1:end])
		rest = rest[end+1:]
	}
	if rest != "" {
		segments = append(segments, rest)
	}
	return segments
}

// assign writes value at segments. Arrays are built as maps keyed by index
// and converted by finalize.
func assign(container map[string]any, segments []string, value, key string) error {
	name := segments[0]
	if name == "" {
		name = strconv.Itoa(nextIndex(container))
	}

	if len(segments) == 1 {
		existing, ok := container[name]
		if !ok {
			container[name] = value
			return nil
		}
		switch typed := existing.(type) {
		case string:
			container[name] = map[string]any{"0": typed, "1": value}
		case map[string]any:
			if !isIndexed(typed) {
				return fmt.Errorf("qs: conflicting values for %q", key)
			}
			typed[strconv.Itoa(nextIndex(typed))] = value
		}
		return nil
	}

	child, ok := container[name]
	if !ok {
		next := make(map[string]any)
		container[name] = next
		return assign(next, segments[1:], value, key)
	}
	nested, ok := child.(map[string]any)
	if !ok {
		return fmt.Errorf("qs: conflicting values for %q", key)
	}
	return assign(nested, segments[1:], value, key)
}

func nextIndex(container map[string]any) int {
	next := 0
	for key := range container {
		if idx, err := strconv.Atoi(key); err == nil && idx >= next {
			next = idx + 1
		}
	}
	return next
}

func isIndexed(container map[string]any) bool {
	for key := range container {
		if _, err := strconv.Atoi(key); err != nil {
			return false
		}
	}
	return true
}

func finalize(node any, limit int) any {
	container, ok := node.(map[string]any)
	if !ok {
		return node
	}
	for key, child := range container {
		container[key] = finalize(child, limit)
	}
	if len(container) == 0 {
		return container
	}

	indices := make([]int, 0, len(container))
	for key := range container {
		idx, err := strconv.Atoi(key)
		if err != nil || idx < 0 || idx > limit || strconv.Itoa(idx) != key {
			return container
		}
		indices = append(indices, idx)
	}
	sort.Ints(indices)
	list := make([]any, 0, len(indices))
	for _, idx := range indices {
		list = append(list, container[strconv.Itoa(idx)])
	}
	return list
}

// Encode flattens nested values into bracket notation. Nil values are
// omitted; scalars are formatted with fmt.
func Encode(payload map[string]any) url.Values {
	out := url.Values{}
	for key, value := range payload {
		encode(out, key, value)
	}
	return out
}

// EncodeString is Encode followed by url.Values.Encode.
func EncodeString(payload map[string]any) string {
	return Encode(payload).Encode()
}

func encode(out url.Values, prefix string, value any) {
	switch typed := value.(type) {
	case nil:
		return
	case map[string]any:
		for key, child := range typed {
			encode(out, prefix+"["+key+"]", child)
		}
	case []any:
		for idx, child := range typed {
			encode(out, prefix+"["+strconv.Itoa(idx)+"]", child)
		}
	case []string:
		for idx, child := range typed {
			encode(out, prefix+"["+strconv.Itoa(idx)+"]", child)
		}
	case string:
		out.Add(prefix, typed)
	default:
		out.Add(prefix, fmt.Sprint(typed))
	}
}
