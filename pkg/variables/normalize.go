package variables

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/goliatone/go-flayyer/pkg/schema"
)

// Normalize walks raw alongside the received shape of s. The returned bag
// only holds strings, nils, map[string]any and []any. When some values do
// not fit, the bag is still returned together with an Issues error. Schema
// problems (function fields, non-object bags) return a *schema.FieldError
// and no bag.
func Normalize(s schema.Schema, raw map[string]any, opts ...Option) (Variables, error) {
	received, err := schema.Received(s)
	if err != nil {
		return nil, err
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	n := &normalizer{options: cfg}
	out := Variables{}
	if raw != nil {
		n.object(received, raw, "#", "", out)
	}
	if len(n.issues) > 0 {
		return out, n.issues
	}
	return out, nil
}

type normalizer struct {
	options
	issues Issues
}

func (n *normalizer) report(path, field, format string, args ...any) {
	n.issues = append(n.issues, Issue{Path: path, Field: field, Message: fmt.Sprintf(format, args...)})
}

// value returns the normalized value and whether it should be kept.
func (n *normalizer) value(shape schema.Schema, raw any, path, field string) (any, bool) {
	switch {
	case shape.Type == schema.TypeString:
		return n.leaf(raw, path, field)
	case shape.Type == schema.TypeNull:
		if raw != nil {
			n.report(path, field, "expected null, got %s", describe(raw))
			return nil, false
		}
		return nil, true
	case shape.Type == schema.TypeNever:
		if raw != nil {
			n.report(path, field, "field cannot be provided")
		}
		return nil, false
	case shape.IsObject():
		if raw == nil {
			return nil, false
		}
		payload, ok := raw.(map[string]any)
		if !ok {
			n.report(path, field, "expected object, got %s", describe(raw))
			return nil, false
		}
		out := make(map[string]any, len(payload))
		n.object(shape, payload, path, field, out)
		return out, true
	case shape.IsArray():
		if raw == nil {
			return nil, false
		}
		list, ok := raw.([]any)
		if !ok {
			n.report(path, field, "expected array, got %s", describe(raw))
			return nil, false
		}
		return n.array(shape, list, path, field), true
	default:
		return n.leaf(raw, path, field)
	}
}

func (n *normalizer) object(shape schema.Schema, payload map[string]any, path, field string, out map[string]any) {
	for _, name := range shape.PropertyNames() {
		raw, present := payload[name]
		if !present {
			continue
		}
		if value, keep := n.value(shape.Properties[name], raw, schema.JoinPointer(path, name), joinField(field, name)); keep {
			out[name] = value
		}
	}
	for _, name := range sortedKeys(payload) {
		if _, declared := shape.Properties[name]; declared {
			continue
		}
		childPath := schema.JoinPointer(path, name)
		childField := joinField(field, name)
		if shape.AdditionalProperties == nil {
			if n.strict {
				n.report(childPath, childField, "unknown field")
			}
			continue
		}
		if value, keep := n.value(*shape.AdditionalProperties, payload[name], childPath, childField); keep {
			out[name] = value
		}
	}
}

func (n *normalizer) array(shape schema.Schema, list []any, path, field string) []any {
	out := make([]any, 0, len(list))
	for idx, raw := range list {
		var item *schema.Schema
		switch {
		case idx < len(shape.PrefixItems):
			item = &shape.PrefixItems[idx]
		case shape.Items != nil:
			item = shape.Items
		}
		index := strconv.Itoa(idx)
		if item == nil {
			if n.strict {
				n.report(schema.JoinPointer(path, index), joinField(field, index), "unexpected element")
			}
			break
		}
		value, keep := n.value(*item, raw, schema.JoinPointer(path, index), joinField(field, index))
		if !keep {
			// Positions are preserved; a dropped element reads as absent.
			value = nil
		}
		out = append(out, value)
	}
	return out
}

func (n *normalizer) leaf(raw any, path, field string) (any, bool) {
	if raw == nil {
		return nil, false
	}
	text, ok := coerce(raw)
	if !ok {
		n.report(path, field, "expected text, got %s", describe(raw))
		return nil, false
	}
	if n.sanitize != nil {
		text = n.sanitize(text)
	}
	return text, true
}

func coerce(raw any) (string, bool) {
	switch v := raw.(type) {
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case json.Number:
		return v.String(), true
	case time.Time:
		return v.Format(time.RFC3339Nano), true
	case fmt.Stringer:
		return v.String(), true
	}
	value := reflect.ValueOf(raw)
	switch value.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(value.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(value.Uint(), 10), true
	case reflect.String:
		return value.String(), true
	default:
		return "", false
	}
}

func describe(raw any) string {
	switch raw.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "text"
	default:
		return fmt.Sprintf("%T", raw)
	}
}
