package schema

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrFunctionField is returned when a variables schema declares a callable
// field. Function values cannot travel through a query string.
var ErrFunctionField = errors.New("variables schema must not contain function-typed fields")

// ErrNotObject is returned when a variables bag is not an object.
var ErrNotObject = errors.New("variables schema must describe an object")

// FieldError locates a schema problem using a JSON pointer.
type FieldError struct {
	Path string
	Err  error
}

func (e *FieldError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("schema: %v at %s", e.Err, e.Path)
}

func (e *FieldError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Serializable maps a logical schema to the shape it takes after a round trip
// through a text-only transport. Rules are applied top-down and the first
// match wins:
//
//   - text, numeric, boolean and date leaves become optional text
//   - null leaves are kept as-is
//   - function fields become never
//   - objects and arrays keep their structure, every member is mapped and
//     every object field becomes optional
//   - anything else becomes optional text
//
// The transform is idempotent.
func Serializable(s Schema) Schema {
	switch {
	case s.IsLeaf():
		return textLeaf(s)
	case s.Type == TypeNull, s.Type == TypeNever:
		return s.Clone()
	case s.Type == TypeFunction:
		return Schema{Type: TypeNever, Title: s.Title, Description: s.Description}
	case isObject(s):
		return serializableObject(s)
	case isArray(s):
		return serializableArray(s)
	default:
		return textLeaf(s)
	}
}

func textLeaf(s Schema) Schema {
	return Schema{
		Type:        TypeString,
		Title:       s.Title,
		Description: s.Description,
		Extensions:  cloneExtensions(s.Extensions),
	}
}

func serializableObject(s Schema) Schema {
	out := Schema{
		Type:        TypeObject,
		Title:       s.Title,
		Description: s.Description,
		Extensions:  cloneExtensions(s.Extensions),
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = Serializable(prop)
		}
	}
	if s.AdditionalProperties != nil {
		additional := Serializable(*s.AdditionalProperties)
		out.AdditionalProperties = &additional
	}
	return out
}

func serializableArray(s Schema) Schema {
	out := Schema{
		Type:        TypeArray,
		Title:       s.Title,
		Description: s.Description,
		Extensions:  cloneExtensions(s.Extensions),
	}
	if s.Items != nil {
		items := Serializable(*s.Items)
		out.Items = &items
	}
	if len(s.PrefixItems) > 0 {
		out.PrefixItems = make([]Schema, len(s.PrefixItems))
		for idx, item := range s.PrefixItems {
			out.PrefixItems[idx] = Serializable(item)
		}
	}
	return out
}

// Received returns the variables contract handed to templates for the given
// logical bag. A zero schema stands for the default free-form text bag. The
// bag must be an object and must not declare function fields.
func Received(variables Schema) (Schema, error) {
	if variables.IsZero() {
		variables = DefaultVariables()
	}
	if !isObject(variables) {
		return Schema{}, &FieldError{Path: "#", Err: ErrNotObject}
	}
	if err := CheckSerializable(variables); err != nil {
		return Schema{}, err
	}
	return Serializable(variables), nil
}

// MustReceived panics when Received fails. Useful for package-level
// template declarations.
func MustReceived(variables Schema) Schema {
	out, err := Received(variables)
	if err != nil {
		panic(err)
	}
	return out
}

// CheckSerializable reports the first function-typed node in the tree.
func CheckSerializable(s Schema) error {
	var found *FieldError
	Walk(s, func(path string, node Schema) bool {
		if found != nil {
			return false
		}
		if node.Type == TypeFunction {
			found = &FieldError{Path: path, Err: ErrFunctionField}
			return false
		}
		return true
	})
	if found != nil {
		return found
	}
	return nil
}

// Equal reports whether two trees describe the same shape. Nil and empty
// collections compare equal.
func Equal(a, b Schema) bool {
	return reflect.DeepEqual(canonical(a), canonical(b))
}

func canonical(s Schema) Schema {
	out := s.Clone()
	if isObject(out) {
		out.Type = TypeObject
	}
	if isArray(out) {
		out.Type = TypeArray
	}
	if len(out.Required) == 0 {
		out.Required = nil
	}
	if len(out.Extensions) == 0 {
		out.Extensions = nil
	}
	if len(out.Properties) == 0 {
		out.Properties = nil
	} else {
		for name, prop := range out.Properties {
			out.Properties[name] = canonical(prop)
		}
	}
	if out.AdditionalProperties != nil {
		additional := canonical(*out.AdditionalProperties)
		out.AdditionalProperties = &additional
	}
	if out.Items != nil {
		items := canonical(*out.Items)
		out.Items = &items
	}
	if len(out.PrefixItems) == 0 {
		out.PrefixItems = nil
	} else {
		for idx, item := range out.PrefixItems {
			out.PrefixItems[idx] = canonical(item)
		}
	}
	return out
}

func isObject(s Schema) bool {
	if s.Type == TypeObject {
		return true
	}
	return s.Type == TypeAny && (len(s.Properties) > 0 || s.AdditionalProperties != nil)
}

func isArray(s Schema) bool {
	if s.Type == TypeArray {
		return true
	}
	return s.Type == TypeAny && (s.Items != nil || len(s.PrefixItems) > 0)
}

// IsObject reports whether the node describes a keyed container.
func (s Schema) IsObject() bool { return isObject(s) }

// IsArray reports whether the node describes an ordered container.
func (s Schema) IsArray() bool { return isArray(s) }

func cloneExtensions(ext map[string]any) map[string]any {
	if len(ext) == 0 {
		return nil
	}
	out := make(map[string]any, len(ext))
	for key, value := range ext {
		out[key] = value
	}
	return out
}
