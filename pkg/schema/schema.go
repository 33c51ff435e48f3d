package schema

import (
	"sort"
	"strconv"
	"strings"
)

// Type names used by the schema tree. They follow JSON Schema naming with
// three additions: "date" for timestamps, "function" for callable fields that
// can never be serialized, and "never" for the uninhabited result produced by
// Serializable when it meets a function.
const (
	TypeAny      = ""
	TypeString   = "string"
	TypeNumber   = "number"
	TypeInteger  = "integer"
	TypeBoolean  = "boolean"
	TypeDate     = "date"
	TypeNull     = "null"
	TypeFunction = "function"
	TypeObject   = "object"
	TypeArray    = "array"
	TypeNever    = "never"
)

// Schema is a node of the variables schema tree.
type Schema struct {
	Type                 string            `json:"type,omitempty" yaml:"type,omitempty"`
	Format               string            `json:"format,omitempty" yaml:"format,omitempty"`
	Title                string            `json:"title,omitempty" yaml:"title,omitempty"`
	Description          string            `json:"description,omitempty" yaml:"description,omitempty"`
	Required             []string          `json:"required,omitempty" yaml:"required,omitempty"`
	Properties           map[string]Schema `json:"properties,omitempty" yaml:"properties,omitempty"`
	AdditionalProperties *Schema           `json:"additionalProperties,omitempty" yaml:"additionalProperties,omitempty"`
	Items                *Schema           `json:"items,omitempty" yaml:"items,omitempty"`
	PrefixItems          []Schema          `json:"prefixItems,omitempty" yaml:"prefixItems,omitempty"`
	Extensions           map[string]any    `json:"extensions,omitempty" yaml:"extensions,omitempty"`
}

func String() Schema  { return Schema{Type: TypeString} }
func Number() Schema  { return Schema{Type: TypeNumber} }
func Integer() Schema { return Schema{Type: TypeInteger} }
func Boolean() Schema { return Schema{Type: TypeBoolean} }
func Date() Schema    { return Schema{Type: TypeDate} }
func Null() Schema    { return Schema{Type: TypeNull} }
func Func() Schema    { return Schema{Type: TypeFunction} }
func Any() Schema     { return Schema{Type: TypeAny} }
func Never() Schema   { return Schema{Type: TypeNever} }

// Object builds an object node. Names listed in required must also be present
// in props; unknown names are ignored.
func Object(props map[string]Schema, required ...string) Schema {
	out := Schema{Type: TypeObject, Properties: make(map[string]Schema, len(props))}
	for name, prop := range props {
		out.Properties[name] = prop
	}
	for _, name := range required {
		if _, ok := out.Properties[name]; ok && !containsString(out.Required, name) {
			out.Required = append(out.Required, name)
		}
	}
	return out
}

// Record builds an object node with free-form keys whose values share one
// schema, e.g. Record(String()) for {[key: string]: string}.
func Record(values Schema) Schema {
	value := values
	return Schema{Type: TypeObject, AdditionalProperties: &value}
}

// Array builds an ordered sequence of items.
func Array(items Schema) Schema {
	item := items
	return Schema{Type: TypeArray, Items: &item}
}

// Tuple builds a fixed-position sequence.
func Tuple(items ...Schema) Schema {
	return Schema{Type: TypeArray, PrefixItems: append([]Schema(nil), items...)}
}

// DefaultVariables is the bag used when a template does not declare its
// variables: any key, text values.
func DefaultVariables() Schema {
	return Record(String())
}

// IsLeaf reports whether the node is a scalar that the wire transport can
// only carry as text.
func (s Schema) IsLeaf() bool {
	switch s.Type {
	case TypeString, TypeNumber, TypeInteger, TypeBoolean, TypeDate:
		return true
	default:
		return false
	}
}

// IsZero reports whether the node carries no information at all.
func (s Schema) IsZero() bool {
	return s.Type == "" && s.Format == "" && s.Title == "" && s.Description == "" &&
		len(s.Required) == 0 && len(s.Properties) == 0 && s.AdditionalProperties == nil &&
		s.Items == nil && len(s.PrefixItems) == 0 && len(s.Extensions) == 0
}

// IsRequired reports whether name is listed as required on an object node.
func (s Schema) IsRequired(name string) bool {
	return containsString(s.Required, name)
}

// PropertyNames returns the declared property names in sorted order.
func (s Schema) PropertyNames() []string {
	if len(s.Properties) == 0 {
		return nil
	}
	names := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a deep copy of the node.
func (s Schema) Clone() Schema {
	out := s
	if s.Required != nil {
		out.Required = append([]string(nil), s.Required...)
	}
	if s.Properties != nil {
		out.Properties = make(map[string]Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = prop.Clone()
		}
	}
	if s.AdditionalProperties != nil {
		additional := s.AdditionalProperties.Clone()
		out.AdditionalProperties = &additional
	}
	if s.Items != nil {
		items := s.Items.Clone()
		out.Items = &items
	}
	if s.PrefixItems != nil {
		out.PrefixItems = make([]Schema, len(s.PrefixItems))
		for idx, item := range s.PrefixItems {
			out.PrefixItems[idx] = item.Clone()
		}
	}
	if s.Extensions != nil {
		out.Extensions = make(map[string]any, len(s.Extensions))
		for key, value := range s.Extensions {
			out.Extensions[key] = value
		}
	}
	return out
}

// WalkFunc is called for every node visited by Walk. Returning false skips
// the node's children.
type WalkFunc func(path string, node Schema) bool

// Walk visits the tree in pre-order. Paths are JSON pointers rooted at "#".
func Walk(root Schema, fn WalkFunc) {
	walk(root, "#", fn)
}

func walk(node Schema, path string, fn WalkFunc) {
	if !fn(path, node) {
		return
	}
	for _, name := range node.PropertyNames() {
		walk(node.Properties[name], JoinPointer(path, "properties", name), fn)
	}
	if node.AdditionalProperties != nil {
		walk(*node.AdditionalProperties, JoinPointer(path, "additionalProperties"), fn)
	}
	for idx, item := range node.PrefixItems {
		walk(item, JoinPointer(path, "prefixItems", strconv.Itoa(idx)), fn)
	}
	if node.Items != nil {
		walk(*node.Items, JoinPointer(path, "items"), fn)
	}
}

// JoinPointer appends escaped segments to a JSON pointer.
func JoinPointer(path string, segments ...string) string {
	if path == "" {
		path = "#"
	}
	for _, segment := range segments {
		if segment == "" {
			continue
		}
		path = path + "/" + pointerEscaper.Replace(segment)
	}
	return path
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func containsString(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
