package jsonschema

import (
	"github.com/goliatone/go-flayyer/pkg/schema"
)

// Draft is the dialect written by Document.
const Draft = "https://json-schema.org/draft/2020-12/schema"

// Document renders s as a standalone JSON Schema document.
func Document(s schema.Schema) map[string]any {
	out := Marshal(s)
	out["$schema"] = Draft
	return out
}

// Marshal renders s as a JSON Schema payload. Dates become date-time
// strings, never becomes {"not":{}} and function nodes are written as
// "type":"function". Parse reads all of them back.
func Marshal(s schema.Schema) map[string]any {
	out := make(map[string]any)
	for key, value := range s.Extensions {
		out[key] = value
	}
	if s.Title != "" {
		out["title"] = s.Title
	}
	if s.Description != "" {
		out["description"] = s.Description
	}

	switch {
	case s.Type == schema.TypeDate:
		out["type"] = schema.TypeString
		out["format"] = "date-time"
	case s.Type == schema.TypeNever:
		out["not"] = map[string]any{}
	case s.Type == schema.TypeFunction:
		out["type"] = schema.TypeFunction
	case s.IsObject():
		out["type"] = schema.TypeObject
		if len(s.Properties) > 0 {
			props := make(map[string]any, len(s.Properties))
			for name, prop := range s.Properties {
				props[name] = Marshal(prop)
			}
			out["properties"] = props
		}
		if len(s.Required) > 0 {
			required := make([]any, 0, len(s.Required))
			for _, name := range s.Required {
				required = append(required, name)
			}
			out["required"] = required
		}
		if s.AdditionalProperties != nil {
			out["additionalProperties"] = Marshal(*s.AdditionalProperties)
		} else {
			out["additionalProperties"] = false
		}
	case s.IsArray():
		out["type"] = schema.TypeArray
		if s.Items != nil {
			out["items"] = Marshal(*s.Items)
		}
		if len(s.PrefixItems) > 0 {
			prefix := make([]any, 0, len(s.PrefixItems))
			for _, item := range s.PrefixItems {
				prefix = append(prefix, Marshal(item))
			}
			out["prefixItems"] = prefix
		}
	case s.Type != schema.TypeAny:
		out["type"] = s.Type
		if s.Format != "" {
			out["format"] = s.Format
		}
	}
	return out
}
