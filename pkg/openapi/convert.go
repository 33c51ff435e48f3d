package openapi

import (
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-flayyer/pkg/schema"
)

const (
	// extensionType carries schema types OpenAPI has no keyword for.
	extensionType = "x-flayyer-type"
	// extensionTuple marks arrays whose anyOf items are positional.
	extensionTuple = "x-flayyer-tuple"
)

// FromSchemaRef converts a kin-openapi schema into a variables schema.
// Unresolved references and recursive cycles become Any.
func FromSchemaRef(ref *openapi3.SchemaRef) schema.Schema {
	return fromRef(ref, map[*openapi3.Schema]bool{})
}

func fromRef(ref *openapi3.SchemaRef, visiting map[*openapi3.Schema]bool) schema.Schema {
	if ref == nil || ref.Value == nil {
		return schema.Any()
	}
	src := ref.Value
	if visiting[src] {
		return schema.Any()
	}
	visiting[src] = true
	defer delete(visiting, src)

	out := schema.Schema{
		Type:        schemaType(src),
		Format:      src.Format,
		Title:       src.Title,
		Description: src.Description,
		Extensions:  vendorExtensions(src.Extensions),
	}

	switch out.Type {
	case schema.TypeObject:
		if len(src.Properties) > 0 {
			out.Properties = make(map[string]schema.Schema, len(src.Properties))
			for name, prop := range src.Properties {
				out.Properties[name] = fromRef(prop, visiting)
			}
		}
		for _, name := range src.Required {
			if _, ok := out.Properties[name]; ok {
				out.Required = append(out.Required, name)
			}
		}
		switch ap := src.AdditionalProperties; {
		case ap.Schema != nil:
			value := fromRef(ap.Schema, visiting)
			out.AdditionalProperties = &value
		case ap.Has != nil && *ap.Has:
			value := schema.Any()
			out.AdditionalProperties = &value
		}
	case schema.TypeArray:
		if tuple, _ := src.Extensions[extensionTuple].(bool); tuple && src.Items != nil && src.Items.Value != nil {
			for _, item := range src.Items.Value.AnyOf {
				out.PrefixItems = append(out.PrefixItems, fromRef(item, visiting))
			}
			break
		}
		if src.Items != nil {
			items := fromRef(src.Items, visiting)
			out.Items = &items
		}
	case schema.TypeDate:
		out.Format = ""
	}
	return out
}

func schemaType(src *openapi3.Schema) string {
	if kind, ok := src.Extensions[extensionType].(string); ok && kind != "" {
		return kind
	}
	if src.Not != nil && src.Not.Value != nil && src.Not.Value.IsEmpty() {
		return schema.TypeNever
	}

	var kind string
	for _, candidate := range src.Type.Slice() {
		if candidate == openapi3.TypeNull && len(src.Type.Slice()) > 1 {
			continue
		}
		kind = candidate
		break
	}
	switch kind {
	case openapi3.TypeString:
		switch src.Format {
		case "date", "date-time", "time":
			return schema.TypeDate
		}
		return schema.TypeString
	case openapi3.TypeNumber:
		return schema.TypeNumber
	case openapi3.TypeInteger:
		return schema.TypeInteger
	case openapi3.TypeBoolean:
		return schema.TypeBoolean
	case openapi3.TypeNull:
		return schema.TypeNull
	case openapi3.TypeArray:
		return schema.TypeArray
	case openapi3.TypeObject:
		return schema.TypeObject
	}
	if len(src.Properties) > 0 || src.AdditionalProperties.Schema != nil {
		return schema.TypeObject
	}
	if src.Items != nil {
		return schema.TypeArray
	}
	return schema.TypeAny
}

// ToOpenAPI converts s into a kin-openapi schema. Date becomes a date-time
// string, never becomes {not: {}} and function is carried in an extension.
// Array elements are nullable because dropped positions decode as null.
func ToOpenAPI(s schema.Schema) *openapi3.Schema {
	var out *openapi3.Schema
	switch {
	case s.Type == schema.TypeString:
		out = openapi3.NewStringSchema()
	case s.Type == schema.TypeNumber:
		out = openapi3.NewFloat64Schema()
		out.Format = ""
	case s.Type == schema.TypeInteger:
		out = openapi3.NewIntegerSchema()
	case s.Type == schema.TypeBoolean:
		out = openapi3.NewBoolSchema()
	case s.Type == schema.TypeDate:
		out = openapi3.NewDateTimeSchema()
	case s.Type == schema.TypeNull:
		out = &openapi3.Schema{Type: &openapi3.Types{openapi3.TypeNull}}
	case s.Type == schema.TypeNever:
		out = openapi3.NewSchema()
		out.Not = openapi3.NewSchemaRef("", openapi3.NewSchema())
	case s.Type == schema.TypeFunction:
		out = openapi3.NewSchema()
		out.Extensions = map[string]any{extensionType: schema.TypeFunction}
	case s.IsObject():
		out = objectSchema(s)
	case s.IsArray():
		out = arraySchema(s)
	default:
		out = openapi3.NewSchema()
	}

	if s.Format != "" && s.Type != schema.TypeDate {
		out.Format = s.Format
	}
	out.Title = s.Title
	out.Description = s.Description
	for key, value := range s.Extensions {
		if !strings.HasPrefix(key, "x-") {
			continue
		}
		if out.Extensions == nil {
			out.Extensions = make(map[string]any, len(s.Extensions))
		}
		out.Extensions[key] = value
	}
	return out
}

func objectSchema(s schema.Schema) *openapi3.Schema {
	out := openapi3.NewObjectSchema()
	for _, name := range s.PropertyNames() {
		out.WithProperty(name, ToOpenAPI(s.Properties[name]))
	}
	if len(s.Required) > 0 {
		out.Required = append([]string(nil), s.Required...)
	}
	if s.AdditionalProperties != nil {
		out.WithAdditionalProperties(ToOpenAPI(*s.AdditionalProperties))
	} else {
		out.WithoutAdditionalProperties()
	}
	return out
}

func arraySchema(s schema.Schema) *openapi3.Schema {
	out := openapi3.NewArraySchema()
	if len(s.PrefixItems) > 0 {
		items := openapi3.NewSchema()
		items.Nullable = true
		for _, item := range s.PrefixItems {
			items.AnyOf = append(items.AnyOf, openapi3.NewSchemaRef("", ToOpenAPI(item)))
		}
		out.Items = openapi3.NewSchemaRef("", items)
		count := uint64(len(s.PrefixItems))
		out.MaxItems = &count
		out.Extensions = map[string]any{extensionTuple: true}
		return out
	}
	items := openapi3.NewSchema()
	if s.Items != nil {
		items = ToOpenAPI(*s.Items)
	}
	items.Nullable = true
	out.Items = openapi3.NewSchemaRef("", items)
	return out
}

func vendorExtensions(raw map[string]any) map[string]any {
	var out map[string]any
	for key, value := range raw {
		if key == extensionType || key == extensionTuple || !strings.HasPrefix(key, "x-") {
			continue
		}
		if out == nil {
			out = make(map[string]any)
		}
		out[key] = value
	}
	return out
}
