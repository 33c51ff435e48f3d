package jsonschema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-flayyer/pkg/schema"
)

var supportedKeywords = map[string]struct{}{
	"$schema":              {},
	"$id":                  {},
	"$comment":             {},
	"type":                 {},
	"properties":           {},
	"required":             {},
	"additionalProperties": {},
	"items":                {},
	"prefixItems":          {},
	"title":                {},
	"description":          {},
	"format":               {},
	"default":              {},
	"examples":             {},
	"enum":                 {},
	"const":                {},
	"not":                  {},
}

// Parse reads a JSON Schema (JSON or YAML) describing template variables and
// converts it into the schema tree. The "function" type is accepted so that
// callable fields can be reported by schema.Received instead of being lost.
func Parse(raw []byte) (schema.Schema, error) {
	payload, err := decodePayload(raw)
	if err != nil {
		return schema.Schema{}, err
	}
	return FromMap(payload)
}

// FromMap converts an already decoded JSON Schema payload.
func FromMap(payload map[string]any) (schema.Schema, error) {
	if payload == nil {
		return schema.Schema{}, errors.New("jsonschema: schema is nil")
	}
	return schemaFromJSONSchema(payload, "#")
}

func decodePayload(raw []byte) (map[string]any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, errors.New("jsonschema: raw schema is empty")
	}
	var payload map[string]any
	if trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &payload); err != nil {
			return nil, fmt.Errorf("jsonschema: parse schema: %w", err)
		}
	} else if err := yaml.Unmarshal(trimmed, &payload); err != nil {
		return nil, fmt.Errorf("jsonschema: parse schema: %w", err)
	}
	if payload == nil {
		return nil, errors.New("jsonschema: schema is nil")
	}
	return payload, nil
}

func schemaFromJSONSchema(node any, path string) (schema.Schema, error) {
	switch typed := node.(type) {
	case nil:
		return schema.Schema{}, fmt.Errorf("jsonschema: schema is nil at %s", path)
	case bool:
		// true accepts anything, false accepts nothing.
		if typed {
			return schema.Any(), nil
		}
		return schema.Never(), nil
	}
	payload, ok := node.(map[string]any)
	if !ok {
		return schema.Schema{}, fmt.Errorf("jsonschema: schema must be an object at %s", path)
	}

	if ref := strings.TrimSpace(readString(payload, "$ref")); ref != "" {
		return schema.Schema{}, fmt.Errorf("jsonschema: unresolved $ref %q at %s", ref, path)
	}
	if err := validateKeywords(payload, path); err != nil {
		return schema.Schema{}, err
	}

	if notRaw, ok := payload["not"]; ok {
		return neverFromNot(payload, notRaw, path)
	}

	typeName, err := readType(payload, path)
	if err != nil {
		return schema.Schema{}, err
	}

	out := schema.Schema{
		Type:        typeName,
		Title:       strings.TrimSpace(readString(payload, "title")),
		Description: strings.TrimSpace(readString(payload, "description")),
		Format:      strings.TrimSpace(readString(payload, "format")),
		Extensions:  extractExtensions(payload),
	}
	if out.Type == schema.TypeString && isDateFormat(out.Format) {
		out.Type = schema.TypeDate
	}

	if requiredRaw, ok := payload["required"]; ok {
		list, ok := requiredRaw.([]any)
		if !ok {
			return schema.Schema{}, fmt.Errorf("jsonschema: required must be an array at %s", path)
		}
		for idx, item := range list {
			name, ok := item.(string)
			if !ok || strings.TrimSpace(name) == "" {
				return schema.Schema{}, fmt.Errorf("jsonschema: required[%d] must be a string at %s", idx, path)
			}
			out.Required = append(out.Required, name)
		}
	}

	if propertiesRaw, ok := payload["properties"]; ok {
		props, ok := propertiesRaw.(map[string]any)
		if !ok {
			return schema.Schema{}, fmt.Errorf("jsonschema: properties must be an object at %s", path)
		}
		out.Properties = make(map[string]schema.Schema, len(props))
		for _, key := range sortedKeys(props) {
			converted, err := schemaFromJSONSchema(props[key], schema.JoinPointer(path, "properties", key))
			if err != nil {
				return schema.Schema{}, err
			}
			out.Properties[key] = converted
		}
	}

	if additionalRaw, ok := payload["additionalProperties"]; ok {
		// additionalProperties: false is the default behaviour of the
		// normalizer, so only schemas and true are kept.
		if flag, isBool := additionalRaw.(bool); !isBool || flag {
			converted, err := schemaFromJSONSchema(additionalRaw, schema.JoinPointer(path, "additionalProperties"))
			if err != nil {
				return schema.Schema{}, err
			}
			if flag {
				converted = schema.String()
			}
			out.AdditionalProperties = &converted
		}
	}

	if prefixRaw, ok := payload["prefixItems"]; ok {
		list, ok := prefixRaw.([]any)
		if !ok {
			return schema.Schema{}, fmt.Errorf("jsonschema: prefixItems must be an array at %s", path)
		}
		for idx, entry := range list {
			converted, err := schemaFromJSONSchema(entry, schema.JoinPointer(path, "prefixItems", fmt.Sprint(idx)))
			if err != nil {
				return schema.Schema{}, err
			}
			out.PrefixItems = append(out.PrefixItems, converted)
		}
	}

	if itemsRaw, ok := payload["items"]; ok {
		switch typed := itemsRaw.(type) {
		case map[string]any:
			converted, err := schemaFromJSONSchema(typed, schema.JoinPointer(path, "items"))
			if err != nil {
				return schema.Schema{}, err
			}
			out.Items = &converted
		case bool:
			if typed {
				converted := schema.Any()
				out.Items = &converted
			}
		case []any:
			return schema.Schema{}, fmt.Errorf("jsonschema: tuple items must use prefixItems at %s", path)
		default:
			return schema.Schema{}, fmt.Errorf("jsonschema: items must be an object at %s", path)
		}
	}

	for _, name := range out.Required {
		if _, ok := out.Properties[name]; !ok {
			return schema.Schema{}, fmt.Errorf("jsonschema: required property %q is not declared at %s", name, path)
		}
	}

	return out, nil
}

// neverFromNot accepts only {"not":{}}, the uninhabited schema.
func neverFromNot(payload map[string]any, notRaw any, path string) (schema.Schema, error) {
	inner, ok := notRaw.(map[string]any)
	if !ok || len(inner) != 0 {
		return schema.Schema{}, fmt.Errorf("jsonschema: only an empty not is supported at %s", path)
	}
	if _, typed := payload["type"]; typed {
		return schema.Schema{}, fmt.Errorf("jsonschema: not cannot be combined with type at %s", path)
	}
	out := schema.Never()
	out.Title = strings.TrimSpace(readString(payload, "title"))
	out.Description = strings.TrimSpace(readString(payload, "description"))
	out.Extensions = extractExtensions(payload)
	return out, nil
}

func readType(payload map[string]any, path string) (string, error) {
	raw, ok := payload["type"]
	if !ok {
		return schema.TypeAny, nil
	}
	switch typed := raw.(type) {
	case string:
		name := strings.TrimSpace(typed)
		if !isAllowedType(name) {
			return "", fmt.Errorf("jsonschema: unsupported type %q at %s", name, path)
		}
		return name, nil
	case []any:
		// ["string","null"] style unions collapse onto the non-null member.
		var picked string
		for _, entry := range typed {
			name, ok := entry.(string)
			if !ok || !isAllowedType(name) {
				return "", fmt.Errorf("jsonschema: unsupported type %v at %s", entry, path)
			}
			if name == schema.TypeNull {
				continue
			}
			if picked != "" && picked != name {
				return "", fmt.Errorf("jsonschema: union types are not supported at %s", path)
			}
			picked = name
		}
		if picked == "" {
			return schema.TypeNull, nil
		}
		return picked, nil
	default:
		return "", fmt.Errorf("jsonschema: type must be a string or array at %s", path)
	}
}

func validateKeywords(payload map[string]any, path string) error {
	for _, key := range sortedKeys(payload) {
		if isVendorExtension(key) {
			continue
		}
		if _, ok := supportedKeywords[key]; ok {
			continue
		}
		return fmt.Errorf("jsonschema: unsupported keyword %q at %s", key, path)
	}
	return nil
}

func isVendorExtension(key string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(key)), "x-")
}

func extractExtensions(payload map[string]any) map[string]any {
	var extensions map[string]any
	for _, key := range sortedKeys(payload) {
		if !isVendorExtension(key) {
			continue
		}
		if extensions == nil {
			extensions = make(map[string]any)
		}
		extensions[key] = payload[key]
	}
	return extensions
}

func isAllowedType(value string) bool {
	switch value {
	case schema.TypeObject, schema.TypeArray, schema.TypeString, schema.TypeInteger,
		schema.TypeNumber, schema.TypeBoolean, schema.TypeNull, schema.TypeFunction, schema.TypeDate:
		return true
	default:
		return false
	}
}

func isDateFormat(format string) bool {
	switch format {
	case "date", "date-time", "time":
		return true
	default:
		return false
	}
}

func readString(payload map[string]any, key string) string {
	value, _ := payload[key].(string)
	return value
}

func sortedKeys(payload map[string]any) []string {
	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
