package schema

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseLiteral reads the shorthand type literal notation used in template
// manifests. The payload is YAML (and therefore also JSON):
//
//	title: string
//	count: number
//	createdAt: date
//	subtitle?: string
//	items:
//	  - id: number
//
// Scalars name a type, mappings are objects, one-element sequences are arrays
// of that element and longer sequences are tuples. A "[]" suffix on a type
// name is shorthand for an array of it. Fields are required unless their key
// ends with "?".
func ParseLiteral(raw []byte) (Schema, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return Schema{}, errors.New("schema: literal is empty")
	}
	var root yaml.Node
	if err := yaml.Unmarshal(trimmed, &root); err != nil {
		return Schema{}, fmt.Errorf("schema: parse literal: %w", err)
	}
	node := &root
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return Schema{}, errors.New("schema: literal is empty")
		}
		node = node.Content[0]
	}
	return literalNode(node, "#")
}

// MustParseLiteral panics if the literal cannot be parsed.
func MustParseLiteral(raw string) Schema {
	out, err := ParseLiteral([]byte(raw))
	if err != nil {
		panic(err)
	}
	return out
}

func literalNode(node *yaml.Node, path string) (Schema, error) {
	switch node.Kind {
	case yaml.AliasNode:
		if node.Alias == nil {
			return Schema{}, fmt.Errorf("schema: literal alias is unresolved at %s", path)
		}
		return literalNode(node.Alias, path)
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return Null(), nil
		}
		return literalType(node.Value, path)
	case yaml.MappingNode:
		return literalObject(node, path)
	case yaml.SequenceNode:
		return literalSequence(node, path)
	default:
		return Schema{}, fmt.Errorf("schema: unsupported literal node at %s", path)
	}
}

func literalObject(node *yaml.Node, path string) (Schema, error) {
	out := Schema{Type: TypeObject, Properties: make(map[string]Schema, len(node.Content)/2)}
	for idx := 0; idx+1 < len(node.Content); idx += 2 {
		key := strings.TrimSpace(node.Content[idx].Value)
		optional := strings.HasSuffix(key, "?")
		name := strings.TrimSpace(strings.TrimSuffix(key, "?"))
		if name == "" {
			return Schema{}, fmt.Errorf("schema: literal field name is empty at %s", path)
		}
		if _, exists := out.Properties[name]; exists {
			return Schema{}, fmt.Errorf("schema: duplicate literal field %q at %s", name, path)
		}
		child, err := literalNode(node.Content[idx+1], JoinPointer(path, "properties", name))
		if err != nil {
			return Schema{}, err
		}
		out.Properties[name] = child
		if !optional {
			out.Required = append(out.Required, name)
		}
	}
	return out, nil
}

func literalSequence(node *yaml.Node, path string) (Schema, error) {
	switch len(node.Content) {
	case 0:
		return Array(Any()), nil
	case 1:
		item, err := literalNode(node.Content[0], JoinPointer(path, "items"))
		if err != nil {
			return Schema{}, err
		}
		return Array(item), nil
	default:
		items := make([]Schema, 0, len(node.Content))
		for idx, child := range node.Content {
			item, err := literalNode(child, JoinPointer(path, "prefixItems", fmt.Sprint(idx)))
			if err != nil {
				return Schema{}, err
			}
			items = append(items, item)
		}
		return Tuple(items...), nil
	}
}

func literalType(value, path string) (Schema, error) {
	name := strings.TrimSpace(value)
	if strings.HasSuffix(name, "[]") {
		item, err := literalType(strings.TrimSuffix(name, "[]"), JoinPointer(path, "items"))
		if err != nil {
			return Schema{}, err
		}
		return Array(item), nil
	}
	switch strings.ToLower(name) {
	case "string", "text":
		return String(), nil
	case "number", "float":
		return Number(), nil
	case "integer", "int":
		return Integer(), nil
	case "boolean", "bool":
		return Boolean(), nil
	case "date", "datetime", "date-time":
		return Date(), nil
	case "null", "undefined":
		return Null(), nil
	case "function", "func":
		return Func(), nil
	case "any", "unknown":
		return Any(), nil
	case "never":
		return Never(), nil
	case "object", "record":
		return DefaultVariables(), nil
	default:
		return Schema{}, fmt.Errorf("schema: unknown literal type %q at %s", name, path)
	}
}
