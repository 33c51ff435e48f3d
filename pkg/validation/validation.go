// Package validation turns variables schema and deck manifest problems into
// flat issue lists for CLIs and previews.
package validation

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-flayyer/pkg/deck"
	"github.com/goliatone/go-flayyer/pkg/jsonschema"
	"github.com/goliatone/go-flayyer/pkg/schema"
)

// Issue represents a validation error with optional location metadata.
type Issue struct {
	Path    string `json:"path,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Result captures validation outcomes.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

func invalid(issues ...Issue) Result {
	return Result{Valid: false, Issues: issues}
}

// VariablesSchema checks that raw is a JSON Schema variables declaration
// whose received shape can travel in a query string.
func VariablesSchema(ctx context.Context, src schema.Source, raw []byte) Result {
	if err := ctx.Err(); err != nil {
		return invalid(issueFromError(err))
	}
	if src == nil {
		src = schema.SourceInline("variables.schema.json")
	}
	if _, err := schema.NewDocument(src, raw); err != nil {
		return invalid(issueFromError(err))
	}

	parsed, err := jsonschema.Parse(raw)
	if err != nil {
		return invalid(issueFromError(err))
	}
	return Schema(parsed)
}

// Schema checks an already parsed variables schema.
func Schema(s schema.Schema) Result {
	if _, err := schema.Received(s); err != nil {
		return invalid(issueFromError(err))
	}
	return Result{Valid: true}
}

// Deck runs the opt-in manifest checks.
func Deck(cfg deck.Config) Result {
	found := deck.Validate(cfg)
	if len(found) == 0 {
		return Result{Valid: true}
	}
	issues := make([]Issue, 0, len(found))
	for _, issue := range found {
		issues = append(issues, Issue{Field: issue.Field, Message: issue.Message})
	}
	return invalid(issues...)
}

func issueFromError(err error) Issue {
	if err == nil {
		return Issue{Message: "unknown error"}
	}
	var fieldErr *schema.FieldError
	if errors.As(err, &fieldErr) {
		return Issue{
			Path:    fieldErr.Path,
			Field:   fieldPathFromPointer(fieldErr.Path),
			Message: fieldErr.Err.Error(),
		}
	}

	msg := strings.TrimSpace(err.Error())
	path := extractJSONPointer(msg)
	if path != "" {
		msg = strings.Replace(msg, " at "+path, "", 1)
	}
	msg = strings.TrimPrefix(msg, "jsonschema: ")
	msg = strings.TrimPrefix(msg, "schema: ")
	msg = strings.TrimSpace(msg)

	return Issue{
		Path:    path,
		Field:   fieldPathFromPointer(path),
		Message: msg,
	}
}

func extractJSONPointer(message string) string {
	idx := strings.LastIndex(message, " at #")
	if idx < 0 {
		return ""
	}
	return strings.TrimRight(strings.TrimSpace(message[idx+4:]), ".)];,")
}

// fieldPathFromPointer turns #/properties/a/items/properties/b into a.items.b.
func fieldPathFromPointer(pointer string) string {
	trimmed := strings.TrimPrefix(strings.TrimSpace(pointer), "#")
	trimmed = strings.TrimPrefix(trimmed, "/")
	if trimmed == "" {
		return ""
	}

	parts := strings.Split(trimmed, "/")
	out := make([]string, 0, len(parts))
	for idx := 0; idx < len(parts); idx++ {
		segment := unescape(parts[idx])
		switch segment {
		case "properties":
			if idx+1 < len(parts) {
				out = append(out, unescape(parts[idx+1]))
				idx++
			}
		case "prefixItems":
			if idx+1 < len(parts) {
				out = append(out, parts[idx+1])
				idx++
			}
		case "additionalProperties":
			out = append(out, "*")
		case "":
		default:
			out = append(out, segment)
		}
	}
	return strings.Join(out, ".")
}

func unescape(segment string) string {
	segment = strings.ReplaceAll(segment, "~1", "/")
	return strings.ReplaceAll(segment, "~0", "~")
}
