package variables

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-flayyer/pkg/schema"
)

var complexVariables = schema.MustParseLiteral(`
title: string
count: number
createdAt: date
nothing: null
object:
  name: string
  age: number
items:
  - id: number
`)

func TestNormalize_CoercesLeaves(t *testing.T) {
	created := time.Date(2021, 3, 4, 5, 6, 7, 0, time.UTC)
	raw := map[string]any{
		"title":     "Hello",
		"count":     float64(42),
		"createdAt": created,
		"nothing":   nil,
		"object":    map[string]any{"name": "Ada", "age": 36},
		"items":     []any{map[string]any{"id": 1.5}, map[string]any{"id": "2"}},
	}

	got, err := Normalize(complexVariables, raw)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}

	want := Variables{
		"title":     "Hello",
		"count":     "42",
		"createdAt": "2021-03-04T05:06:07Z",
		"nothing":   nil,
		"object":    map[string]any{"name": "Ada", "age": "36"},
		"items":     []any{map[string]any{"id": "1.5"}, map[string]any{"id": "2"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("bag mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalize_MissingKeysStayAbsent(t *testing.T) {
	got, err := Normalize(complexVariables, map[string]any{"title": "x"})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if _, ok := got["count"]; ok {
		t.Fatalf("expected count to be absent")
	}
	if title, ok := got.String("title"); !ok || title != "x" {
		t.Fatalf("unexpected title %q", title)
	}
}

func TestNormalize_ReportsMismatches(t *testing.T) {
	raw := map[string]any{
		"title":  map[string]any{"nested": "x"},
		"object": "flat",
		"items":  []any{map[string]any{"id": []any{"1"}}},
	}

	got, err := Normalize(complexVariables, raw)
	var issues Issues
	if !errors.As(err, &issues) {
		t.Fatalf("expected Issues, got %v", err)
	}

	want := Issues{
		{Path: "#/items/0/id", Field: "items.0.id", Message: "expected text, got array"},
		{Path: "#/object", Field: "object", Message: "expected object, got text"},
		{Path: "#/title", Field: "title", Message: "expected text, got object"},
	}
	if diff := cmp.Diff(want, issues); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}
	if _, ok := got["title"]; ok {
		t.Fatalf("expected mismatching title to be dropped")
	}
	if diff := cmp.Diff([]any{map[string]any{}}, got["items"]); diff != "" {
		t.Fatalf("items mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalize_RejectsFunctionSchemas(t *testing.T) {
	s := schema.Object(map[string]schema.Schema{"onClick": schema.Func()})
	_, err := Normalize(s, map[string]any{})
	if !errors.Is(err, schema.ErrFunctionField) {
		t.Fatalf("expected ErrFunctionField, got %v", err)
	}
}

func TestNormalize_DefaultBagKeepsAnyTextKey(t *testing.T) {
	got, err := Normalize(schema.Schema{}, map[string]any{"title": "a", "n": 3, "deep": map[string]any{"x": "y"}})
	var issues Issues
	if !errors.As(err, &issues) || len(issues) != 1 || issues[0].Field != "deep" {
		t.Fatalf("expected a single issue for deep, got %v", err)
	}
	if diff := cmp.Diff(Variables{"title": "a", "n": "3"}, got); diff != "" {
		t.Fatalf("bag mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalize_UndeclaredKeys(t *testing.T) {
	s := schema.MustParseLiteral("title: string")

	got, err := Normalize(s, map[string]any{"title": "a", "extra": "b"})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if _, ok := got["extra"]; ok {
		t.Fatalf("expected undeclared key to be dropped")
	}

	_, err = Normalize(s, map[string]any{"title": "a", "extra": "b"}, WithStrict())
	var issues Issues
	if !errors.As(err, &issues) || issues[0].Message != "unknown field" {
		t.Fatalf("expected unknown field issue, got %v", err)
	}
}

func TestNormalize_TupleKeepsPositions(t *testing.T) {
	s := schema.Object(map[string]schema.Schema{"pair": schema.Tuple(schema.String(), schema.Number())})
	got, err := Normalize(s, map[string]any{"pair": []any{nil, 2, "surplus"}})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if diff := cmp.Diff([]any{nil, "2"}, got["pair"]); diff != "" {
		t.Fatalf("pair mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalize_HTMLStripping(t *testing.T) {
	got, err := Normalize(schema.Schema{}, map[string]any{"title": "<b>Hi</b><script>alert(1)</script>"}, WithHTMLStripping())
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if title, _ := got.String("title"); title != "Hi" {
		t.Fatalf("expected stripped title, got %q", title)
	}
}

func TestVariables_Accessors(t *testing.T) {
	v := Variables{"items": []any{map[string]any{"id": "7"}}, "title": "x"}

	if got, ok := v.Lookup("items.0.id"); !ok || got != "7" {
		t.Fatalf("unexpected lookup %v %v", got, ok)
	}
	if _, ok := v.String("items", "3", "id"); ok {
		t.Fatalf("expected out of range index to miss")
	}
	if got := v.StringOr("fallback", "subtitle"); got != "fallback" {
		t.Fatalf("unexpected fallback %q", got)
	}
	if diff := cmp.Diff([]string{"items", "title"}, v.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode(t *testing.T) {
	type item struct {
		ID *string `json:"id"`
	}
	type bag struct {
		Title *string `json:"title"`
		Count *string `json:"count"`
		Items []item  `json:"items"`
	}

	got, err := Decode[bag](Variables{"title": "x", "items": []any{map[string]any{"id": "1"}}})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Title == nil || *got.Title != "x" {
		t.Fatalf("unexpected title %v", got.Title)
	}
	if got.Count != nil {
		t.Fatalf("expected count to stay nil")
	}
	if len(got.Items) != 1 || got.Items[0].ID == nil || *got.Items[0].ID != "1" {
		t.Fatalf("unexpected items %#v", got.Items)
	}
}
