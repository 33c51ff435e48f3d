package schema

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseLiteral_ComplexTemplate(t *testing.T) {
	raw := `
title: string
count: number
price?: number
createdAt: date
object:
  name: string
  age: number
array:
  - id: number
tags: string[]
pair: [string, number]
nothing: null
`
	got, err := ParseLiteral([]byte(raw))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	want := Object(map[string]Schema{
		"title":     String(),
		"count":     Number(),
		"price":     Number(),
		"createdAt": Date(),
		"object":    Object(map[string]Schema{"name": String(), "age": Number()}, "name", "age"),
		"array":     Array(Object(map[string]Schema{"id": Number()}, "id")),
		"tags":      Array(String()),
		"pair":      Tuple(String(), Number()),
		"nothing":   Null(),
	})
	want.Required = []string{"title", "count", "createdAt", "object", "array", "tags", "pair", "nothing"}

	if !Equal(want, got) {
		t.Fatalf("literal mismatch:\n%s", cmp.Diff(want, got))
	}
}

func TestParseLiteral_JSON(t *testing.T) {
	got, err := ParseLiteral([]byte(`{"title":"string","items":[{"id":"number"}]}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.Properties["items"].Items == nil || got.Properties["items"].Items.Properties["id"].Type != TypeNumber {
		t.Fatalf("unexpected items schema: %#v", got.Properties["items"])
	}
}

func TestParseLiteral_UnknownType(t *testing.T) {
	_, err := ParseLiteral([]byte("title: strnig"))
	if err == nil {
		t.Fatalf("expected error for unknown type")
	}
	if want := `schema: unknown literal type "strnig" at #/properties/title`; err.Error() != want {
		t.Fatalf("unexpected error %q", err.Error())
	}
}

func TestParseLiteral_Empty(t *testing.T) {
	if _, err := ParseLiteral([]byte("  ")); err == nil {
		t.Fatalf("expected error for empty literal")
	}
}
