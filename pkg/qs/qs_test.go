package qs

import (
	"errors"
	"net/url"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecodeString(t *testing.T) {
	cases := []struct {
		name  string
		query string
		want  map[string]any
	}{
		{
			name:  "flat",
			query: "title=Hello&count=3",
			want:  map[string]any{"title": "Hello", "count": "3"},
		},
		{
			name:  "nested object",
			query: "object[name]=Ada&object[age]=36",
			want:  map[string]any{"object": map[string]any{"name": "Ada", "age": "36"}},
		},
		{
			name:  "array of objects",
			query: "items[0][id]=1&items[1][id]=2",
			want: map[string]any{"items": []any{
				map[string]any{"id": "1"},
				map[string]any{"id": "2"},
			}},
		},
		{
			name:  "push syntax",
			query: "tags[]=a&tags[]=b",
			want:  map[string]any{"tags": []any{"a", "b"}},
		},
		{
			name:  "repeated keys",
			query: "tags=a&tags=b",
			want:  map[string]any{"tags": []any{"a", "b"}},
		},
		{
			name:  "sparse indices compact",
			query: "a[1]=b&a[3]=c",
			want:  map[string]any{"a": []any{"b", "c"}},
		},
		{
			name:  "large index stays key",
			query: "a[100]=x",
			want:  map[string]any{"a": map[string]any{"100": "x"}},
		},
		{
			name:  "mixed keys stay object",
			query: "a[0]=x&a[b]=y",
			want:  map[string]any{"a": map[string]any{"0": "x", "b": "y"}},
		},
		{
			name:  "unclosed bracket",
			query: "a[b=1",
			want:  map[string]any{"a": map[string]any{"[b": "1"}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DecodeString(tc.query)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecode_DepthLimit(t *testing.T) {
	got, err := DecodeString("a[b][c][d][e][f][g]=x")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := map[string]any{"a": map[string]any{"b": map[string]any{"c": map[string]any{
		"d": map[string]any{"e": map[string]any{"f": map[string]any{"[g]": "x"}}},
	}}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_Conflict(t *testing.T) {
	if _, err := DecodeString("a=1&a[b]=2"); err == nil {
		t.Fatalf("expected conflict error")
	}
}

func TestDecode_ParameterLimit(t *testing.T) {
	values := url.Values{}
	for i := 0; i < 5; i++ {
		values.Add("k"+strconv.Itoa(i), "v")
	}
	_, err := DecodeWithOptions(values, Options{ParameterLimit: 4})
	if !errors.Is(err, ErrTooManyParameters) {
		t.Fatalf("expected ErrTooManyParameters, got %v", err)
	}
}

func TestDecode_Skip(t *testing.T) {
	values := url.Values{"_w": {"400"}, "title": {"x"}}
	got, err := DecodeWithOptions(values, Options{Skip: func(key string) bool { return key[0] == '_' }})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"title": "x"}, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeDecode(t *testing.T) {
	payload := map[string]any{
		"title": "Hello",
		"count": 3,
		"skip":  nil,
		"items": []any{map[string]any{"id": "1"}},
	}
	got, err := DecodeString(EncodeString(payload))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := map[string]any{
		"title": "Hello",
		"count": "3",
		"items": []any{map[string]any{"id": "1"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}
