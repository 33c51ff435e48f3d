package flayyer

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-flayyer/pkg/schema"
)

func TestReceived_EndToEnd(t *testing.T) {
	logical := schema.Object(map[string]schema.Schema{
		"title": schema.String(),
		"count": schema.Number(),
		"items": schema.Array(schema.Object(map[string]schema.Schema{"id": schema.Number()}, "id")),
	}, "title", "count", "items")

	got, err := Received(logical)
	if err != nil {
		t.Fatalf("Received: %v", err)
	}
	want := schema.Object(map[string]schema.Schema{
		"title": schema.String(),
		"count": schema.String(),
		"items": schema.Array(schema.Object(map[string]schema.Schema{"id": schema.String()})),
	})
	if !schema.Equal(want, got) {
		t.Fatalf("received shape mismatch:\n%s", cmp.Diff(want, got))
	}
}

func TestSizes_Copy(t *testing.T) {
	table := Sizes()
	table["BANNER"] = Size{}
	if Sizes()["BANNER"] != (Size{Width: 1200, Height: 630}) {
		t.Fatalf("size table must be immutable")
	}
}

func TestDefineConfig_Identity(t *testing.T) {
	cfg := Config{Deck: "x"}
	if diff := cmp.Diff(cfg, DefineConfig(cfg)); diff != "" {
		t.Fatalf("DefineConfig changed config (-want +got):\n%s", diff)
	}
}

func TestPropsFromQuery(t *testing.T) {
	p, err := PropsFromQuery(Schema{}, url.Values{"title": {"Hi"}})
	if err != nil {
		t.Fatalf("PropsFromQuery: %v", err)
	}
	if p.Variables.StringOr("", "title") != "Hi" || p.Width != 1200 {
		t.Fatalf("unexpected props: %#v", p)
	}
}

func TestNewLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vars.yaml")
	if err := os.WriteFile(path, []byte("title: string\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	doc, err := NewLoader().Load(context.Background(), schema.SourceFromFile(path))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.Format() != schema.FormatYAML {
		t.Fatalf("expected yaml format, got %v", doc.Format())
	}
}
