package loader

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-flayyer/pkg/schema"
)

func TestLoader_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "variables.yaml")
	if err := os.WriteFile(path, []byte("title: string\n"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	l := New(schema.NewLoaderOptions())
	doc, err := l.Load(context.Background(), schema.SourceFromFile(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != "title: string\n" {
		t.Fatalf("unexpected payload %q", doc.Raw())
	}
	if doc.Format() != schema.FormatYAML {
		t.Fatalf("expected yaml format, got %q", doc.Format())
	}
}

func TestLoader_FS(t *testing.T) {
	files := fstest.MapFS{
		"deck/flayyer.config.json": {Data: []byte(`{"engine":"react"}`)},
	}
	l := New(schema.NewLoaderOptions(schema.WithFileSystem(files)))

	doc, err := l.Load(context.Background(), schema.SourceFromFS("deck/flayyer.config.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Format() != schema.FormatJSON {
		t.Fatalf("expected json format, got %q", doc.Format())
	}
}

func TestLoader_FSMissingFileSystem(t *testing.T) {
	l := New(schema.NewLoaderOptions())
	if _, err := l.Load(context.Background(), schema.SourceFromFS("x.json")); err == nil {
		t.Fatalf("expected error without fs")
	}
}

func TestLoader_HTTPDisabledByDefault(t *testing.T) {
	l := New(schema.NewLoaderOptions())
	_, err := l.Load(context.Background(), schema.SourceFromURL("https://example.com/schema.json"))
	if err == nil {
		t.Fatalf("expected http to be disabled")
	}
}

func TestLoader_HTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"type":"object"}`))
	}))
	defer server.Close()

	l := New(schema.NewLoaderOptions(schema.WithHTTPClient(server.Client())))
	doc, err := l.Load(context.Background(), schema.SourceFromURL(server.URL+"/schema.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != `{"type":"object"}` {
		t.Fatalf("unexpected payload %q", doc.Raw())
	}

	if _, err := l.Load(context.Background(), schema.SourceFromURL(server.URL+"/missing")); err == nil {
		t.Fatalf("expected error for 404")
	}
}

func TestLoader_HTTPRejectsOversizedDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		size := maxDocumentSize
		if r.URL.Path == "/large.json" {
			size++
		}
		_, _ = w.Write(bytes.Repeat([]byte(" "), size))
	}))
	defer server.Close()

	l := New(schema.NewLoaderOptions(schema.WithHTTPClient(server.Client())))
	_, err := l.Load(context.Background(), schema.SourceFromURL(server.URL+"/large.json"))
	if !errors.Is(err, ErrDocumentTooLarge) {
		t.Fatalf("expected ErrDocumentTooLarge, got %v", err)
	}

	raw, err := loadHTTP(context.Background(), server.Client(), server.URL+"/limit.json", 0)
	if err != nil {
		t.Fatalf("document at the limit: %v", err)
	}
	if len(raw) != maxDocumentSize {
		t.Fatalf("expected %d bytes, got %d", maxDocumentSize, len(raw))
	}
}

func TestLoader_Inline(t *testing.T) {
	l := New(schema.NewLoaderOptions())
	l.Put("simple", []byte("title: string"))

	doc, err := l.Load(context.Background(), schema.SourceInline("simple"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Location() != "simple" {
		t.Fatalf("unexpected location %q", doc.Location())
	}
	if _, err := l.Load(context.Background(), schema.SourceInline("other")); err == nil {
		t.Fatalf("expected error for unregistered inline document")
	}
}
