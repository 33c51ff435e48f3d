package schema

import (
	"fmt"
	"net/url"
	"path/filepath"
)

// Source identifies where a document came from so loaders can read files,
// fs.FS entries, URLs or in-memory payloads without leaking how.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile   SourceKind = "file"
	SourceKindFS     SourceKind = "fs"
	SourceKindURL    SourceKind = "url"
	SourceKindInline SourceKind = "inline"
)

type fileSource struct{ path string }

func (s fileSource) Kind() SourceKind  { return SourceKindFile }
func (s fileSource) Location() string { return s.path }

// SourceFromFile returns a Source pointing to a path on disk.
func SourceFromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

type fsSource struct{ name string }

func (s fsSource) Kind() SourceKind  { return SourceKindFS }
func (s fsSource) Location() string { return s.name }

// SourceFromFS returns a Source naming an entry inside an fs.FS.
func SourceFromFS(name string) Source {
	return fsSource{name: name}
}

type urlSource struct{ raw string }

func (s urlSource) Kind() SourceKind  { return SourceKindURL }
func (s urlSource) Location() string { return s.raw }

// SourceFromURL parses raw and returns a Source. It panics on invalid URLs so
// configuration mistakes surface early.
func SourceFromURL(raw string) Source {
	if raw == "" {
		panic("schema: empty URL source")
	}
	if _, err := url.ParseRequestURI(raw); err != nil {
		panic(fmt.Sprintf("schema: invalid URL %q: %v", raw, err))
	}
	return urlSource{raw: raw}
}

type inlineSource struct{ name string }

func (s inlineSource) Kind() SourceKind  { return SourceKindInline }
func (s inlineSource) Location() string { return s.name }

// SourceInline labels a payload that is already in memory, such as a schema
// embedded in a template package.
func SourceInline(name string) Source {
	return inlineSource{name: name}
}
