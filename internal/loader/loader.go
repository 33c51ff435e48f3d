// Package loader reads schema and manifest documents from disk, an fs.FS,
// HTTP endpoints or memory.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/goliatone/go-flayyer/pkg/schema"
)

// Loader implements schema.Loader.
type Loader struct {
	fs      fs.FS
	http    *http.Client
	timeout time.Duration
	inline  map[string][]byte
}

var _ schema.Loader = (*Loader)(nil)

// New constructs a Loader from resolved options.
func New(options schema.LoaderOptions) *Loader {
	timeout := options.RequestTimeout

	var client *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		client = &clone
	case options.AllowHTTPFallback:
		client = &http.Client{Timeout: timeout}
	}

	return &Loader{
		fs:      options.FileSystem,
		http:    client,
		timeout: timeout,
	}
}

// Put registers an in-memory payload served for SourceInline(name).
func (l *Loader) Put(name string, raw []byte) {
	if l.inline == nil {
		l.inline = make(map[string][]byte)
	}
	l.inline[name] = append([]byte(nil), raw...)
}

// Load fetches src and wraps the payload in a Document.
func (l *Loader) Load(ctx context.Context, src schema.Source) (schema.Document, error) {
	if src == nil {
		return schema.Document{}, errors.New("loader: source is nil")
	}

	var (
		data []byte
		err  error
	)

	switch src.Kind() {
	case schema.SourceKindFile:
		data, err = loadFile(ctx, src.Location())
	case schema.SourceKindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location())
	case schema.SourceKindURL:
		if l.http == nil {
			return schema.Document{}, errors.New("loader: http support disabled")
		}
		data, err = loadHTTP(ctx, l.http, src.Location(), l.timeout)
	case schema.SourceKindInline:
		raw, ok := l.inline[src.Location()]
		if !ok {
			return schema.Document{}, fmt.Errorf("loader: inline document %q not registered", src.Location())
		}
		data = raw
	default:
		err = fmt.Errorf("loader: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return schema.Document{}, err
	}

	return schema.NewDocument(src, data)
}
