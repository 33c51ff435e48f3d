package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-flayyer/pkg/schema"
)

// ErrComponentNotFound is returned when a document does not declare the
// requested component schema.
var ErrComponentNotFound = errors.New("openapi: component schema not found")

// LoadComponent parses an OpenAPI document and converts
// components.schemas[name] into a variables schema. Internal references are
// resolved by the kin-openapi loader.
func LoadComponent(ctx context.Context, raw []byte, name string) (schema.Schema, error) {
	if err := ctx.Err(); err != nil {
		return schema.Schema{}, err
	}
	if len(raw) == 0 {
		return schema.Schema{}, errors.New("openapi: document payload is empty")
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return schema.Schema{}, fmt.Errorf("openapi: load document: %w", err)
	}
	if doc.Components == nil {
		return schema.Schema{}, fmt.Errorf("%w: %q", ErrComponentNotFound, name)
	}
	ref, ok := doc.Components.Schemas[name]
	if !ok || ref == nil {
		return schema.Schema{}, fmt.Errorf("%w: %q (available: %v)", ErrComponentNotFound, name, componentNames(doc.Components.Schemas))
	}
	return FromSchemaRef(ref), nil
}

// LoadComponentFrom fetches the document through loader before converting.
func LoadComponentFrom(ctx context.Context, loader schema.Loader, src schema.Source, name string) (schema.Schema, error) {
	doc, err := loader.Load(ctx, src)
	if err != nil {
		return schema.Schema{}, fmt.Errorf("openapi: load %s: %w", src.Location(), err)
	}
	return LoadComponent(ctx, doc.Raw(), name)
}

func componentNames(schemas openapi3.Schemas) []string {
	names := make([]string, 0, len(schemas))
	for name := range schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
