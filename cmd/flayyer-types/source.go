package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-flayyer/internal/loader"
	"github.com/goliatone/go-flayyer/pkg/jsonschema"
	"github.com/goliatone/go-flayyer/pkg/openapi"
	"github.com/goliatone/go-flayyer/pkg/schema"
)

// Schema file formats accepted by --format.
const (
	formatJSONSchema = "jsonschema"
	formatLiteral    = "literal"
	formatOpenAPI    = "openapi"
)

func newLoader() *loader.Loader {
	return loader.New(schema.NewLoaderOptions(schema.WithHTTPFallback(timeout)))
}

func sourceFor(location string) schema.Source {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return schema.SourceFromURL(location)
	}
	return schema.SourceFromFile(location)
}

// readSchema loads a variables schema from a file or URL. component names
// the OpenAPI component schema when format is "openapi".
func readSchema(ctx context.Context, location, format, component string) (schema.Schema, error) {
	if location == "" {
		return schema.DefaultVariables(), nil
	}
	doc, err := newLoader().Load(ctx, sourceFor(location))
	if err != nil {
		return schema.Schema{}, err
	}

	var parsed schema.Schema
	switch format {
	case "", formatJSONSchema:
		parsed, err = jsonschema.Parse(doc.Raw())
	case formatLiteral:
		parsed, err = schema.ParseLiteral(doc.Raw())
	case formatOpenAPI:
		if component == "" {
			return schema.Schema{}, fmt.Errorf("--component is required with --format %s", formatOpenAPI)
		}
		parsed, err = openapi.LoadComponent(ctx, doc.Raw(), component)
	default:
		return schema.Schema{}, fmt.Errorf("unknown schema format %q (want %s, %s or %s)", format, formatJSONSchema, formatLiteral, formatOpenAPI)
	}
	if err != nil {
		return schema.Schema{}, fmt.Errorf("%s: %w", doc.Location(), err)
	}
	logger.Debug("schema loaded", zapLocation(doc.Location()), zapFormat(format))
	return parsed, nil
}
