// Package flayyer gathers the contract between a rendering host and the
// templates it renders: the props every template receives, the shape its
// variables take after travelling through a query string, the size presets
// and the deck manifest.
//
// The subpackages hold the implementation; this package re-exports the
// pieces template authors reach for most.
package flayyer

import (
	"net/url"

	"github.com/goliatone/go-flayyer/pkg/agent"
	"github.com/goliatone/go-flayyer/pkg/deck"
	"github.com/goliatone/go-flayyer/pkg/props"
	"github.com/goliatone/go-flayyer/pkg/schema"
	"github.com/goliatone/go-flayyer/pkg/sizes"
)

type (
	// TemplateProps is what a template function receives.
	TemplateProps = props.Props
	// TemplateDeckProps also carries the deck manifest.
	TemplateDeckProps = props.DeckProps
	// Agent describes the crawler that requested the render.
	Agent = agent.Agent
	// Config is the deck manifest.
	Config = deck.Config
	// Size is a viewport in pixels.
	Size = sizes.Size
	// Schema describes template variables.
	Schema = schema.Schema
)

// Sizes returns a copy of the size preset table.
func Sizes() map[string]Size {
	return sizes.All()
}

// Serializable maps a variables schema to the shape it has once received.
func Serializable(s Schema) Schema {
	return schema.Serializable(s)
}

// Received is Serializable for a whole variables bag. It rejects function
// fields and non-object bags.
func Received(variables Schema) (Schema, error) {
	return schema.Received(variables)
}

// DefineConfig passes a deck manifest through unchanged.
func DefineConfig(cfg Config) Config {
	return deck.Define(cfg)
}

// PropsFromQuery decodes a render query for a template declaring variables.
func PropsFromQuery(variables Schema, values url.Values, opts ...props.Option) (TemplateProps, error) {
	return props.FromQuery(variables, values, opts...)
}
