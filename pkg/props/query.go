package props

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/goliatone/go-flayyer/pkg/agent"
	"github.com/goliatone/go-flayyer/pkg/qs"
	"github.com/goliatone/go-flayyer/pkg/schema"
	"github.com/goliatone/go-flayyer/pkg/sizes"
	"github.com/goliatone/go-flayyer/pkg/variables"
)

// Reserved query keys. Everything else is a template variable.
const (
	KeyWidth  = "_w"
	KeyHeight = "_h"
	KeySize   = "_size"
	KeyAgent  = "_ua"
	KeyLang   = "_lang"
	KeyID     = "_id"
	KeyTags   = "_tags"
)

var reserved = map[string]struct{}{
	KeyWidth: {}, KeyHeight: {}, KeySize: {}, KeyAgent: {}, KeyLang: {}, KeyID: {}, KeyTags: {},
}

// IsReserved reports whether key is consumed by FromQuery itself.
func IsReserved(key string) bool {
	_, ok := reserved[key]
	return ok
}

// Option configures FromQuery.
type Option func(*options)

type options struct {
	variables   []variables.Option
	query       qs.Options
	defaultSize sizes.Size
}

// WithVariableOptions forwards opts to variables.Normalize.
func WithVariableOptions(opts ...variables.Option) Option {
	return func(o *options) {
		o.variables = append(o.variables, opts...)
	}
}

// WithQueryOptions overrides the qs decoding limits.
func WithQueryOptions(q qs.Options) Option {
	return func(o *options) {
		o.query = q
	}
}

// WithDefaultSize sets the viewport used when the query names none.
func WithDefaultSize(size sizes.Size) Option {
	return func(o *options) {
		o.defaultSize = size
	}
}

// FromQuery builds Props from a render URL query. Variables are decoded with
// qs and normalized against the received shape of s. When only some
// variables fail, the props are returned together with a variables.Issues
// error; any other error returns zero props.
func FromQuery(s schema.Schema, values url.Values, opts ...Option) (Props, error) {
	cfg := options{defaultSize: sizes.MustLookup(sizes.Banner)}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	p := Props{
		Width:  cfg.defaultSize.Width,
		Height: cfg.defaultSize.Height,
		Lang:   strings.TrimSpace(values.Get(KeyLang)),
		ID:     values.Get(KeyID),
		Agent:  agent.Agent{Name: values.Get(KeyAgent)},
		Tags:   splitTags(values[KeyTags]),
	}

	if name := values.Get(KeySize); name != "" {
		size, ok := sizes.Lookup(sizes.Normalize(name))
		if !ok {
			return Props{}, fmt.Errorf("props: unknown size %q", name)
		}
		p.Width, p.Height = size.Width, size.Height
	}

	var err error
	if p.Width, err = dimension(values, KeyWidth, p.Width); err != nil {
		return Props{}, err
	}
	if p.Height, err = dimension(values, KeyHeight, p.Height); err != nil {
		return Props{}, err
	}
	if err := p.Validate(); err != nil {
		return Props{}, err
	}

	query := cfg.query
	skip := query.Skip
	query.Skip = func(key string) bool {
		return IsReserved(key) || (skip != nil && skip(key))
	}
	raw, err := qs.DecodeWithOptions(values, query)
	if err != nil {
		return Props{}, fmt.Errorf("props: decode variables: %w", err)
	}

	vars, err := variables.Normalize(s, raw, cfg.variables...)
	if err != nil {
		var issues variables.Issues
		if !errors.As(err, &issues) {
			return Props{}, err
		}
		p.Variables = vars
		return p, err
	}
	p.Variables = vars
	return p, nil
}

// ToQuery encodes p back into render URL parameters.
func ToQuery(p Props) url.Values {
	values := qs.Encode(map[string]any(p.Variables))
	values.Set(KeyWidth, strconv.Itoa(p.Width))
	values.Set(KeyHeight, strconv.Itoa(p.Height))
	if p.Agent.Name != "" {
		values.Set(KeyAgent, p.Agent.Name)
	}
	if p.Lang != "" {
		values.Set(KeyLang, p.Lang)
	}
	if p.ID != "" {
		values.Set(KeyID, p.ID)
	}
	if len(p.Tags) > 0 {
		values.Set(KeyTags, strings.Join(p.Tags, ","))
	}
	return values
}

func dimension(values url.Values, key string, fallback int) (int, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("props: invalid %s %q: %w", key, raw, err)
	}
	return n, nil
}

func splitTags(list []string) []string {
	var tags []string
	for _, entry := range list {
		for _, tag := range strings.Split(entry, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
	}
	return tags
}
