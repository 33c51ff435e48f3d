// Package host is a small rendering host adapter. It keeps the variables
// schema of each registered template and turns render requests into Props,
// caching decoded props by template and query.
package host

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/goliatone/go-flayyer/pkg/agent"
	"github.com/goliatone/go-flayyer/pkg/props"
	"github.com/goliatone/go-flayyer/pkg/schema"
	"github.com/goliatone/go-flayyer/pkg/variables"
)

// DefaultCacheSize is the number of decoded props kept per host.
const DefaultCacheSize = 512

// ErrUnknownTemplate is returned for template names that were never
// registered.
var ErrUnknownTemplate = errors.New("host: unknown template")

// Option configures a Host.
type Option func(*Host)

// WithLogger sets the logger. Hosts log nothing by default.
func WithLogger(logger *zap.Logger) Option {
	return func(h *Host) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithCacheSize overrides DefaultCacheSize.
func WithCacheSize(size int) Option {
	return func(h *Host) {
		h.cacheSize = size
	}
}

// WithHTMLStripping strips markup from every decoded variable.
func WithHTMLStripping() Option {
	return func(h *Host) {
		h.variables = append(h.variables, variables.WithHTMLStripping())
	}
}

// WithStrict reports undeclared variables as issues.
func WithStrict() Option {
	return func(h *Host) {
		h.variables = append(h.variables, variables.WithStrict())
	}
}

// Host resolves render requests into Props. It is safe for concurrent use.
type Host struct {
	mu          sync.RWMutex
	templates   map[string]schema.Schema
	generations map[string]uint64

	cache     *lru.Cache[string, entry]
	cacheSize int
	logger    *zap.Logger
	variables []variables.Option
}

type entry struct {
	props props.Props
	err   error
}

// New builds a Host.
func New(opts ...Option) (*Host, error) {
	h := &Host{
		templates:   make(map[string]schema.Schema),
		generations: make(map[string]uint64),
		cacheSize:   DefaultCacheSize,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	cache, err := lru.New[string, entry](h.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("host: create cache: %w", err)
	}
	h.cache = cache
	return h, nil
}

// Register declares the variables of a template. Schemas with function
// fields or a non-object bag are rejected. Registering a name again replaces
// its schema and drops cached props.
func (h *Host) Register(name string, variablesSchema schema.Schema) error {
	if name == "" {
		return errors.New("host: template name is required")
	}
	if _, err := schema.Received(variablesSchema); err != nil {
		return fmt.Errorf("host: register %q: %w", name, err)
	}

	h.mu.Lock()
	_, replaced := h.templates[name]
	h.templates[name] = variablesSchema.Clone()
	h.generations[name]++
	h.mu.Unlock()

	if replaced {
		h.cache.Purge()
	}
	h.logger.Debug("template registered", zap.String("template", name), zap.Bool("replaced", replaced))
	return nil
}

// Templates lists registered template names.
func (h *Host) Templates() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	names := make([]string, 0, len(h.templates))
	for name := range h.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Schema returns the registered schema of name.
func (h *Host) Schema(name string) (schema.Schema, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	s, ok := h.templates[name]
	if !ok {
		return schema.Schema{}, false
	}
	return s.Clone(), true
}

// lookup returns the schema of name together with its registration
// generation. Both are read under one lock so cache keys never pair a
// replaced schema with the current generation.
func (h *Host) lookup(name string) (schema.Schema, uint64, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	s, ok := h.templates[name]
	if !ok {
		return schema.Schema{}, 0, false
	}
	return s.Clone(), h.generations[name], true
}

// Props builds the props for one render of template name. When the query has
// no _ua key the agent is derived from the User-Agent header. A
// variables.Issues error comes with usable partial props.
func (h *Host) Props(ctx context.Context, name string, query url.Values, header http.Header) (props.Props, error) {
	if err := ctx.Err(); err != nil {
		return props.Props{}, err
	}
	s, generation, ok := h.lookup(name)
	if !ok {
		return props.Props{}, fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}

	var detected agent.Agent
	if query.Get(props.KeyAgent) == "" {
		detected = agent.FromUserAgent(header.Get("User-Agent"))
	}

	key := cacheKey(name, generation, query, detected)
	if cached, ok := h.cache.Get(key); ok {
		h.logger.Debug("props cache hit", zap.String("template", name))
		return cloneProps(cached.props), cloneErr(cached.err)
	}

	p, err := props.FromQuery(s, query, props.WithVariableOptions(h.variables...))
	if err != nil {
		var issues variables.Issues
		if !errors.As(err, &issues) {
			h.logger.Warn("props rejected", zap.String("template", name), zap.Error(err))
			return props.Props{}, err
		}
		h.logger.Info("props decoded with issues",
			zap.String("template", name),
			zap.Int("issues", len(issues)),
			zap.Strings("fields", issueFields(issues)),
		)
	}
	if p.Agent.Empty() {
		p.Agent = detected
	}

	h.cache.Add(key, entry{props: p, err: err})
	h.logger.Debug("props decoded",
		zap.String("template", name),
		zap.String("agent", p.Agent.Name),
		zap.Int("width", p.Width),
		zap.Int("height", p.Height),
	)
	return cloneProps(p), cloneErr(err)
}

// CacheLen reports how many decoded props are cached.
func (h *Host) CacheLen() int {
	return h.cache.Len()
}

func cacheKey(name string, generation uint64, query url.Values, detected agent.Agent) string {
	return name + "\x00" + strconv.FormatUint(generation, 10) + "\x00" + query.Encode() + "\x00" + detected.Name
}

func issueFields(issues variables.Issues) []string {
	fields := make([]string, 0, len(issues))
	for _, issue := range issues {
		fields = append(fields, issue.Field)
	}
	return fields
}

func cloneProps(p props.Props) props.Props {
	if p.Variables != nil {
		p.Variables = cloneValue(map[string]any(p.Variables)).(map[string]any)
	}
	if p.Tags != nil {
		p.Tags = append([]string(nil), p.Tags...)
	}
	return p
}

// cloneErr copies Issues so callers cannot edit the cached entry.
func cloneErr(err error) error {
	issues, ok := err.(variables.Issues)
	if !ok {
		return err
	}
	return append(variables.Issues(nil), issues...)
}

func cloneValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, child := range typed {
			out[key] = cloneValue(child)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for idx, child := range typed {
			out[idx] = cloneValue(child)
		}
		return out
	default:
		return typed
	}
}
