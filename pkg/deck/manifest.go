package deck

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-flayyer/pkg/schema"
)

// ErrEmptyManifest is returned when a manifest payload is blank.
var ErrEmptyManifest = errors.New("deck: empty manifest")

// Parse decodes a manifest from JSON or YAML.
func Parse(raw []byte) (Config, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return Config{}, ErrEmptyManifest
	}

	var cfg Config
	if trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &cfg); err != nil {
			return Config{}, fmt.Errorf("deck: decode json manifest: %w", err)
		}
		return cfg, nil
	}
	if err := yaml.Unmarshal(trimmed, &cfg); err != nil {
		return Config{}, fmt.Errorf("deck: decode yaml manifest: %w", err)
	}
	return cfg, nil
}

// Load fetches a manifest through loader and parses it.
func Load(ctx context.Context, loader schema.Loader, src schema.Source) (Config, error) {
	if loader == nil {
		return Config{}, errors.New("deck: loader is nil")
	}
	doc, err := loader.Load(ctx, src)
	if err != nil {
		return Config{}, fmt.Errorf("deck: load %s: %w", src.Location(), err)
	}
	cfg, err := Parse(doc.Raw())
	if err != nil {
		return Config{}, fmt.Errorf("%w (%s)", err, doc.Location())
	}
	return cfg, nil
}

// Marshal encodes cfg as YAML.
func Marshal(cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("deck: encode manifest: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("deck: encode manifest: %w", err)
	}
	return buf.Bytes(), nil
}

var envPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// ExpandEnv resolves ${VAR} references in the access key so manifests can be
// committed without secrets. A nil lookup uses os.LookupEnv. Unresolved
// references are kept verbatim.
func ExpandEnv(cfg Config, lookup func(string) (string, bool)) Config {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	cfg.Key = envPattern.ReplaceAllStringFunc(cfg.Key, func(match string) string {
		name := envPattern.FindStringSubmatch(match)[1]
		if value, ok := lookup(name); ok {
			return value
		}
		return match
	})
	return cfg
}
