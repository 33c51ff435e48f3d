// Package deck describes the deployment manifest of a deck: a named set of
// templates published together. Define passes a manifest through untouched;
// checks are opt-in through Validate.
package deck

// Engine is the template runtime a deck is built with.
type Engine string

const (
	EngineReact           Engine = "react"
	EngineReactTypeScript Engine = "react-typescript"
	EngineVue             Engine = "vue"
	EngineVueTypeScript   Engine = "vue-typescript"
)

// Engines lists the supported runtimes.
func Engines() []Engine {
	return []Engine{EngineReact, EngineReactTypeScript, EngineVue, EngineVueTypeScript}
}

// Valid reports whether e is one of the supported runtimes.
func (e Engine) Valid() bool {
	for _, candidate := range Engines() {
		if e == candidate {
			return true
		}
	}
	return false
}

// Config is the deck manifest, usually authored as flayyer.config.yaml.
type Config struct {
	// Engine, Key and Deck are required by publishing tooling.
	Engine Engine `json:"engine" yaml:"engine"`
	Key    string `json:"key" yaml:"key"`
	Deck   string `json:"deck" yaml:"deck"`

	Name        string   `json:"name,omitempty" yaml:"name,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Homepage    string   `json:"homepage,omitempty" yaml:"homepage,omitempty"`
	License     string   `json:"license,omitempty" yaml:"license,omitempty"`
	Keywords    []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	Repository  string   `json:"repository,omitempty" yaml:"repository,omitempty"`
	Private     bool     `json:"private,omitempty" yaml:"private,omitempty"`

	// Sizes holds preset names or sizes.Free.
	Sizes []string `json:"sizes,omitempty" yaml:"sizes,omitempty"`
}

// Define returns cfg unchanged. It exists so manifests written in Go read
// the same way as the authoring tools expect and as a hook for future checks.
func Define(cfg Config) Config {
	return cfg
}
