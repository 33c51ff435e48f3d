// Package sizes holds the symbolic output size presets shared by templates
// and deck manifests.
package sizes

import (
	"fmt"
	"strings"
)

// Size is a render viewport in pixels.
type Size struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Preset names.
const (
	Thumbnail = "THUMBNAIL"
	Banner    = "BANNER"
	Vertical  = "VERTICAL"
	Square    = "SQUARE"
	Story     = "STORY"
)

// Free marks a deck that accepts any output size.
const Free = "FREE"

var order = []string{Thumbnail, Banner, Vertical, Square, Story}

var presets = map[string]Size{
	Thumbnail: {Width: 400, Height: 400},
	Banner:    {Width: 1200, Height: 630},
	Vertical:  {Width: 800, Height: 1200},
	Square:    {Width: 1080, Height: 1080},
	Story:     {Width: 1080, Height: 1920},
}

// Lookup returns the preset registered under name. Names are exact and
// upper-case.
func Lookup(name string) (Size, bool) {
	size, ok := presets[name]
	return size, ok
}

// MustLookup is Lookup for names known at compile time.
func MustLookup(name string) Size {
	size, ok := Lookup(name)
	if !ok {
		panic(fmt.Sprintf("sizes: unknown preset %q", name))
	}
	return size
}

// Names lists the preset names from smallest to tallest.
func Names() []string {
	return append([]string(nil), order...)
}

// All returns a copy of the preset table.
func All() map[string]Size {
	out := make(map[string]Size, len(presets))
	for name, size := range presets {
		out[name] = size
	}
	return out
}

// IsPreset reports whether name is one of the presets.
func IsPreset(name string) bool {
	_, ok := presets[name]
	return ok
}

// Valid accepts a preset name or the FREE marker.
func Valid(name string) bool {
	return name == Free || IsPreset(name)
}

// Match returns the preset name whose dimensions equal s.
func Match(s Size) (string, bool) {
	for _, name := range order {
		if presets[name] == s {
			return name, true
		}
	}
	return "", false
}

// Positive reports whether both dimensions are greater than zero.
func (s Size) Positive() bool {
	return s.Width > 0 && s.Height > 0
}

// Square reports whether the viewport has equal sides.
func (s Size) Square() bool {
	return s.Width == s.Height
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Normalize upper-cases a user supplied preset name.
func Normalize(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}
