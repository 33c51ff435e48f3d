// Package props defines what a template receives on every render: the
// decoded variables, the requesting agent, the locale hint, the viewport and
// optional analytics metadata.
package props

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-flayyer/pkg/agent"
	"github.com/goliatone/go-flayyer/pkg/deck"
	"github.com/goliatone/go-flayyer/pkg/sizes"
	"github.com/goliatone/go-flayyer/pkg/variables"
)

// Props is built by the rendering host right before it calls a template.
// Every variable may be absent regardless of how the template declared it.
type Props struct {
	Variables variables.Variables `json:"variables"`
	Agent     agent.Agent         `json:"agent"`
	Lang      string              `json:"lang,omitempty"`
	Width     int                 `json:"width"`
	Height    int                 `json:"height"`
	ID        string              `json:"id,omitempty"`
	Tags      []string            `json:"tags,omitempty"`
}

// DeckProps is the variant handed to templates that also need the manifest
// of the deck they belong to.
type DeckProps struct {
	Props
	Deck deck.Config `json:"deck"`
}

// ErrInvalidSize is returned by Validate when a dimension is not positive.
var ErrInvalidSize = errors.New("props: width and height must be positive")

// Locale returns the language hint, empty when none was sent.
func (p Props) Locale() string {
	return p.Lang
}

// Size returns the viewport.
func (p Props) Size() sizes.Size {
	return sizes.Size{Width: p.Width, Height: p.Height}
}

// Square reports whether the viewport has equal sides.
func (p Props) Square() bool {
	return p.Size().Square()
}

// Validate checks the fields the host must always provide.
func (p Props) Validate() error {
	if !p.Size().Positive() {
		return fmt.Errorf("%w: got %s", ErrInvalidSize, p.Size())
	}
	return nil
}

// WithDeck pairs p with a deck manifest.
func (p Props) WithDeck(cfg deck.Config) DeckProps {
	return DeckProps{Props: p, Deck: cfg}
}
