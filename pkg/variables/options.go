package variables

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// Option configures Normalize.
type Option func(*options)

type options struct {
	sanitize func(string) string
	strict   bool
}

// WithSanitizer runs fn over every text leaf after coercion.
func WithSanitizer(fn func(string) string) Option {
	return func(o *options) {
		o.sanitize = fn
	}
}

// WithHTMLStripping removes markup from text leaves using a strict policy.
func WithHTMLStripping() Option {
	return WithSanitizer(StripHTML)
}

// WithStrict reports undeclared keys and surplus tuple elements as issues
// instead of silently dropping them.
func WithStrict() Option {
	return func(o *options) {
		o.strict = true
	}
}

var (
	stripPolicyOnce sync.Once
	stripPolicy     *bluemonday.Policy
)

// StripHTML removes every tag from value and trims the result.
func StripHTML(value string) string {
	stripPolicyOnce.Do(func() {
		stripPolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(stripPolicy.Sanitize(value))
}
