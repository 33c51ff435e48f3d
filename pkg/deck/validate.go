package deck

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/goliatone/go-flayyer/pkg/sizes"
)

var deckPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Issue is a manifest problem reported by Validate.
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	return i.Field + ": " + i.Message
}

// Validate runs the publishing checks against cfg. Define never calls it.
func Validate(cfg Config) []Issue {
	var issues []Issue
	add := func(field, format string, args ...any) {
		issues = append(issues, Issue{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	switch {
	case cfg.Engine == "":
		add("engine", "is required")
	case !cfg.Engine.Valid():
		add("engine", "unsupported engine %q", cfg.Engine)
	}

	if strings.TrimSpace(cfg.Key) == "" {
		add("key", "is required")
	}

	switch {
	case cfg.Deck == "":
		add("deck", "is required")
	case !deckPattern.MatchString(cfg.Deck):
		add("deck", "%q must be lowercase and dash-cased", cfg.Deck)
	}

	for idx, name := range cfg.Sizes {
		if !sizes.Valid(name) {
			add(fmt.Sprintf("sizes[%d]", idx), "unknown size %q", name)
		}
	}
	return issues
}
