package variables

import (
	"strings"
)

// Issue describes a decoded value that did not fit the variables schema.
type Issue struct {
	Path    string `json:"path,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Issues is returned by Normalize next to the partial bag. Values that
// produced an issue are left out of the bag.
type Issues []Issue

func (i Issues) Error() string {
	switch len(i) {
	case 0:
		return "variables: no issues"
	case 1:
		return "variables: " + i[0].String()
	default:
		parts := make([]string, 0, len(i))
		for _, issue := range i {
			parts = append(parts, issue.String())
		}
		return "variables: " + strings.Join(parts, "; ")
	}
}

func (i Issue) String() string {
	if i.Field == "" {
		return i.Message
	}
	return i.Field + ": " + i.Message
}

// Fields returns the issues keyed by dotted field path.
func (i Issues) Fields() map[string][]string {
	if len(i) == 0 {
		return nil
	}
	out := make(map[string][]string, len(i))
	for _, issue := range i {
		out[issue.Field] = append(out[issue.Field], issue.Message)
	}
	return out
}

func joinField(parent, child string) string {
	if parent == "" {
		return child
	}
	return parent + "." + child
}
