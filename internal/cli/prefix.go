// Package cli provides CLI infrastructure for postit.
package cli

import (
	"fmt"
	"strings"

	"github.com/postit-dev/postit/internal/model"
)

// MatchPrefix finds a unique candidate from a prefix.
// Returns the matched candidate or an error if ambiguous or no match.
// kind names the candidates in error messages, e.g. "priority".
func MatchPrefix(prefix string, candidates []string, kind string) (string, error) {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return "", fmt.Errorf("empty %s", kind)
	}

	// Exact matches win over prefixes
	for _, c := range candidates {
		if strings.ToLower(c) == prefix {
			return c, nil
		}
	}

	var matches []string
	for _, c := range candidates {
		if strings.HasPrefix(strings.ToLower(c), prefix) {
			matches = append(matches, c)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("unknown %s %q: must be one of %s", kind, prefix, strings.Join(candidates, ", "))
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("ambiguous %s %q matches: %s", kind, prefix, strings.Join(matches, ", "))
	}
}

// priorityNames maps the accepted spellings to priorities.
var priorityNames = map[string]model.Priority{
	"high":   model.PriorityHigh,
	"medium": model.PriorityMed,
	"low":    model.PriorityLow,
	"none":   model.PriorityNone,
}

// ParsePriority parses a priority argument. Any unambiguous prefix of high,
// medium, low or none is accepted, so "h", "med" and "medium" all work.
func ParsePriority(arg string) (model.Priority, error) {
	name, err := MatchPrefix(arg, []string{"high", "medium", "low", "none"}, "priority")
	if err != nil {
		return "", &ValidationError{Field: "priority", Message: err.Error()}
	}
	return priorityNames[name], nil
}
