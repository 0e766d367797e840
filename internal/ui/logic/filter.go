package logic

import (
	"strings"

	"modgrip/internal/domain"
)

// Query is a parsed search string
type Query struct {
	Text       string
	Category   string
	Deprecated *bool
}

// ParseQuery splits a search string into free text and prefix filters.
// Supported prefixes are "category:" and "deprecated:" (true/false/yes/no).
func ParseQuery(raw string) Query {
	var q Query
	var text []string

	for _, field := range strings.Fields(raw) {
		lower := strings.ToLower(field)
		switch {
		case strings.HasPrefix(lower, "category:"):
			q.Category = strings.TrimPrefix(lower, "category:")
		case strings.HasPrefix(lower, "deprecated:"):
			if v, ok := parseBool(strings.TrimPrefix(lower, "deprecated:")); ok {
				q.Deprecated = &v
			} else {
				text = append(text, field)
			}
		default:
			text = append(text, field)
		}
	}

	q.Text = strings.Join(text, " ")
	return q
}

// IsEmpty reports whether q matches every mod
func (q Query) IsEmpty() bool {
	return q.Text == "" && q.Category == "" && q.Deprecated == nil
}

// Matches checks if a mod passes every part of the query
func (q Query) Matches(mod *domain.ModPackage) bool {
	if q.Deprecated != nil && mod.IsDeprecated != *q.Deprecated {
		return false
	}

	if q.Category != "" && !hasCategory(mod, q.Category) {
		return false
	}

	if q.Text == "" {
		return true
	}

	text := strings.ToLower(q.Text)
	return strings.Contains(strings.ToLower(mod.Name), text) ||
		strings.Contains(strings.ToLower(mod.Owner), text) ||
		strings.Contains(strings.ToLower(mod.Version.Description), text) ||
		hasCategory(mod, text)
}

func hasCategory(mod *domain.ModPackage, category string) bool {
	for _, c := range mod.Categories {
		if strings.Contains(strings.ToLower(c), category) {
			return true
		}
	}
	return false
}

func parseBool(s string) (bool, bool) {
	switch s {
	case "true", "yes", "1":
		return true, true
	case "false", "no", "0":
		return false, true
	default:
		return false, false
	}
}
