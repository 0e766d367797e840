package logic

import (
	"fmt"
	"sort"
	"strings"

	"modgrip/internal/domain"
)

// SortColumn is a key mods can be ordered by
type SortColumn string

const (
	SortByRelevance SortColumn = "relevance"
	SortByDownloads SortColumn = "downloads"
	SortByName      SortColumn = "name"
	SortByOwner     SortColumn = "owner"
	SortBySize      SortColumn = "size"
)

// SortColumns lists every column in default priority order
var SortColumns = []SortColumn{SortByRelevance, SortByDownloads, SortByName, SortByOwner, SortBySize}

// SortOption orders by one column; options are applied in sequence to break ties
type SortOption struct {
	Column     SortColumn
	Descending bool
}

// DefaultSort returns the default sort options
func DefaultSort() []SortOption {
	return []SortOption{
		{Column: SortByRelevance, Descending: true},
		{Column: SortByDownloads, Descending: true},
		{Column: SortByName, Descending: false},
		{Column: SortByOwner, Descending: false},
		{Column: SortBySize, Descending: true},
	}
}

// ParseSortColumn parses a column name
func ParseSortColumn(s string) (SortColumn, error) {
	for _, c := range SortColumns {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown sort column %q", s)
}

// Prioritize returns options with column moved to the front, keeping the rest in order
func Prioritize(options []SortOption, column SortColumn) []SortOption {
	out := make([]SortOption, 0, len(options))
	for _, o := range options {
		if o.Column == column {
			out = append(out, o)
		}
	}
	for _, o := range options {
		if o.Column != column {
			out = append(out, o)
		}
	}
	return out
}

// ModSorter orders mods for a query
type ModSorter struct {
	query string
}

// NewModSorter creates a sorter; the query feeds the relevance column
func NewModSorter(query string) *ModSorter {
	return &ModSorter{query: strings.TrimSpace(query)}
}

// Sort orders mods in place. Mods that compare equal on every option keep their order.
func (s *ModSorter) Sort(mods []*domain.ModPackage, options []SortOption) {
	sort.SliceStable(mods, func(i, j int) bool {
		for _, o := range options {
			c := s.compare(mods[i], mods[j], o.Column)
			if c == 0 {
				continue
			}
			if o.Descending {
				return c > 0
			}
			return c < 0
		}
		return false
	})
}

func (s *ModSorter) compare(a, b *domain.ModPackage, column SortColumn) int {
	switch column {
	case SortByRelevance:
		return cmpInt(RelevanceScore(a, s.query), RelevanceScore(b, s.query))
	case SortByDownloads:
		return cmpInt64(a.Version.Downloads, b.Version.Downloads)
	case SortByName:
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	case SortByOwner:
		return strings.Compare(strings.ToLower(a.Owner), strings.ToLower(b.Owner))
	case SortBySize:
		return cmpInt64(a.Version.FileSize, b.Version.FileSize)
	default:
		return 0
	}
}

// RelevanceScore ranks how well a mod's name matches query: exact, then prefix, then substring
func RelevanceScore(mod *domain.ModPackage, query string) int {
	query = strings.ToLower(query)
	if query == "" {
		return 0
	}
	name := strings.ToLower(mod.Name)
	switch {
	case name == query:
		return 3
	case strings.HasPrefix(name, query):
		return 2
	case strings.Contains(name, query):
		return 1
	default:
		return 0
	}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
