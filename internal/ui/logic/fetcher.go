package logic

import (
	"slices"

	"modgrip/internal/domain"
)

// DefaultPageSize fits any installed profile on one page
const DefaultPageSize = 1000

// Result is the outcome of one query
type Result struct {
	Count    int
	mods     []*domain.ModPackage
	pageSize int
}

// Page returns the n-th page of matches, starting at 0
func (r Result) Page(n int) []*domain.ModPackage {
	if n < 0 || r.pageSize <= 0 {
		return nil
	}
	start := n * r.pageSize
	if start >= len(r.mods) {
		return nil
	}
	end := start + r.pageSize
	if end > len(r.mods) {
		end = len(r.mods)
	}
	return r.mods[start:end]
}

// Pages returns how many pages the result spans
func (r Result) Pages() int {
	if r.pageSize <= 0 || len(r.mods) == 0 {
		return 0
	}
	return (len(r.mods) + r.pageSize - 1) / r.pageSize
}

// Get finds a mod in the result by id
func (r Result) Get(id domain.ModID) *domain.ModPackage {
	for _, m := range r.mods {
		if m.ID().Equals(id) {
			return m
		}
	}
	return nil
}

// Fetcher runs a query with the given sort options
type Fetcher func(query string, sort []SortOption) Result

// ModSource provides the mods a fetcher queries
type ModSource interface {
	All() []*domain.ModPackage
}

// NewFetcher creates a fetcher over source; pageSize <= 0 uses DefaultPageSize.
// Results keep the pointers handed out by source.
func NewFetcher(source ModSource, pageSize int) Fetcher {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	return func(raw string, options []SortOption) Result {
		q := ParseQuery(raw)

		var matches []*domain.ModPackage
		for _, m := range source.All() {
			if q.Matches(m) {
				matches = append(matches, m)
			}
		}

		NewModSorter(q.Text).Sort(matches, options)

		return Result{Count: len(matches), mods: matches, pageSize: pageSize}
	}
}

// SourceFunc adapts a function to ModSource
type SourceFunc func() []*domain.ModPackage

func (f SourceFunc) All() []*domain.ModPackage { return f() }

// WithCategories narrows source to mods carrying at least one of categories.
// An empty category list leaves source unchanged.
func WithCategories(source ModSource, categories []string) ModSource {
	if len(categories) == 0 {
		return source
	}
	return SourceFunc(func() []*domain.ModPackage {
		var kept []*domain.ModPackage
		for _, m := range source.All() {
			for _, c := range categories {
				if slices.Contains(m.Categories, c) {
					kept = append(kept, m)
					break
				}
			}
		}
		return kept
	})
}

// Categories returns the distinct categories of mods, sorted
func Categories(mods []*domain.ModPackage) []string {
	var all []string
	for _, m := range mods {
		all = append(all, m.Categories...)
	}
	slices.Sort(all)
	return slices.Compact(all)
}
