package input

import (
	"modgrip/internal/domain"
	"modgrip/internal/ui/logic"
	"modgrip/internal/ui/state"
)

// SelectionCounter reports how many mods are selected
type SelectionCounter interface {
	Len() int
}

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	State     *state.AppState
	Navigator *logic.Navigator
	Selection SelectionCounter
}

// CurrentIndex returns the cursor position
func (c *ModelContext) CurrentIndex() int {
	return c.Navigator.SelectedIndex()
}

// TotalItems returns the number of listed mods
func (c *ModelContext) TotalItems() int {
	return len(c.State.Mods)
}

// HasSelection returns true if any mods are selected
func (c *ModelContext) HasSelection() bool {
	return c.SelectedCount() > 0
}

// SelectedCount returns the number of selected mods
func (c *ModelContext) SelectedCount() int {
	if c.Selection == nil {
		return 0
	}
	return c.Selection.Len()
}

// CurrentMod returns the mod under the cursor, or nil when the list is empty
func (c *ModelContext) CurrentMod() *domain.ModPackage {
	return c.State.ModAt(c.CurrentIndex())
}

// SearchQuery returns the active search query
func (c *ModelContext) SearchQuery() string {
	return c.State.SearchQuery
}

// Multiselect reports whether checkboxes are enabled
func (c *ModelContext) Multiselect() bool {
	return c.State.Multiselect
}
