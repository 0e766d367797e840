package state

import (
	"modgrip/internal/domain"
	"modgrip/internal/ui/logic"
)

// AppState contains all the application state
type AppState struct {
	// Profile data
	Profile  domain.Profile
	Profiles map[string]string // discovered profile name -> manifest path

	// Query state
	Result      logic.Result
	Mods        []*domain.ModPackage // first page of Result, in display order
	SearchQuery string
	SortOptions []logic.SortOption
	Categories  []string // category dropdown filter, any-of

	// UI state
	Multiselect      bool
	ShowDescriptions bool
	HelpScrollOffset int
	StatusMessage    string
	Loading          bool // a profile load is in flight
	Scanning         bool // profile discovery is running

	// Dialog state
	Select  SelectState
	Tasks   TasksState
	Error   *ErrorInfo
	Confirm *ConfirmState
}

// NewAppState creates a new application state
func NewAppState() *AppState {
	return &AppState{
		Profiles:         make(map[string]string),
		SortOptions:      logic.DefaultSort(),
		Multiselect:      true,
		ShowDescriptions: true,
	}
}

// SetResult stores a query result and the rows shown for it
func (s *AppState) SetResult(result logic.Result) {
	s.Result = result
	s.Mods = result.Page(0)
}

// ModAt returns the listed mod at index, or nil
func (s *AppState) ModAt(index int) *domain.ModPackage {
	if index < 0 || index >= len(s.Mods) {
		return nil
	}
	return s.Mods[index]
}

// IndexOf returns the row of the mod with the given id, or -1
func (s *AppState) IndexOf(id domain.ModID) int {
	for i, m := range s.Mods {
		if m.ID().Equals(id) {
			return i
		}
	}
	return -1
}

// SortColumn returns the column the list is primarily ordered by
func (s *AppState) SortColumn() logic.SortColumn {
	if len(s.SortOptions) == 0 {
		return logic.SortByRelevance
	}
	return s.SortOptions[0].Column
}

// ErrorInfo is the error shown by the error dialog
type ErrorInfo struct {
	Message string
	Err     error
}

// ConfirmState is the pending confirmation question
type ConfirmState struct {
	Title   string
	Message string
	Path    string // export target
}

// TasksState tracks the tasks dialog
type TasksState struct {
	Completed bool // completed tab is showing
	Index     int
}

// SelectOption is one dropdown entry
type SelectOption struct {
	Label   string
	Value   string
	Checked bool
}

// SelectState tracks the open dropdown. Radio dropdowns keep exactly one option checked;
// multi dropdowns toggle options independently.
type SelectState struct {
	Kind    string
	Title   string
	Options []SelectOption
	Index   int
	Multi   bool
}

// Open replaces the dropdown contents and highlights the first checked option
func (s *SelectState) Open(kind, title string, options []SelectOption, multi bool) {
	s.Kind = kind
	s.Title = title
	s.Options = options
	s.Multi = multi
	s.Index = 0
	for i, o := range options {
		if o.Checked {
			s.Index = i
			break
		}
	}
}

// IsOpen reports whether a dropdown is showing
func (s *SelectState) IsOpen() bool {
	return s.Kind != ""
}

// Close hides the dropdown
func (s *SelectState) Close() {
	*s = SelectState{}
}

// Move shifts the highlight, wrapping at both ends
func (s *SelectState) Move(delta int) {
	n := len(s.Options)
	if n == 0 {
		return
	}
	s.Index = ((s.Index+delta)%n + n) % n
}

// Choose applies the highlighted option and reports its value.
// It returns false when there is nothing to choose.
func (s *SelectState) Choose() (string, bool) {
	if s.Index < 0 || s.Index >= len(s.Options) {
		return "", false
	}
	if s.Multi {
		s.Options[s.Index].Checked = !s.Options[s.Index].Checked
	} else {
		for i := range s.Options {
			s.Options[i].Checked = i == s.Index
		}
	}
	return s.Options[s.Index].Value, true
}

// CheckedValues returns the values of all checked options in order
func (s *SelectState) CheckedValues() []string {
	var values []string
	for _, o := range s.Options {
		if o.Checked {
			values = append(values, o.Value)
		}
	}
	return values
}
