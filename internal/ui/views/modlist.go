package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"modgrip/internal/domain"
	"modgrip/internal/format"
)

// RowState is what a single list row needs to know about its mod
type RowState struct {
	Focused      bool
	Selected     bool
	Pivot        bool
	ShowCheckbox bool
	Description  bool
	SearchQuery  string
	Width        int
}

// ModRenderer handles rendering of mod list rows
type ModRenderer struct {
	styles *Styles
}

// NewModRenderer creates a new mod renderer
func NewModRenderer(styles *Styles) *ModRenderer {
	return &ModRenderer{styles: styles}
}

// RowHeight returns the number of lines one row takes
func (r *ModRenderer) RowHeight(description bool) int {
	if description {
		return 2
	}
	return 1
}

// RenderMod renders one mod as a list row: checkbox, pivot marker, name • owner • version, size,
// and optionally its description on a second line
func (r *ModRenderer) RenderMod(mod *domain.ModPackage, row RowState) string {
	if mod == nil {
		return ""
	}

	bg := lipgloss.NewStyle()
	if row.Focused {
		bg = r.styles.SelectionBg
	}

	var parts []string

	if row.ShowCheckbox {
		box := "[ ]"
		style := bg
		if row.Selected {
			box = "[x]"
			style = r.styles.Checked.Inherit(bg)
		}
		parts = append(parts, style.Render(box), bg.Render(" "))
	}

	marker := " "
	if row.Pivot {
		marker = "›"
	}
	parts = append(parts, r.styles.Pivot.Inherit(bg).Render(marker), bg.Render(" "))

	name := mod.Name
	nameStyle := bg.Bold(row.Selected)
	if row.SearchQuery != "" {
		name = r.highlightMatch(name, row.SearchQuery, r.styles.Highlight.Inherit(bg), nameStyle)
	} else {
		name = nameStyle.Render(name)
	}
	parts = append(parts,
		name,
		bg.Render(" • "),
		r.styles.Owner.Inherit(bg).Render(mod.Owner),
		bg.Render(" • "),
		r.styles.Version.Inherit(bg).Render(mod.Version.VersionNumber),
	)

	if mod.IsDeprecated {
		parts = append(parts, bg.Render(" "), r.styles.StatusError.Inherit(bg).Render("✗"))
	}

	line := strings.Join(parts, "")
	size := r.styles.Size.Inherit(bg).Render(format.HumanizeFileSize(mod.Version.FileSize, true))
	line = r.alignRight(line, size, row.Width, bg)

	if !row.Description {
		return line
	}

	indent := 2
	if row.ShowCheckbox {
		indent += 4
	}
	desc := strings.ReplaceAll(mod.Version.Description, "\n", " ")
	if row.Width > indent {
		desc = ansi.Truncate(desc, row.Width-indent, "…")
	}
	return line + "\n" + strings.Repeat(" ", indent) + r.styles.Dim.Render(desc)
}

// alignRight pads left so that right ends at width
func (r *ModRenderer) alignRight(left, right string, width int, bg lipgloss.Style) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if width <= 0 || gap < 1 {
		return left + bg.Render(" ") + right
	}
	return left + bg.Render(strings.Repeat(" ", gap)) + right
}

// highlightMatch highlights matching text within a string
func (r *ModRenderer) highlightMatch(text, query string, highlightStyle, normalStyle lipgloss.Style) string {
	lowerText := strings.ToLower(text)
	lowerQuery := strings.ToLower(query)

	index := strings.Index(lowerText, lowerQuery)
	if index == -1 {
		return normalStyle.Render(text)
	}

	before := text[:index]
	match := text[index : index+len(query)]
	after := text[index+len(query):]

	var result []string
	if before != "" {
		result = append(result, normalStyle.Render(before))
	}
	result = append(result, highlightStyle.Render(match))
	if after != "" {
		result = append(result, normalStyle.Render(after))
	}

	return strings.Join(result, "")
}

// ListState is what the list renderer needs. Start and End bound the visible rows; MoreAbove
// and MoreBelow switch on the scroll indicators.
type ListState struct {
	Mods         []*domain.ModPackage
	Cursor       int
	Start        int
	End          int
	MoreAbove    bool
	MoreBelow    bool
	IsSelected   func(*domain.ModPackage) bool
	IsPivot      func(*domain.ModPackage) bool
	ShowCheckbox bool
	Descriptions bool
	SearchQuery  string
	Width        int
}

// RenderList renders the visible window of the list with scroll indicators
func (r *ModRenderer) RenderList(ls ListState) string {
	var lines []string

	if ls.MoreAbove {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↑ %d more above ↑", ls.Start)))
	}

	for i := ls.Start; i < ls.End && i < len(ls.Mods); i++ {
		mod := ls.Mods[i]
		lines = append(lines, r.RenderMod(mod, RowState{
			Focused:      i == ls.Cursor,
			Selected:     ls.IsSelected != nil && ls.IsSelected(mod),
			Pivot:        ls.IsPivot != nil && ls.IsPivot(mod),
			ShowCheckbox: ls.ShowCheckbox,
			Description:  ls.Descriptions,
			SearchQuery:  ls.SearchQuery,
			Width:        ls.Width,
		}))
	}

	if ls.MoreBelow {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↓ %d more below ↓", len(ls.Mods)-ls.End)))
	}

	return strings.Join(lines, "\n")
}
