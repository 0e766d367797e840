package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type helpSection struct {
	title string
	keys  [][2]string
}

var helpSections = []helpSection{
	{"Navigation", [][2]string{
		{"↑/↓, j/k", "Move up/down"},
		{"PgUp/PgDn", "Page up/down"},
		{"gg/G", "Go to top/bottom"},
		{"ctrl+d/u", "Scroll mod details"},
	}},
	{"Selection", [][2]string{
		{"Space/Enter", "Toggle the focused mod"},
		{"Shift+↑/↓", "Extend selection from the pivot"},
		{"Shift+Home/End", "Extend selection to the top/bottom"},
		{"v", "Select from the pivot to the cursor"},
		{"Esc", "Clear selection"},
		{"e", "Export selection as mods.yml"},
	}},
	{"Search & Sort", [][2]string{
		{"/", "Search mods"},
		{"s", "Sort column"},
		{"c", "Filter by category"},
	}},
	{"Profile", [][2]string{
		{"p", "Switch profile"},
		{"r", "Reload profile"},
		{"t", "Tasks"},
		{"L", "Language"},
		{"d", "Toggle descriptions"},
	}},
	{"Other", [][2]string{
		{"?", "Toggle this help"},
		{"H", "Open help in pager"},
		{"q", "Quit"},
	}},
}

// HelpContent renders the full help text
func HelpContent() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39"))

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220")).
		Width(18).
		PaddingLeft(2)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder

	help.WriteString(titleStyle.Render("modgrip Help"))
	help.WriteString("\n")

	for i, section := range helpSections {
		if i > 0 {
			help.WriteString("\n")
		}
		help.WriteString(sectionStyle.Render(section.title))
		help.WriteString("\n")
		for _, k := range section.keys {
			help.WriteString(keyStyle.Render(k[0]) + descStyle.Render(k[1]) + "\n")
		}
	}

	help.WriteString("\n")
	help.WriteString(lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")).
		Render("  Search examples: hook, category:libraries, deprecated:no"))

	return help.String()
}

// renderHelpPopup renders the scrollable window of the help text
func renderHelpPopup(height int, scrollOffset int) string {
	lines := strings.Split(HelpContent(), "\n")
	totalLines := len(lines)

	// Account for popup border and padding
	visibleHeight := height - 6
	if visibleHeight < 5 {
		visibleHeight = 5
	}

	if totalLines <= visibleHeight {
		return strings.Join(lines, "\n")
	}

	maxOffset := totalLines - visibleHeight
	if scrollOffset > maxOffset {
		scrollOffset = maxOffset
	}
	if scrollOffset < 0 {
		scrollOffset = 0
	}

	endLine := scrollOffset + visibleHeight
	lines = lines[scrollOffset:endLine]

	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	if scrollOffset > 0 {
		lines[0] = dim.Render("↑ (more above)")
	}
	if endLine < totalLines {
		lines[len(lines)-1] = dim.Render("↓ (more below)")
	}

	return strings.Join(lines, "\n")
}
