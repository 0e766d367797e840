package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderPopupOverlay renders a popup centered on top of main content
func (pr *PopupRenderer) RenderPopupOverlay(mainContent, popupContent string, height, width int, popupStyle lipgloss.Style) string {
	styledPopup := popupStyle.Render(popupContent)

	modalW := lipgloss.Width(styledPopup)
	modalH := lipgloss.Height(styledPopup)
	x := (width - modalW) / 2
	y := (height - modalH) / 2
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}

	return overlay(desaturate(mainContent), styledPopup, x, y)
}

// overlay writes top over base with its top-left corner at column x, row y
func overlay(base, top string, x, y int) string {
	baseLines := strings.Split(base, "\n")
	topLines := strings.Split(top, "\n")

	for len(baseLines) < y+len(topLines) {
		baseLines = append(baseLines, "")
	}

	for i, line := range topLines {
		row := baseLines[y+i]
		if w := ansi.StringWidth(row); w < x {
			row += strings.Repeat(" ", x-w)
		}
		left := ansi.Truncate(row, x, "")
		right := ansi.TruncateLeft(row, x+ansi.StringWidth(line), "")
		baseLines[y+i] = left + line + right
	}

	return strings.Join(baseLines, "\n")
}

// desaturate strips ANSI color/style codes and recolors text dim gray
func desaturate(s string) string {
	lines := strings.Split(s, "\n")
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	for i, line := range lines {
		lines[i] = dim.Render(ansi.Strip(line))
	}
	return strings.Join(lines, "\n")
}
