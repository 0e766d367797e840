package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title       lipgloss.Style
	Dim         lipgloss.Style
	Status      lipgloss.Style
	Filter      lipgloss.Style
	Help        lipgloss.Style
	Main        lipgloss.Style
	Scroll      lipgloss.Style
	Highlight   lipgloss.Style
	SelectionBg lipgloss.Style
	Checked     lipgloss.Style
	Pivot       lipgloss.Style
	Owner       lipgloss.Style
	Version     lipgloss.Style
	Size        lipgloss.Style
	Badge       lipgloss.Style
	Pane        lipgloss.Style
	Label       lipgloss.Style
	Satisfied   lipgloss.Style
	Missing     lipgloss.Style
	Dialog      lipgloss.Style
	ErrorDialog lipgloss.Style
	DialogTitle lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	StatusError lipgloss.Style
	StatusOK    lipgloss.Style
	SwitchOn    lipgloss.Style
	SwitchOff   lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Dim: lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Filter: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Help:   lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2),
		Scroll:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Highlight:   lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		SelectionBg: lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Checked:     lipgloss.NewStyle().Foreground(lipgloss.Color("78")), // green
		Pivot:       lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		Owner:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Version:     lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		Size:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Badge: lipgloss.NewStyle().
			Foreground(lipgloss.Color("232")).
			Background(lipgloss.Color("214")).
			Padding(0, 1),
		Pane: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("241")).
			PaddingLeft(2),
		Label:     lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		Satisfied: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		Missing:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(1, 2),
		ErrorDialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("203")).
			Padding(1, 2),
		DialogTitle: lipgloss.NewStyle().Bold(true).MarginBottom(1),
		TabActive: lipgloss.NewStyle().
			Bold(true).
			Underline(true).
			Foreground(lipgloss.Color("99")),
		TabInactive: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusOK:    lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		SwitchOn: lipgloss.NewStyle().
			Foreground(lipgloss.Color("232")).
			Background(lipgloss.Color("78")),
		SwitchOff: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("238")),
	}
}
