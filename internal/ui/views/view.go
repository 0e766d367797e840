package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"modgrip/internal/i18n"
	"modgrip/internal/ui/state"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int

	Translator   *i18n.Translator
	ProfileName  string
	Spinner      string // current spinner frame, shown while loading
	Loading      bool
	RunningTasks int

	List       ListState
	TotalMods  int // mods matching the query
	Installed  int // mods in the profile
	Selected   int
	Detail     string // rendered mod view pane
	DetailSize int    // width of the mod view pane

	SearchInput   string // rendered text input while searching
	SearchQuery   string
	StatusMessage string
	Descriptions  bool
	Footer        string

	ShowHelp         bool
	HelpScrollOffset int
	Tasks            *TasksDialog
	Error            *state.ErrorInfo
	Confirm          *state.ConfirmState
	Select           *state.SelectState
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	modRender   *ModRenderer
	modView     *ModView
	dialogs     *DialogRenderer
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		modRender:   NewModRenderer(styles),
		modView:     NewModView(styles),
		dialogs:     NewDialogRenderer(styles),
		popupRender: NewPopupRenderer(styles),
	}
}

// ModView returns the detail pane renderer
func (r *Renderer) ModView() *ModView {
	return r.modView
}

// Mods returns the list row renderer
func (r *Renderer) Mods() *ModRenderer {
	return r.modRender
}

// Render produces the complete view
func (r *Renderer) Render(vs ViewState) string {
	tr := vs.Translator

	var sections []string
	sections = append(sections, r.renderTitleBar(vs))

	if vs.SearchInput != "" {
		sections = append(sections, r.styles.Filter.Render(tr.T("modlist.search_placeholder", nil)+": ")+vs.SearchInput)
	} else if vs.SearchQuery != "" {
		sections = append(sections, r.styles.Filter.Render("["+vs.SearchQuery+"]"))
	}

	sections = append(sections, r.renderBody(vs))
	sections = append(sections, r.renderStatus(vs))
	if vs.Footer != "" {
		sections = append(sections, r.styles.Help.Render(vs.Footer))
	}

	content := strings.Join(sections, "\n")
	finalContent := r.styles.Main.MaxHeight(vs.Height).Render(content)

	// Overlay popups on top of main content
	switch {
	case vs.Error != nil:
		return r.popupRender.RenderPopupOverlay(finalContent,
			r.dialogs.RenderError(vs.Error, tr, r.dialogWidth(vs.Width)),
			vs.Height, vs.Width, r.styles.ErrorDialog)
	case vs.Confirm != nil:
		return r.popupRender.RenderPopupOverlay(finalContent,
			r.dialogs.RenderConfirm(vs.Confirm, tr), vs.Height, vs.Width, r.styles.Dialog)
	case vs.Select != nil:
		return r.popupRender.RenderPopupOverlay(finalContent,
			r.dialogs.RenderSelect(vs.Select, tr), vs.Height, vs.Width, r.styles.Dialog)
	case vs.Tasks != nil:
		return r.popupRender.RenderPopupOverlay(finalContent,
			r.dialogs.RenderTasks(*vs.Tasks, tr), vs.Height, vs.Width, r.styles.Dialog)
	case vs.ShowHelp:
		return r.popupRender.RenderPopupOverlay(finalContent,
			renderHelpPopup(vs.Height, vs.HelpScrollOffset), vs.Height, vs.Width, r.styles.Dialog)
	}

	return finalContent
}

// renderTitleBar renders the app title, profile name and right-aligned activity indicators
func (r *Renderer) renderTitleBar(vs ViewState) string {
	tr := vs.Translator
	left := r.styles.Title.Render("modgrip")
	if vs.ProfileName != "" {
		left += r.styles.Dim.Render("  " + vs.ProfileName)
	}

	var indicators []string
	if vs.Loading {
		indicators = append(indicators, vs.Spinner+" "+tr.T("modlist.fetching_msg", nil))
	}
	if vs.RunningTasks > 0 {
		indicators = append(indicators, tr.Tf("titlebar.running_tasks", vs.RunningTasks))
	}
	if len(indicators) == 0 {
		return left
	}

	right := r.styles.Dim.Render(strings.Join(indicators, " | "))
	available := vs.Width - 4 // main container padding
	if available <= 0 {
		available = 76
	}
	gap := available - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 2 {
		gap = 2
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderBody renders the mod list and the detail pane side by side
func (r *Renderer) renderBody(vs ViewState) string {
	tr := vs.Translator

	var list string
	switch {
	case vs.Installed == 0 && vs.Loading:
		list = r.styles.Dim.Render(tr.T("modlist.fetching_msg", nil))
	case vs.Installed == 0:
		list = r.modView.RenderEmpty(
			tr.T("modlist.installed.no_mods_title", nil),
			tr.T("modlist.installed.no_mods_msg", nil))
	default:
		list = r.modRender.RenderList(vs.List)
	}

	if vs.DetailSize <= 0 {
		return list
	}

	listWidth := vs.List.Width
	left := lipgloss.NewStyle().Width(listWidth).Render(list)
	right := r.styles.Pane.Width(vs.DetailSize).Render(vs.Detail)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

// renderStatus renders counts, the status message and the descriptions switch
func (r *Renderer) renderStatus(vs ViewState) string {
	tr := vs.Translator

	parts := []string{tr.Tf("modlist.discovered_msg", vs.TotalMods)}
	if vs.Selected > 0 {
		parts = append(parts, tr.Tf("modlist.selected_msg", vs.Selected))
	}
	if vs.StatusMessage != "" {
		parts = append(parts, vs.StatusMessage)
	}
	status := r.styles.Status.Render(strings.Join(parts, " • "))

	toggle := r.styles.Status.Render(tr.T("settings.descriptions_label", nil)+" ") + r.dialogs.RenderSwitch(vs.Descriptions)
	return status + "   " + toggle
}

func (r *Renderer) dialogWidth(width int) int {
	w := width / 2
	if w < 40 {
		w = 40
	}
	if w > 72 {
		w = 72
	}
	return w
}
