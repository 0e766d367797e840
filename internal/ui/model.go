package ui

import (
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"modgrip/internal/config"
	"modgrip/internal/domain"
	"modgrip/internal/eventbus"
	"modgrip/internal/i18n"
	"modgrip/internal/profile"
	"modgrip/internal/tasks"
	"modgrip/internal/ui/commands"
	"modgrip/internal/ui/handlers"
	"modgrip/internal/ui/input"
	inputtypes "modgrip/internal/ui/input/types"
	"modgrip/internal/ui/logic"
	"modgrip/internal/ui/services/events"
	"modgrip/internal/ui/services/selection"
	"modgrip/internal/ui/state"
	"modgrip/internal/ui/views"
)

// ModSelection is the selection controller of the mod list. Selected mods are keyed by owner
// and name and remember the version that was selected.
type ModSelection = selection.Controller[*domain.ModPackage, domain.ModID, string]

// Model represents the UI state
type Model struct {
	bus    eventbus.EventBus
	config *config.Config
	state  *state.AppState // centralized state
	tr     *i18n.Translator

	// UI-specific state not in AppState
	width       int
	height      int
	listWidth   int
	help        help.Model
	keys        keyMap
	spinner     spinner.Model
	detail      viewport.Model
	detailKey   string // what the detail pane was last rendered for
	inPagerMode bool   // tracks if we're currently in pager mode

	store     profile.ModStore
	tasks     *tasks.Manager
	fetcher   logic.Fetcher
	navigator *logic.Navigator
	selection *ModSelection
	uiBus     *events.Bus

	renderer     *views.Renderer
	eventHandler *handlers.EventHandler
	cmdExecutor  *commands.Executor
	inputHandler *input.Handler
	helpOps      *HelpOps

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model
func NewModel(bus eventbus.EventBus, cfg *config.Config, store profile.ModStore, manager *tasks.Manager, tr *i18n.Translator) *Model {
	appState := state.NewAppState()
	appState.Multiselect = cfg.UISettings.Multiselect
	appState.ShowDescriptions = cfg.UISettings.ShowDescriptions
	if column, err := logic.ParseSortColumn(cfg.UISettings.Sort); err == nil {
		appState.SortOptions = logic.Prioritize(appState.SortOptions, column)
	}

	m := &Model{
		bus:          bus,
		config:       cfg,
		state:        appState,
		tr:           tr,
		help:         help.New(),
		keys:         newKeyMap(),
		spinner:      spinner.New(spinner.WithSpinner(spinner.Dot)),
		detail:       viewport.New(0, 0),
		store:        store,
		tasks:        manager,
		fetcher:      logic.NewFetcher(store, 0),
		navigator:    logic.NewNavigator(),
		uiBus:        events.NewBus(),
		renderer:     views.NewRenderer(),
		inputHandler: input.New(),
	}
	m.renderer.ModView().SetWordWrap(cfg.UISettings.WordWrap)

	m.selection = selection.New(
		func() []*domain.ModPackage { return m.state.Mods },
		(*domain.ModPackage).ID,
		func(mod *domain.ModPackage) string { return mod.Version.VersionNumber },
		m.focusedMod,
	)
	m.selection.SetBus(m.uiBus)
	m.uiBus.Subscribe(events.TypeOf(selection.ChangedEvent{}), m.onSelectionChanged)
	m.uiBus.Subscribe(events.TypeOf(selection.ClearedEvent{}), m.onSelectionChanged)

	m.eventHandler = handlers.NewEventHandler(appState, handlers.Hooks{
		Refresh:        m.refresh,
		ProfileChanged: m.resetList,
		ShowError:      m.showError,
	})
	m.cmdExecutor = commands.NewExecutor(appState, bus, manager)

	m.refresh()
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.helpOps = NewHelpOps(p)
}

// Selection returns the mod list's selection controller
func (m *Model) Selection() *ModSelection {
	return m.selection
}

// Init requests the configured profile and starts the animations
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.cmdExecutor.ExecuteLoadProfile(m.config.Profile.Manifest),
		m.spinner.Tick,
		tick(),
	)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		actions, cmd := m.inputHandler.HandleKey(msg, m.context())

		cmds := []tea.Cmd{cmd}
		for _, action := range actions {
			cmds = append(cmds, m.processAction(action))
		}
		// Entering or leaving search changes the list height
		m.updateLayout()
		return m, tea.Batch(cmds...)

	default:
		// The text input only cares about its own blink messages
		inputCmd := m.inputHandler.Update(msg)
		model, cmd := m.handleNonKeyboardMsg(msg)
		return model, tea.Batch(inputCmd, cmd)
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.inPagerMode {
		return ""
	}

	start, end, above, below := m.navigator.VisibleRange()
	selected := m.selection.Len()

	vs := views.ViewState{
		Width:        m.width,
		Height:       m.height,
		Translator:   m.tr,
		ProfileName:  m.state.Profile.Name,
		Spinner:      m.spinner.View(),
		Loading:      m.state.Loading,
		RunningTasks: m.runningTasks(),
		List: views.ListState{
			Mods:         m.state.Mods,
			Cursor:       m.navigator.SelectedIndex(),
			Start:        start,
			End:          end,
			MoreAbove:    above,
			MoreBelow:    below,
			IsSelected:   func(mod *domain.ModPackage) bool { return m.selection.Has(mod.ID()) },
			IsPivot:      m.selection.IsPivot,
			ShowCheckbox: m.state.Multiselect || selected > 0,
			Descriptions: m.state.ShowDescriptions,
			SearchQuery:  logic.ParseQuery(m.state.SearchQuery).Text,
			Width:        m.listWidth,
		},
		TotalMods:        m.state.Result.Count,
		Installed:        m.store.Len(),
		Selected:         selected,
		Detail:           m.detail.View(),
		DetailSize:       m.detail.Width,
		SearchQuery:      m.state.SearchQuery,
		StatusMessage:    m.state.StatusMessage,
		Descriptions:     m.state.ShowDescriptions,
		Footer:           m.help.View(m.keys.withSelection(selected > 0)),
		HelpScrollOffset: m.state.HelpScrollOffset,
		Error:            m.state.Error,
		Confirm:          m.state.Confirm,
	}
	if vs.DetailSize > 0 {
		vs.DetailSize += detailPadding
	}

	if ti := m.inputHandler.TextInput(); ti != nil {
		vs.SearchInput = ti.View()
	}
	if m.state.Select.IsOpen() {
		vs.Select = &m.state.Select
	}

	switch m.inputHandler.CurrentMode() {
	case inputtypes.ModeHelp:
		vs.ShowHelp = true
	case inputtypes.ModeTasks:
		vs.Tasks = &views.TasksDialog{
			Completed: m.state.Tasks.Completed,
			Index:     m.state.Tasks.Index,
			Tasks:     m.visibleTasks(),
		}
	}

	return m.renderer.Render(vs)
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		m.navigate(a.Direction)

	case inputtypes.ToggleSelectAction:
		index := m.navigator.SelectedIndex()
		if mod := m.state.ModAt(index); mod != nil {
			m.selection.Toggle(mod, index)
		}

	case inputtypes.RangeSelectAction:
		if a.Direction != "" {
			m.navigate(a.Direction)
		}
		index := m.navigator.SelectedIndex()
		if mod := m.state.ModAt(index); mod != nil {
			m.selection.SelectRange(mod, index)
		}

	case inputtypes.ClearSelectionAction:
		m.selection.Clear()

	case inputtypes.UpdateTextAction:
		m.setQuery(a.Text)

	case inputtypes.SubmitTextAction:
		m.setQuery(strings.TrimSpace(a.Text))

	case inputtypes.CancelTextAction:
		m.setQuery("")

	case inputtypes.OpenSelectAction:
		return m.openSelect(a.Kind)

	case inputtypes.MoveSelectAction:
		m.state.Select.Move(a.Delta)

	case inputtypes.ChooseSelectAction:
		return m.chooseSelect()

	case inputtypes.CloseDialogAction:
		m.state.Select.Close()

	case inputtypes.ExportAction:
		return m.confirmExport()

	case inputtypes.ConfirmAction:
		confirm := m.state.Confirm
		m.state.Confirm = nil
		if a.Accepted && confirm != nil {
			return m.cmdExecutor.ExecuteExport(confirm.Path, m.selectedMods())
		}

	case inputtypes.SwitchTabAction:
		m.state.Tasks.Completed = !m.state.Tasks.Completed
		m.state.Tasks.Index = 0

	case inputtypes.MoveTaskAction:
		m.moveTask(a.Delta)

	case inputtypes.CopyURLAction:
		list := m.visibleTasks()
		if i := m.state.Tasks.Index; i >= 0 && i < len(list) {
			return m.cmdExecutor.ExecuteCopy(list[i].Metadata.URL)
		}

	case inputtypes.ClearCacheAction:
		return m.cmdExecutor.ExecuteClearCache(config.CacheDir())

	case inputtypes.IgnoreErrorAction:
		m.state.Error = nil

	case inputtypes.ReloadAction:
		return m.cmdExecutor.ExecuteLoadProfile(m.state.Profile.Path)

	case inputtypes.ToggleDescriptionsAction:
		m.state.ShowDescriptions = !m.state.ShowDescriptions
		m.updateLayout()
		return m.cmdExecutor.ExecuteSaveSettings("")

	case inputtypes.ScrollHelpAction:
		m.state.HelpScrollOffset += a.Delta
		if m.state.HelpScrollOffset < 0 {
			m.state.HelpScrollOffset = 0
		}

	case inputtypes.OpenPagerAction:
		return m.showHelpPager()

	case inputtypes.ScrollDetailAction:
		if a.Delta > 0 {
			m.detail.ScrollDown(a.Delta)
		} else {
			m.detail.ScrollUp(-a.Delta)
		}

	case inputtypes.QuitAction:
		return tea.Quit
	}

	return nil
}

// handleNonKeyboardMsg handles non-keyboard messages
func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EventMsg:
		cmd := m.eventHandler.HandleEvent(msg.Event)
		m.syncDetail()
		return m, cmd

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tickMsg:
		// Don't continue tick loop if we're in pager mode
		if m.inPagerMode {
			return m, nil
		}
		return m, tick()

	case commands.ExportedMsg:
		if msg.Err != nil {
			m.showError(&state.ErrorInfo{Message: "Export failed", Err: msg.Err})
			return m, nil
		}
		m.state.StatusMessage = m.tr.T("modlist.export.done_msg", map[string]any{
			"Count": msg.Count,
			"Path":  msg.Path,
		})
		return m, clearStatusAfter(3 * time.Second)

	case commands.CopiedMsg:
		if msg.Err != nil {
			log.Printf("Clipboard write failed: %v", msg.Err)
			m.state.StatusMessage = msg.Err.Error()
		} else {
			m.state.StatusMessage = m.tr.T("task_manager.copied_msg", nil)
		}
		return m, clearStatusAfter(3 * time.Second)

	case helpPagerMsg:
		if msg.err != nil {
			log.Printf("Help pager failed: %v", msg.err)
			return m, m.setMode(inputtypes.ModeHelp)
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, tick()

	case clearStatusMsg:
		m.state.StatusMessage = ""
		return m, nil
	}

	return m, nil
}

// context creates the read-only view of the model the input modes work with
func (m *Model) context() *input.ModelContext {
	return &input.ModelContext{
		State:     m.state,
		Navigator: m.navigator,
		Selection: m.selection,
	}
}

// setMode switches the input mode outside of a key press
func (m *Model) setMode(mode inputtypes.Mode) tea.Cmd {
	actions, cmd := m.inputHandler.SetMode(mode, m.context())
	cmds := []tea.Cmd{cmd}
	for _, action := range actions {
		cmds = append(cmds, m.processAction(action))
	}
	return tea.Batch(cmds...)
}

func (m *Model) focusedMod() (*domain.ModPackage, bool) {
	mod := m.state.ModAt(m.navigator.SelectedIndex())
	return mod, mod != nil
}

func (m *Model) navigate(direction string) {
	switch direction {
	case "up":
		m.navigator.MoveBy(-1)
	case "down":
		m.navigator.MoveBy(1)
	case "pageup":
		m.navigator.PageUp()
	case "pagedown":
		m.navigator.PageDown()
	case "home":
		m.navigator.Home()
	case "end":
		m.navigator.End()
	}
}

// refresh re-runs the current query and keeps the cursor on the focused mod
func (m *Model) refresh() {
	focused, hadFocus := m.focusedMod()

	m.state.SetResult(m.fetcher(m.state.SearchQuery, m.state.SortOptions))
	m.updateLayout()

	if hadFocus {
		if i := m.state.IndexOf(focused.ID()); i >= 0 {
			m.navigator.SetSelectedIndex(i)
		}
	}
	m.syncDetail()
}

// resetList forgets everything tied to the previous profile
func (m *Model) resetList() {
	m.selection.Clear()
	m.state.SetResult(logic.Result{})
	m.state.Categories = nil
	m.fetcher = logic.NewFetcher(m.store, 0)
	m.navigator.Home()
}

func (m *Model) setQuery(query string) {
	if query == m.state.SearchQuery {
		return
	}
	m.state.SearchQuery = query
	m.refresh()
}

const (
	mainPadding   = 2 // vertical padding of the main container
	detailPadding = 2 // left padding inside the detail pane
	paneBorder    = 1
	minDetailSize = 80
)

// updateLayout sizes the list and the detail pane to the window
func (m *Model) updateLayout() {
	bodyHeight := m.height - mainPadding - 3 // title, status and footer
	if m.state.SearchQuery != "" || m.inputHandler.CurrentMode() == inputtypes.ModeSearch {
		bodyHeight--
	}
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	rows := bodyHeight / m.renderer.Mods().RowHeight(m.state.ShowDescriptions)
	if rows < 1 {
		rows = 1
	}
	m.navigator.UpdateState(len(m.state.Mods), rows)

	contentWidth := m.width - 4
	detailWidth := 0
	if contentWidth >= minDetailSize {
		detailWidth = contentWidth * 2 / 5
	}
	m.listWidth = contentWidth
	if detailWidth > 0 {
		m.listWidth = contentWidth - detailWidth - paneBorder
		detailWidth -= detailPadding
	}

	if m.detail.Width != detailWidth || m.detail.Height != bodyHeight {
		m.detail.Width = detailWidth
		m.detail.Height = bodyHeight
		m.detailKey = ""
	}
	m.syncDetail()
}

// syncDetail renders the focused mod into the detail pane when it changed
func (m *Model) syncDetail() {
	if m.detail.Width <= 0 {
		return
	}

	mod, ok := m.focusedMod()
	key := string(m.tr.Locale())
	if ok {
		key += "|" + mod.QualifiedName()
	}
	if key == m.detailKey {
		return
	}
	m.detailKey = key

	modView := m.renderer.ModView()
	if !ok {
		m.detail.SetContent(modView.RenderEmpty(
			m.tr.T("modlist.modview.no_mod_selected_title", nil),
			m.tr.T("modlist.modview.no_mod_selected_subtitle", nil)))
	} else {
		m.detail.SetContent(modView.Render(mod, m.store.Get, m.tr, m.detail.Width))
	}
	m.detail.GotoTop()
}

// onSelectionChanged receives the selection controller's events
func (m *Model) onSelectionChanged(event interface{}) {
	switch e := event.(type) {
	case selection.ChangedEvent:
		log.Printf("Selection changed: +%d -%d (%d selected)", e.Added, e.Removed, e.Total)
	case selection.ClearedEvent:
		log.Printf("Selection cleared")
	}
}

// selectedMods returns the selected mods in profile order
func (m *Model) selectedMods() []*domain.ModPackage {
	var mods []*domain.ModPackage
	for _, mod := range m.store.All() {
		if m.selection.Has(mod.ID()) {
			mods = append(mods, mod)
		}
	}
	return mods
}

func (m *Model) showError(info *state.ErrorInfo) {
	m.state.Error = info
	m.state.Select.Close()
	m.state.Confirm = nil
	m.setMode(inputtypes.ModeError)
}

func (m *Model) confirmExport() tea.Cmd {
	dir := m.config.ProfilesDir
	if dir == "" {
		if wd, err := os.Getwd(); err == nil {
			dir = wd
		}
	}
	path := filepath.Join(dir, "export", profile.ManifestName)

	m.state.Confirm = &state.ConfirmState{
		Title: m.tr.T("modlist.export.confirm_title", nil),
		Message: m.tr.T("modlist.export.confirm_msg", map[string]any{
			"Count": m.selection.Len(),
			"Path":  path,
		}),
		Path: path,
	}
	return m.setMode(inputtypes.ModeConfirm)
}

// openSelect fills and opens one of the dropdowns
func (m *Model) openSelect(kind string) tea.Cmd {
	var (
		title   string
		options []state.SelectOption
		multi   bool
	)

	switch kind {
	case "sort":
		title = m.tr.T("modlist.sort_label", nil)
		for _, column := range logic.SortColumns {
			options = append(options, state.SelectOption{
				Label:   m.tr.T("modlist.sort."+string(column), nil),
				Value:   string(column),
				Checked: column == m.state.SortColumn(),
			})
		}

	case "category":
		title = m.tr.T("modlist.category_label", nil)
		multi = true
		for _, category := range logic.Categories(m.store.All()) {
			options = append(options, state.SelectOption{
				Label:   category,
				Value:   category,
				Checked: slices.Contains(m.state.Categories, category),
			})
		}

	case "locale":
		title = m.tr.T("settings.locale_label", nil)
		for _, l := range i18n.SortedLocales() {
			options = append(options, state.SelectOption{
				Label:   l.Name(),
				Value:   string(l),
				Checked: l == m.tr.Locale(),
			})
		}

	case "profile":
		title = m.tr.T("settings.profile_label", nil)
		options = append(options, state.SelectOption{
			Label:   profile.Fixture().Profile,
			Checked: m.state.Profile.Path == "",
		})
		names := make([]string, 0, len(m.state.Profiles))
		for name := range m.state.Profiles {
			names = append(names, name)
		}
		slices.Sort(names)
		for _, name := range names {
			path := m.state.Profiles[name]
			options = append(options, state.SelectOption{
				Label:   name,
				Value:   path,
				Checked: path == m.state.Profile.Path,
			})
		}

	default:
		return nil
	}

	m.state.Select.Open(kind, title, options, multi)
	return m.setMode(inputtypes.ModeSelect)
}

// chooseSelect applies the highlighted dropdown option. Radio dropdowns close afterwards.
func (m *Model) chooseSelect() tea.Cmd {
	value, ok := m.state.Select.Choose()
	if !ok {
		return nil
	}

	kind := m.state.Select.Kind
	if kind == "category" {
		m.state.Categories = m.state.Select.CheckedValues()
		m.fetcher = logic.NewFetcher(logic.WithCategories(m.store, m.state.Categories), 0)
		m.refresh()
		return nil
	}

	m.state.Select.Close()
	cmd := m.setMode(inputtypes.ModeNormal)

	switch kind {
	case "sort":
		m.state.SortOptions = logic.Prioritize(m.state.SortOptions, logic.SortColumn(value))
		m.refresh()
		return tea.Batch(cmd, m.cmdExecutor.ExecuteSaveSettings(""))

	case "locale":
		m.tr = i18n.NewTranslator(i18n.Locale(value))
		m.syncDetail()
		return tea.Batch(cmd, m.cmdExecutor.ExecuteSaveSettings(value))

	case "profile":
		return tea.Batch(cmd, m.cmdExecutor.ExecuteLoadProfile(value))
	}
	return cmd
}

// visibleTasks returns the tasks on the current tab of the tasks dialog
func (m *Model) visibleTasks() []tasks.Task {
	if m.tasks == nil {
		return nil
	}
	return m.tasks.List(!m.state.Tasks.Completed)
}

func (m *Model) moveTask(delta int) {
	n := len(m.visibleTasks())
	if n == 0 {
		m.state.Tasks.Index = 0
		return
	}
	i := m.state.Tasks.Index + delta
	if i < 0 {
		i = 0
	}
	if i >= n {
		i = n - 1
	}
	m.state.Tasks.Index = i
}

func (m *Model) runningTasks() int {
	if m.tasks == nil {
		return 0
	}
	return m.tasks.RunningCount()
}

// showHelpPager returns a command that shows help using ov pager
func (m *Model) showHelpPager() tea.Cmd {
	if m.program == nil || m.helpOps == nil {
		return m.setMode(inputtypes.ModeHelp)
	}

	content := views.HelpContent()
	return func() tea.Msg {
		// Send pause message to stop rendering
		m.program.Send(pauseRenderingMsg{})

		err := m.helpOps.ShowHelpInPager(content)

		// Send resume message to restart rendering
		m.program.Send(resumeRenderingMsg{})

		return helpPagerMsg{err: err}
	}
}

// tick returns a command that sends a tick message after a delay
func tick() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return clearStatusMsg{} })
}
