package types

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "pageup", "pagedown", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

// Selection actions

// ToggleSelectAction flips the focused mod in or out of the selection
type ToggleSelectAction struct{}

func (a ToggleSelectAction) Type() string { return "toggle_select" }

// RangeSelectAction moves the cursor (when Direction is set) and then selects everything
// between the pivot and the cursor
type RangeSelectAction struct {
	Direction string // "", "up", "down", "home", "end"
}

func (a RangeSelectAction) Type() string { return "range_select" }

type ClearSelectionAction struct{}

func (a ClearSelectionAction) Type() string { return "clear_selection" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
	Data interface{} // Optional data for the mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct{}

func (a CancelTextAction) Type() string { return "cancel_text" }

// Dialog actions

// OpenSelectAction opens a dropdown; Kind is "sort", "category", "locale" or "profile"
type OpenSelectAction struct {
	Kind string
}

func (a OpenSelectAction) Type() string { return "open_select" }

// MoveSelectAction moves the dropdown highlight
type MoveSelectAction struct {
	Delta int
}

func (a MoveSelectAction) Type() string { return "move_select" }

// ChooseSelectAction toggles or picks the highlighted dropdown option
type ChooseSelectAction struct{}

func (a ChooseSelectAction) Type() string { return "choose_select" }

type CloseDialogAction struct{}

func (a CloseDialogAction) Type() string { return "close_dialog" }

type ConfirmAction struct {
	Accepted bool
}

func (a ConfirmAction) Type() string { return "confirm" }

// SwitchTabAction cycles the tasks dialog tabs
type SwitchTabAction struct{}

func (a SwitchTabAction) Type() string { return "switch_tab" }

// MoveTaskAction moves the highlighted task in the tasks dialog
type MoveTaskAction struct {
	Delta int
}

func (a MoveTaskAction) Type() string { return "move_task" }

type CopyURLAction struct{}

func (a CopyURLAction) Type() string { return "copy_url" }

type ClearCacheAction struct{}

func (a ClearCacheAction) Type() string { return "clear_cache" }

type IgnoreErrorAction struct{}

func (a IgnoreErrorAction) Type() string { return "ignore_error" }

// Command actions

// ExportAction asks to write the selection out as a manifest
type ExportAction struct{}

func (a ExportAction) Type() string { return "export" }

type ReloadAction struct{}

func (a ReloadAction) Type() string { return "reload" }

type ToggleDescriptionsAction struct{}

func (a ToggleDescriptionsAction) Type() string { return "toggle_descriptions" }

// ScrollHelpAction scrolls the help popup
type ScrollHelpAction struct {
	Delta int
}

func (a ScrollHelpAction) Type() string { return "scroll_help" }

// OpenPagerAction shows the full help in the pager
type OpenPagerAction struct{}

func (a OpenPagerAction) Type() string { return "open_pager" }

// ScrollDetailAction scrolls the mod view pane
type ScrollDetailAction struct {
	Delta int
}

func (a ScrollDetailAction) Type() string { return "scroll_detail" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }
