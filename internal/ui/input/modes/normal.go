package modes

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"modgrip/internal/ui/input/types"
)

type NormalMode struct {
	lastKeyWasG bool
	lastGTime   time.Time
}

func NewNormalMode() *NormalMode {
	return &NormalMode{}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true

	case tea.KeyUp:
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case tea.KeyDown:
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case tea.KeyPgUp:
		return []types.Action{types.NavigateAction{Direction: "pageup"}}, true

	case tea.KeyPgDown:
		return []types.Action{types.NavigateAction{Direction: "pagedown"}}, true

	case tea.KeyHome:
		return []types.Action{types.NavigateAction{Direction: "home"}}, true

	case tea.KeyEnd:
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	case tea.KeyShiftUp:
		return m.rangeTo("up", ctx)

	case tea.KeyShiftDown:
		return m.rangeTo("down", ctx)

	case tea.KeyShiftHome:
		return m.rangeTo("home", ctx)

	case tea.KeyShiftEnd:
		return m.rangeTo("end", ctx)

	case tea.KeyEnter:
		if ctx.CurrentMod() != nil {
			return []types.Action{types.ToggleSelectAction{}}, true
		}
		return nil, false

	case tea.KeyEsc:
		// Clear selection if any, otherwise do nothing
		if ctx.HasSelection() {
			return []types.Action{types.ClearSelectionAction{}}, true
		}
		return nil, true

	case tea.KeyCtrlD:
		return []types.Action{types.ScrollDetailAction{Delta: 5}}, true

	case tea.KeyCtrlU:
		return []types.Action{types.ScrollDetailAction{Delta: -5}}, true
	}

	switch msg.String() {
	case "j":
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case "k":
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case " ":
		if ctx.CurrentMod() != nil {
			return []types.Action{types.ToggleSelectAction{}}, true
		}
		return nil, true

	case "v":
		// Extend from the pivot to the cursor without moving
		return m.rangeTo("", ctx)

	case "/":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSearch}}, true

	case "s":
		return []types.Action{types.OpenSelectAction{Kind: "sort"}}, true

	case "c":
		return []types.Action{types.OpenSelectAction{Kind: "category"}}, true

	case "L":
		return []types.Action{types.OpenSelectAction{Kind: "locale"}}, true

	case "p":
		return []types.Action{types.OpenSelectAction{Kind: "profile"}}, true

	case "t":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeTasks}}, true

	case "e":
		// Export needs something to export
		if ctx.HasSelection() {
			return []types.Action{types.ExportAction{}}, true
		}
		return nil, true

	case "r":
		return []types.Action{types.ReloadAction{}}, true

	case "d":
		return []types.Action{types.ToggleDescriptionsAction{}}, true

	case "?":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeHelp}}, true

	case "H":
		return []types.Action{types.OpenPagerAction{}}, true

	case "q":
		return []types.Action{types.QuitAction{Force: false}}, true

	case "g":
		if m.lastKeyWasG && time.Since(m.lastGTime) < 500*time.Millisecond {
			// gg - go to top (within timeout)
			m.lastKeyWasG = false
			return []types.Action{types.NavigateAction{Direction: "home"}}, true
		}
		m.lastKeyWasG = true
		m.lastGTime = time.Now()
		return nil, true

	case "G":
		m.lastKeyWasG = false
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	default:
		// Any other key cancels the 'g' prefix
		m.lastKeyWasG = false
	}

	return nil, false
}

func (m *NormalMode) rangeTo(direction string, ctx types.Context) ([]types.Action, bool) {
	if ctx.TotalItems() == 0 {
		return nil, true
	}
	return []types.Action{types.RangeSelectAction{Direction: direction}}, true
}
