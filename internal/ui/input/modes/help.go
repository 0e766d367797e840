package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"modgrip/internal/ui/input/types"
)

// HelpMode is active while the help popup is shown
type HelpMode struct{}

func NewHelpMode() *HelpMode {
	return &HelpMode{}
}

func (m *HelpMode) Name() string {
	return "help"
}

func (m *HelpMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *HelpMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *HelpMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "?", "esc", "q":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}, true
	case "H":
		return []types.Action{
			types.ChangeModeAction{Mode: types.ModeNormal},
			types.OpenPagerAction{},
		}, true
	case "up", "k":
		return []types.Action{types.ScrollHelpAction{Delta: -1}}, true
	case "down", "j":
		return []types.Action{types.ScrollHelpAction{Delta: 1}}, true
	}
	return nil, true
}
