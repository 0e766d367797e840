package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"modgrip/internal/ui/input/types"
)

// SelectMode drives an open dropdown
type SelectMode struct{}

func NewSelectMode() *SelectMode {
	return &SelectMode{}
}

func (m *SelectMode) Name() string {
	return "select"
}

func (m *SelectMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *SelectMode) Exit(ctx types.Context) []types.Action {
	return nil
}

// HandleKey processes key messages for the dropdown
func (m *SelectMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true

	case "esc", "q":
		return []types.Action{
			types.CloseDialogAction{},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true

	case "up", "k", "shift+tab":
		return []types.Action{types.MoveSelectAction{Delta: -1}}, true

	case "down", "j", "tab":
		return []types.Action{types.MoveSelectAction{Delta: 1}}, true

	case "enter", " ":
		return []types.Action{types.ChooseSelectAction{}}, true
	}

	return nil, true
}
