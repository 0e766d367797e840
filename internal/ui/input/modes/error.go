package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"modgrip/internal/ui/input/types"
)

// ErrorMode keeps focus on the error dialog until it is ignored
type ErrorMode struct{}

func NewErrorMode() *ErrorMode {
	return &ErrorMode{}
}

func (m *ErrorMode) Name() string {
	return "error"
}

func (m *ErrorMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *ErrorMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *ErrorMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "i", "esc", "enter":
		return []types.Action{
			types.IgnoreErrorAction{},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	case "q":
		return []types.Action{types.QuitAction{Force: false}}, true
	}
	return nil, true
}
