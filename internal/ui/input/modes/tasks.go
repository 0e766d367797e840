package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"modgrip/internal/ui/input/types"
)

// TasksMode drives the tasks dialog
type TasksMode struct{}

func NewTasksMode() *TasksMode {
	return &TasksMode{}
}

func (m *TasksMode) Name() string {
	return "tasks"
}

func (m *TasksMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *TasksMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *TasksMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "esc", "q", "t":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}, true
	case "tab", "shift+tab", "left", "right", "h", "l":
		return []types.Action{types.SwitchTabAction{}}, true
	case "up", "k":
		return []types.Action{types.MoveTaskAction{Delta: -1}}, true
	case "down", "j":
		return []types.Action{types.MoveTaskAction{Delta: 1}}, true
	case "c", "y":
		return []types.Action{types.CopyURLAction{}}, true
	case "x":
		return []types.Action{types.ClearCacheAction{}}, true
	}
	return nil, true
}
