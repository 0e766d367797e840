package commands

import (
	tea "github.com/charmbracelet/bubbletea"

	"modgrip/internal/domain"
	"modgrip/internal/eventbus"
	"modgrip/internal/tasks"
	"modgrip/internal/ui/state"
)

// Executor handles command execution
type Executor struct {
	ctx *CommandContext
}

// NewExecutor creates a new command executor
func NewExecutor(state *state.AppState, bus eventbus.EventBus, manager *tasks.Manager) *Executor {
	return &Executor{
		ctx: &CommandContext{
			State: state,
			Bus:   bus,
			Tasks: manager,
		},
	}
}

// ExecuteLoadProfile creates and executes a load profile command
func (e *Executor) ExecuteLoadProfile(source string) tea.Cmd {
	cmd := NewLoadProfileCommand(e.ctx, source)
	return cmd.Execute()
}

// ExecuteExport creates and executes an export command
func (e *Executor) ExecuteExport(path string, mods []*domain.ModPackage) tea.Cmd {
	cmd := NewExportCommand(e.ctx, path, mods)
	return cmd.Execute()
}

// ExecuteClearCache creates and executes a clear cache command
func (e *Executor) ExecuteClearCache(dir string) tea.Cmd {
	cmd := NewClearCacheCommand(e.ctx, dir)
	return cmd.Execute()
}

// ExecuteCopy creates and executes a copy command
func (e *Executor) ExecuteCopy(text string) tea.Cmd {
	cmd := NewCopyCommand(text)
	return cmd.Execute()
}

// ExecuteSaveSettings creates and executes a save settings command
func (e *Executor) ExecuteSaveSettings(locale string) tea.Cmd {
	cmd := NewSaveSettingsCommand(e.ctx, locale)
	return cmd.Execute()
}
