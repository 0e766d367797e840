package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"modgrip/internal/domain"
	"modgrip/internal/eventbus"
	"modgrip/internal/profile"
	"modgrip/internal/tasks"
	"modgrip/internal/ui/state"
)

// Command represents an executable action
type Command interface {
	Execute() tea.Cmd
}

// CommandContext provides context for command execution
type CommandContext struct {
	State *state.AppState
	Bus   eventbus.EventBus
	Tasks *tasks.Manager

	settingsRevision uint64
}

// ExportedMsg reports the outcome of an export
type ExportedMsg struct {
	Path  string
	Count int
	Err   error
}

// CopiedMsg reports the outcome of a clipboard write
type CopiedMsg struct {
	Text string
	Err  error
}

// clipboardWrite is swapped out in tests
var clipboardWrite = clipboard.WriteAll

// LoadProfileCommand asks the profile loader for a manifest
type LoadProfileCommand struct {
	ctx    *CommandContext
	source string
}

// NewLoadProfileCommand creates a new load command; an empty source loads the built-in profile
func NewLoadProfileCommand(ctx *CommandContext, source string) *LoadProfileCommand {
	return &LoadProfileCommand{
		ctx:    ctx,
		source: source,
	}
}

// Execute marks the list as loading and publishes the request
func (c *LoadProfileCommand) Execute() tea.Cmd {
	c.ctx.State.Loading = true
	if c.ctx.Bus != nil {
		c.ctx.Bus.Publish(eventbus.ProfileLoadRequestedEvent{Source: c.source})
	}
	return nil
}

// ExportCommand writes the selected mods to a manifest file
type ExportCommand struct {
	ctx  *CommandContext
	path string
	mods []*domain.ModPackage
}

// NewExportCommand creates a new export command
func NewExportCommand(ctx *CommandContext, path string, mods []*domain.ModPackage) *ExportCommand {
	return &ExportCommand{
		ctx:  ctx,
		path: path,
		mods: mods,
	}
}

// Execute writes the file in the background and reports an ExportedMsg
func (c *ExportCommand) Execute() tea.Cmd {
	name := c.ctx.State.Profile.Name
	game := c.ctx.State.Profile.Game
	path := c.path
	mods := c.mods

	return func() tea.Msg {
		err := writeManifest(path, name, game, mods)
		if err != nil {
			log.Printf("Export to %s failed: %v", path, err)
		} else {
			log.Printf("Exported %d mods to %s", len(mods), path)
		}
		return ExportedMsg{Path: path, Count: len(mods), Err: err}
	}
}

func writeManifest(path, name, game string, mods []*domain.ModPackage) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := profile.Export(f, name, game, mods); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ClearCacheCommand empties the download cache as a background task
type ClearCacheCommand struct {
	ctx *CommandContext
	dir string
}

// NewClearCacheCommand creates a new clear cache command
func NewClearCacheCommand(ctx *CommandContext, dir string) *ClearCacheCommand {
	return &ClearCacheCommand{
		ctx: ctx,
		dir: dir,
	}
}

// Execute starts the task; progress arrives as TaskUpdated events
func (c *ClearCacheCommand) Execute() tea.Cmd {
	if c.ctx.Tasks != nil {
		c.ctx.Tasks.ClearCache(context.Background(), c.dir)
	}
	return nil
}

// CopyCommand puts text on the system clipboard
type CopyCommand struct {
	text string
}

// NewCopyCommand creates a new copy command
func NewCopyCommand(text string) *CopyCommand {
	return &CopyCommand{text: text}
}

// Execute writes to the clipboard and reports a CopiedMsg
func (c *CopyCommand) Execute() tea.Cmd {
	if c.text == "" {
		return nil
	}
	text := c.text
	return func() tea.Msg {
		return CopiedMsg{Text: text, Err: clipboardWrite(text)}
	}
}

// SaveSettingsCommand publishes the settings changed in the UI so they are persisted
type SaveSettingsCommand struct {
	ctx    *CommandContext
	locale string
}

// NewSaveSettingsCommand creates a new save settings command. An empty locale leaves the saved one alone.
func NewSaveSettingsCommand(ctx *CommandContext, locale string) *SaveSettingsCommand {
	return &SaveSettingsCommand{
		ctx:    ctx,
		locale: locale,
	}
}

// Execute publishes a ConfigChanged event
func (c *SaveSettingsCommand) Execute() tea.Cmd {
	if c.ctx.Bus != nil {
		c.ctx.settingsRevision++
		c.ctx.Bus.Publish(eventbus.ConfigChangedEvent{
			Revision:         c.ctx.settingsRevision,
			Locale:           c.locale,
			SortColumn:       string(c.ctx.State.SortColumn()),
			ShowDescriptions: c.ctx.State.ShowDescriptions,
		})
	}
	return nil
}
