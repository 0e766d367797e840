package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"modgrip/internal/config"
	"modgrip/internal/eventbus"
	"modgrip/internal/profile"
	"modgrip/internal/tasks"
	"modgrip/internal/ui"
)

// uiEvents are forwarded from the bus to the running program
var uiEvents = []eventbus.EventType{
	eventbus.EventModsLoaded,
	eventbus.EventProfileLoadFailed,
	eventbus.EventProfileDiscovered,
	eventbus.EventProfileScanStarted,
	eventbus.EventProfileScanCompleted,
	eventbus.EventTaskUpdated,
	eventbus.EventError,
}

// runTUI executes the TUI when no subcommand is specified
func runTUI(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		profileFlag = args[0]
	}

	closeLog := setupLogging()
	defer closeLog()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	bus := eventbus.New()
	defer bus.Close()

	file, configSvc := loadConfig(bus)
	cfg := withFlags(file)
	tr := translator(cfg)
	log.Printf("Starting modgrip %s (locale %s, profile %q)", Version, tr.Locale(), cfg.Profile.Manifest)

	// Persist settings changed in the UI
	saver := newSettingsSaver(file, configSvc)
	bus.Subscribe(eventbus.EventConfigChanged, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ConfigChangedEvent); ok {
			if err := saver.Save(event); err != nil {
				log.Printf("Failed to save config: %v", err)
			}
		}
	})

	store := profile.NewMemoryModStore()
	manager := tasks.NewManager(bus)
	profile.NewLoader(bus, manager, store, filepath.Join(config.CacheDir(), "profiles"))
	discovery := profile.NewDiscoveryService(bus)
	defer discovery.StopScan()

	model := ui.NewModel(bus, cfg, store, manager, tr)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	model.SetProgram(p)

	for _, eventType := range uiEvents {
		bus.Subscribe(eventType, func(e eventbus.DomainEvent) {
			p.Send(ui.EventMsg{Event: e})
		})
	}

	if cfg.ProfilesDir != "" {
		if err := discovery.StartScan(ctx, cfg.ProfilesDir); err != nil {
			log.Printf("Profile scan not started: %v", err)
		}
	}

	log.Printf("Starting UI...")
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run ui: %w", err)
	}
	log.Printf("UI exited normally")
	return nil
}

// settingsSaver writes UI settings into the file config, one save at a time
type settingsSaver struct {
	mu       sync.Mutex
	file     *config.Config
	svc      config.ConfigService
	revision uint64
}

func newSettingsSaver(file *config.Config, svc config.ConfigService) *settingsSaver {
	return &settingsSaver{file: file, svc: svc}
}

// Save applies event and writes the config. Events older than the last saved one are ignored.
func (s *settingsSaver) Save(event eventbus.ConfigChangedEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if event.Revision != 0 && event.Revision <= s.revision {
		return nil
	}
	s.revision = event.Revision

	applySettings(s.file, event)
	return s.svc.Save(s.file)
}

// applySettings copies the settings changed in the UI into cfg
func applySettings(cfg *config.Config, event eventbus.ConfigChangedEvent) {
	if event.Locale != "" {
		cfg.Locale = event.Locale
	}
	if event.SortColumn != "" {
		cfg.UISettings.Sort = event.SortColumn
	}
	cfg.UISettings.ShowDescriptions = event.ShowDescriptions
}

// setupLogging sends the standard logger to the log file, since the terminal belongs to the UI
func setupLogging() func() {
	path := config.LogPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		log.SetOutput(io.Discard)
		return func() {}
	}

	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.SetOutput(io.Discard)
		return func() {}
	}
	log.SetOutput(logFile)
	return func() { _ = logFile.Close() }
}
