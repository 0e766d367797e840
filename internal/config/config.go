package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"

	"modgrip/internal/eventbus"
)

const appName = "modgrip"

// Config represents the application configuration
type Config struct {
	Version     int           `toml:"version"`
	Locale      string        `toml:"locale,omitempty"` // empty means detect from the environment
	Profile     ProfileConfig `toml:"profile"`
	ProfilesDir string        `toml:"profiles_dir,omitempty"`
	UISettings  UISettings    `toml:"ui"`
}

// ProfileConfig selects the profile opened at startup
type ProfileConfig struct {
	Name     string `toml:"name"`
	Game     string `toml:"game"`
	Manifest string `toml:"manifest,omitempty"` // path or URL to mods.yml; empty uses the built-in profile
}

// UISettings represents UI-related configuration
type UISettings struct {
	Multiselect      bool   `toml:"multiselect"`
	ShowDescriptions bool   `toml:"show_descriptions"`
	WordWrap         int    `toml:"word_wrap"`
	Sort             string `toml:"sort,omitempty"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a config service backed by the XDG config file
func NewConfigService() ConfigService {
	return &configService{
		filePath: DefaultPath(),
	}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(bus eventbus.EventBus, path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{
		bus:      bus,
		filePath: path,
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/modgrip/config.toml
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.toml")
}

// CacheDir returns the directory used for downloaded manifests
func CacheDir() string {
	return filepath.Join(xdg.CacheHome, appName)
}

// LogPath returns the file the application logs to
func LogPath() string {
	return filepath.Join(xdg.StateHome, appName, appName+".log")
}

// Path returns the file this service reads and writes
func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, fs.ErrNotExist) {
		cfg, err = DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{
			Locale:  cfg.Locale,
			Profile: cfg.Profile.Name,
		})
	}

	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{})
	}

	return nil
}

// LoadFromPath loads configuration from a specific path.
// A missing file yields an error wrapping fs.ErrNotExist.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Profile: ProfileConfig{
			Name: "Default",
			Game: "risk-of-rain-2",
		},
		UISettings: UISettings{
			Multiselect:      true,
			ShowDescriptions: true,
			WordWrap:         80,
		},
	}
}
