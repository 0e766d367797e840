// Package cli provides the command-line interface for modgrip.
package cli

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	"modgrip/internal/config"
	"modgrip/internal/eventbus"
	"modgrip/internal/i18n"
)

// Version is stamped at build time with -ldflags "-X modgrip/internal/cli.Version=..."
var Version = "dev"

var (
	profileFlag     string
	configFlag      string
	localeFlag      string
	profilesDirFlag string
	noMultiselect   bool
)

var rootCmd = &cobra.Command{
	Use:   "modgrip [manifest]",
	Short: "Browse and select the installed mods of a profile",
	Long: `Browse and select the installed mods of a mod manager profile.

A profile is a mods.yml manifest given as a path, a profile directory or an
http(s) URL. Without one, the built-in Risk of Rain 2 profile is opened.

Press ? inside the list for key bindings.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runTUI,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&profileFlag, "profile", "p", "", "mods.yml path, profile directory or URL to open")
	flags.StringVar(&configFlag, "config", "", "config file (default "+config.DefaultPath()+")")
	flags.StringVar(&localeFlag, "locale", "", "interface language, e.g. fr-FR")
	flags.StringVar(&profilesDirFlag, "profiles-dir", "", "directory scanned for other profiles")

	rootCmd.Flags().BoolVar(&noMultiselect, "no-multiselect", false, "hide checkboxes until something is selected")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the CLI
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// loadConfig reads the config file. A broken config file falls back to the defaults.
func loadConfig(bus eventbus.EventBus) (*config.Config, config.ConfigService) {
	svc := config.NewConfigServiceWithBus(bus, configFlag)
	cfg, err := svc.Load()
	if err != nil {
		log.Printf("Error loading config: %v", err)
		cfg = config.DefaultConfig()
	}
	return cfg, svc
}

// withFlags returns a copy of file with the command line flags applied.
// The copy is what the program runs with; file stays what gets saved.
func withFlags(file *config.Config) *config.Config {
	cfg := *file

	if profileFlag != "" {
		cfg.Profile.Manifest = profileFlag
	}
	if localeFlag != "" {
		cfg.Locale = localeFlag
	}
	if profilesDirFlag != "" {
		cfg.ProfilesDir = profilesDirFlag
	}
	if noMultiselect {
		cfg.UISettings.Multiselect = false
	}
	return &cfg
}

// translator picks the configured locale, or the environment's when none is set
func translator(cfg *config.Config) *i18n.Translator {
	if cfg.Locale != "" {
		return i18n.NewTranslator(i18n.Locale(cfg.Locale))
	}
	return i18n.NewTranslator(i18n.ResolveLocale(i18n.PreferredFromEnv()))
}
