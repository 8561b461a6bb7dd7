// Package config provides configuration management for the KonnectPro-GDS CLI.
package config

import "github.com/konnectpro/konnectpro-gds/internal/catalog"

// UIConfig holds configuration for the UI server.
type UIConfig struct {
	Host          string `koanf:"host"`
	Port          int    `koanf:"port"`
	AutoOpen      bool   `koanf:"auto_open"`
	Watch         bool   `koanf:"watch"`
	Dev           bool   `koanf:"dev"`
	SessionSecret string `koanf:"session_secret"`
}

// CatalogConfig holds configuration for the record store.
type CatalogConfig struct {
	DSN string `koanf:"dsn"`
	// SeedFile replaces the embedded seed data when set.
	SeedFile string `koanf:"seed_file"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `koanf:"level"`
	// File enables a rotating log file in addition to stderr.
	File string `koanf:"file"`
}

// Config holds all CLI configuration options.
type Config struct {
	Verbose      bool          `koanf:"verbose"`
	OutputFormat string        `koanf:"output"`
	UI           UIConfig      `koanf:"ui"`
	Catalog      CatalogConfig `koanf:"catalog"`
	Log          LogConfig     `koanf:"log"`
}

// Default configuration values.
const (
	DefaultPort          = 8765
	DefaultLogLevel      = "info"
	DefaultOutput        = "auto"                                       // Auto-detect: TTY=text, non-TTY=markdown
	DefaultSessionSecret = "konnectpro-dev-secret-change-in-production" //nolint:gosec // development default
	DefaultDSN           = catalog.MemoryDSN
)

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		OutputFormat: DefaultOutput,
		UI: UIConfig{
			Port:          DefaultPort,
			AutoOpen:      true,
			Watch:         true,
			SessionSecret: DefaultSessionSecret,
		},
		Catalog: CatalogConfig{DSN: DefaultDSN},
		Log:     LogConfig{Level: DefaultLogLevel},
	}
}

func defaultValues() map[string]any {
	d := Default()
	return map[string]any{
		"verbose":           d.Verbose,
		"output":            d.OutputFormat,
		"ui.host":           d.UI.Host,
		"ui.port":           d.UI.Port,
		"ui.auto_open":      d.UI.AutoOpen,
		"ui.watch":          d.UI.Watch,
		"ui.dev":            d.UI.Dev,
		"ui.session_secret": d.UI.SessionSecret,
		"catalog.dsn":       d.Catalog.DSN,
		"catalog.seed_file": d.Catalog.SeedFile,
		"log.level":         d.Log.Level,
		"log.file":          d.Log.File,
	}
}
