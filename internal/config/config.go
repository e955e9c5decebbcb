// Package config provides hierarchical configuration management for
// changegov using koanf. Configuration is loaded with priority: environment
// variables > project config (.changegov/config.yml) > user config
// (~/.config/changegov/config.yml) > defaults. Legacy JSON project configs
// are still read, with a migration warning.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/dlevinson-dev/changegov/internal/yamlcheck"
)

// Configuration holds the changegov settings.
type Configuration struct {
	// Project names the governed project; used in ledger preambles.
	Project string `koanf:"project"`

	// LedgerPath is the changelog ledger file, relative to the working
	// directory. Can be set via CHANGEGOV_LEDGER_PATH.
	LedgerPath string `koanf:"ledger_path"`

	// ManifestPath is the project manifest holding the version field
	// (package.json, Cargo.toml, VERSION, ...). Empty means no manifest:
	// the current version then comes from a flag or the newest git tag.
	ManifestPath string `koanf:"manifest_path"`

	// DefaultScope is used for commit subjects when no --scope is given.
	DefaultScope string `koanf:"default_scope"`

	// Strict rejects ambiguous classifications even when a terminal is
	// available for interactive disambiguation.
	Strict bool `koanf:"strict"`

	// Plain disables colors and icons in terminal output.
	Plain bool `koanf:"plain"`
}

// LoadOptions configures how configuration is loaded.
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .changegov/config.yml)
	ProjectConfigPath string
	// WarningWriter receives migration warnings (default: os.Stderr)
	WarningWriter io.Writer
	// SkipWarnings suppresses migration warnings
	SkipWarnings bool
}

// Load loads configuration from user, project, and environment sources.
// Priority: Environment variables > Project config > User config > Defaults.
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options.
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	warningWriter := opts.WarningWriter
	if warningWriter == nil {
		warningWriter = os.Stderr
	}

	for key, value := range Defaults() {
		k.Set(key, value)
	}

	if userPath, err := UserConfigPath(); err == nil && fileExists(userPath) {
		if err := loadYAML(k, userPath, "user"); err != nil {
			return nil, err
		}
	}

	projectPath := opts.ProjectConfigPath
	if projectPath == "" {
		projectPath = ProjectConfigPath()
	}
	if fileExists(projectPath) {
		if err := loadYAML(k, projectPath, "project"); err != nil {
			return nil, err
		}
	} else if legacy := LegacyProjectConfigPath(); fileExists(legacy) {
		if err := k.Load(file.Provider(legacy), json.Parser()); err != nil {
			return nil, fmt.Errorf("loading legacy project config %s: %w", legacy, err)
		}
		if !opts.SkipWarnings {
			fmt.Fprintf(warningWriter, "Warning: Using deprecated JSON config at %s\n", legacy)
			fmt.Fprintf(warningWriter, "  Rewrite it as %s in YAML format.\n\n", ProjectConfigPath())
		}
	}

	if err := k.Load(env.Provider("CHANGEGOV_", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("loading environment config: %w", err)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// loadYAML syntax-checks a YAML config file before handing it to koanf, so
// malformed files fail with line information.
func loadYAML(k *koanf.Koanf, path, configType string) error {
	if err := yamlcheck.ValidateFile(path); err != nil {
		return fmt.Errorf("validating %s config: %w", configType, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("loading %s config %s: %w", configType, path, err)
	}
	return nil
}

// envTransform maps CHANGEGOV_LEDGER_PATH to "ledger_path".
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, "CHANGEGOV_"))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
