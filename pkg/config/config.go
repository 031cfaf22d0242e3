// Package config loads the bot configuration from a YAML file.
//
// The file is looked up in order: an explicit path, ./sweepbot.yaml,
// then $HOME/.sweepbot/config.yaml. When none exists the built-in
// defaults are used. Fields missing from the file keep their
// defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"digital.vasic.sweepbot/pkg/browser"
	"digital.vasic.sweepbot/pkg/logging"
	"digital.vasic.sweepbot/pkg/platform"
	"digital.vasic.sweepbot/pkg/workflow"
)

// FileName is the name looked up in the working directory.
const FileName = "sweepbot.yaml"

// Preference store backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config is the complete bot configuration.
type Config struct {
	Platform    PlatformConfig    `yaml:"platform"`
	Delays      workflow.Delays   `yaml:"delays"`
	Run         RunConfig         `yaml:"run"`
	Preferences PreferencesConfig `yaml:"preferences"`
	Rules       RulesConfig       `yaml:"rules"`
	Browser     BrowserConfig     `yaml:"browser"`
	Events      EventsConfig      `yaml:"events"`
	Logging     LoggingConfig     `yaml:"logging"`
	Reports     ReportsConfig     `yaml:"reports"`
}

// PlatformConfig addresses the campaign platform.
type PlatformConfig struct {
	BaseURL   string        `yaml:"base_url"`
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
}

// RunConfig tunes a workflow run.
type RunConfig struct {
	// StaleThreshold aborts a run that reports no progress for
	// this long. Zero disables the check.
	StaleThreshold time.Duration `yaml:"stale_threshold"`
}

// PreferencesConfig selects where preferences and run history
// are kept.
type PreferencesConfig struct {
	// Backend is "file" or "sqlite".
	Backend string `yaml:"backend"`
	// Path is the YAML preferences file of the file backend.
	Path string `yaml:"path"`
	// Database is the SQLite file. It always holds the run
	// history, and the preferences with the sqlite backend.
	Database string `yaml:"database"`
}

// RulesConfig lists extra classification rules. They are
// appended after the built-in table.
type RulesConfig struct {
	Files []string `yaml:"files"`
	Dirs  []string `yaml:"dirs"`
}

// BrowserConfig controls the browser used for external actions
// and the fraud token.
type BrowserConfig struct {
	Enabled        bool `yaml:"enabled"`
	browser.Config `yaml:",inline"`
}

// EventsConfig controls the websocket event server.
type EventsConfig struct {
	// Addr is the listen address; empty disables the server.
	Addr string `yaml:"addr"`
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	// Output is a log file; empty means stderr.
	Output string `yaml:"output"`
}

// ReportsConfig controls where run reports are written.
type ReportsConfig struct {
	// Dir receives one JSON report per run; empty disables
	// report files.
	Dir string `yaml:"dir"`
	// History is a JSON Lines log appended after every run.
	History string `yaml:"history"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Platform: PlatformConfig{
			BaseURL: platform.DefaultBaseURL,
			Timeout: 30 * time.Second,
		},
		Delays: workflow.DefaultDelays(),
		Preferences: PreferencesConfig{
			Backend:  BackendFile,
			Path:     "~/.sweepbot/preferences.yaml",
			Database: "~/.sweepbot/sweepbot.db",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Reports: ReportsConfig{
			Dir:     "~/.sweepbot/reports",
			History: "~/.sweepbot/history.jsonl",
		},
	}
}

// SearchPaths returns the candidate files in lookup order.
func SearchPaths(explicit string) []string {
	var paths []string
	if explicit != "" {
		paths = append(paths, explicit)
	}
	paths = append(paths, FileName)
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".sweepbot", "config.yaml"))
	}
	return paths
}

// Load resolves the configuration. An explicit path must exist;
// the other candidates are optional. The returned path is the
// file that was read, or "" for the defaults.
func Load(explicit string) (*Config, string, error) {
	for i, path := range SearchPaths(explicit) {
		if _, err := os.Stat(path); err != nil {
			if explicit != "" && i == 0 {
				return nil, "", fmt.Errorf("config file %s: %w", path, err)
			}
			continue
		}
		cfg, err := LoadFile(path)
		if err != nil {
			return nil, "", err
		}
		return cfg, path, nil
	}

	cfg := Default()
	cfg.expand()
	return cfg, "", nil
}

// LoadFile reads path over the defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes data over the defaults. source names the data in
// errors.
func Parse(data []byte, source string) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", source, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", source, err)
	}
	cfg.expand()
	return cfg, nil
}

// Validate checks the values a run depends on.
func (c *Config) Validate() error {
	var errs []error
	if c.Platform.BaseURL == "" {
		errs = append(errs, errors.New("platform.base_url is required"))
	}
	if c.Platform.Timeout < 0 {
		errs = append(errs, errors.New("platform.timeout must not be negative"))
	}
	if c.Delays.InterRequest < 0 || c.Delays.PostAction < 0 || c.Delays.TimerPadding < 0 {
		errs = append(errs, errors.New("delays must not be negative"))
	}
	switch c.Preferences.Backend {
	case BackendFile, BackendSQLite:
	default:
		errs = append(errs, fmt.Errorf(
			"preferences.backend must be %q or %q, got %q",
			BackendFile, BackendSQLite, c.Preferences.Backend,
		))
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging.level: %w", err))
	}
	switch c.Logging.Format {
	case "", "json", "console":
	default:
		errs = append(errs, fmt.Errorf("logging.format %q is not json or console", c.Logging.Format))
	}
	return errors.Join(errs...)
}

// expand resolves "~/" in every path.
func (c *Config) expand() {
	c.Preferences.Path = ExpandHome(c.Preferences.Path)
	c.Preferences.Database = ExpandHome(c.Preferences.Database)
	c.Reports.Dir = ExpandHome(c.Reports.Dir)
	c.Reports.History = ExpandHome(c.Reports.History)
	c.Logging.Output = ExpandHome(c.Logging.Output)
	for i, f := range c.Rules.Files {
		c.Rules.Files[i] = ExpandHome(f)
	}
	for i, d := range c.Rules.Dirs {
		c.Rules.Dirs[i] = ExpandHome(d)
	}
}

// ExpandHome replaces a leading "~/" with the home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
