// Package config provides configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	// DefaultConfigDir is the directory name for adledger configuration.
	DefaultConfigDir = ".adledger"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"
	// DefaultDBFile is the default action log database file name.
	DefaultDBFile = "action_log.db"
	// DefaultOutboxFile is the default outbox file name.
	DefaultOutboxFile = "outbox.jsonl"
)

// Mutator modes.
const (
	MutatorReadOnly = "read_only"
	MutatorOutbox   = "outbox"
)

// Log formats.
const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// Config holds static configuration (read-only after load).
// Environment variables override file values; names match the agent's .env keys.
type Config struct {
	SQLite   SQLiteConfig   `yaml:"sqlite"`
	Approval ApprovalPolicy `yaml:"approval"`
	SpendCap SpendCapConfig `yaml:"spend_cap"`
	Mutator  MutatorConfig  `yaml:"mutator"`
	Log      LogConfig      `yaml:"log"`
}

// SQLiteConfig holds configuration for the action log database.
type SQLiteConfig struct {
	// Path is the database file. Relative paths resolve against the base directory.
	Path string `yaml:"path,omitempty" env:"ADLEDGER_DB_PATH"`
}

// ApprovalPolicy controls which actions may execute without a human.
type ApprovalPolicy struct {
	// Required forces approval for every action.
	Required EnvBool `yaml:"required" env:"APPROVAL_REQUIRED"`
	// AutoApproveBidChangePct is the largest bid change (in percent) that auto-approves.
	AutoApproveBidChangePct float64 `yaml:"auto_approve_bid_change_pct" env:"AUTO_APPROVE_BID_CHANGE_PCT"`
	// ComplianceMode enables the CPC ceiling (Ad Grants accounts).
	ComplianceMode EnvBool `yaml:"compliance_mode" env:"AD_GRANTS_MODE"`
	// ComplianceMaxCPC is the bid above which approval is required in compliance mode.
	ComplianceMaxCPC float64 `yaml:"compliance_max_cpc" env:"AD_GRANTS_MAX_CPC"`
}

// EnvBool is a flag spelled the way the agent's .env files spell it:
// "true", "1" or "yes" in any case is true, anything else is false.
type EnvBool bool

// SetValue implements cleanenv.Setter.
func (b *EnvBool) SetValue(raw string) error {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes":
		*b = true
	default:
		*b = false
	}
	return nil
}

// SpendCapConfig holds the daily spend ceiling.
type SpendCapConfig struct {
	MaxDaily float64 `yaml:"max_daily" env:"MAX_DAILY_SPEND"`
}

// MutatorConfig selects how reversals reach the advertising platform.
type MutatorConfig struct {
	Mode       string `yaml:"mode" env:"ADLEDGER_MUTATOR"`
	OutboxPath string `yaml:"outbox_path,omitempty" env:"ADLEDGER_OUTBOX_PATH"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `yaml:"level" env:"ADLEDGER_LOG_LEVEL"`
	Format string `yaml:"format" env:"ADLEDGER_LOG_FORMAT"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Approval: ApprovalPolicy{
			Required:                true,
			AutoApproveBidChangePct: 10,
			ComplianceMode:          false,
			ComplianceMaxCPC:        2.0,
		},
		SpendCap: SpendCapConfig{
			MaxDaily: 50.0,
		},
		Mutator: MutatorConfig{
			Mode: MutatorReadOnly,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: LogFormatConsole,
		},
	}
}

// Load loads configuration from the .adledger directory in the given path.
// A .env file in basePath is loaded into the environment first, if present.
func Load(basePath string) (*Config, error) {
	configFile := ConfigFilePath(basePath)

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s (run 'adledger init' first)", configFile)
	}

	if err := godotenv.Load(filepath.Join(basePath, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	// Start with defaults
	cfg := Default()

	if err := cleanenv.ReadConfig(configFile, cfg); err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg.resolvePaths(basePath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// resolvePaths fills in default file locations and anchors relative paths at basePath.
func (c *Config) resolvePaths(basePath string) {
	if c.SQLite.Path == "" {
		c.SQLite.Path = filepath.Join(DefaultConfigDir, DefaultDBFile)
	}
	if c.SQLite.Path != ":memory:" && !filepath.IsAbs(c.SQLite.Path) {
		c.SQLite.Path = filepath.Join(basePath, c.SQLite.Path)
	}

	if c.Mutator.OutboxPath == "" {
		c.Mutator.OutboxPath = filepath.Join(DefaultConfigDir, DefaultOutboxFile)
	}
	if !filepath.IsAbs(c.Mutator.OutboxPath) {
		c.Mutator.OutboxPath = filepath.Join(basePath, c.Mutator.OutboxPath)
	}
}

// Validate checks thresholds and enumerated settings.
func (c *Config) Validate() error {
	if c.Approval.AutoApproveBidChangePct < 0 {
		return errors.New("approval.auto_approve_bid_change_pct must not be negative")
	}
	if c.Approval.ComplianceMaxCPC < 0 {
		return errors.New("approval.compliance_max_cpc must not be negative")
	}
	if c.SpendCap.MaxDaily < 0 {
		return errors.New("spend_cap.max_daily must not be negative")
	}

	switch c.Mutator.Mode {
	case MutatorReadOnly:
	case MutatorOutbox:
		if c.Mutator.OutboxPath == "" {
			return errors.New("mutator.outbox_path is required in outbox mode")
		}
	default:
		return fmt.Errorf("unknown mutator mode %q (valid: %s, %s)", c.Mutator.Mode, MutatorReadOnly, MutatorOutbox)
	}

	switch c.Log.Format {
	case LogFormatConsole, LogFormatJSON:
	default:
		return fmt.Errorf("unknown log format %q (valid: %s, %s)", c.Log.Format, LogFormatConsole, LogFormatJSON)
	}

	return nil
}

// ConfigDir returns the path to the .adledger config directory.
func ConfigDir(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir)
}

// ConfigFilePath returns the path to the config file.
func ConfigFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
}

// Exists checks if an adledger config exists in the given path.
func Exists(basePath string) bool {
	_, err := os.Stat(ConfigFilePath(basePath))
	return err == nil
}
