// Package config assembles the application configuration on top of the core
// bot settings.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	coreconfig "github.com/gaubit/respirabot/core/config"
	coredatabase "github.com/gaubit/respirabot/core/database"
)

// ConversationConfig tunes the dialog lifecycle.
type ConversationConfig struct {
	// TimeoutSeconds is how long a session may sit idle before it is
	// dropped without persisting. 0 -> 10 minutes.
	TimeoutSeconds int `yaml:"timeout_seconds" envconfig:"CONVERSATION_TIMEOUT_SECONDS"`
	// SweepIntervalSeconds is how often idle sessions are swept. 0 -> 30s.
	SweepIntervalSeconds int `yaml:"sweep_interval_seconds" envconfig:"CONVERSATION_SWEEP_INTERVAL_SECONDS"`
}

// SheetsConfig points the record pipeline at its spreadsheets.
type SheetsConfig struct {
	APIBase string `yaml:"api_base" envconfig:"SHEETS_API_BASE"`
	Token   string `yaml:"token" envconfig:"SHEETS_TOKEN"`
	// Primary and Backup are spreadsheet ids; every record goes to both.
	Primary string `yaml:"primary" envconfig:"SHEETS_PRIMARY"`
	Backup  string `yaml:"backup" envconfig:"SHEETS_BACKUP"`

	ConfirmedSheet string `yaml:"confirmed_sheet" envconfig:"SHEETS_CONFIRMED_SHEET"`
	ScheduledSheet string `yaml:"scheduled_sheet" envconfig:"SHEETS_SCHEDULED_SHEET"`

	AppendTimeoutSeconds int `yaml:"append_timeout_seconds" envconfig:"SHEETS_APPEND_TIMEOUT_SECONDS"`
}

// DatabaseConfig wraps the core database settings with an enable switch: the
// Postgres archive is optional and the bot runs fine without it.
type DatabaseConfig struct {
	Enabled             bool `yaml:"enabled" envconfig:"DB_ENABLED"`
	coredatabase.Config `yaml:",inline"`
}

// Config is the full application configuration.
type Config struct {
	coreconfig.Config `yaml:",inline"`

	Conversation ConversationConfig `yaml:"conversation"`
	Sheets       SheetsConfig       `yaml:"sheets"`
	Database     DatabaseConfig     `yaml:"database"`

	// Messages overrides entries of the built-in message catalog.
	Messages map[string]string `yaml:"messages"`
}

// CoreConfig exposes the embedded core configuration.
func (c *Config) CoreConfig() *coreconfig.Config {
	return &c.Config
}

// Load reads the YAML file, applies environment overrides and validates.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := Normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize validates the application sections and fills defaults; the core
// section is normalized by its own package.
func Normalize(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}
	if err := coreconfig.Normalize(&cfg.Config); err != nil {
		return err
	}

	if cfg.Conversation.TimeoutSeconds < 0 {
		return fmt.Errorf("conversation.timeout_seconds must be >= 0")
	}
	if cfg.Conversation.TimeoutSeconds == 0 {
		cfg.Conversation.TimeoutSeconds = 600
	}
	if cfg.Conversation.SweepIntervalSeconds < 0 {
		return fmt.Errorf("conversation.sweep_interval_seconds must be >= 0")
	}
	if cfg.Conversation.SweepIntervalSeconds == 0 {
		cfg.Conversation.SweepIntervalSeconds = 30
	}

	if strings.TrimSpace(cfg.Sheets.Primary) == "" {
		return fmt.Errorf("sheets.primary spreadsheet id is required")
	}
	if strings.TrimSpace(cfg.Sheets.Backup) == "" {
		return fmt.Errorf("sheets.backup spreadsheet id is required")
	}
	if cfg.Sheets.ConfirmedSheet == "" {
		cfg.Sheets.ConfirmedSheet = "Confirmadas"
	}
	if cfg.Sheets.ScheduledSheet == "" {
		cfg.Sheets.ScheduledSheet = "Programadas"
	}
	if cfg.Sheets.AppendTimeoutSeconds <= 0 {
		cfg.Sheets.AppendTimeoutSeconds = 15
	}

	if cfg.Database.Enabled {
		if cfg.Database.Host == "" || cfg.Database.Name == "" {
			return fmt.Errorf("database.host and database.name are required when database.enabled")
		}
	}
	return nil
}
