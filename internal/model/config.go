package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// JiraSettings holds the Jira Cloud connection details. The API token is
// kept in the system keyring, not in the config file.
type JiraSettings struct {
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
	Email   string `mapstructure:"email" yaml:"email"`
}

// AISettings holds the chat assistant configuration. The API key is kept
// in the system keyring, not in the config file.
type AISettings struct {
	Model string `mapstructure:"model" yaml:"model"`
}

// Settings is the flat, persisted application configuration. Missing
// fields are filled from defaults on every load so older config files
// never crash the UI.
type Settings struct {
	// Theme is "dark", "light", or "" for the terminal default.
	Theme string `mapstructure:"theme" yaml:"theme"`

	// Colors maps theme color names to hex overrides.
	Colors map[string]string `mapstructure:"colors" yaml:"colors"`

	Jira JiraSettings `mapstructure:"jira" yaml:"jira"`
	AI   AISettings   `mapstructure:"ai" yaml:"ai"`

	// ShowAIChat controls whether the AI chat panel is reachable.
	ShowAIChat bool `mapstructure:"show_ai_chat" yaml:"show_ai_chat"`

	// ReminderEnabled is the end-of-day reminder preference. Persisted for
	// compatibility; no scheduler runs inside the TUI.
	ReminderEnabled bool `mapstructure:"reminder_enabled" yaml:"reminder_enabled"`

	// QuickDurations are the one-click duration choices in the entry editor.
	QuickDurations []float64 `mapstructure:"quick_durations" yaml:"quick_durations"`
}

// DefaultQuickDurations are the entry editor's preset hour choices.
var DefaultQuickDurations = []float64{0.25, 0.5, 1, 1.5, 2, 3, 4, 8}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/effortlog/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "effortlog", "config.yaml")
}

// DefaultDataPath returns the default path for the log database.
func DefaultDataPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "effortlog.db")
	}
	return filepath.Join(home, ".config", "effortlog", "effortlog.db")
}

func defaultSettings() *Settings {
	return &Settings{
		Theme:          "",
		Colors:         map[string]string{},
		QuickDurations: append([]float64(nil), DefaultQuickDurations...),
	}
}

// LoadSettings reads the configuration from the given YAML file using
// Viper. A missing file yields the defaults; a present file is merged
// over them.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("theme", "")
	v.SetDefault("show_ai_chat", false)
	v.SetDefault("reminder_enabled", false)
	v.SetDefault("quick_durations", DefaultQuickDurations)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultSettings(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultSettings(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultSettings()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Colors == nil {
		cfg.Colors = map[string]string{}
	}
	if len(cfg.QuickDurations) == 0 {
		cfg.QuickDurations = append([]float64(nil), DefaultQuickDurations...)
	}

	return cfg, nil
}

// SaveSettings writes the configuration to a YAML file at path, creating
// parent directories if needed.
func SaveSettings(path string, cfg *Settings) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("theme", cfg.Theme)
	v.Set("colors", cfg.Colors)
	v.Set("jira", cfg.Jira)
	v.Set("ai", cfg.AI)
	v.Set("show_ai_chat", cfg.ShowAIChat)
	v.Set("reminder_enabled", cfg.ReminderEnabled)
	v.Set("quick_durations", cfg.QuickDurations)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
