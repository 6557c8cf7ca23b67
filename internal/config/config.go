// Package config loads riceinspect settings from a YAML file, an optional
// .env file and RICEINSPECT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. RICEINSPECT_API_BASE_URL.
const EnvPrefix = "RICEINSPECT"

// Config holds all application configuration.
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	History HistoryConfig `mapstructure:"history"`
	UI      UIConfig      `mapstructure:"ui"`
	Export  ExportConfig  `mapstructure:"export"`
	Log     LogConfig     `mapstructure:"log"`
}

// APIConfig locates the record service.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// HistoryConfig tunes the history page.
type HistoryConfig struct {
	PageSize      int  `mapstructure:"page_size"`
	RecallSize    int  `mapstructure:"recall_size"`
	PersistRecall bool `mapstructure:"persist_recall"`
}

// UIConfig holds display preferences.
type UIConfig struct {
	ShowStatusBar bool `mapstructure:"show_status_bar"`
}

// ExportConfig controls XLSX and PDF output.
type ExportConfig struct {
	// Dir receives exports started from the TUI.
	Dir string `mapstructure:"dir"`
	// FontFile is a TrueType font for PDF reports with non-Latin text.
	FontFile string `mapstructure:"font_file"`
}

// LogConfig controls the debug log file.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		API: APIConfig{
			BaseURL: "http://localhost:3001",
			Timeout: 10 * time.Second,
		},
		History: HistoryConfig{
			PageSize:      10,
			RecallSize:    50,
			PersistRecall: true,
		},
		UI: UIConfig{
			ShowStatusBar: true,
		},
		Export: ExportConfig{
			Dir: ".",
		},
		Log: LogConfig{
			Level:  "debug",
			Format: "console",
		},
	}
}

// SetDefaults registers every default on v so env overrides and Unmarshal
// see the full key set.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("api.base_url", d.API.BaseURL)
	v.SetDefault("api.timeout", d.API.Timeout)
	v.SetDefault("history.page_size", d.History.PageSize)
	v.SetDefault("history.recall_size", d.History.RecallSize)
	v.SetDefault("history.persist_recall", d.History.PersistRecall)
	v.SetDefault("ui.show_status_bar", d.UI.ShowStatusBar)
	v.SetDefault("export.dir", d.Export.Dir)
	v.SetDefault("export.font_file", d.Export.FontFile)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.file", d.Log.File)
}

// Load reads configuration. An explicit configFile must exist; otherwise
// ./.riceinspect/config.yaml and ~/.config/riceinspect/config.yaml are tried
// and defaults are used when neither exists. It returns the path actually
// read, empty when none was.
func Load(configFile string) (Config, string, error) {
	// A missing .env is the common case.
	_ = godotenv.Load()

	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(ProjectDir)
		if dir := UserDir(); dir != "" {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return Config{}, "", fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, "", fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, "", err
	}
	return cfg, v.ConfigFileUsed(), nil
}

// Validate checks values that would otherwise fail later at request time.
func (c Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.base_url %q is not an absolute URL", c.API.BaseURL)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative")
	}
	if c.History.PageSize <= 0 {
		return fmt.Errorf("history.page_size must be positive, got %d", c.History.PageSize)
	}
	if c.History.RecallSize < 0 {
		return fmt.Errorf("history.recall_size must not be negative")
	}
	switch c.Log.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("log.format must be json or console, got %q", c.Log.Format)
	}
	return nil
}

// ProjectDir is the project-local config directory.
const ProjectDir = ".riceinspect"

// UserDir returns ~/.config/riceinspect, or empty when home is unknown.
func UserDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "riceinspect")
}

// DefaultConfigPath is where init writes a project config.
func DefaultConfigPath() string {
	return filepath.Join(ProjectDir, "config.yaml")
}
