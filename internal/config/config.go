// Package config loads Jess settings from a YAML file and JESS_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"github.com/balkashynov/jess/internal/ai"
	"github.com/balkashynov/jess/internal/layout"
	"github.com/balkashynov/jess/internal/models"
	"github.com/balkashynov/jess/internal/palette"
)

// Timetable views
const (
	ViewHorizontal = "horizontal"
	ViewVertical   = "vertical"
)

// AIConfig holds provider credentials and model names
type AIConfig struct {
	GroqAPIKey   string `mapstructure:"groq_api_key"`
	GeminiAPIKey string `mapstructure:"gemini_api_key"`
	GroqModel    string `mapstructure:"groq_model"`
	GeminiModel  string `mapstructure:"gemini_model"`
}

// TimetableConfig controls the timetable grid
type TimetableConfig struct {
	StartHour     int    `mapstructure:"start_hour"`
	EndHour       int    `mapstructure:"end_hour"`
	ShowWeekends  bool   `mapstructure:"show_weekends"`
	View          string `mapstructure:"view"`
	SemesterWeeks int    `mapstructure:"semester_weeks"`
}

// EventsConfig controls future events
type EventsConfig struct {
	// RecurringWeeks is how many weekly copies a recurring event gets
	RecurringWeeks int `mapstructure:"recurring_weeks"`
}

type RemindersConfig struct {
	Cron string `mapstructure:"cron"`
}

// Config is the top-level application configuration
type Config struct {
	DataDir   string            `mapstructure:"data_dir"`
	UserID    string            `mapstructure:"user_id"`
	LogLevel  string            `mapstructure:"log_level"`
	AI        AIConfig          `mapstructure:"ai"`
	Timetable TimetableConfig   `mapstructure:"timetable"`
	Events    EventsConfig      `mapstructure:"events"`
	Colors    map[string]string `mapstructure:"colors"`
	Reminders RemindersConfig   `mapstructure:"reminders"`

	// Path is the file the config was loaded from
	Path string `mapstructure:"-"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", "")
	v.SetDefault("user_id", models.DefaultUserID)
	v.SetDefault("log_level", "error")
	v.SetDefault("ai.groq_api_key", "")
	v.SetDefault("ai.gemini_api_key", "")
	v.SetDefault("ai.groq_model", "llama-3.3-70b-versatile")
	v.SetDefault("ai.gemini_model", "gemini-2.0-flash")
	v.SetDefault("timetable.start_hour", 8)
	v.SetDefault("timetable.end_hour", 20)
	v.SetDefault("timetable.show_weekends", false)
	v.SetDefault("timetable.view", ViewHorizontal)
	v.SetDefault("timetable.semester_weeks", 15)
	v.SetDefault("events.recurring_weeks", 4)
	v.SetDefault("colors", map[string]string{})
	v.SetDefault("reminders.cron", "*/15 * * * *")
}

// DefaultPath returns $XDG_CONFIG_HOME/jess/jess.yml, falling back to the
// platform config directory
func DefaultPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("error getting user home directory: %w", err)
		}
		if runtime.GOOS == "windows" {
			configHome = filepath.Join(homeDir, "AppData", "Roaming")
		} else {
			configHome = filepath.Join(homeDir, ".config")
		}
	}
	return filepath.Join(configHome, "jess", "jess.yml"), nil
}

// Load reads the config at path (DefaultPath when empty). A missing file
// is created with default values. Environment variables override the
// file: JESS_LOG_LEVEL, JESS_TIMETABLE_START_HOUR and so on, plus
// GROQ_API_KEY and GEMINI_API_KEY.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	// Ensure the config directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("error creating config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || os.IsNotExist(err) {
			// written before env binding so secrets from the environment stay out of the file
			if err := v.WriteConfigAs(path); err != nil {
				return nil, fmt.Errorf("error creating config file: %w", err)
			}
		} else {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("JESS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("ai.groq_api_key", "JESS_AI_GROQ_API_KEY", "GROQ_API_KEY"); err != nil {
		return nil, err
	}
	if err := v.BindEnv("ai.gemini_api_key", "JESS_AI_GEMINI_API_KEY", "GEMINI_API_KEY"); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	cfg.Path = path
	cfg.Normalize()
	return &cfg, nil
}

// Default returns the built-in configuration without touching the disk
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// defaults always decode
	_ = v.Unmarshal(&cfg)
	cfg.Normalize()
	return &cfg
}

// Normalize repairs missing or out-of-range values so a hand-edited file
// still behaves
func (c *Config) Normalize() {
	if strings.TrimSpace(c.UserID) == "" {
		c.UserID = models.DefaultUserID
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "error":
		c.LogLevel = strings.ToLower(c.LogLevel)
	default:
		c.LogLevel = "error"
	}

	t := &c.Timetable
	if t.StartHour < 0 || t.EndHour > 23 || t.StartHour > t.EndHour {
		t.StartHour, t.EndHour = 8, 20
	}
	switch strings.ToLower(t.View) {
	case ViewHorizontal, ViewVertical:
		t.View = strings.ToLower(t.View)
	default:
		t.View = ViewHorizontal
	}
	if t.SemesterWeeks <= 0 {
		t.SemesterWeeks = 15
	}
	if t.SemesterWeeks > 52 {
		t.SemesterWeeks = 52
	}

	if c.Events.RecurringWeeks < 0 {
		c.Events.RecurringWeeks = 4
	}
	if c.Events.RecurringWeeks > 52 {
		c.Events.RecurringWeeks = 52
	}

	if c.Colors == nil {
		c.Colors = map[string]string{}
	}
	if strings.TrimSpace(c.Reminders.Cron) == "" {
		c.Reminders.Cron = "*/15 * * * *"
	}
}

// ResolveDataDir returns the data directory, ~/.jess when unset
func (c *Config) ResolveDataDir() (string, error) {
	if c.DataDir != "" {
		return c.DataDir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("error getting user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".jess"), nil
}

// AIOptions converts the ai section into provider settings
func (c *Config) AIOptions() ai.Config {
	return ai.Config{
		GroqAPIKey:   c.AI.GroqAPIKey,
		GroqModel:    c.AI.GroqModel,
		GeminiAPIKey: c.AI.GeminiAPIKey,
		GeminiModel:  c.AI.GeminiModel,
	}
}

// Window returns the configured timetable window. Normalize has already
// repaired the hours, so this never fails for a loaded config.
func (c *Config) Window() layout.Window {
	w, err := layout.NewWindow(c.Timetable.ShowWeekends, c.Timetable.StartHour, c.Timetable.EndHour)
	if err != nil {
		return layout.DefaultWindow()
	}
	return w
}

func (c *Config) Palette() palette.Palette {
	return palette.New(c.Colors)
}
