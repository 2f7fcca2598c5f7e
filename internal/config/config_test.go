package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadCreatesDefaultFile(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	path := filepath.Join(t.TempDir(), "jess", "jess.yml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if cfg.Path != path {
		t.Errorf("Path = %q, want %q", cfg.Path, path)
	}
	if cfg.UserID != "guest" || cfg.LogLevel != "error" {
		t.Errorf("unexpected defaults: user %q, level %q", cfg.UserID, cfg.LogLevel)
	}
	if cfg.Timetable.StartHour != 8 || cfg.Timetable.EndHour != 20 || cfg.Timetable.ShowWeekends {
		t.Errorf("unexpected timetable defaults: %+v", cfg.Timetable)
	}
	if cfg.Timetable.View != ViewHorizontal || cfg.Timetable.SemesterWeeks != 15 {
		t.Errorf("unexpected timetable defaults: %+v", cfg.Timetable)
	}
	if cfg.Events.RecurringWeeks != 4 {
		t.Errorf("RecurringWeeks = %d, want 4", cfg.Events.RecurringWeeks)
	}
	if cfg.Reminders.Cron != "*/15 * * * *" {
		t.Errorf("Cron = %q", cfg.Reminders.Cron)
	}
	if cfg.AI.GroqModel != "llama-3.3-70b-versatile" || cfg.AI.GeminiModel != "gemini-2.0-flash" {
		t.Errorf("unexpected models: %+v", cfg.AI)
	}
}

func TestLoadReadsFile(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	path := filepath.Join(t.TempDir(), "jess.yml")
	content := `user_id: alice
log_level: DEBUG
timetable:
  start_hour: 7
  end_hour: 22
  show_weekends: true
  view: vertical
colors:
  CS101: "#123456"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.UserID != "alice" || cfg.LogLevel != "debug" {
		t.Errorf("unexpected values: user %q, level %q", cfg.UserID, cfg.LogLevel)
	}
	w := cfg.Window()
	if w.StartHour != 7 || w.EndHour != 22 || !w.ShowWeekends {
		t.Errorf("Window = %+v", w)
	}
	if cfg.Timetable.View != ViewVertical {
		t.Errorf("View = %q", cfg.Timetable.View)
	}
	// keys come back lowercased; the palette matches them case-insensitively
	if got := cfg.Palette().ColorFor("CS101"); got != "#123456" {
		t.Errorf("ColorFor(CS101) = %q, want #123456", got)
	}
	// untouched keys keep their defaults
	if cfg.Events.RecurringWeeks != 4 {
		t.Errorf("RecurringWeeks = %d, want 4", cfg.Events.RecurringWeeks)
	}
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jess.yml")
	t.Setenv("GROQ_API_KEY", "gsk_test")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("JESS_TIMETABLE_START_HOUR", "9")
	t.Setenv("JESS_LOG_LEVEL", "info")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.AI.GroqAPIKey != "gsk_test" {
		t.Errorf("GroqAPIKey = %q", cfg.AI.GroqAPIKey)
	}
	if got := cfg.AIOptions().GroqAPIKey; got != "gsk_test" {
		t.Errorf("AIOptions().GroqAPIKey = %q", got)
	}
	if cfg.Timetable.StartHour != 9 {
		t.Errorf("StartHour = %d, want 9", cfg.Timetable.StartHour)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}

	// the key must not leak into the file written on first run
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "gsk_test") {
		t.Errorf("api key written to config file:\n%s", data)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		in    Config
		check func(t *testing.T, c Config)
	}{
		{
			name: "inverted hours reset",
			in:   Config{Timetable: TimetableConfig{StartHour: 18, EndHour: 9}},
			check: func(t *testing.T, c Config) {
				if c.Timetable.StartHour != 8 || c.Timetable.EndHour != 20 {
					t.Errorf("hours = %d-%d", c.Timetable.StartHour, c.Timetable.EndHour)
				}
			},
		},
		{
			name: "unknown view",
			in:   Config{Timetable: TimetableConfig{View: "diagonal"}},
			check: func(t *testing.T, c Config) {
				if c.Timetable.View != ViewHorizontal {
					t.Errorf("View = %q", c.Timetable.View)
				}
			},
		},
		{
			name: "weeks clamped",
			in:   Config{Timetable: TimetableConfig{SemesterWeeks: 100}, Events: EventsConfig{RecurringWeeks: -1}},
			check: func(t *testing.T, c Config) {
				if c.Timetable.SemesterWeeks != 52 || c.Events.RecurringWeeks != 4 {
					t.Errorf("weeks = %d / %d", c.Timetable.SemesterWeeks, c.Events.RecurringWeeks)
				}
			},
		},
		{
			name: "zero recurring weeks kept",
			in:   Config{Events: EventsConfig{RecurringWeeks: 0}},
			check: func(t *testing.T, c Config) {
				if c.Events.RecurringWeeks != 0 {
					t.Errorf("RecurringWeeks = %d", c.Events.RecurringWeeks)
				}
			},
		},
		{
			name: "empty fields filled",
			in:   Config{},
			check: func(t *testing.T, c Config) {
				if c.UserID != "guest" || c.LogLevel != "error" || c.Reminders.Cron == "" || c.Colors == nil {
					t.Errorf("not filled: %+v", c)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.in
			c.Normalize()
			tt.check(t, c)
		})
	}
}

func TestDefaultPathHonoursXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	got, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "jess", "jess.yml"); got != want {
		t.Errorf("DefaultPath() = %q, want %q", got, want)
	}
}

func TestResolveDataDir(t *testing.T) {
	c := Default()
	c.DataDir = "/tmp/jess-data"
	got, err := c.ResolveDataDir()
	if err != nil || got != "/tmp/jess-data" {
		t.Errorf("ResolveDataDir() = %q, %v", got, err)
	}
}
