// Package config loads the service configuration from YAML and the environment.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"FortuneTeller/internal/calendar"
	"FortuneTeller/internal/model"
	"FortuneTeller/internal/saju"
)

// Calendar sources.
const (
	SourceApprox = "approx"
	SourceSQLite = "sqlite"
	SourceHTTP   = "http"
)

type ServerConfig struct {
	Addr string `yaml:"addr" env:"SERVER_ADDR"`
	Mode string `yaml:"mode" env:"GIN_MODE"`
}

type CalendarConfig struct {
	Source         string `yaml:"source" env:"CALENDAR_SOURCE"`
	SQLitePath     string `yaml:"sqlite_path" env:"CALENDAR_DB_PATH"`
	BaseURL        string `yaml:"base_url" env:"CALENDAR_BASE_URL"`
	APIKey         string `yaml:"api_key" env:"CALENDAR_API_KEY"`
	TimeoutSeconds int    `yaml:"timeout_seconds" env:"CALENDAR_TIMEOUT_SECONDS"`
	// SolarTerms overrides the per-month solar-term day table when it has 12 entries.
	SolarTerms []int `yaml:"solar_terms"`
}

// Timeout is the HTTP source timeout.
func (c CalendarConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Terms returns the configured solar-term table, or the default one.
func (c CalendarConfig) Terms() calendar.SolarTerms {
	if len(c.SolarTerms) != 12 {
		return calendar.DefaultSolarTerms
	}
	var t calendar.SolarTerms
	copy(t[:], c.SolarTerms)
	return t
}

type HistoryConfig struct {
	Enabled    bool   `yaml:"enabled" env:"HISTORY_ENABLED"`
	SQLitePath string `yaml:"sqlite_path" env:"SQLITE_PATH"`
}

type GeminiConfig struct {
	APIKey          string  `yaml:"api_key" env:"GEMINI_API_KEY"`
	Model           string  `yaml:"model" env:"GEMINI_MODEL"`
	Temperature     float32 `yaml:"temperature" env:"AI_TEMPERATURE"`
	TopP            float32 `yaml:"top_p" env:"AI_TOP_P"`
	MaxOutputTokens int32   `yaml:"max_output_tokens" env:"AI_MAX_TOKENS"`
	DailyLimit      int     `yaml:"daily_limit" env:"GEMINI_DAILY_LIMIT"`
	MonthlyLimit    int     `yaml:"monthly_limit" env:"GEMINI_MONTHLY_LIMIT"`
	UsageFile       string  `yaml:"usage_file" env:"GEMINI_USAGE_FILE"`
}

type TelegramConfig struct {
	BotToken string `yaml:"bot_token" env:"TELEGRAM_BOT_TOKEN"`
	ChatID   string `yaml:"chat_id" env:"TELEGRAM_CHAT_ID"`
}

// Enabled reports whether both credentials are present.
func (t TelegramConfig) Enabled() bool { return t.BotToken != "" && t.ChatID != "" }

type ScheduleConfig struct {
	DailyCron  string `yaml:"daily_cron" env:"CRON_DAILY"`
	YearlyCron string `yaml:"yearly_cron" env:"CRON_YEARLY"`
}

// Profile is a person whose daily digest the bot sends.
type Profile struct {
	Name   string `yaml:"name"`
	Year   int    `yaml:"year"`
	Month  int    `yaml:"month"`
	Day    int    `yaml:"day"`
	Hour   int    `yaml:"hour"`
	Gender string `yaml:"gender"`
}

// Birth converts the profile; gender must already be validated.
func (p Profile) Birth() model.BirthInfo {
	g, _ := saju.ParseGender(p.Gender)
	return model.BirthInfo{Name: p.Name, Year: p.Year, Month: p.Month, Day: p.Day, Hour: p.Hour, Gender: g}
}

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Calendar CalendarConfig `yaml:"calendar"`
	History  HistoryConfig  `yaml:"history"`
	Gemini   GeminiConfig   `yaml:"gemini"`
	Telegram TelegramConfig `yaml:"telegram"`
	Schedule ScheduleConfig `yaml:"schedule"`
	Profiles []Profile      `yaml:"profiles"`
	Proxy    string         `yaml:"proxy" env:"HTTPS_PROXY"`
}

// Births returns the profiles as birth records.
func (c *Config) Births() []model.BirthInfo {
	out := make([]model.BirthInfo, 0, len(c.Profiles))
	for _, p := range c.Profiles {
		out = append(out, p.Birth())
	}
	return out
}

// Load reads config from a YAML file, then applies environment variable overrides
// and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if len(data) > 0 {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.Mode == "" {
		c.Server.Mode = "release"
	}
	if c.Calendar.Source == "" {
		c.Calendar.Source = SourceApprox
	}
	if c.Calendar.SQLitePath == "" {
		c.Calendar.SQLitePath = "data/calendar.db"
	}
	if c.Calendar.TimeoutSeconds == 0 {
		c.Calendar.TimeoutSeconds = 30
	}
	if c.History.SQLitePath == "" {
		c.History.SQLitePath = "data/fortune_history.db"
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Gemini.Temperature == 0 {
		c.Gemini.Temperature = 0.7
	}
	if c.Gemini.TopP == 0 {
		c.Gemini.TopP = 0.9
	}
	if c.Gemini.MaxOutputTokens == 0 {
		c.Gemini.MaxOutputTokens = 1000
	}
	if c.Gemini.DailyLimit == 0 {
		c.Gemini.DailyLimit = 1000
	}
	if c.Gemini.MonthlyLimit == 0 {
		c.Gemini.MonthlyLimit = 30000
	}
	if c.Gemini.UsageFile == "" {
		c.Gemini.UsageFile = "data/gemini_usage.json"
	}
	if c.Schedule.DailyCron == "" {
		c.Schedule.DailyCron = "0 0 8 * * *"
	}
	if c.Schedule.YearlyCron == "" {
		c.Schedule.YearlyCron = "0 0 9 1 1 *"
	}
}

// Validate checks the loaded values are usable.
func (c *Config) Validate() error {
	switch c.Calendar.Source {
	case SourceApprox:
	case SourceSQLite:
		if c.Calendar.SQLitePath == "" {
			return fmt.Errorf("calendar.sqlite_path is required for the sqlite source")
		}
	case SourceHTTP:
		if c.Calendar.BaseURL == "" {
			return fmt.Errorf("calendar.base_url is required for the http source")
		}
	default:
		return fmt.Errorf("calendar.source %q must be one of approx, sqlite, http", c.Calendar.Source)
	}
	if n := len(c.Calendar.SolarTerms); n != 0 {
		if n != 12 {
			return fmt.Errorf("calendar.solar_terms must have 12 entries, got %d", n)
		}
		if err := c.Calendar.Terms().Validate(); err != nil {
			return fmt.Errorf("calendar.solar_terms: %w", err)
		}
	}
	if c.Server.Mode != "debug" && c.Server.Mode != "release" && c.Server.Mode != "test" {
		return fmt.Errorf("server.mode %q must be debug, release or test", c.Server.Mode)
	}
	if c.Gemini.DailyLimit < 0 || c.Gemini.MonthlyLimit < 0 {
		return fmt.Errorf("gemini limits must not be negative")
	}
	if c.Gemini.Temperature < 0 || c.Gemini.Temperature > 2 {
		return fmt.Errorf("gemini.temperature %.2f must be between 0 and 2", c.Gemini.Temperature)
	}
	if c.Gemini.TopP < 0 || c.Gemini.TopP > 1 {
		return fmt.Errorf("gemini.top_p %.2f must be between 0 and 1", c.Gemini.TopP)
	}
	for i, p := range c.Profiles {
		if err := saju.ValidateDate(p.Year, p.Month, p.Day, p.Hour); err != nil {
			return fmt.Errorf("profiles[%d] %q: %w", i, p.Name, err)
		}
		if _, err := saju.ParseGender(p.Gender); err != nil {
			return fmt.Errorf("profiles[%d] %q: %w", i, p.Name, err)
		}
	}
	return nil
}
