package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string `toml:"-"`

	Host string `toml:"host"`
	Port int    `toml:"port"`
	// public URL of the web app, used in share links and emails
	SiteURL string `toml:"site_url"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	// postgres
	PostgresHost     string `toml:"postgres_host"`
	PostgresPort     string `toml:"postgres_port"`
	PostgresDBName   string `toml:"postgres_db_name"`
	PostgresUser     string `toml:"postgres_user"`
	RunMigrations    bool   `toml:"run_migrations"`
	TracingInDBLayer bool   `toml:"tracing_in_db_layer"`

	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`

	LoginRateLimitAllowedPerMin int `toml:"login_rate_limit_allowed_per_min"`

	// workout plan
	PlanSource         string `toml:"plan_source"` // csv | sheets
	HomeWorkoutPlanURL string `toml:"home_workout_plan_url"`
	GymWorkoutPlanURL  string `toml:"gym_workout_plan_url"`
	PlanSpreadsheetID  string `toml:"plan_spreadsheet_id"`
	HomePlanSheetRange string `toml:"home_plan_sheet_range"`
	GymPlanSheetRange  string `toml:"gym_plan_sheet_range"`
	PlanCacheTTLSecs   int    `toml:"plan_cache_ttl_secs"`

	// notifications and crons
	ReminderHour     int    `toml:"reminder_hour"`
	EmailFrom        string `toml:"email_from"`
	ResendAPIURL     string `toml:"resend_api_url"`
	CronWorkersLimit int    `toml:"cron_workers_limit"`

	IPInfoEnabled bool `toml:"ip_info_enabled"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("config for env [%s] not set", env)
	}
	cfg.Environment = strings.ToLower(env)
	cfg.setDefaults()
	return cfg, nil
}

func Load(env, configPath string) (*Config, error) {
	tomlBytes, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return Parse(env, string(tomlBytes))
}

func Parse(env, tomlContent string) (*Config, error) {
	var t Toml
	if _, err := toml.Decode(tomlContent, &t); err != nil {
		return nil, fmt.Errorf("decode toml: %w", err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.PlanSource == "" {
		c.PlanSource = "csv"
	}
	if c.PlanCacheTTLSecs == 0 {
		c.PlanCacheTTLSecs = 3600
	}
	if c.ReminderHour == 0 {
		c.ReminderHour = 18
	}
	if c.CronWorkersLimit <= 0 {
		c.CronWorkersLimit = 8
	}
	if c.LoginRateLimitAllowedPerMin <= 0 {
		c.LoginRateLimitAllowedPerMin = 15
	}
	if c.PostgresUser == "" {
		c.PostgresUser = "postgres"
	}
	if c.ResendAPIURL == "" {
		c.ResendAPIURL = "https://api.resend.com"
	}
}

func (c *Config) Validate() error {
	if c.ReminderHour < 0 || c.ReminderHour > 23 {
		return fmt.Errorf("reminder hour out of range: %d", c.ReminderHour)
	}
	switch c.PlanSource {
	case "csv":
		if c.HomeWorkoutPlanURL == "" || c.GymWorkoutPlanURL == "" {
			return errors.New("home and gym workout plan urls must be set")
		}
	case "sheets":
		if c.PlanSpreadsheetID == "" || c.HomePlanSheetRange == "" || c.GymPlanSheetRange == "" {
			return errors.New("plan spreadsheet id and sheet ranges must be set")
		}
	default:
		return fmt.Errorf("unknown plan source: %s", c.PlanSource)
	}
	return nil
}
