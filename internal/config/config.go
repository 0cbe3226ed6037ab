package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Mail struct {
		Enabled   bool          `yaml:"enabled" envconfig:"MAIL_ENABLED"`
		Host      string        `yaml:"host" envconfig:"SMTP_HOST"`
		Port      int           `yaml:"port" envconfig:"SMTP_PORT" validate:"gt=0,lte=65535"`
		Address   string        `yaml:"address" envconfig:"EMAIL_ADDRESS" validate:"required_if=Enabled true,omitempty,email"`
		Password  string        `yaml:"password" envconfig:"EMAIL_PASSWORD" validate:"required_if=Enabled true"`
		Recipient string        `yaml:"recipient" envconfig:"ALERT_RECIPIENT" validate:"required_if=Enabled true,omitempty,email"`
		Timeout   time.Duration `yaml:"timeout" envconfig:"SMTP_TIMEOUT" validate:"gt=0"`
	} `yaml:"mail"`
	DataSource struct {
		Symbols      []string      `yaml:"symbols" envconfig:"SYMBOLS" validate:"min=1,dive,required"`
		LookbackDays int           `yaml:"lookback_days" envconfig:"LOOKBACK_DAYS" validate:"gt=0"`
		YahooBaseURL string        `yaml:"yahoo_base_url" envconfig:"YAHOO_BASE_URL" validate:"url"`
		RateLimit    float64       `yaml:"rate_limit" envconfig:"YAHOO_RATE_LIMIT" validate:"gt=0"`
		Timeout      time.Duration `yaml:"timeout" envconfig:"FETCH_TIMEOUT" validate:"gt=0"`
		// SymbolMap renames configured symbols to Yahoo tickers, e.g. SPX: ^GSPC.
		SymbolMap map[string]string `yaml:"symbol_map" envconfig:"YAHOO_SYMBOL_MAP"`
		// A provider failing BreakerFailures times in a row is skipped for
		// BreakerCooldown. The default cooldown spans the next cycle.
		BreakerFailures uint32        `yaml:"breaker_failures" envconfig:"BREAKER_FAILURES" validate:"gt=0"`
		BreakerCooldown time.Duration `yaml:"breaker_cooldown" envconfig:"BREAKER_COOLDOWN" validate:"gt=0"`
	} `yaml:"data_source"`
	Weather struct {
		BaseURL   string  `yaml:"base_url" envconfig:"OPEN_METEO_BASE_URL" validate:"url"`
		Latitude  float64 `yaml:"latitude" envconfig:"LATITUDE" validate:"gte=-90,lte=90"`
		Longitude float64 `yaml:"longitude" envconfig:"LONGITUDE" validate:"gte=-180,lte=180"`
		Timezone  string  `yaml:"timezone" envconfig:"TIMEZONE" validate:"required"`
	} `yaml:"weather"`
	Alerts struct {
		StockChangePct    float64 `yaml:"stock_change_pct" validate:"gt=0"`
		PrecipProbability float64 `yaml:"precip_probability" validate:"gt=0,lte=100"`
		StockMode         string  `yaml:"stock_mode" envconfig:"STOCK_ALERT_MODE" validate:"oneof=signed absolute"`
	} `yaml:"alerts"`
	Schedule struct {
		Interval   time.Duration `yaml:"interval" envconfig:"REFRESH_INTERVAL" validate:"gte=1s"`
		RunOnStart *bool         `yaml:"run_on_start" envconfig:"RUN_ON_START"`
	} `yaml:"schedule"`
	Server struct {
		Port int `yaml:"port" envconfig:"PORT" validate:"gt=0,lte=65535"`
	} `yaml:"server"`
	Proxy string `yaml:"proxy" envconfig:"HTTPS_PROXY" validate:"omitempty,url"`
}

// Load reads config from a YAML file, then applies environment variable overrides
// (including any found in a local .env file) and finally fills in defaults.
func Load(path string) (*Config, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("apply env overrides: %w", err)
	}

	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Mail.Host == "" {
		cfg.Mail.Host = "smtp.gmail.com"
	}
	if cfg.Mail.Port == 0 {
		cfg.Mail.Port = 465
	}
	if cfg.Mail.Timeout == 0 {
		cfg.Mail.Timeout = 15 * time.Second
	}
	if !cfg.Mail.Enabled && cfg.Mail.Address != "" && cfg.Mail.Password != "" {
		cfg.Mail.Enabled = true
	}
	if cfg.Mail.Recipient == "" {
		cfg.Mail.Recipient = cfg.Mail.Address
	}

	if len(cfg.DataSource.Symbols) == 0 {
		cfg.DataSource.Symbols = []string{"MSFT", "TSLA"}
	}
	if cfg.DataSource.LookbackDays == 0 {
		cfg.DataSource.LookbackDays = 7
	}
	if cfg.DataSource.YahooBaseURL == "" {
		cfg.DataSource.YahooBaseURL = "https://query1.finance.yahoo.com"
	}
	if cfg.DataSource.RateLimit == 0 {
		cfg.DataSource.RateLimit = 2
	}
	if cfg.DataSource.Timeout == 0 {
		cfg.DataSource.Timeout = 10 * time.Second
	}

	if cfg.Weather.BaseURL == "" {
		cfg.Weather.BaseURL = "https://api.open-meteo.com"
	}
	if cfg.Weather.Latitude == 0 && cfg.Weather.Longitude == 0 {
		cfg.Weather.Latitude = 47.6062
		cfg.Weather.Longitude = -122.3321
	}
	if cfg.Weather.Timezone == "" {
		cfg.Weather.Timezone = "America/Los_Angeles"
	}

	if cfg.Alerts.StockChangePct == 0 {
		cfg.Alerts.StockChangePct = 10
	}
	if cfg.Alerts.PrecipProbability == 0 {
		cfg.Alerts.PrecipProbability = 50
	}
	if cfg.Alerts.StockMode == "" {
		cfg.Alerts.StockMode = "signed"
	}

	if cfg.Schedule.Interval == 0 {
		cfg.Schedule.Interval = 3600 * time.Second
	}
	if cfg.Schedule.RunOnStart == nil {
		on := true
		cfg.Schedule.RunOnStart = &on
	}

	if cfg.DataSource.BreakerFailures == 0 {
		cfg.DataSource.BreakerFailures = 3
	}
	if cfg.DataSource.BreakerCooldown == 0 {
		cfg.DataSource.BreakerCooldown = cfg.Schedule.Interval * 3 / 2
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8040
	}
}

// Validate checks that all fields hold usable values.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
