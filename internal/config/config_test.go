package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, []string{"MSFT", "TSLA"}, cfg.DataSource.Symbols)
	assert.Equal(t, 7, cfg.DataSource.LookbackDays)
	assert.Equal(t, 47.6062, cfg.Weather.Latitude)
	assert.Equal(t, -122.3321, cfg.Weather.Longitude)
	assert.Equal(t, "America/Los_Angeles", cfg.Weather.Timezone)
	assert.Equal(t, 10.0, cfg.Alerts.StockChangePct)
	assert.Equal(t, 50.0, cfg.Alerts.PrecipProbability)
	assert.Equal(t, "signed", cfg.Alerts.StockMode)
	assert.Equal(t, time.Hour, cfg.Schedule.Interval)
	require.NotNil(t, cfg.Schedule.RunOnStart)
	assert.True(t, *cfg.Schedule.RunOnStart)
	assert.Equal(t, "smtp.gmail.com", cfg.Mail.Host)
	assert.Equal(t, 465, cfg.Mail.Port)
	assert.Equal(t, 8040, cfg.Server.Port)
	assert.Equal(t, uint32(3), cfg.DataSource.BreakerFailures)
	assert.Equal(t, 90*time.Minute, cfg.DataSource.BreakerCooldown, "an open breaker skips the next hourly cycle")
	assert.Empty(t, cfg.DataSource.SymbolMap)
	assert.False(t, cfg.Mail.Enabled)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	path := writeConfig(t, `
data_source:
  symbols: [AAPL]
  lookback_days: 14
  symbol_map:
    SPX: ^GSPC
weather:
  latitude: 51.5
  longitude: -0.12
  timezone: Europe/London
alerts:
  stock_mode: absolute
schedule:
  interval: 30m
  run_on_start: false
`)
	t.Setenv("EMAIL_ADDRESS", "me@example.com")
	t.Setenv("EMAIL_PASSWORD", "app-password")
	t.Setenv("PORT", "9000")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"AAPL"}, cfg.DataSource.Symbols)
	assert.Equal(t, 14, cfg.DataSource.LookbackDays)
	assert.Equal(t, 51.5, cfg.Weather.Latitude)
	assert.Equal(t, "Europe/London", cfg.Weather.Timezone)
	assert.Equal(t, "absolute", cfg.Alerts.StockMode)
	assert.Equal(t, 30*time.Minute, cfg.Schedule.Interval)
	assert.Equal(t, 45*time.Minute, cfg.DataSource.BreakerCooldown, "cooldown follows the interval")
	assert.Equal(t, map[string]string{"SPX": "^GSPC"}, cfg.DataSource.SymbolMap)
	assert.False(t, *cfg.Schedule.RunOnStart)
	assert.Equal(t, 9000, cfg.Server.Port)

	assert.True(t, cfg.Mail.Enabled, "credentials in env enable mail")
	assert.Equal(t, "me@example.com", cfg.Mail.Address)
	assert.Equal(t, "me@example.com", cfg.Mail.Recipient, "recipient defaults to sender")
	assert.NoError(t, cfg.Validate())
}

func TestLoad_BadYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "data_source: [not, a, map"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad mode", func(c *Config) { c.Alerts.StockMode = "loose" }},
		{"latitude out of range", func(c *Config) { c.Weather.Latitude = 91 }},
		{"longitude out of range", func(c *Config) { c.Weather.Longitude = -181 }},
		{"no symbols", func(c *Config) { c.DataSource.Symbols = []string{} }},
		{"empty symbol", func(c *Config) { c.DataSource.Symbols = []string{"MSFT", ""} }},
		{"interval too short", func(c *Config) { c.Schedule.Interval = 10 * time.Millisecond }},
		{"mail without password", func(c *Config) {
			c.Mail.Enabled = true
			c.Mail.Address = "me@example.com"
			c.Mail.Recipient = "me@example.com"
		}},
		{"bad recipient", func(c *Config) {
			c.Mail.Enabled = true
			c.Mail.Address = "me@example.com"
			c.Mail.Password = "secret"
			c.Mail.Recipient = "not-an-address"
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
			require.NoError(t, err)
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
