package config

import "time"

// Config holds runtime settings for the bookkeeping client.
//
// Units: SyncInterval is a time.Duration (e.g., 30*time.Second).
type Config struct {
	DatabasePath  string        `env:"DUKABOOK_DB"`
	SecretsPath   string        `env:"DUKABOOK_SECRETS"`
	DeviceKeyPath string        `env:"DUKABOOK_DEVICE_KEY"`
	RemoteAddr    string        `env:"DUKABOOK_REMOTE_ADDR"`
	SyncBatchSize int           `env:"DUKABOOK_SYNC_BATCH"`
	SyncInterval  time.Duration `env:"DUKABOOK_SYNC_INTERVAL"`
	LogLevel      string        `env:"DUKABOOK_LOG_LEVEL"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "dukabook.db"
	c.SecretsPath = "secrets.bin"
	c.DeviceKeyPath = "device.key"
	c.RemoteAddr = "http://127.0.0.1:8080"
	c.SyncBatchSize = 50
	c.SyncInterval = 30 * time.Second
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), environment variables and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
