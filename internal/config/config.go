package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Telegram struct {
		BotToken          string  `yaml:"bot_token"`
		Debug             bool    `yaml:"debug"`
		SendRatePerSecond float64 `yaml:"send_rate_per_second"`
	} `yaml:"telegram"`

	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`

	Backup struct {
		Enabled       bool   `yaml:"enabled"`
		IntervalHours int    `yaml:"interval_hours"`
		Path          string `yaml:"path"`
		RetentionDays int    `yaml:"retention_days"`
	} `yaml:"backup"`

	Redis struct {
		Address            string `yaml:"address"`
		Password           string `yaml:"password"`
		DB                 int    `yaml:"db"`
		OrdersCacheTTLSecs int    `yaml:"orders_cache_ttl_seconds"`
	} `yaml:"redis"`

	Catalog struct {
		Path string `yaml:"path"`
	} `yaml:"catalog"`

	Monitoring struct {
		HealthCheckPort   int  `yaml:"health_check_port"`
		PrometheusEnabled bool `yaml:"prometheus_enabled"`
		PrometheusPort    int  `yaml:"prometheus_port"`
	} `yaml:"monitoring"`

	Session struct {
		IdleTimeoutMinutes int `yaml:"idle_timeout_minutes"`
	} `yaml:"session"`

	Managers []int64 `yaml:"managers"`
}

func Load(path string) (*Config, error) {
	if path == "" {
		path = "configs/config.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Support ${ENV_VAR} placeholders in YAML config.
	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if cfg.Database.Path == "" {
		cfg.Database.Path = "data/poezdka.db"
	}

	if err = os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// BackupInterval returns how often database backups run.
func (c *Config) BackupInterval() time.Duration {
	if c.Backup.IntervalHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.Backup.IntervalHours) * time.Hour
}

// OrdersCacheTTL returns the Redis TTL for cached order history.
func (c *Config) OrdersCacheTTL() time.Duration {
	if c.Redis.OrdersCacheTTLSecs <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.Redis.OrdersCacheTTLSecs) * time.Second
}

// SessionIdleTimeout returns how long a session may stay idle before
// cleanup removes it.
func (c *Config) SessionIdleTimeout() time.Duration {
	if c.Session.IdleTimeoutMinutes <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.Session.IdleTimeoutMinutes) * time.Minute
}

// SendRate returns the outgoing Telegram message rate limit.
func (c *Config) SendRate() float64 {
	if c.Telegram.SendRatePerSecond <= 0 {
		return 25
	}
	return c.Telegram.SendRatePerSecond
}
