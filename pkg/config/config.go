package config

import (
	"fmt"
	"os"
	"time"

	"QuotePull/pkg/util"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment" default:"development"`
	Server      struct {
		Port            int           `yaml:"port" default:"8080"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"60s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"15s"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
	Log struct {
		Level      string `yaml:"level" default:"info"`
		Format     string `yaml:"format" default:"json"`
		Output     string `yaml:"output" default:"stdout"`
		TimeFormat string `yaml:"time_format"`
	} `yaml:"log"`
	Yahoo struct {
		CookieURL        string        `yaml:"cookie_url" default:"https://fc.yahoo.com"`
		HomepageURL      string        `yaml:"homepage_url" default:"https://finance.yahoo.com"`
		Query1URL        string        `yaml:"query1_url" default:"https://query1.finance.yahoo.com"`
		Query2URL        string        `yaml:"query2_url" default:"https://query2.finance.yahoo.com"`
		UserAgent        string        `yaml:"user_agent"`
		SessionTTL       time.Duration `yaml:"session_ttl" default:"60s"`
		MaxRetries       *int          `yaml:"max_retries" default:"2"`
		BatchSize        int           `yaml:"batch_size" default:"50"`
		BatchConcurrency int           `yaml:"batch_concurrency" default:"4"`
		RequestTimeout   time.Duration `yaml:"request_timeout" default:"15s"`
		AuthTimeout      time.Duration `yaml:"auth_timeout" default:"20s"`
		FetchTimeout     time.Duration `yaml:"fetch_timeout" default:"45s"`
	} `yaml:"yahoo"`
	Cache struct {
		TTL        time.Duration `yaml:"ttl" default:"300s"`
		MaxEntries int           `yaml:"max_entries" default:"100"`
	} `yaml:"cache"`
	RateLimit struct {
		Enabled      bool    `yaml:"enabled"`
		Capacity     float64 `yaml:"capacity" default:"30"`
		RefillPerSec float64 `yaml:"refill_per_sec" default:"5"`
	} `yaml:"ratelimit"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(b)
}

// Parse decodes YAML, fills unset fields from struct defaults and validates.
func Parse(b []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}
	c.applyEnv(os.Getenv)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv("APP_ENV"); v != "" {
		c.Environment = v
	}
	c.Server.Port = util.ParseIntDefault(getenv("SERVER_PORT"), c.Server.Port)
	if v := getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := getenv("YAHOO_USER_AGENT"); v != "" {
		c.Yahoo.UserAgent = v
	}
	if v := getenv("YAHOO_MAX_RETRIES"); v != "" {
		n := util.ParseIntDefault(v, *c.Yahoo.MaxRetries)
		c.Yahoo.MaxRetries = &n
	}
	c.Cache.TTL = util.ParseDurationDefault(getenv("CACHE_TTL"), c.Cache.TTL)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535, got %d", c.Server.Port)
	}
	if c.Yahoo.Query1URL == "" || c.Yahoo.Query2URL == "" {
		return fmt.Errorf("yahoo.query1_url and yahoo.query2_url are required")
	}
	if c.Yahoo.MaxRetries != nil && *c.Yahoo.MaxRetries < 0 {
		return fmt.Errorf("yahoo.max_retries cannot be negative")
	}
	if c.Yahoo.BatchSize <= 0 {
		return fmt.Errorf("yahoo.batch_size must be positive")
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive")
	}
	if c.RateLimit.Enabled && (c.RateLimit.Capacity < 1 || c.RateLimit.RefillPerSec <= 0) {
		return fmt.Errorf("ratelimit needs capacity >= 1 and refill_per_sec > 0")
	}
	return nil
}
