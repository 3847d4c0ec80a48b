// Package config handles application configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config defines the structure for all application configuration.
type Config struct {
	HTTPPort   int       `yaml:"http_port"`
	Sweep      SweepConf `yaml:"sweep"`
	Quote      QuoteConf `yaml:"quote"`
	VendorKey  string    `yaml:"-"` // Loaded from env
	LogLevel   string    `yaml:"-"` // Loaded from env or defaults
	DBHost     string    `yaml:"-"`
	DBPort     string    `yaml:"-"`
	DBUser     string    `yaml:"-"`
	DBPassword string    `yaml:"-"`
	DBName     string    `yaml:"-"`
}

// SweepConf holds configuration for the lifecycle sweep.
type SweepConf struct {
	IntervalSeconds int      `yaml:"interval_seconds"`
	Limit           int      `yaml:"limit"`
	Workers         int      `yaml:"workers"`
	ExpiryDays      int      `yaml:"expiry_days"`
	DryRun          FlexBool `yaml:"dry_run"`
}

// Interval returns the sweep period, defaulting to 60s.
func (s SweepConf) Interval() time.Duration {
	if s.IntervalSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(s.IntervalSeconds) * time.Second
}

// QuoteConf holds configuration for the price vendor.
type QuoteConf struct {
	VendorURL       string `yaml:"vendor_url"`
	StreamURL       string `yaml:"stream_url"`
	TimeoutSeconds  int    `yaml:"timeout_seconds"`
	CacheMaxAgeSecs int    `yaml:"cache_max_age_seconds"`
}

// Timeout returns the per-lookup quote timeout, defaulting to 5s.
func (q QuoteConf) Timeout() time.Duration {
	if q.TimeoutSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(q.TimeoutSeconds) * time.Second
}

// CacheMaxAge returns how long a streamed tick stays servable.
func (q QuoteConf) CacheMaxAge() time.Duration {
	if q.CacheMaxAgeSecs <= 0 {
		return 30 * time.Second
	}
	return time.Duration(q.CacheMaxAgeSecs) * time.Second
}

// DatabaseURL assembles a postgres connection string from the DB fields.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

// LoadConfig loads configuration from the specified YAML file path
// and environment variables.
func LoadConfig(configPath string) (*Config, error) {
	cfg := &Config{
		// Default values
		HTTPPort: 8080,
		LogLevel: "info",
	}

	// Read YAML file
	file, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	err = yaml.Unmarshal(file, cfg)
	if err != nil {
		return nil, err
	}

	// Load sensitive data and overrides from environment variables
	if vendorKey := os.Getenv("QUOTE_VENDOR_API_KEY"); vendorKey != "" {
		cfg.VendorKey = vendorKey
	}
	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if dbHost := os.Getenv("DB_HOST"); dbHost != "" {
		cfg.DBHost = dbHost
	}
	if dbPort := os.Getenv("DB_PORT"); dbPort != "" {
		cfg.DBPort = dbPort
	}
	if dbUser := os.Getenv("DB_USER"); dbUser != "" {
		cfg.DBUser = dbUser
	}
	if dbPassword := os.Getenv("DB_PASSWORD"); dbPassword != "" {
		cfg.DBPassword = dbPassword
	}
	if dbName := os.Getenv("DB_NAME"); dbName != "" {
		cfg.DBName = dbName
	}

	return cfg, nil
}
