// ABOUTME: Configuration management for the preview engine with environment variable support
// ABOUTME: Defines configuration structures for transport, discovery bounds, logging and metrics

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. PREVIEW_LOG_LEVEL
const EnvPrefix = "PREVIEW"

// Config holds all application configuration
type Config struct {
	// HTTP contains transport configuration
	HTTP HTTPConfig `mapstructure:"http"`

	// Download contains per-task fetch limits
	Download DownloadConfig `mapstructure:"download"`

	// Preview contains discovery bounds of the resolution engine
	Preview PreviewConfig `mapstructure:"preview"`

	// Log contains logger configuration
	Log LogConfig `mapstructure:"log"`

	// Metrics contains Prometheus configuration
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// HTTPConfig holds HTTP client configuration
type HTTPConfig struct {
	// TimeoutSeconds bounds a single request including retries of the body read
	TimeoutSeconds int `mapstructure:"timeout_seconds"`

	// MaxRetries is the number of attempts for 5xx and network errors
	MaxRetries int `mapstructure:"max_retries"`

	// UserAgent is sent with every request
	UserAgent string `mapstructure:"user_agent"`
}

// DownloadConfig holds download task configuration
type DownloadConfig struct {
	// RequestsPerSecond paces fetches of one task, 0 disables pacing
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`

	// Burst is the number of fetches allowed at once when pacing
	Burst int `mapstructure:"burst"`

	// MaxBodyBytes truncates larger documents
	MaxBodyBytes int64 `mapstructure:"max_body_bytes"`
}

// PreviewConfig holds resolution engine configuration
type PreviewConfig struct {
	// MaxDiscoveredLinks caps links followed from one document
	MaxDiscoveredLinks int `mapstructure:"max_discovered_links"`

	// DiscoveryConcurrency caps concurrent resolutions of discovered links
	DiscoveryConcurrency int `mapstructure:"discovery_concurrency"`

	// ResolveTimeoutSeconds bounds a whole top-level resolve, 0 disables it
	ResolveTimeoutSeconds int `mapstructure:"resolve_timeout_seconds"`
}

// LogConfig holds logger configuration
type LogConfig struct {
	// Level is a logrus level name
	Level string `mapstructure:"level"`

	// Format is text or json
	Format string `mapstructure:"format"`
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	// Enabled registers the Prometheus recorder
	Enabled bool `mapstructure:"enabled"`
}

// Load reads configuration from defaults, an optional file and PREVIEW_ environment variables
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return cfg, nil
}

// LoadFromEnv loads configuration from environment variables only
func LoadFromEnv() (*Config, error) {
	return Load("")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.timeout_seconds", 10)
	v.SetDefault("http.max_retries", 3)
	v.SetDefault("http.user_agent", "DigestsPreview/1.0")
	v.SetDefault("download.requests_per_second", 0)
	v.SetDefault("download.burst", 4)
	v.SetDefault("download.max_body_bytes", 5*1024*1024)
	v.SetDefault("preview.max_discovered_links", 50)
	v.SetDefault("preview.discovery_concurrency", 8)
	v.SetDefault("preview.resolve_timeout_seconds", 0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("metrics.enabled", false)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.HTTP.TimeoutSeconds < 1 {
		return errors.New("http timeout must be at least 1 second")
	}

	if c.HTTP.MaxRetries < 1 {
		return errors.New("http max retries must be at least 1")
	}

	if c.Download.RequestsPerSecond < 0 {
		return errors.New("download requests per second cannot be negative")
	}

	if c.Download.MaxBodyBytes < 1 {
		return errors.New("download max body bytes must be positive")
	}

	if c.Preview.MaxDiscoveredLinks < 1 {
		return errors.New("max discovered links must be at least 1")
	}

	if c.Preview.DiscoveryConcurrency < 1 {
		return errors.New("discovery concurrency must be at least 1")
	}

	if c.Preview.ResolveTimeoutSeconds < 0 {
		return errors.New("resolve timeout cannot be negative")
	}

	if c.Log.Format != "text" && c.Log.Format != "json" {
		return errors.New("log format must be 'text' or 'json'")
	}

	return nil
}

// HTTPTimeout returns the HTTP timeout as a duration
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutSeconds) * time.Second
}

// ResolveTimeout returns the resolve timeout, zero when disabled
func (c *Config) ResolveTimeout() time.Duration {
	return time.Duration(c.Preview.ResolveTimeoutSeconds) * time.Second
}
