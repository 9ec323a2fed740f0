package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces every environment override, e.g. DRIVEFIT_SERVER_ADDRESS
const EnvPrefix = "DRIVEFIT"

// Defaults for the application settings
const (
	DefaultServerAddress    = ":8080"
	DefaultMaxBodySizeBytes = int64(256 * 1024)
	DefaultGeminiModel      = "gemini-2.0-flash-exp"
	DefaultServiceName      = "drivefit"
)

// Cache backends
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheNone   = "none"
)

// Recommendation providers
const (
	ProviderRules  = "rules"
	ProviderGemini = "gemini"
)

// AppConfig holds process-wide settings for the CLI and HTTP server
type AppConfig struct {
	Server      ServerConfig      `mapstructure:"server"`
	Logging     LoggingConfig     `mapstructure:"logging"`
	RateLimit   RateLimitConfig   `mapstructure:"rate_limit"`
	Cache       CacheConfig       `mapstructure:"cache"`
	Recommender RecommenderConfig `mapstructure:"recommender"`
	Tracing     TracingConfig     `mapstructure:"tracing"`
	Metrics     MetricsConfig     `mapstructure:"metrics"`
	Engine      EngineConfig      `mapstructure:"engine"`
}

// ServerConfig defines runtime parameters for the HTTP server
type ServerConfig struct {
	Address         string        `mapstructure:"address"`
	MaxBodySize     string        `mapstructure:"max_body_size"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	maxBodyBytes int64
}

// MaxBodyBytes returns the parsed request body limit
func (s ServerConfig) MaxBodyBytes() int64 {
	if s.maxBodyBytes <= 0 {
		return DefaultMaxBodySizeBytes
	}
	return s.maxBodyBytes
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputFile string `mapstructure:"output_file"` // optional file output
}

// RateLimitConfig configures the per-client token bucket
type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// CacheConfig selects where generated recommendations are cached
type CacheConfig struct {
	Backend       string        `mapstructure:"backend"` // memory, redis, none
	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"`
	TTL           time.Duration `mapstructure:"ttl"`
}

// RecommenderConfig selects the recommendation text provider
type RecommenderConfig struct {
	Provider string        `mapstructure:"provider"` // rules, gemini
	APIKey   string        `mapstructure:"api_key"`
	Model    string        `mapstructure:"model"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// TracingConfig configures OpenTelemetry export
type TracingConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Endpoint    string `mapstructure:"endpoint"`
	ServiceName string `mapstructure:"service_name"`
}

// MetricsConfig configures the Prometheus endpoint
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// EngineConfig overrides calculation inputs
type EngineConfig struct {
	GasPrice    float64 `mapstructure:"gas_price"`
	CatalogFile string  `mapstructure:"catalog_file"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", DefaultServerAddress)
	v.SetDefault("server.max_body_size", "256K")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 45*time.Second)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output_file", "")

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests_per_second", 10.0)
	v.SetDefault("rate_limit.burst", 20)

	v.SetDefault("cache.backend", CacheMemory)
	v.SetDefault("cache.redis_addr", "localhost:6379")
	v.SetDefault("cache.redis_password", "")
	v.SetDefault("cache.redis_db", 0)
	v.SetDefault("cache.ttl", time.Hour)

	v.SetDefault("recommender.provider", ProviderRules)
	v.SetDefault("recommender.api_key", "")
	v.SetDefault("recommender.model", DefaultGeminiModel)
	v.SetDefault("recommender.timeout", 30*time.Second)

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.endpoint", "")
	v.SetDefault("tracing.service_name", DefaultServiceName)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("engine.gas_price", 3.50)
	v.SetDefault("engine.catalog_file", "")
}

// LoadAppConfig reads settings from an optional YAML file, a .env file in the
// working directory, and DRIVEFIT_* environment variables, in increasing
// precedence. A missing file yields the defaults.
func LoadAppConfig(path string) (*AppConfig, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("recommender.api_key", EnvPrefix+"_RECOMMENDER_API_KEY", "GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind api key: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		} else {
			v.SetConfigFile(path)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("error reading config file, %s", err)
			}
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *AppConfig) normalize() error {
	if c.Server.Address == "" {
		c.Server.Address = DefaultServerAddress
	}
	size, err := ParseSize(c.Server.MaxBodySize)
	if err != nil {
		return err
	}
	if size <= 0 {
		size = DefaultMaxBodySizeBytes
	}
	c.Server.maxBodyBytes = size

	c.Cache.Backend = strings.ToLower(strings.TrimSpace(c.Cache.Backend))
	switch c.Cache.Backend {
	case CacheMemory, CacheRedis, CacheNone:
	case "":
		c.Cache.Backend = CacheMemory
	default:
		return fmt.Errorf("invalid cache backend: %s", c.Cache.Backend)
	}

	c.Recommender.Provider = strings.ToLower(strings.TrimSpace(c.Recommender.Provider))
	switch c.Recommender.Provider {
	case ProviderRules, ProviderGemini:
	case "":
		c.Recommender.Provider = ProviderRules
	default:
		return fmt.Errorf("invalid recommender provider: %s", c.Recommender.Provider)
	}
	if c.Recommender.Model == "" {
		c.Recommender.Model = DefaultGeminiModel
	}

	if c.RateLimit.RequestsPerSecond < 0 || c.RateLimit.Burst < 0 {
		return fmt.Errorf("rate limit values cannot be negative")
	}
	if c.Engine.GasPrice < 0 {
		return fmt.Errorf("gas price cannot be negative")
	}
	if c.Tracing.ServiceName == "" {
		c.Tracing.ServiceName = DefaultServiceName
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	return nil
}

// ParseSize converts a human-friendly byte string (e.g., "256K", "10M") into bytes.
func ParseSize(value string) (int64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return DefaultMaxBodySizeBytes, nil
	}

	upper := strings.ToUpper(trimmed)
	idx := len(upper)
	for idx > 0 && !unicode.IsDigit(rune(upper[idx-1])) {
		idx--
	}
	if idx == 0 {
		return 0, fmt.Errorf("invalid size: %s", value)
	}

	n, err := strconv.ParseInt(strings.TrimSpace(upper[:idx]), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size value %q: %w", value, err)
	}

	var multiplier int64
	switch strings.TrimSpace(upper[idx:]) {
	case "", "B":
		multiplier = 1
	case "K", "KB":
		multiplier = 1024
	case "M", "MB":
		multiplier = 1024 * 1024
	case "G", "GB":
		multiplier = 1024 * 1024 * 1024
	default:
		return 0, fmt.Errorf("unsupported size unit %q", upper[idx:])
	}

	result := n * multiplier
	if result < 0 {
		return 0, fmt.Errorf("size overflow for value %s", value)
	}
	return result, nil
}
