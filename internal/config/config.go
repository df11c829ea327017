package config

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/FlyingWorkshop/Map-LDS-Temples/internal/listing"
	"github.com/FlyingWorkshop/Map-LDS-Temples/pkg/geocode"
)

// Config holds the full application configuration.
type Config struct {
	Listing ListingConfig `yaml:"listing" mapstructure:"listing"`
	Geocode GeocodeConfig `yaml:"geocode" mapstructure:"geocode"`
	HTTP    HTTPConfig    `yaml:"http" mapstructure:"http"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// ListingConfig configures the raw listing cache.
type ListingConfig struct {
	URL       string `yaml:"url" mapstructure:"url"`
	CachePath string `yaml:"cache_path" mapstructure:"cache_path"`
}

// GeocodeConfig configures the per-name geocode cache and its remote lookup.
type GeocodeConfig struct {
	APIKey      string  `yaml:"api_key" mapstructure:"api_key"`
	CacheDir    string  `yaml:"cache_dir" mapstructure:"cache_dir"`
	BaseURL     string  `yaml:"base_url" mapstructure:"base_url"`
	RateLimit   float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
	TimeoutSecs int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// HTTPConfig configures the listing downloader.
type HTTPConfig struct {
	UserAgent   string  `yaml:"user_agent" mapstructure:"user_agent"`
	TimeoutSecs int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RateLimit   float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("TEMPLES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("listing.url", listing.DefaultURL)
	v.SetDefault("listing.cache_path", "lds_cache.json")
	v.SetDefault("geocode.api_key", "")
	v.SetDefault("geocode.cache_dir", "google_caches")
	v.SetDefault("geocode.base_url", geocode.DefaultBaseURL)
	v.SetDefault("geocode.rate_limit", 10)
	v.SetDefault("geocode.timeout_secs", 30)
	v.SetDefault("http.user_agent", "templeguide/1.0")
	v.SetDefault("http.timeout_secs", 30)
	v.SetDefault("http.rate_limit", 5)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the settings required by the given command mode
// ("build" or "serve").
func (c *Config) Validate(mode string) error {
	var errs []string

	if c.Listing.CachePath == "" {
		errs = append(errs, "listing.cache_path is required")
	}
	if c.Geocode.CacheDir == "" {
		errs = append(errs, "geocode.cache_dir is required")
	}
	if c.Geocode.RateLimit < 0 {
		errs = append(errs, "geocode.rate_limit must be >= 0")
	}
	if c.HTTP.RateLimit < 0 {
		errs = append(errs, "http.rate_limit must be >= 0")
	}

	switch mode {
	case "build":
	case "serve":
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			errs = append(errs, fmt.Sprintf("server.port must be > 0 and <= 65535 (got %d)", c.Server.Port))
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(errs) > 0 {
		return eris.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
