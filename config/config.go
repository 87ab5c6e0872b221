package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	OpenFoodFacts OpenFoodFactsConfig `mapstructure:"openfoodfacts"`
	Search        SearchConfig        `mapstructure:"search"`
	Speller       SpellerConfig       `mapstructure:"speller"`
	Lexicon       LexiconConfig       `mapstructure:"lexicon"`
	RateLimit     RateLimitConfig     `mapstructure:"ratelimit"`
	Log           LogConfig           `mapstructure:"log"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// OpenFoodFactsConfig holds nutrition provider configuration
type OpenFoodFactsConfig struct {
	BaseURL           string        `mapstructure:"base_url"`
	UserAgent         string        `mapstructure:"user_agent"`
	Timeout           time.Duration `mapstructure:"timeout"`
	PageSize          int           `mapstructure:"page_size"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
}

// SearchConfig controls query expansion and fan-out
type SearchConfig struct {
	MaxConcurrency int `mapstructure:"max_concurrency"`
	MaxSynonyms    int `mapstructure:"max_synonyms"`
}

// SpellerConfig holds spelling-correction configuration
type SpellerConfig struct {
	DictionaryPath  string        `mapstructure:"dictionary_path"` // empty: embedded dictionary
	MaxEditDistance int           `mapstructure:"max_edit_distance"`
	CacheTTL        time.Duration `mapstructure:"cache_ttl"`
}

// LexiconConfig holds synonym knowledge-base configuration
type LexiconConfig struct {
	Path string `mapstructure:"path"` // empty: embedded synsets
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute, 0 disables
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load loads configuration from a .env file, environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/noon/")

	v.SetEnvPrefix("NOON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional; env vars and defaults cover everything
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads ./.env when present. Variables already set in the
// environment win.
func loadEnvFile() error {
	if _, err := os.Stat(".env"); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return gotenv.Load(".env")
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})

	v.SetDefault("openfoodfacts.base_url", "https://world.openfoodfacts.org")
	v.SetDefault("openfoodfacts.user_agent", "NOON/1.0 (food search)")
	v.SetDefault("openfoodfacts.timeout", "30s")
	v.SetDefault("openfoodfacts.page_size", 10)
	v.SetDefault("openfoodfacts.requests_per_second", 5.0)
	v.SetDefault("openfoodfacts.burst", 10)

	v.SetDefault("search.max_concurrency", 4)
	v.SetDefault("search.max_synonyms", 0)

	v.SetDefault("speller.dictionary_path", "")
	v.SetDefault("speller.max_edit_distance", 2)
	v.SetDefault("speller.cache_ttl", "1h")

	v.SetDefault("lexicon.path", "")

	v.SetDefault("ratelimit.per_ip", 100)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	u, err := url.Parse(config.OpenFoodFacts.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("openfoodfacts base URL must be an absolute URL, got: %q", config.OpenFoodFacts.BaseURL)
	}
	if config.OpenFoodFacts.Timeout <= 0 {
		return fmt.Errorf("openfoodfacts timeout must be positive, got: %s", config.OpenFoodFacts.Timeout)
	}
	if config.OpenFoodFacts.PageSize <= 0 {
		return fmt.Errorf("openfoodfacts page size must be positive, got: %d", config.OpenFoodFacts.PageSize)
	}
	if config.OpenFoodFacts.RequestsPerSecond < 0 {
		return fmt.Errorf("openfoodfacts requests per second must not be negative")
	}

	if config.Search.MaxConcurrency < 1 {
		return fmt.Errorf("search max concurrency must be at least 1, got: %d", config.Search.MaxConcurrency)
	}
	if config.Search.MaxSynonyms < 0 {
		return fmt.Errorf("search max synonyms must not be negative, got: %d", config.Search.MaxSynonyms)
	}

	if config.Speller.MaxEditDistance < 0 || config.Speller.MaxEditDistance > 3 {
		return fmt.Errorf("speller max edit distance must be between 0 and 3, got: %d", config.Speller.MaxEditDistance)
	}

	if config.RateLimit.PerIP < 0 {
		return fmt.Errorf("per-IP rate limit must not be negative, got: %d", config.RateLimit.PerIP)
	}

	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("log format must be 'text' or 'json', got: %s", config.Log.Format)
	}

	return nil
}
