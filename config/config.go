package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Catalog   CatalogConfig
	Vision    VisionConfig
	Recommend RecommendConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CatalogConfig holds catalog store configuration
type CatalogConfig struct {
	Path           string  `mapstructure:"path"`
	MaxResults     int     `mapstructure:"max_results"`
	ScoreThreshold float64 `mapstructure:"score_threshold"`
}

// VisionConfig holds feature-extraction provider configuration
type VisionConfig struct {
	Provider    string        `mapstructure:"provider"` // "auto", "gemini" or "stub"
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Temperature float64       `mapstructure:"temperature"`
	CacheTTL    time.Duration `mapstructure:"cache_ttl"`
}

// RecommendConfig holds recommendation engine configuration
type RecommendConfig struct {
	MaxPerCategory     int     `mapstructure:"max_per_category"`
	MinSimilarity      float64 `mapstructure:"min_similarity"`
	EnableDebugLogging bool    `mapstructure:"enable_debug_logging"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/stylelens/")

	// Environment variable settings
	v.SetEnvPrefix("STYLELENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5173"})

	// Catalog defaults
	v.SetDefault("catalog.path", "./data/catalog.json")
	v.SetDefault("catalog.max_results", 10)
	v.SetDefault("catalog.score_threshold", 0.0)

	// Vision defaults
	v.SetDefault("vision.provider", "auto")
	v.SetDefault("vision.model", "gemini-2.0-flash")
	v.SetDefault("vision.timeout", "30s")
	v.SetDefault("vision.temperature", 0.1)
	v.SetDefault("vision.cache_ttl", "1h")

	// Recommendation defaults
	v.SetDefault("recommend.max_per_category", 3)
	v.SetDefault("recommend.min_similarity", 0.3)
	v.SetDefault("recommend.enable_debug_logging", false)
}

// validate validates the configuration
func validate(config *Config) error {
	switch config.Vision.Provider {
	case "auto", "gemini", "stub":
	default:
		return fmt.Errorf("vision provider must be 'auto', 'gemini' or 'stub', got: %s", config.Vision.Provider)
	}

	if config.Vision.Provider == "gemini" && config.Vision.APIKey == "" {
		return fmt.Errorf("Gemini API key is required when provider is forced to 'gemini' (set STYLELENS_VISION_API_KEY)")
	}

	if config.Catalog.Path == "" {
		return fmt.Errorf("catalog path is required")
	}

	if config.Recommend.MaxPerCategory < 1 || config.Recommend.MaxPerCategory > 20 {
		return fmt.Errorf("recommend.max_per_category must be between 1 and 20, got: %d", config.Recommend.MaxPerCategory)
	}

	if config.Recommend.MinSimilarity < 0 || config.Recommend.MinSimilarity > 1 {
		return fmt.Errorf("recommend.min_similarity must be between 0 and 1, got: %f", config.Recommend.MinSimilarity)
	}

	return nil
}
