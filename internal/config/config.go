package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the ToolBelt-AI estimation server.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Model     ModelConfig
	Extractor ExtractorConfig
}

type ServerConfig struct {
	Port int
	Env  string
}

type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	URL string
}

// ModelConfig locates the versioned artifact bundle and sets the currency
// conversion applied to the cost model's output.
type ModelConfig struct {
	BundlePath   string
	ExchangeRate string
}

// ExtractorConfig selects and configures the LLM feature extractor.
type ExtractorConfig struct {
	Provider string
	Timeout  time.Duration
	CacheTTL time.Duration
	OpenAI   OpenAIConfig
	Gemini   GeminiConfig
}

type OpenAIConfig struct {
	BaseURL string
	APIKey  string
	Model   string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

var validProviders = map[string]bool{
	"openai": true,
	"gemini": true,
	"mock":   true,
}

// Load reads configuration from environment variables and returns a validated Config.
// Returns an error with a descriptive message if any required value is missing or invalid.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: envInt("TOOLBELT_PORT", 8080),
			Env:  envString("TOOLBELT_ENV", "development"),
		},
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			MaxOpenConns:    envInt("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    envInt("DATABASE_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: envDuration("DATABASE_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			URL: os.Getenv("REDIS_URL"),
		},
		Model: ModelConfig{
			BundlePath:   envString("MODEL_BUNDLE_PATH", "models/plumbing_v1.0.0.json"),
			ExchangeRate: envString("EXCHANGE_RATE", "0.0056"),
		},
		Extractor: ExtractorConfig{
			Provider: os.Getenv("EXTRACTOR_PROVIDER"),
			Timeout:  envDurationSecs("EXTRACTOR_TIMEOUT_SECS", 60*time.Second),
			CacheTTL: envDuration("EXTRACTION_CACHE_TTL", 15*time.Minute),
			OpenAI: OpenAIConfig{
				BaseURL: envString("OPENAI_BASE_URL", "https://api.openai.com"),
				APIKey:  os.Getenv("OPENAI_API_KEY"),
				Model:   envString("OPENAI_MODEL", "gpt-4"),
			},
			Gemini: GeminiConfig{
				APIKey: os.Getenv("GEMINI_API_KEY"),
				Model:  envString("GEMINI_MODEL", "gemini-2.5-pro"),
			},
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.Redis.URL == "" {
		return fmt.Errorf("REDIS_URL is required")
	}

	if c.Model.BundlePath == "" {
		return fmt.Errorf("MODEL_BUNDLE_PATH is required")
	}

	if c.Extractor.Provider == "" {
		return fmt.Errorf("EXTRACTOR_PROVIDER is required")
	}
	if !validProviders[c.Extractor.Provider] {
		return fmt.Errorf("EXTRACTOR_PROVIDER must be one of openai, gemini, mock; got %q", c.Extractor.Provider)
	}

	if c.Extractor.Provider == "openai" && c.Extractor.OpenAI.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required when EXTRACTOR_PROVIDER is openai")
	}
	if c.Extractor.Provider == "gemini" && c.Extractor.Gemini.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required when EXTRACTOR_PROVIDER is gemini")
	}

	return nil
}

func envString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func envDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}

func envDurationSecs(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	secs, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return time.Duration(secs) * time.Second
}
