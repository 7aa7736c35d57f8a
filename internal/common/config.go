// Package common provides shared utilities for StockPulse
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for StockPulse
type Config struct {
	Environment string         `toml:"environment"`
	Server      ServerConfig   `toml:"server"`
	Storage     StorageConfig  `toml:"storage"`
	Clients     ClientsConfig  `toml:"clients"`
	Research    ResearchConfig `toml:"research"`
	Logging     LoggingConfig  `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// StorageConfig holds storage configuration for the profile cache.
type StorageConfig struct {
	Path string `toml:"path"`
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	IndianAPI IndianAPIConfig `toml:"indianapi"`
	Search    SearchConfig    `toml:"search"`
	Wikipedia WikipediaConfig `toml:"wikipedia"`
	Gemini    GeminiConfig    `toml:"gemini"`
}

// IndianAPIConfig holds the authoritative NSE/BSE quote API configuration
type IndianAPIConfig struct {
	BaseURL   string `toml:"base_url"`
	APIKey    string `toml:"api_key"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *IndianAPIConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// SearchConfig holds web search client configuration
type SearchConfig struct {
	BaseURL   string `toml:"base_url"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *SearchConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 15 * time.Second
	}
	return d
}

// WikipediaConfig holds encyclopedia lookup configuration
type WikipediaConfig struct {
	BaseURL string `toml:"base_url"`
	Timeout string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *WikipediaConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// GeminiConfig holds Gemini API configuration
type GeminiConfig struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
}

// ResearchConfig holds tunables for the collection pipeline.
type ResearchConfig struct {
	MinPrice         float64 `toml:"min_price"`          // exclusive lower bound for plausible prices
	MaxPrice         float64 `toml:"max_price"`          // exclusive upper bound for plausible prices
	ResultsPerQuery  int     `toml:"results_per_query"`  // search results per stock query
	MaxNews          int     `toml:"max_news"`           // news items to collect
	SummaryMaxLength int     `toml:"summary_max_length"` // encyclopedia summary truncation
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Storage: StorageConfig{
			Path: "data/profiles",
		},
		Clients: ClientsConfig{
			IndianAPI: IndianAPIConfig{
				BaseURL:   "https://stock.indianapi.in",
				RateLimit: 5,
				Timeout:   "10s",
			},
			Search: SearchConfig{
				BaseURL:   "https://html.duckduckgo.com",
				RateLimit: 2,
				Timeout:   "15s",
			},
			Wikipedia: WikipediaConfig{
				BaseURL: "https://en.wikipedia.org",
				Timeout: "10s",
			},
			Gemini: GeminiConfig{
				Model: "gemini-2.0-flash",
			},
		},
		Research: ResearchConfig{
			MinPrice:         10,
			MaxPrice:         500000,
			ResultsPerQuery:  3,
			MaxNews:          5,
			SummaryMaxLength: 800,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("STOCKPULSE_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("STOCKPULSE_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("STOCKPULSE_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("STOCKPULSE_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if path := os.Getenv("STOCKPULSE_DATA_PATH"); path != "" {
		config.Storage.Path = path
	}

	if key := os.Getenv("INDIAN_API_KEY"); key != "" {
		config.Clients.IndianAPI.APIKey = key
	}
	if key := os.Getenv("STOCKPULSE_INDIAN_API_KEY"); key != "" {
		config.Clients.IndianAPI.APIKey = key
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}

// ResolveAPIKey resolves an API key from environment or config fallback.
// Placeholder values left in sample config files count as unset.
func ResolveAPIKey(name string, fallback string) (string, error) {
	keyToEnvMapping := map[string][]string{
		"indian_api_key": {"INDIAN_API_KEY", "STOCKPULSE_INDIAN_API_KEY"},
		"gemini_api_key": {"GEMINI_API_KEY", "STOCKPULSE_GEMINI_API_KEY", "GOOGLE_API_KEY"},
	}

	if envVarNames, ok := keyToEnvMapping[name]; ok {
		for _, envVarName := range envVarNames {
			if envValue := os.Getenv(envVarName); envValue != "" {
				return envValue, nil
			}
		}
	}

	if fallback != "" && !strings.HasPrefix(fallback, "your_") {
		return fallback, nil
	}

	return "", fmt.Errorf("API key '%s' not found in environment or config", name)
}
