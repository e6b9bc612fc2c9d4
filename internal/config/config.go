package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port     string `yaml:"port"`
	LogLevel string `yaml:"log_level"`
	APIToken string `yaml:"api_token"`
	// BaseURL is the public URL advertised in the agent card. Empty means
	// derive it from each request.
	BaseURL string `yaml:"base_url"`

	DatabasePath string `yaml:"database_path"`

	Gemini GeminiConfig `yaml:"gemini"`
	Ads    AdsConfig    `yaml:"ads"`
}

type GeminiConfig struct {
	APIKey         string  `yaml:"api_key"`
	Model          string  `yaml:"model"`
	Temperature    float64 `yaml:"temperature"`
	MaxTokens      int     `yaml:"max_tokens"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`
}

type AdsConfig struct {
	AccessToken  string `yaml:"access_token"`
	APIVersion   string `yaml:"api_version"`
	BaseURL      string `yaml:"base_url"`
	Country      string `yaml:"country"`
	PerTermLimit int    `yaml:"per_term_limit"`
	TermDelayMs  int    `yaml:"term_delay_ms"`
	MaxTerms     int    `yaml:"max_terms"`
}

func (a AdsConfig) TermDelay() time.Duration {
	return time.Duration(a.TermDelayMs) * time.Millisecond
}

func (g GeminiConfig) Timeout() time.Duration {
	return time.Duration(g.TimeoutSeconds) * time.Second
}

func defaults() *Config {
	return &Config{
		Port:         "8080",
		LogLevel:     "info",
		DatabasePath: "./data/strategies.db",
		Gemini: GeminiConfig{
			Model:          "gemini-2.5-flash-lite",
			Temperature:    0.7,
			MaxTokens:      8192,
			TimeoutSeconds: 90,
		},
		Ads: AdsConfig{
			APIVersion:   "v21.0",
			BaseURL:      "https://graph.facebook.com",
			Country:      "US",
			PerTermLimit: 15,
			TermDelayMs:  1500,
			MaxTerms:     5,
		},
	}
}

// Load reads .env (if present), then the YAML file named by
// STRATEGY_CONFIG_FILE (if set), then environment variables, each layer
// overriding the previous one.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()
	if path := os.Getenv("STRATEGY_CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.APIToken = getEnv("API_TOKEN", cfg.APIToken)
	cfg.BaseURL = getEnv("BASE_URL", cfg.BaseURL)
	cfg.DatabasePath = getEnv("DATABASE_PATH", cfg.DatabasePath)

	cfg.Gemini.APIKey = getEnv("GEMINI_API_KEY", cfg.Gemini.APIKey)
	cfg.Gemini.Model = getEnv("GEMINI_MODEL", cfg.Gemini.Model)
	cfg.Gemini.Temperature = getEnvAsFloat("GEMINI_TEMPERATURE", cfg.Gemini.Temperature)
	cfg.Gemini.MaxTokens = getEnvAsInt("GEMINI_MAX_TOKENS", cfg.Gemini.MaxTokens)
	cfg.Gemini.TimeoutSeconds = getEnvAsInt("GEMINI_TIMEOUT_SECONDS", cfg.Gemini.TimeoutSeconds)

	cfg.Ads.AccessToken = getEnv("META_ADS_ACCESS_TOKEN", cfg.Ads.AccessToken)
	cfg.Ads.APIVersion = getEnv("META_ADS_API_VERSION", cfg.Ads.APIVersion)
	cfg.Ads.BaseURL = getEnv("META_ADS_BASE_URL", cfg.Ads.BaseURL)
	cfg.Ads.Country = getEnv("ADS_COUNTRY", cfg.Ads.Country)
	cfg.Ads.PerTermLimit = getEnvAsInt("ADS_PER_TERM_LIMIT", cfg.Ads.PerTermLimit)
	cfg.Ads.TermDelayMs = getEnvAsInt("ADS_TERM_DELAY_MS", cfg.Ads.TermDelayMs)
	cfg.Ads.MaxTerms = getEnvAsInt("ADS_MAX_TERMS", cfg.Ads.MaxTerms)

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
