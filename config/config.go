package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopassist/backend/internal/infrastructure/llm"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	LLM       LLMConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LLMConfig holds model provider configuration
type LLMConfig struct {
	APIKey            string        `mapstructure:"api_key"`
	BaseURL           string        `mapstructure:"base_url"`
	GenAIBaseURL      string        `mapstructure:"genai_base_url"`
	Model             string        `mapstructure:"model"`
	Provider          string        `mapstructure:"provider"`
	Temperature       float64       `mapstructure:"temperature"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerMinute int           `mapstructure:"requests_per_minute"`
	TracingDisabled   bool          `mapstructure:"tracing_disabled"`
}

// RateLimitConfig holds inbound rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute, 0 disables
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load loads configuration from a .env file, environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/shopassist/")

	v.SetEnvPrefix("SHOPASSIST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The provider key keeps its conventional name
	if err := v.BindEnv("llm.api_key", "SHOPASSIST_LLM_API_KEY", "GOOGLE_API_KEY"); err != nil {
		return nil, fmt.Errorf("error binding api key: %w", err)
	}

	setDefaults(v)

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
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

// loadEnvFile loads .env from the working directory when present.
// Variables already set in the environment win.
func loadEnvFile() error {
	if _, err := os.Stat(".env"); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(".env")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:8080"})

	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.base_url", "https://generativelanguage.googleapis.com/v1beta/openai/")
	v.SetDefault("llm.genai_base_url", "")
	v.SetDefault("llm.model", "gemini-2.0-flash")
	v.SetDefault("llm.provider", llm.ProviderOpenAI)
	v.SetDefault("llm.temperature", 0.2)
	v.SetDefault("llm.timeout", "30s")
	v.SetDefault("llm.requests_per_minute", 15) // Gemini free tier
	v.SetDefault("llm.tracing_disabled", true)

	v.SetDefault("ratelimit.per_ip", 30)

	v.SetDefault("log.level", "info")
}

func validate(config *Config) error {
	if strings.TrimSpace(config.LLM.APIKey) == "" {
		return fmt.Errorf("API key is required (set GOOGLE_API_KEY)")
	}

	if config.LLM.Provider != llm.ProviderOpenAI && config.LLM.Provider != llm.ProviderGenAI {
		return fmt.Errorf("llm provider must be '%s' or '%s', got: %s", llm.ProviderOpenAI, llm.ProviderGenAI, config.LLM.Provider)
	}

	if config.LLM.Provider == llm.ProviderOpenAI && config.LLM.BaseURL == "" {
		return fmt.Errorf("llm base URL is required for the %s provider", llm.ProviderOpenAI)
	}

	// zero would be read downstream as "use the default"
	if config.LLM.Temperature <= 0 || config.LLM.Temperature > 2 {
		return fmt.Errorf("llm temperature must be greater than 0 and at most 2, got: %v", config.LLM.Temperature)
	}

	if config.RateLimit.PerIP < 0 {
		return fmt.Errorf("ratelimit per_ip must not be negative, got: %d", config.RateLimit.PerIP)
	}

	return nil
}
