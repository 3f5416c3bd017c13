package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig
	Serp    SerpConfig
	OpenAI  OpenAIConfig
	Scan    ScanConfig
	Logging LoggingConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port           int
	Host           string
	GinMode        string
	AllowedOrigins string
}

// SerpConfig holds the web-search API configuration
type SerpConfig struct {
	APIKey      string
	BaseURL     string
	Engine      string
	ResultCount int // result-count hint per query ("num" parameter)
	Timeout     int // per-call timeout in seconds
	Enabled     bool
}

// OpenAIConfig holds the LLM completion API configuration.
// The endpoint must be OpenAI-compatible; the default points at DeepSeek.
type OpenAIConfig struct {
	APIKey          string
	APIBase         string
	ChatModel       string
	ChatTemperature float64
	ChatMaxTokens   int
	Timeout         int
	Enabled         bool
}

// ScanConfig holds the scan pipeline policy knobs
type ScanConfig struct {
	MinScore         int    // minimum intent score kept by the ranker
	MaxIntents       int    // cap on the final ranked list
	MaxFragments     int    // cap on raw fragments handed to the classifier
	BroadenThreshold int    // below this many hits, reissue a domain-only query
	DefaultScore     int    // score assigned when the model omits or garbles one
	DegradedScore    int    // fixed score for fallback records built from raw hits
	FallbackMode     string // degrade | placeholder | empty
	TargetLanguage   string // language all lead content is normalized to
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			GinMode:        getEnv("GIN_MODE", "release"),
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Serp: SerpConfig{
			APIKey:      getEnv("SERPAPI_API_KEY", ""),
			BaseURL:     getEnv("SERPAPI_BASE_URL", "https://serpapi.com/search.json"),
			Engine:      getEnv("SERPAPI_ENGINE", "google"),
			ResultCount: getEnvAsInt("SERPAPI_RESULT_COUNT", 20),
			Timeout:     getEnvAsInt("SERPAPI_TIMEOUT", 10),
			Enabled:     getEnv("SERPAPI_API_KEY", "") != "",
		},
		OpenAI: OpenAIConfig{
			APIKey:          getEnv("OPENAI_API_KEY", getEnv("DEEPSEEK_API_KEY", "")),
			APIBase:         getEnv("OPENAI_API_BASE", "https://api.deepseek.com/v1"),
			ChatModel:       getEnv("OPENAI_CHAT_MODEL", "deepseek-chat"),
			ChatTemperature: getEnvAsFloat("OPENAI_CHAT_TEMPERATURE", 0.2),
			ChatMaxTokens:   getEnvAsInt("OPENAI_CHAT_MAX_TOKENS", 4096),
			Timeout:         getEnvAsInt("OPENAI_TIMEOUT", 60),
			Enabled:         getEnv("OPENAI_API_KEY", getEnv("DEEPSEEK_API_KEY", "")) != "",
		},
		Scan: ScanConfig{
			MinScore:         getEnvAsInt("SCAN_MIN_SCORE", 50),
			MaxIntents:       getEnvAsInt("SCAN_MAX_INTENTS", 8),
			MaxFragments:     getEnvAsInt("SCAN_MAX_FRAGMENTS", 24),
			BroadenThreshold: getEnvAsInt("SCAN_BROADEN_THRESHOLD", 10),
			DefaultScore:     getEnvAsInt("SCAN_DEFAULT_SCORE", 85),
			DegradedScore:    getEnvAsInt("SCAN_DEGRADED_SCORE", 60),
			FallbackMode:     getEnvAsEnum("SCAN_FALLBACK_MODE", "degrade", []string{"degrade", "placeholder", "empty"}),
			TargetLanguage:   getEnv("SCAN_TARGET_LANGUAGE", "English"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
	}

	return cfg, nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		logrus.Warnf("Invalid integer value for %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		logrus.Warnf("Invalid float value for %s, using default %f", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsEnum(key, defaultValue string, allowed []string) string {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return defaultValue
	}
	for _, a := range allowed {
		if value == a {
			return value
		}
	}
	logrus.Warnf("Invalid value %q for %s (allowed: %s), using default %q",
		value, key, strings.Join(allowed, ", "), defaultValue)
	return defaultValue
}
