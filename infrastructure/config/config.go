package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration. Provider credentials and
// endpoints are injected here at startup and passed down explicitly;
// nothing reads the environment after load.
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// AWS configuration
	AWSRegion     string
	DynamoDBTable string
	EventBusName  string

	// Generation provider configuration
	GenerationBaseURL   string
	GenerationAPIKey    string
	GenerationModel     string
	GenerationTimeout   time.Duration
	GenerationRetries   int
	GenerationBackoff   time.Duration
	GenerationMaxTokens int

	// Authentication
	JWTSecret string
	JWTIssuer string

	// Logging and features
	LogLevel      string
	EnableMetrics bool
	EnableCORS    bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		AWSRegion:     getEnv("AWS_REGION", "us-west-2"),
		DynamoDBTable: getEnv("TABLE_NAME", "saju-daily"),
		EventBusName:  getEnv("EVENT_BUS_NAME", "saju-events"),

		GenerationBaseURL:   getEnv("GENERATION_BASE_URL", "https://api.openai.com/v1"),
		GenerationAPIKey:    getEnv("GENERATION_API_KEY", ""),
		GenerationModel:     getEnv("GENERATION_MODEL", "gpt-4o-mini"),
		GenerationTimeout:   getEnvDuration("GENERATION_TIMEOUT", 25*time.Second),
		GenerationRetries:   getEnvInt("GENERATION_RETRIES", 2),
		GenerationBackoff:   getEnvDuration("GENERATION_BACKOFF", time.Second),
		GenerationMaxTokens: getEnvInt("GENERATION_MAX_TOKENS", 120),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTIssuer: getEnv("JWT_ISSUER", "saju-backend"),

		LogLevel:      getEnv("LOG_LEVEL", "info"),
		EnableMetrics: getEnvBool("ENABLE_METRICS", false),
		EnableCORS:    getEnvBool("ENABLE_CORS", true),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.Environment == "production" {
		if c.GenerationAPIKey == "" {
			return fmt.Errorf("GENERATION_API_KEY is required in production")
		}
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required in production")
		}
		if c.DynamoDBTable == "" {
			return fmt.Errorf("TABLE_NAME is required")
		}
	}
	if c.GenerationRetries < 0 {
		return fmt.Errorf("GENERATION_RETRIES must not be negative")
	}

	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration gets a duration environment variable with a default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
