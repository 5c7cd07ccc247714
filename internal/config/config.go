package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Env         string
	Port        string
	CORSOrigins []string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Search backend
	SearchBackendURL string
	SearchTimeout    time.Duration
	DefaultLimit     int

	// Pipeline (sheet sync)
	PipelineAPIKey        string
	GoogleSheetID         string
	WorksheetName         string
	GoogleCredentialsPath string
	SyncSchedule          string
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		// Server
		Env:         getEnv("ENV", "development"),
		Port:        getEnv("PORT", "8080"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost,http://localhost:3000,http://127.0.0.1:3000")),

		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "companycrm"),
		DBPassword: getEnv("DB_PASSWORD", "companycrm"),
		DBName:     getEnv("DB_NAME", "companycrm"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// Search backend
		SearchBackendURL: getEnv("SEARCH_BACKEND_URL", "http://localhost:8000"),
		DefaultLimit:     5,

		// Pipeline
		PipelineAPIKey:        os.Getenv("PIPELINE_API_KEY"),
		GoogleSheetID:         os.Getenv("GOOGLE_SHEET_ID"),
		WorksheetName:         getEnv("WORKSHEET_NAME", "Sheet1"),
		GoogleCredentialsPath: getEnv("GOOGLE_CREDENTIALS_PATH", "credentials.json"),
		SyncSchedule:          os.Getenv("SYNC_SCHEDULE"),
	}

	timeout, err := parseTimeout(os.Getenv("SEARCH_TIMEOUT"))
	if err != nil {
		return nil, err
	}
	config.SearchTimeout = timeout

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// SyncEnabled reports whether a Google Sheet source is configured.
func (c *Config) SyncEnabled() bool {
	return c.GoogleSheetID != ""
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseTimeout(s string) (time.Duration, error) {
	if s == "" {
		return 30 * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid SEARCH_TIMEOUT %q: %w", s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("SEARCH_TIMEOUT must be positive, got %v", d)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
