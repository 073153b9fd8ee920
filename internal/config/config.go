package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendVertex = "vertex"
	BackendGemini = "gemini"

	PolicyError       = "error"
	PolicyPlaceholder = "placeholder"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Model
	Backend         string
	ModelName       string
	UpstreamTimeout time.Duration
	EmptyTextPolicy string

	// Vertex AI
	ProjectID       string
	Location        string
	CredentialsFile string

	// Gemini Developer API
	GeminiAPIKey string

	// Optional bootstrap dependencies
	DatabaseURL string
	RedisURL    string

	// Frontend
	FrontendURL string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:            getEnvOrDefault("PORT", "5001"),
		Env:             getEnvOrDefault("ENV", "development"),
		Backend:         strings.ToLower(getEnvOrDefault("MODEL_BACKEND", BackendVertex)),
		ModelName:       getEnvOrDefault("MODEL_NAME", "gemini-2.0-flash"),
		UpstreamTimeout: time.Duration(getEnvAsIntOrDefault("UPSTREAM_TIMEOUT_SECONDS", 30)) * time.Second,
		EmptyTextPolicy: strings.ToLower(getEnvOrDefault("EMPTY_TEXT_POLICY", PolicyError)),
		ProjectID:       getEnvOrDefault("GOOGLE_CLOUD_PROJECT", os.Getenv("GCP_PROJECT_ID")),
		Location:        getEnvOrDefault("GOOGLE_CLOUD_LOCATION", "us-central1"),
		CredentialsFile: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		RedisURL:        os.Getenv("REDIS_URL"),
		FrontendURL:     getEnvOrDefault("FRONTEND_URL", "*"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every missing or unusable setting for the active backend.
func (c *Config) Validate() error {
	var errs []error

	switch c.Backend {
	case BackendVertex:
		if c.ProjectID == "" {
			errs = append(errs, missing("GOOGLE_CLOUD_PROJECT"))
		}
		if c.Location == "" {
			errs = append(errs, missing("GOOGLE_CLOUD_LOCATION"))
		}
	case BackendGemini:
		if c.GeminiAPIKey == "" {
			errs = append(errs, missing("GEMINI_API_KEY"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported MODEL_BACKEND %q (want %q or %q)", c.Backend, BackendVertex, BackendGemini))
	}

	if c.ModelName == "" {
		errs = append(errs, missing("MODEL_NAME"))
	}

	switch c.EmptyTextPolicy {
	case PolicyError, PolicyPlaceholder:
	default:
		errs = append(errs, fmt.Errorf("unsupported EMPTY_TEXT_POLICY %q (want %q or %q)", c.EmptyTextPolicy, PolicyError, PolicyPlaceholder))
	}

	if c.UpstreamTimeout < 0 {
		errs = append(errs, errors.New("UPSTREAM_TIMEOUT_SECONDS must not be negative"))
	}

	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func missing(key string) error {
	return fmt.Errorf("required environment variable %s is not set", key)
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
