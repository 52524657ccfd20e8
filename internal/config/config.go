package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config represents the application configuration structure
type Config struct {
	Environment      string        `default:"dev" split_words:"true"`
	ListenAddress    string        `default:":8080" split_words:"true"`
	BaseAddress      string        `default:"http://localhost:8080" split_words:"true"`
	AllowedOrigin    string        `default:"http://localhost:3000" split_words:"true"`
	PostgresDSN      string        `required:"true" split_words:"true"`
	SessionLifetime  time.Duration `default:"720h" split_words:"true"`
	OIDCProviderURL  string        `split_words:"true"`
	OIDCClientID     string        `split_words:"true"`
	OIDCClientSecret string        `split_words:"true"`
}

// LoadFromEnv loads a new configuration structure using environment variables and an optional .env file
func LoadFromEnv() (*Config, error) {
	// Load a .env file if it exists
	_ = godotenv.Overload()

	// Load a new configuration structure using environment variables
	config := new(Config)
	if err := envconfig.Process("golf", config); err != nil {
		return nil, err
	}
	return config, nil
}

// IsEnvProduction returns whether the application runs in production mode
func (config *Config) IsEnvProduction() bool {
	env := strings.ToLower(config.Environment)
	return env == "prod" || env == "production"
}

// IsSecure returns whether the API is served via HTTPS
func (config *Config) IsSecure() bool {
	return strings.HasPrefix(strings.ToLower(config.BaseAddress), "https://")
}
