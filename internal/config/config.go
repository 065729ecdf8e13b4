package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvProduction represents the production environment.
	EnvProduction = "production"
)

// Config holds all application configuration.
type Config struct {
	// Environment settings
	Env      string `envconfig:"ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Audio capture settings
	SampleRate int `envconfig:"SAMPLE_RATE" default:"16000"`
	Channels   int `envconfig:"CHANNELS" default:"1"`

	// Profile settings
	ActiveProfile string `envconfig:"ACTIVE_PROFILE" default:"default"`

	// Local control server settings
	ControlServer bool   `envconfig:"CONTROL_SERVER" default:"false"`
	ControlAddr   string `envconfig:"CONTROL_ADDR" default:"127.0.0.1"`
	ControlPort   string `envconfig:"CONTROL_PORT" default:"4817"`
}

// LoadConfig loads configuration from .env file and environment variables.
func LoadConfig() (*Config, error) {
	// Try to load .env file (optional for development)
	if err := godotenv.Load(); err != nil {
		// Not an error if file doesn't exist (expected in production)
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	}

	// Parse environment variables into config struct
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	return &config, nil
}
