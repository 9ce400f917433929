package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"marketpay"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"marketpay"`
	}

	Marketplace struct {
		BaseURL string `envconfig:"MARKETPLACE_BASE_URL" default:"http://localhost:8081"`
		APIKey  string `envconfig:"MARKETPLACE_API_KEY"`
	}

	Processor struct {
		BaseURL string `envconfig:"PROCESSOR_BASE_URL" default:"http://localhost:8082"`
		APIKey  string `envconfig:"PROCESSOR_API_KEY"`
	}

	Onboarding struct {
		BaseURL string `envconfig:"ONBOARDING_BASE_URL" default:"http://localhost:8080"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
