package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr          string         `yaml:"addr"`
	JWTSecret     string         `yaml:"jwt_secret"`
	APITimeout    time.Duration  `yaml:"timeout"`
	DatabasePath  string         `yaml:"database_path"`
	TokenDuration time.Duration  `yaml:"token_duration"`
	Progress      ProgressConfig `yaml:"progress"`
}

type ProgressConfig struct {
	// AllowRegression controls whether a progress row may move backward
	// through its lifecycle (e.g. completed back to not_started) as a
	// correction.
	AllowRegression bool `yaml:"allow_regression"`
}

func LoadConfig(path string) (*Config, error) {
	apiTimeout := 15 * time.Second
	tokenDuration := 1 * time.Hour

	cfg := &Config{
		Addr:          getEnv("TRAIN_ADDR", ":8080"),
		JWTSecret:     getEnv("TRAIN_JWT_SECRET", "supersecretkey"),
		APITimeout:    apiTimeout,
		DatabasePath:  getEnv("TRAIN_DATABASE_PATH", "trainhub.db"),
		TokenDuration: tokenDuration,
		Progress: ProgressConfig{
			AllowRegression: getEnvBool("TRAIN_ALLOW_REGRESSION", true),
		},
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Validate checks the loaded configuration for values that would make the
// server unusable or unsafe to run.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr must not be empty")
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("database_path must not be empty")
	}
	if c.APITimeout <= 0 {
		return fmt.Errorf("timeout must be > 0")
	}
	if c.TokenDuration <= 0 {
		return fmt.Errorf("token_duration must be > 0")
	}
	if c.JWTSecret == "" || c.JWTSecret == "supersecretkey" {
		// The built-in default is only acceptable for local development.
		if os.Getenv("TRAIN_ENV") != "development" {
			return fmt.Errorf("jwt_secret must be set to a non-default value outside development")
		}
	}

	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}

	return def
}
