// Package config handles application configuration loading from flags,
// environment variables, and .env files.
package config

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	App    AppConfig
	Logger LoggerConfig
	Data   DataConfig
	Server ServerConfig
}

// AppConfig holds general application settings.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging settings.
type LoggerConfig struct {
	Level string
}

// DataConfig holds storage settings.
type DataConfig struct {
	Path string
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	SeedOnStart  bool
}

// LoadConfig loads configuration with the following precedence:
// command-line flags > environment variables > .env file > defaults.
func LoadConfig() (*Config, error) {
	// Load .env file if it exists. Values already set in the environment
	// take precedence over the file.
	loadEnvFile(".env")

	var (
		environment = flag.String("environment", "", "Application environment (development, production)")
		logLevel    = flag.String("log-level", "", "Log level (debug, info, warn, error)")
		dataPath    = flag.String("data", "", "Path to the data directory")
		port        = flag.Int("port", 0, "HTTP server port")
		seed        = flag.Bool("seed", false, "Seed sample catalog data on startup")
	)
	flag.Parse()

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*environment, "OPENSHELF_ENVIRONMENT", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "OPENSHELF_LOG_LEVEL", "info"),
		},
		Data: DataConfig{
			Path: getConfigValue(*dataPath, "OPENSHELF_DATA_PATH", "./data"),
		},
		Server: ServerConfig{
			Port:         getIntConfigValue(*port, "OPENSHELF_PORT", 8080),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
			SeedOnStart:  getBoolConfigValue(*seed, "OPENSHELF_SEED", false),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	switch c.App.Environment {
	case "development", "production", "test":
	default:
		return fmt.Errorf("invalid environment %q", c.App.Environment)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Server.Port)
	}

	if c.Data.Path == "" {
		return fmt.Errorf("data path must not be empty")
	}

	return nil
}

// getConfigValue returns the first non-empty value in precedence order:
// flag value, environment variable, default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

// getIntConfigValue returns the first set value in precedence order.
// A flag value of zero is treated as unset.
func getIntConfigValue(flagValue int, envKey string, defaultValue int) int {
	if flagValue != 0 {
		return flagValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		if parsed, err := strconv.Atoi(envValue); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getBoolConfigValue returns the flag value if set, otherwise the
// environment variable, otherwise the default.
func getBoolConfigValue(flagValue bool, envKey string, defaultValue bool) bool {
	if flagValue {
		return true
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		if parsed, err := strconv.ParseBool(envValue); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// loadEnvFile reads KEY=VALUE pairs from the given file into the process
// environment. Existing environment variables are not overwritten.
func loadEnvFile(path string) {
	file, err := os.Open(path)
	if err != nil {
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}

		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		value = strings.Trim(value, `"'`)

		if _, exists := os.LookupEnv(key); !exists {
			os.Setenv(key, value)
		}
	}
}
