// Package config provides configuration management for the ledger engine.
// It loads configuration from environment variables and .env files, and
// business rules from an optional YAML file.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config represents the application configuration.
type Config struct {
	// DBPath is the path to the SQLite database file.
	DBPath string
	// RulesPath is the path to an optional YAML business-rules file.
	// Empty means built-in defaults.
	RulesPath string
	// BackupDir is the destination directory for database backups.
	BackupDir string
	Debug     bool
}

// Load loads configuration from environment variables.
// It automatically loads .env file from the current directory if available.
// You can optionally specify a custom .env file path.
func Load(envPath ...string) (*Config, error) {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		// Try to load .env from current directory (ignore error if not found)
		_ = godotenv.Load()
	}

	config := &Config{
		DBPath:    getEnvOrDefault("TEABANK_DB_PATH", "teabank.db"),
		RulesPath: os.Getenv("TEABANK_RULES_PATH"),
		BackupDir: getEnvOrDefault("TEABANK_BACKUP_DIR", "./backup"),
		Debug:     os.Getenv("DEBUG") == "true",
	}

	return config, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	var missing []string

	if c.DBPath == "" {
		missing = append(missing, "TEABANK_DB_PATH")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %v\nPlease check your .env file or environment variables", missing)
	}

	return nil
}

// getEnvOrDefault returns the value of the environment variable or a default value if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
