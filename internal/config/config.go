package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds user preferences
type Config struct {
	DataPath      string `yaml:"data_path" json:"data_path"`           // Path to the pipeline database
	ListenAddr    string `yaml:"listen_addr" json:"listen_addr"`       // Address for the HTTP API
	APIToken      string `yaml:"api_token" json:"api_token"`           // Optional static bearer token for the API
	ConfirmDelete bool   `yaml:"confirm_delete" json:"confirm_delete"` // Require confirmation for delete

	// Logging configuration
	LogLevel   string `yaml:"log_level" json:"log_level"`     // Log level: DEBUG, INFO, WARN, ERROR
	LogFile    string `yaml:"log_file" json:"log_file"`       // Path to log file
	LogConsole bool   `yaml:"log_console" json:"log_console"` // Enable console logging
}

// DefaultConfig returns default settings
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	logPath := ""
	dataPath := ""
	if home != "" {
		logPath = filepath.Join(home, ".copiloto", "logs", "copiloto.log")
		dataPath = filepath.Join(home, ".copiloto", "copiloto.db")
	}

	return &Config{
		DataPath:      getEnv("COPILOTO_DATA_PATH", dataPath),
		ListenAddr:    getEnv("COPILOTO_LISTEN_ADDR", ":8080"),
		APIToken:      getEnv("COPILOTO_API_TOKEN", ""),
		ConfirmDelete: true,
		LogLevel:      getEnv("COPILOTO_LOG_LEVEL", "INFO"),
		LogFile:       getEnv("COPILOTO_LOG_FILE", logPath),
		LogConsole:    getEnv("COPILOTO_LOG_CONSOLE", "false") == "true",
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Load loads config from ~/.copiloto/config.yaml
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	configPath := filepath.Join(home, ".copiloto", "config.yaml")

	// Check if exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		// Return defaults if no config
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// Save saves config to ~/.copiloto/config.yaml
func (c *Config) Save() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	configDir := filepath.Join(home, ".copiloto")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(configDir, "config.yaml")
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
