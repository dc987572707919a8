package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the environment variables for YAML configuration files.
type fileConfig struct {
	APIKey           string   `yaml:"api_key"`
	ServerName       string   `yaml:"server_name"`
	ServerVersion    string   `yaml:"server_version"`
	APIURL           string   `yaml:"api_url"`
	TimeoutMs        int      `yaml:"timeout_ms"`
	DefaultLimit     int      `yaml:"default_limit"`
	MaxLimit         int      `yaml:"max_limit"`
	DefaultThreshold *float64 `yaml:"default_threshold"`
	LocalAssetsPath  string   `yaml:"local_assets_path"`
	APIPort          string   `yaml:"api_port"`
	LogLevel         string   `yaml:"log_level"`
}

func loadFile(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config %s: %w", path, err)
	}

	return &cfg, nil
}
