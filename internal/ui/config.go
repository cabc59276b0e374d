package ui

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// AppConfig stores persistent application settings. Grid parameters are
// not among them; every session starts from the built-in defaults.
type AppConfig struct {
	ExportScale float64 `json:"export_scale"` // 0 = display pixel density
	DarkMode    bool    `json:"dark_mode"`
}

// DefaultAppConfig is used when no config file exists.
func DefaultAppConfig() *AppConfig {
	return &AppConfig{}
}

// ConfigPath returns the path to the config file
func ConfigPath() (string, error) {
	var configDir string
	if appData := os.Getenv("APPDATA"); appData != "" {
		// Windows: %APPDATA%\OpenTraceGrid
		configDir = filepath.Join(appData, "OpenTraceGrid")
	} else {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(homeDir, ".config", "opentracegrid")
	}
	return filepath.Join(configDir, "config.json"), nil
}

// LoadConfig loads the application configuration from ConfigPath.
func LoadConfig() (*AppConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultAppConfig(), err
	}
	return LoadConfigFile(path)
}

// LoadConfigFile reads the config at path. A missing file yields the
// defaults without an error.
func LoadConfigFile(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultAppConfig(), nil
		}
		return nil, err
	}

	config := DefaultAppConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}
	return config, nil
}

// SaveConfig saves the application configuration to ConfigPath.
func SaveConfig(config *AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveConfigFile(path, config)
}

// SaveConfigFile writes config to path, creating the directory.
func SaveConfigFile(path string, config *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
