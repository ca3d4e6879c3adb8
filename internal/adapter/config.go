package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Data     DataConfig     `mapstructure:"data"`
	Importer ImporterConfig `mapstructure:"importer"`
	Browser  BrowserConfig  `mapstructure:"browser"`
	UI       UIConfig       `mapstructure:"ui"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// DataConfig holds local storage configuration
type DataConfig struct {
	Dir string `mapstructure:"dir"` // BoltDB directory, empty means memory-only
}

// ImporterConfig holds recipe import configuration
type ImporterConfig struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// BrowserConfig holds source-link opening configuration
type BrowserConfig struct {
	Command string `mapstructure:"command"` // Browser command, empty for system default
}

// UIConfig holds UI configuration
type UIConfig struct {
	GridColumns   int    `mapstructure:"grid_columns"`
	DefaultScreen string `mapstructure:"default_screen"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Dir: defaultDataPath(),
		},
		Importer: ImporterConfig{
			TimeoutSeconds: 20,
		},
		UI: UIConfig{
			GridColumns:   3,
			DefaultScreen: "home",
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "sous", "sous.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "sous", "sous.log")
	}
}

// defaultConfigPath returns the default config file path for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "sous")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "sous")
	}
}

// defaultDataPath returns the default BoltDB directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "sous", "data")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "sous", "data")
	}
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(defaultConfigPath())
	viper.AddConfigPath(".")

	// Environment variable overrides
	viper.SetEnvPrefix("SOUS")
	viper.AutomaticEnv()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the current configuration to file
func SaveConfig(cfg *Config) error {
	configPath := defaultConfigPath()

	// Ensure config directory exists
	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to ensure correct key names (snake_case)
	viper.Set("data.dir", cfg.Data.Dir)
	viper.Set("importer.timeout_seconds", cfg.Importer.TimeoutSeconds)
	viper.Set("browser.command", cfg.Browser.Command)
	viper.Set("ui.grid_columns", cfg.UI.GridColumns)
	viper.Set("ui.default_screen", cfg.UI.DefaultScreen)
	viper.Set("logging.file", cfg.Logging.File)
	viper.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(configPath, "config.yaml")
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ClearData removes the local database directory
func ClearData(cfg *Config) error {
	if cfg.Data.Dir == "" {
		return nil
	}
	if err := os.RemoveAll(cfg.Data.Dir); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear data: %w", err)
	}
	return nil
}
