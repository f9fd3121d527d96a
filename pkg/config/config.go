// Package config loads server settings from an optional YAML file and the
// environment. Precedence, lowest to highest: defaults, config file,
// environment variables; command-line flags override on top in main.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Environment variables recognized by Load.
const (
	EnvFilesDir = "EXCEL_FILES_PATH"
	EnvPort     = "XLSMCP_PORT"
	EnvLogFile  = "XLSMCP_LOG_FILE"
	EnvDebug    = "XLSMCP_DEBUG"
)

// DefaultFilesDir is where workbook paths resolve when nothing is configured.
const DefaultFilesDir = "./excel_files"

// Config holds the server settings.
type Config struct {
	// FilesDir is the base directory all relative workbook paths resolve
	// against.
	FilesDir string `yaml:"files_dir"`
	// Port enables the streamable HTTP transport when non-zero; the
	// default transport is stdio.
	Port int `yaml:"port"`
	// LogFile receives structured logs; empty means stderr only.
	LogFile string `yaml:"log_file"`
	// Debug lowers the log level to debug.
	Debug bool `yaml:"debug"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		FilesDir: DefaultFilesDir,
	}
}

// Load builds the configuration from defaults, an optional YAML file, and
// the environment. An empty path skips the file layer; a named file that
// does not exist is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		// Allow ${VAR} references in the file.
		if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvFilesDir); v != "" {
		cfg.FilesDir = v
	}
	if v := os.Getenv(EnvPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
		}
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv(EnvDebug); v != "" {
		if debug, err := strconv.ParseBool(v); err == nil {
			cfg.Debug = debug
		}
	}
}
