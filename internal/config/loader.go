package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "SMISHGUARD_"

// DefaultEnvFile is read for overrides when present in the working directory
const DefaultEnvFile = ".env"

// ConfigPaths defines the config file search paths in priority order
var ConfigPaths = []string{
	"./.smishguard.yaml",               // Project-specific config (highest priority)
	"~/.config/smishguard/config.yaml", // User config
	"/etc/smishguard/config.yaml",      // System config (lowest priority)
}

// Loader handles configuration loading with priority merging
type Loader struct {
	configPaths []string
	envFile     string
	lookupEnv   func(string) (string, bool)
	warn        func(format string, args ...interface{})
}

// NewLoader creates a new config loader
func NewLoader() *Loader {
	return &Loader{
		configPaths: ConfigPaths,
		envFile:     DefaultEnvFile,
		lookupEnv:   os.LookupEnv,
		warn: func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, "Warning: "+format+"\n", args...)
		},
	}
}

// WithPaths replaces the search paths, highest priority first
func (l *Loader) WithPaths(paths ...string) *Loader {
	l.configPaths = paths
	return l
}

// WithEnvFile replaces the dotenv file. Empty disables it.
func (l *Loader) WithEnvFile(path string) *Loader {
	l.envFile = path
	return l
}

// LoadConfig loads configuration from multiple sources with priority order:
// 1. Command line flags (handled by caller)
// 2. Environment variables
// 3. .env file in the working directory
// 4. ./.smishguard.yaml
// 5. ~/.config/smishguard/config.yaml
// 6. /etc/smishguard/config.yaml
// 7. Built-in defaults
func (l *Loader) LoadConfig(customPath string) (*Config, error) {
	config := DefaultConfig()

	if customPath != "" {
		if err := validateConfigPath(customPath); err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		if err := l.loadFromFile(config, expandPath(customPath)); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", customPath, err)
		}
	} else {
		// lowest priority first
		for i := len(l.configPaths) - 1; i >= 0; i-- {
			path := expandPath(l.configPaths[i])
			if !fileExists(path) {
				continue
			}
			if err := l.loadFromFile(config, path); err != nil {
				l.warn("failed to load config from %s: %v", path, err)
			}
		}
	}

	dotenv, err := l.readEnvFile()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", l.envFile, err)
	}

	if err := l.applyEnvOverrides(config, dotenv); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// loadFromFile decodes YAML over the existing config, so keys absent
// from the file keep their current values
func (l *Loader) loadFromFile(config *Config, path string) error {
	// #nosec G304 - path is validated by validateConfigPath() or comes from ConfigPaths
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	return nil
}

// readEnvFile returns the dotenv values, or nil when the file is absent
func (l *Loader) readEnvFile() (map[string]string, error) {
	if l.envFile == "" {
		return nil, nil
	}
	values, err := godotenv.Read(l.envFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return values, err
}

// applyEnvOverrides applies environment variable overrides to the config.
// Real environment variables win over the dotenv file.
func (l *Loader) applyEnvOverrides(config *Config, dotenv map[string]string) error {
	envMappings := map[string]func(string) error{
		// API Config
		"API_BASE":      func(v string) error { config.API.BaseURL = v; return nil },
		"API_ORIGIN":    func(v string) error { config.API.Origin = v; return nil },
		"API_PATH":      func(v string) error { config.API.Path = v; return nil },
		"API_CHANNEL":   func(v string) error { config.API.Channel = v; return nil },
		"API_CLIENT_ID": func(v string) error { config.API.ClientID = v; return nil },
		"API_TIMEOUT":   func(v string) error { return parseDuration(v, &config.API.Timeout) },

		// UI Config
		"UI_THEME":      func(v string) error { config.UI.Theme = v; return nil },
		"UI_NO_EMOJI":   func(v string) error { return parseBool(v, &config.UI.NoEmoji) },
		"UI_ALT_SCREEN": func(v string) error { return parseBool(v, &config.UI.AltScreen) },

		// Log Config
		"LOG_LEVEL": func(v string) error { config.Log.Level = v; return nil },
		"LOG_FILE":  func(v string) error { config.Log.File = v; return nil },

		// Output Config
		"OUTPUT_DEFAULT_FORMAT": func(v string) error { config.Output.DefaultFormat = v; return nil },
	}

	for suffix, setter := range envMappings {
		envVar := EnvPrefix + suffix
		value, ok := l.lookupEnv(envVar)
		if !ok {
			value, ok = dotenv[envVar]
		}
		if !ok || value == "" {
			continue
		}
		if err := setter(strings.TrimSpace(value)); err != nil {
			return fmt.Errorf("invalid value for %s: %w", envVar, err)
		}
	}

	return nil
}

// GetConfigPaths returns the list of configuration file paths that will be searched
func GetConfigPaths() []string {
	paths := make([]string, 0, len(ConfigPaths))
	for _, path := range ConfigPaths {
		paths = append(paths, expandPath(path))
	}
	return paths
}

// FindConfigFile finds the first existing config file in the search paths
func FindConfigFile() (string, bool) {
	for _, path := range GetConfigPaths() {
		if fileExists(path) {
			return path, true
		}
	}
	return "", false
}

// validateConfigPath validates that a config path is safe to read
func validateConfigPath(path string) error {
	cleanPath := filepath.Clean(path)

	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	ext := strings.ToLower(filepath.Ext(cleanPath))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("config file must have .yaml or .yml extension")
	}

	absPath, err := filepath.Abs(expandPath(cleanPath))
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	if strings.HasPrefix(absPath, "/proc/") || strings.HasPrefix(absPath, "/sys/") {
		return fmt.Errorf("access to system files not allowed")
	}

	return nil
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// FileExists reports whether path exists
func FileExists(path string) bool {
	return fileExists(expandPath(path))
}

func parseBool(s string, dst *bool) error {
	val, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseDuration(s string, dst *time.Duration) error {
	val, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}
