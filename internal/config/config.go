package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/yildizm/smishguard/internal/api"
	"github.com/yildizm/smishguard/internal/logger"
)

// Config holds the complete application configuration
type Config struct {
	Version string       `yaml:"version" json:"version"`
	API     APIConfig    `yaml:"api" json:"api"`
	UI      UIConfig     `yaml:"ui" json:"ui"`
	Log     LogConfig    `yaml:"log" json:"log"`
	Output  OutputConfig `yaml:"output" json:"output"`
}

// APIConfig configures the remote analysis service
type APIConfig struct {
	BaseURL  string        `yaml:"base_url" json:"base_url"`   // override; blank means origin
	Origin   string        `yaml:"origin" json:"origin"`       // address used when base_url is blank
	Path     string        `yaml:"path" json:"path"`           // analysis endpoint path
	Channel  string        `yaml:"channel" json:"channel"`     // sms|dm|email|...
	ClientID string        `yaml:"client_id" json:"client_id"` // sent as X-Client-Id
	Timeout  time.Duration `yaml:"timeout" json:"timeout"`     // 0 waits indefinitely
}

// UIConfig configures the interactive terminal app
type UIConfig struct {
	Theme     string `yaml:"theme" json:"theme"` // default|high-contrast|minimal
	NoEmoji   bool   `yaml:"no_emoji" json:"no_emoji"`
	AltScreen bool   `yaml:"alt_screen" json:"alt_screen"`
}

// LogConfig configures diagnostics logging
type LogConfig struct {
	Level string `yaml:"level" json:"level"` // debug|info|warn|error
	File  string `yaml:"file" json:"file"`   // empty means stderr
}

// OutputConfig configures non-interactive output
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"` // text|json|markdown|pretty
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		API: APIConfig{
			BaseURL: "",
			Origin:  api.DefaultOrigin,
			Path:    api.DefaultPath,
			Channel: "sms",
			Timeout: 0,
		},
		UI: UIConfig{
			Theme:     "default",
			NoEmoji:   false,
			AltScreen: true,
		},
		Log: LogConfig{
			Level: "warn",
			File:  "",
		},
		Output: OutputConfig{
			DefaultFormat: "text",
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateAPIConfig(); err != nil {
		return err
	}
	if err := c.validateUIConfig(); err != nil {
		return err
	}
	if err := c.validateLogConfig(); err != nil {
		return err
	}
	if err := c.validateOutputConfig(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateAPIConfig() error {
	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must be non-negative")
	}
	if strings.TrimSpace(c.API.Channel) == "" {
		return fmt.Errorf("api.channel must not be empty")
	}
	for name, raw := range map[string]string{"api.base_url": c.API.BaseURL, "api.origin": c.API.Origin} {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		u, err := url.Parse(strings.TrimSpace(raw))
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("invalid %s: %s (must be an http or https URL)", name, raw)
		}
	}
	if strings.TrimSpace(c.API.BaseURL) == "" && strings.TrimSpace(c.API.Origin) == "" {
		return fmt.Errorf("api.base_url or api.origin is required")
	}
	return nil
}

func (c *Config) validateUIConfig() error {
	if c.UI.Theme != "" {
		validThemes := map[string]bool{
			"default":       true,
			"high-contrast": true,
			"minimal":       true,
		}
		if !validThemes[c.UI.Theme] {
			return fmt.Errorf("invalid theme: %s (must be one of: default, high-contrast, minimal)", c.UI.Theme)
		}
	}
	return nil
}

func (c *Config) validateLogConfig() error {
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateOutputConfig() error {
	if c.Output.DefaultFormat != "" {
		validFormats := map[string]bool{
			"json":     true,
			"text":     true,
			"markdown": true,
			"pretty":   true,
		}
		if !validFormats[c.Output.DefaultFormat] {
			return fmt.Errorf("invalid output format: %s (must be one of: text, json, markdown, pretty)", c.Output.DefaultFormat)
		}
	}
	return nil
}

// APIClientConfig converts the api section into client settings
func (c *Config) APIClientConfig(userAgent string) *api.Config {
	if userAgent == "" {
		userAgent = api.DefaultUserAgent
	}
	return &api.Config{
		BaseURL:   c.API.BaseURL,
		Origin:    c.API.Origin,
		Path:      c.API.Path,
		ClientID:  c.API.ClientID,
		UserAgent: userAgent,
		Timeout:   c.API.Timeout,
	}
}

// LoggerOptions converts the log section into logger options
func (c *Config) LoggerOptions(verbose bool) logger.Options {
	return logger.Options{
		Level:   c.Log.Level,
		File:    expandPath(c.Log.File),
		Verbose: verbose,
	}
}
