package api

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultOrigin    = "http://localhost:8000"
	DefaultPath      = "/api/v1/analyze"
	DefaultUserAgent = "smishguard"
)

// Config controls where and how analysis requests are sent
type Config struct {
	// BaseURL overrides the service address. Blank means "same origin".
	BaseURL string `json:"base_url"`

	// Origin is the address used when BaseURL is blank
	Origin string `json:"origin"`

	// Path is the analysis endpoint path
	Path string `json:"path"`

	// ClientID is sent as X-Client-Id when set
	ClientID string `json:"client_id,omitempty"`

	// UserAgent is sent with every request
	UserAgent string `json:"user_agent"`

	// Timeout bounds one call. Zero waits indefinitely.
	Timeout time.Duration `json:"timeout"`
}

func DefaultConfig() *Config {
	return &Config{
		Origin:    DefaultOrigin,
		Path:      DefaultPath,
		UserAgent: DefaultUserAgent,
	}
}

func (c *Config) Validate() error {
	if c.Timeout < 0 {
		return fmt.Errorf("api timeout must be non-negative")
	}

	base := c.ResolveBaseURL()
	if base == "" {
		return fmt.Errorf("api base URL or origin is required")
	}

	u, err := url.Parse(base)
	if err != nil {
		return fmt.Errorf("invalid api base URL %q: %w", base, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid api base URL %q: scheme must be http or https", base)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid api base URL %q: host is required", base)
	}

	return nil
}

// ResolveBaseURL returns BaseURL when set, otherwise Origin, without a trailing slash
func (c *Config) ResolveBaseURL() string {
	base := strings.TrimSpace(c.BaseURL)
	if base == "" {
		base = strings.TrimSpace(c.Origin)
	}
	return strings.TrimRight(base, "/")
}

// ResolvePath returns Path with a guaranteed leading slash
func (c *Config) ResolvePath() string {
	p := strings.TrimSpace(c.Path)
	if p == "" {
		p = DefaultPath
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

// Endpoint is the full URL analysis requests are posted to
func (c *Config) Endpoint() string {
	return c.ResolveBaseURL() + c.ResolvePath()
}
