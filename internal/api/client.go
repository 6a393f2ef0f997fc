package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/yildizm/smishguard/internal/logger"
)

// maxBodyBytes caps how much of a response body is read
const maxBodyBytes = 1 << 20

// Client posts messages to the remote analysis service.
// It holds no per-request state and never retries or caches.
type Client struct {
	config   *Config
	client   *http.Client
	endpoint string
	log      *logger.Logger
}

// Option customizes a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.client = hc
		}
	}
}

// WithLogger sets the logger used for request metadata
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// New creates a client from config
func New(config *Config, opts ...Option) (*Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		config:   config,
		client:   &http.Client{Timeout: config.Timeout},
		endpoint: config.Endpoint(),
		log:      logger.Nop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Endpoint returns the URL requests are sent to
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Analyze sends one message for analysis.
// Failures are always returned as *Error.
func (c *Client) Analyze(ctx context.Context, req *AnalysisRequest) (*AnalysisResponse, error) {
	if req == nil {
		return nil, newRequestError("analysis request is required", nil)
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, newRequestError("failed to encode request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, newRequestError("failed to create request", err)
	}
	c.setHeaders(httpReq)

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	if err != nil {
		c.log.Warn("analysis request failed", logger.F("request_id", req.RequestID), logger.Error(err))
		return nil, newTransportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug("analysis response received",
		logger.F("request_id", req.RequestID),
		logger.F("status", resp.StatusCode),
		logger.Duration(time.Since(start)))

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, newTransportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newStatusError(resp.StatusCode, resp.Status, string(raw))
	}

	return decodeResponse(raw)
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}
	if c.config.ClientID != "" {
		req.Header.Set("X-Client-Id", c.config.ClientID)
	}
}

func decodeResponse(raw []byte) (*AnalysisResponse, error) {
	var wire wireResponse
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, newDecodeError("malformed response", err)
	}

	if wire.Result == nil {
		return nil, newDecodeError("malformed response: missing result", nil)
	}
	if wire.Result.Label == "" {
		return nil, newDecodeError("malformed response: missing result label", nil)
	}

	result := *wire.Result
	if result.Reasons == nil {
		result.Reasons = []string{}
	}

	return &AnalysisResponse{
		RequestID: wire.RequestID,
		Result:    result,
	}, nil
}
