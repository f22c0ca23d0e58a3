package registry

import (
	"log/slog"
	"net/http"
	"time"
)

// Config holds registry client configuration.
type Config struct {
	// BaseURL is the registry service root, e.g. "http://localhost:3000".
	BaseURL string

	// Timeout bounds each registry call.
	Timeout time.Duration

	// HTTPClient overrides the default client (mainly for tests).
	HTTPClient *http.Client

	// Logger is the structured logger.
	Logger *slog.Logger
}

// Option is a functional option for configuring the client.
type Option func(*Config)

// WithBaseURL sets the registry service root URL.
func WithBaseURL(url string) Option {
	return func(c *Config) { c.BaseURL = url }
}

// WithTimeout sets the per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) { c.Timeout = d }
}

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Config) { c.HTTPClient = hc }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// DefaultConfig returns sensible defaults for a local registry.
func DefaultConfig() *Config {
	return &Config{
		BaseURL: "http://localhost:3000",
		Timeout: 5 * time.Second,
		Logger:  slog.Default(),
	}
}

// Apply applies the options to the config.
func (c *Config) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}
