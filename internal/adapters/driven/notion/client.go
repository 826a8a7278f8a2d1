package notion

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jomei/notionapi"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/cookbook/internal/core/domain"
)

// ServiceName identifies this adapter in upstream errors.
const ServiceName = "notion"

// Default configuration values.
const (
	DefaultBaseURL = "https://api.notion.com/v1"
	DefaultTimeout = 60 * time.Second
	DefaultBurst   = 3
)

// Config holds configuration for the Notion client.
type Config struct {
	// Token is the integration secret (required).
	Token string

	// Version is sent as the Notion-Version header (default: 2022-06-28).
	Version string

	// RequestsPerSecond throttles every request (default: 3).
	RequestsPerSecond float64

	// Timeout bounds each request (default: 60s).
	Timeout time.Duration

	// HTTPClient is the base client requests are sent through.
	// Defaults to http.DefaultClient.
	HTTPClient *http.Client
}

// Client holds the shared HTTP client and SDK client.
type Client struct {
	http    *http.Client
	api     *notionapi.Client
	baseURL string
}

// NewClient creates a new Notion client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("notion: integration secret is required: %w", domain.ErrNotConfigured)
	}
	if cfg.Version == "" {
		cfg.Version = domain.DefaultNotionVersion
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = domain.DefaultNotionRate
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	base := cfg.HTTPClient
	if base == nil {
		base = http.DefaultClient
	}
	throttled := &http.Client{
		Transport: &transport{
			base:    transportOf(base),
			limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), DefaultBurst),
			version: cfg.Version,
		},
	}

	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, throttled)
	hc := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token}))
	hc.Timeout = cfg.Timeout

	return &Client{
		http:    hc,
		api:     notionapi.NewClient(notionapi.Token(cfg.Token), notionapi.WithHTTPClient(hc)),
		baseURL: DefaultBaseURL,
	}, nil
}

func transportOf(c *http.Client) http.RoundTripper {
	if c.Transport != nil {
		return c.Transport
	}
	return http.DefaultTransport
}

// transport pins the API version and waits on the rate limiter before
// every request.
type transport struct {
	base    http.RoundTripper
	limiter *rate.Limiter
	version string
}

func (t *transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, fmt.Errorf("notion: rate limiter: %w", err)
	}

	req = req.Clone(req.Context())
	req.Header.Set("Notion-Version", t.version)
	return t.base.RoundTrip(req)
}
