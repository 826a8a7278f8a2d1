// Package spoonacular provides the recipe API and cuisine classifier adapters
// over the Spoonacular food API as published on RapidAPI.
package spoonacular

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/cookbook/internal/core/domain"
	"github.com/custodia-labs/cookbook/internal/core/ports/driven"
	"github.com/custodia-labs/cookbook/internal/logger"
)

// Ensure Client implements the interfaces.
var (
	_ driven.RecipeAPI         = (*Client)(nil)
	_ driven.CuisineClassifier = (*Client)(nil)
)

// ServiceName identifies this adapter in upstream errors.
const ServiceName = "spoonacular"

// Default configuration values.
const (
	DefaultHost              = domain.DefaultRecipeAPIHost
	DefaultTimeout           = domain.DefaultRecipeAPITimeout
	DefaultRequestsPerSecond = 5.0
	DefaultBurst             = 5
)

// RapidAPI request headers.
const (
	headerKey  = "x-rapidapi-key"
	headerHost = "x-rapidapi-host"
)

// Endpoint paths.
const (
	pathExtract = "/recipes/extract"
	pathAnalyze = "/recipes/analyze"
	pathCuisine = "/recipes/cuisine"
)

// maxErrorBody caps how much of a failed response is kept.
const maxErrorBody = 64 << 10

// Config holds configuration for the Spoonacular client.
type Config struct {
	// APIKey is the RapidAPI key (required).
	APIKey string

	// Host is the RapidAPI host header value.
	Host string

	// BaseURL is the API root (default: https://<Host>).
	BaseURL string

	// Timeout bounds extract and classify calls (default: 30s).
	// Analysis calls are never bounded by it.
	Timeout time.Duration

	// RequestsPerSecond throttles outbound calls (default: 5).
	RequestsPerSecond float64
}

// Client calls the Spoonacular recipe endpoints.
type Client struct {
	client        *http.Client
	analyzeClient *http.Client
	limiter       *rate.Limiter
	baseURL       string
	apiKey        string
	host          string
}

// NewClient creates a new Spoonacular client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("spoonacular: API key is required: %w", domain.ErrNotConfigured)
	}
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://" + cfg.Host
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultRequestsPerSecond
	}

	return &Client{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		// Analysis of long recipes routinely exceeds any sensible timeout.
		analyzeClient: &http.Client{},
		limiter:       rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), DefaultBurst),
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:        cfg.APIKey,
		host:          cfg.Host,
	}, nil
}

// Extract pulls a structured recipe from a source URL.
// Numeric fields the API omits or sends as null are left at domain.Unknown.
func (c *Client) Extract(ctx context.Context, sourceURL string) (*domain.Recipe, error) {
	query := url.Values{"url": {sourceURL}}
	req, err := c.newRequest(ctx, http.MethodGet, pathExtract+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}

	body, err := c.do(c.client, req, "extract")
	if err != nil {
		return nil, err
	}

	recipe := &domain.Recipe{
		Servings:           domain.Unknown,
		PreparationMinutes: domain.Unknown,
		CookingMinutes:     domain.Unknown,
		ReadyInMinutes:     domain.Unknown,
	}
	if err := json.Unmarshal(body, recipe); err != nil {
		return nil, fmt.Errorf("spoonacular: decode extract response: %w", err)
	}

	logger.Debug("Extracted %q with %d ingredients", recipe.Title, len(recipe.ExtendedIngredients))
	return recipe, nil
}

// Analyze submits a recipe for nutrition and taste analysis.
func (c *Client) Analyze(ctx context.Context, analyzeReq driven.AnalyzeRequest) (*domain.Analysis, error) {
	payload, err := json.Marshal(analyzeReq)
	if err != nil {
		return nil, fmt.Errorf("spoonacular: encode analyze request: %w", err)
	}

	query := url.Values{
		"language":         {"en"},
		"includeNutrition": {"true"},
		"includeTaste":     {"true"},
	}
	req, err := c.newRequest(ctx, http.MethodPost, pathAnalyze+"?"+query.Encode(), bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := c.do(c.analyzeClient, req, "analyze")
	if err != nil {
		return nil, err
	}

	var analysis domain.Analysis
	if err := json.Unmarshal(body, &analysis); err != nil {
		return nil, fmt.Errorf("spoonacular: decode analyze response: %w", err)
	}
	return &analysis, nil
}

// Classify asks the classifier for the recipe's cuisine. Every response
// that arrives is returned, whatever its status.
func (c *Client) Classify(ctx context.Context, title string, ingredients []string) (*driven.ClassifierResponse, error) {
	form := url.Values{"title": {title}}
	for _, ing := range ingredients {
		form.Add("ingredientList", ing)
	}

	req, err := c.newRequest(ctx, http.MethodPost, pathCuisine, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("spoonacular: rate limiter: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &domain.UpstreamError{Service: ServiceName, Op: "classify", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.UpstreamError{Service: ServiceName, Op: "classify", StatusCode: resp.StatusCode, Err: err}
	}

	result := &driven.ClassifierResponse{StatusCode: resp.StatusCode, Body: body}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		result.Cuisine = gjson.GetBytes(body, "cuisine").String()
	}
	return result, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("spoonacular: create request: %w", err)
	}
	req.Header.Set(headerKey, c.apiKey)
	req.Header.Set(headerHost, c.host)
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// do waits for the limiter, sends the request and returns the body of a
// 2xx response. Anything else becomes a *domain.UpstreamError.
func (c *Client) do(client *http.Client, req *http.Request, op string) ([]byte, error) {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return nil, fmt.Errorf("spoonacular: rate limiter: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &domain.UpstreamError{Service: ServiceName, Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &domain.UpstreamError{Service: ServiceName, Op: op, StatusCode: resp.StatusCode, Body: body}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.UpstreamError{Service: ServiceName, Op: op, StatusCode: resp.StatusCode, Err: err}
	}
	return body, nil
}
