package openfoodfacts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/noon/backend/internal/domain"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the public Open Food Facts host
	DefaultBaseURL   = "https://world.openfoodfacts.org"
	DefaultTimeout   = 30 * time.Second
	DefaultPageSize  = 10
	defaultUserAgent = "NOON/1.0 (food search)"

	searchPath = "/cgi/search.pl"

	// bytes of an error body kept for the log line
	maxErrorBodyBytes = 512
)

// ClientConfig holds Open Food Facts client settings.
// Zero values fall back to the defaults above; a zero RequestsPerSecond
// disables client-side pacing.
type ClientConfig struct {
	BaseURL           string
	UserAgent         string
	Timeout           time.Duration
	PageSize          int
	RequestsPerSecond float64
	Burst             int
}

// Client handles communication with the Open Food Facts search API
type Client struct {
	httpClient  *http.Client
	baseURL     string
	userAgent   string
	pageSize    int
	timeout     time.Duration
	rateLimiter *rate.Limiter
	logger      logrus.FieldLogger
}

// NewClient creates a new Open Food Facts API client
func NewClient(cfg ClientConfig, logger logrus.FieldLogger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:   cfg.UserAgent,
		pageSize:    cfg.PageSize,
		timeout:     cfg.Timeout,
		rateLimiter: rate.NewLimiter(limit, burst),
		logger:      logger.WithField("component", "openfoodfacts"),
	}
}

// searchURL builds the simple-search query for one term
func (c *Client) searchURL(term string) string {
	params := url.Values{}
	params.Set("search_terms", term)
	params.Set("search_simple", "1")
	params.Set("action", "process")
	params.Set("json", "1")
	params.Set("page_size", strconv.Itoa(c.pageSize))

	return fmt.Sprintf("%s%s?%s", c.baseURL, searchPath, params.Encode())
}

// SearchProducts runs one simple search for term and returns the matched
// products. The call is bounded by the client timeout and is never retried.
func (c *Client) SearchProducts(ctx context.Context, term string) ([]domain.OFFProduct, error) {
	log := c.logger.WithField("term", term)

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limiter: %v", domain.ErrProviderFailure, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.searchURL(term), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := readLimitedBody(resp.Body, maxErrorBodyBytes)
		log.WithField("status", resp.StatusCode).WithField("body", string(body)).Debug("provider returned non-success status")
		return nil, fmt.Errorf("%w: status %d", domain.ErrProviderFailure, resp.StatusCode)
	}

	var searchResp domain.OFFSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}

	log.WithFields(logrus.Fields{
		"products": len(searchResp.Products),
		"took":     time.Since(start),
	}).Debug("search completed")

	return searchResp.Products, nil
}

// readLimitedBody reads at most limit bytes from r
func readLimitedBody(r io.Reader, limit int64) ([]byte, error) {
	return io.ReadAll(io.LimitReader(r, limit))
}
