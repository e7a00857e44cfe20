// Package provider fetches raw forecast documents from the upstream weather API.
package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/couchcryptid/weather-forecast-etl/internal/domain"
	"github.com/couchcryptid/weather-forecast-etl/internal/observability"
	"golang.org/x/time/rate"
)

// ErrLocationNotFound is returned when the upstream API has no forecast for a location.
var ErrLocationNotFound = errors.New("location not found")

const maxErrorBody = 1024

// Client calls GET {baseURL}/forecast/{name} on the upstream API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a rate-limited upstream client. rps and burst bound the
// request rate shared by every caller of this client.
func NewClient(baseURL string, timeout time.Duration, rps float64, burst int, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(rps), burst),
		metrics:    metrics,
		logger:     logger,
	}
}

// FetchRawForecast returns the decoded raw forecast for a location name.
// The result is untyped JSON ready for domain.Assemble.
func (c *Client) FetchRawForecast(ctx context.Context, name string) (any, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	start := time.Now()
	payload, err := c.fetch(ctx, name)
	c.metrics.ProviderDuration.Observe(time.Since(start).Seconds())
	c.metrics.ProviderRequests.WithLabelValues(outcome(err)).Inc()

	if err != nil {
		c.logger.Debug("forecast fetch failed", "location", name, "error", err)
		return nil, err
	}
	return payload, nil
}

func (c *Client) fetch(ctx context.Context, name string) (any, error) {
	u := fmt.Sprintf("%s/forecast/%s", c.baseURL, url.PathEscape(name))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("forecast request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrLocationNotFound, name)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("forecast API error: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return domain.ParsePayload(data)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrLocationNotFound):
		return "not_found"
	default:
		return "error"
	}
}
