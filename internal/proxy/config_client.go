// Guardian - Plex Media Server Administration Console
// Copyright 2026 xstar97
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/xstar97/guardian

// Package proxy implements the config proxy surface: it forwards the admin
// console's configuration document to the upstream Plex config service and
// back, translating connection failures into a distinguishable
// "service unreachable" error versus generic upstream failures.
//
// A circuit breaker guards the upstream so a dead Plex server fails fast
// instead of tying up request handlers, and a client-side rate limiter keeps
// Guardian polite toward the media server's API.
package proxy

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/xstar97/guardian/internal/config"
	"github.com/xstar97/guardian/internal/logging"
	"github.com/xstar97/guardian/internal/metrics"
)

// Sentinel errors for the proxy surface.
var (
	// ErrUpstreamUnreachable indicates the upstream could not be contacted:
	// connection refused, DNS failure, timeout, or an open circuit breaker.
	ErrUpstreamUnreachable = errors.New("upstream config service unreachable")

	// ErrNotConfigured indicates no upstream URL is configured.
	ErrNotConfigured = errors.New("upstream config service not configured")
)

// breakerName identifies the upstream breaker in logs and metrics.
const breakerName = "upstream-config"

// ConfigClient forwards configuration documents to the upstream service.
type ConfigClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
	limiter    *rate.Limiter
	cb         *gobreaker.CircuitBreaker[[]byte]
}

// NewConfigClient creates a client from the upstream configuration.
func NewConfigClient(cfg config.UpstreamConfig) *ConfigClient {
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0) // closed

	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 3,

		// Open after a 60% failure rate with at least 5 observed requests;
		// the admin console's config traffic is low-volume.
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})

	limit := rate.Limit(cfg.RateLimit)
	if cfg.RateLimit <= 0 {
		limit = rate.Inf
	}
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 1
	}

	return &ConfigClient{
		baseURL:    cfg.URL,
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(limit, burst),
		cb:         cb,
	}
}

// FetchConfig retrieves the upstream configuration document unchanged.
func (c *ConfigClient) FetchConfig(ctx context.Context) (json.RawMessage, error) {
	body, err := c.do(ctx, http.MethodGet, nil)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues("fetch", "error").Inc()
		return nil, err
	}
	metrics.UpstreamRequests.WithLabelValues("fetch", "success").Inc()
	return json.RawMessage(body), nil
}

// UpdateConfig forwards a replacement configuration document unchanged.
func (c *ConfigClient) UpdateConfig(ctx context.Context, doc json.RawMessage) error {
	if _, err := c.do(ctx, http.MethodPut, doc); err != nil {
		metrics.UpstreamRequests.WithLabelValues("update", "error").Inc()
		return err
	}
	metrics.UpstreamRequests.WithLabelValues("update", "success").Inc()
	return nil
}

// do executes one proxied request through the rate limiter and breaker.
func (c *ConfigClient) do(ctx context.Context, method string, body []byte) ([]byte, error) {
	if c.baseURL == "" {
		return nil, ErrNotConfigured
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	result, err := c.cb.Execute(func() ([]byte, error) {
		return c.roundTrip(ctx, method, body)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			// The breaker remembers the upstream is down; report it the
			// same way as a fresh connection failure.
			return nil, fmt.Errorf("%w: %s", ErrUpstreamUnreachable, err)
		}
		return nil, err
	}
	return result, nil
}

func (c *ConfigClient) roundTrip(ctx context.Context, method string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/config", reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build upstream request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("X-Plex-Token", c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isConnectionError(err) {
			return nil, fmt.Errorf("%w: %s", ErrUpstreamUnreachable, err)
		}
		return nil, fmt.Errorf("upstream request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read upstream response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("upstream returned status %d", resp.StatusCode)
	}
	return data, nil
}

// isConnectionError distinguishes "could not reach the service" from other
// request failures.
func isConnectionError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		// url.Error wraps the transport failure; context deadline counts
		// as unreachable, a malformed response does not.
		return errors.Is(urlErr.Err, context.DeadlineExceeded)
	}
	return false
}

func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
