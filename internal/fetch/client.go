package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand"
	"net/http"
	"net/http/cookiejar"
	"time"

	"club_harvester/internal/domain"
	"club_harvester/internal/metrics"
)

const maxBodyBytes = 8 << 20

// ErrBudgetExceeded is returned once the per-run request ceiling is reached.
// It is fatal for the run and never retried.
var ErrBudgetExceeded = errors.New("request budget exceeded")

// StatusError is a non-retryable (or retry-exhausted) HTTP failure.
type StatusError struct {
	URL    string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d for %s", e.Status, e.URL)
}

// ValidatorStore persists revalidation tokens per URL.
type ValidatorStore interface {
	Get(ctx context.Context, url string) (*domain.RevalidationEntry, error)
	Put(ctx context.Context, entry *domain.RevalidationEntry) error
}

// Config holds fetch client configuration.
type Config struct {
	UserAgent      string
	AcceptLanguage string
	Timeout        time.Duration
	MinDelay       time.Duration
	MaxDelay       time.Duration
	DetailExtraMin time.Duration
	DetailExtraMax time.Duration
	MaxRetries     int
	BackoffBase    float64
	JitterMin      time.Duration
	JitterMax      time.Duration
	MaxRequests    int
}

// Options select the behaviour of a single Fetch call.
type Options struct {
	// Detail adds the detail-page delay window on top of the base delay.
	Detail bool
	// Conditional sends stored validators and records new ones on 200.
	// When false the request asks for a fresh copy so a body is always returned.
	Conditional bool
	Header      http.Header
}

type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithSleep replaces the blocking sleep used for politeness delays and backoff.
func WithSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Client) { c.sleep = fn }
}

// Client issues sequential, politely delayed GET requests under a hard
// per-run request budget. A Client belongs to exactly one run.
type Client struct {
	httpClient *http.Client
	cfg        Config
	validators ValidatorStore
	logger     *slog.Logger
	sleep      func(ctx context.Context, d time.Duration) error
	requests   int
}

// New creates a fetch client. validators may be nil when no request is conditional.
func New(cfg Config, validators ValidatorStore, logger *slog.Logger, opts ...Option) *Client {
	jar, _ := cookiejar.New(nil)
	c := &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Jar:     jar,
		},
		cfg:        cfg,
		validators: validators,
		logger:     logger.With("component", "fetch"),
		sleep:      sleepWithContext,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RequestCount returns the number of requests issued so far in this run.
func (c *Client) RequestCount() int {
	return c.requests
}

type response struct {
	status int
	header http.Header
	body   []byte
}

// Fetch performs one logical GET, including delays and retries.
func (c *Client) Fetch(ctx context.Context, url string, opts Options) (*domain.FetchOutcome, error) {
	header, err := c.buildHeader(ctx, url, opts)
	if err != nil {
		return nil, err
	}

	for attempt := 1; ; attempt++ {
		if c.cfg.MaxRequests > 0 && c.requests >= c.cfg.MaxRequests {
			return nil, fmt.Errorf("%w: limit %d reached before %s", ErrBudgetExceeded, c.cfg.MaxRequests, url)
		}
		c.requests++

		if err := c.sleep(ctx, c.humanDelay(opts.Detail)); err != nil {
			return nil, err
		}

		c.logger.Debug("fetching",
			"url", url,
			"attempt", attempt,
			"conditional", opts.Conditional,
			"request_count", c.requests,
		)

		resp, err := c.doRequest(ctx, url, header)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			metrics.ObserveFetch("error")
			if attempt <= c.cfg.MaxRetries {
				if err := c.backoff(ctx, attempt, url, "network", err); err != nil {
					return nil, err
				}
				continue
			}
			return nil, fmt.Errorf("get %s after %d attempts: %w", url, attempt, err)
		}
		metrics.ObserveFetchStatus(resp.status)

		switch {
		case resp.status == http.StatusNotModified:
			c.logger.Info("not modified", "url", url)
			return &domain.FetchOutcome{
				URL:         url,
				Status:      resp.status,
				NotModified: true,
				Header:      resp.header,
			}, nil
		case isRetryable(resp.status):
			if attempt <= c.cfg.MaxRetries {
				if err := c.backoff(ctx, attempt, url, fmt.Sprintf("status %d", resp.status), nil); err != nil {
					return nil, err
				}
				continue
			}
			return nil, &StatusError{URL: url, Status: resp.status}
		case resp.status < 200 || resp.status > 299:
			return nil, &StatusError{URL: url, Status: resp.status}
		}

		if opts.Conditional && resp.status == http.StatusOK && c.validators != nil {
			entry := &domain.RevalidationEntry{
				URL:          url,
				ETag:         nonEmpty(resp.header.Get("ETag")),
				LastModified: nonEmpty(resp.header.Get("Last-Modified")),
			}
			if err := c.validators.Put(ctx, entry); err != nil {
				return nil, fmt.Errorf("store validators for %s: %w", url, err)
			}
		}

		c.logger.Info("fetched", "url", url, "status", resp.status, "bytes", len(resp.body))

		return &domain.FetchOutcome{
			URL:    url,
			Status: resp.status,
			Body:   resp.body,
			Header: resp.header,
		}, nil
	}
}

func (c *Client) buildHeader(ctx context.Context, url string, opts Options) (http.Header, error) {
	header := http.Header{}
	header.Set("User-Agent", c.cfg.UserAgent)
	if c.cfg.AcceptLanguage != "" {
		header.Set("Accept-Language", c.cfg.AcceptLanguage)
	}

	if opts.Conditional {
		if c.validators != nil {
			entry, err := c.validators.Get(ctx, url)
			if err != nil {
				return nil, fmt.Errorf("load validators for %s: %w", url, err)
			}
			if entry != nil {
				if entry.ETag != nil && *entry.ETag != "" {
					header.Set("If-None-Match", *entry.ETag)
				}
				if entry.LastModified != nil && *entry.LastModified != "" {
					header.Set("If-Modified-Since", *entry.LastModified)
				}
			}
		}
	} else {
		// Some endpoints answer a conditional match with an empty 200.
		header.Set("Cache-Control", "no-cache")
		header.Set("Pragma", "no-cache")
	}

	for k, vs := range opts.Header {
		header.Del(k)
		for _, v := range vs {
			header.Add(k, v)
		}
	}
	return header, nil
}

func (c *Client) doRequest(ctx context.Context, url string, header http.Header) (*response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header = header.Clone()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return &response{status: resp.StatusCode, header: resp.Header, body: body}, nil
}

func (c *Client) backoff(ctx context.Context, attempt int, url, cause string, err error) error {
	delay := c.calculateBackoff(attempt)
	metrics.ObserveRetry(cause)
	c.logger.Warn("request failed, retrying",
		"url", url,
		"attempt", attempt,
		"max_retries", c.cfg.MaxRetries,
		"cause", cause,
		"backoff", delay,
		"error", err,
	)
	return c.sleep(ctx, delay)
}

// calculateBackoff returns base^(attempt-1) seconds plus random jitter.
func (c *Client) calculateBackoff(attempt int) time.Duration {
	base := time.Duration(math.Pow(c.cfg.BackoffBase, float64(attempt-1)) * float64(time.Second))
	return base + uniform(c.cfg.JitterMin, c.cfg.JitterMax)
}

func (c *Client) humanDelay(detail bool) time.Duration {
	lo, hi := c.cfg.MinDelay, c.cfg.MaxDelay
	if detail {
		lo += c.cfg.DetailExtraMin
		hi += c.cfg.DetailExtraMax
	}
	return uniform(lo, hi)
}

func isRetryable(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

func uniform(lo, hi time.Duration) time.Duration {
	if hi <= lo {
		return lo
	}
	return lo + time.Duration(rand.Int63n(int64(hi-lo)+1))
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func sleepWithContext(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
