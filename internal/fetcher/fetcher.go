package fetcher

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultUserAgent is the browser identification sent with every request.
// The portal serves the same pages to any client; a browser string keeps it
// from treating the scraper differently.
const DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/106.0.0.0 Safari/537.36"

// Fetcher retrieves the body of a page.
type Fetcher interface {
	// Fetch performs a single GET of url and returns the response body.
	// Every error it returns matches ErrNetwork.
	Fetch(ctx context.Context, url string) (string, error)
}

// Client is a Fetcher backed by a resty client.
type Client struct {
	rc *resty.Client

	httpClient *http.Client
	userAgent  string
	timeout    time.Duration
	retries    int
	proxy      string
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithUserAgent overrides DefaultUserAgent.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithTimeout sets a per-request timeout. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithRetries sets how many times a failed request is retried. Zero means no retry.
func WithRetries(n int) Option {
	return func(c *Client) {
		c.retries = n
	}
}

// WithProxy routes requests through an HTTP or SOCKS5 proxy URL.
func WithProxy(proxyURL string) Option {
	return func(c *Client) {
		c.proxy = proxyURL
	}
}

// WithHTTPClient replaces the underlying *http.Client, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a Client. With no options it sends one GET per call with
// DefaultUserAgent, no timeout and no retry.
func New(opts ...Option) *Client {
	c := &Client{
		userAgent: DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = slog.Default()
	}

	if c.httpClient != nil {
		c.rc = resty.NewWithClient(c.httpClient)
	} else {
		c.rc = resty.New()
	}

	c.rc.SetLogger(restyLogger{logger: c.logger})
	c.rc.SetHeader("User-Agent", c.userAgent)
	if c.timeout > 0 {
		c.rc.SetTimeout(c.timeout)
	}
	if c.retries > 0 {
		c.rc.SetRetryCount(c.retries).AddRetryCondition(retryable)
	}
	if c.proxy != "" {
		c.rc.SetProxy(c.proxy)
	}

	return c
}

// Fetch implements Fetcher.
func (c *Client) Fetch(ctx context.Context, url string) (string, error) {
	start := time.Now()

	resp, err := c.rc.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return "", &NetworkError{URL: url, Err: err}
	}

	c.logger.Debug("fetched page",
		"url", url,
		"status", resp.StatusCode(),
		"bytes", len(resp.Body()),
		"elapsed", time.Since(start),
	)

	if resp.IsError() {
		return "", &NetworkError{
			URL:        url,
			StatusCode: resp.StatusCode(),
			Err:        fmt.Errorf("unexpected status %q", resp.Status()),
		}
	}

	body := resp.String()
	if body == "" {
		return "", &NetworkError{URL: url, StatusCode: resp.StatusCode(), Err: ErrEmptyBody}
	}

	return body, nil
}

// retryable reports whether a request is worth another attempt: transport
// failures, 429 and 5xx responses.
func retryable(r *resty.Response, err error) bool {
	if err != nil {
		return true
	}
	return r.StatusCode() == http.StatusTooManyRequests || r.StatusCode() >= http.StatusInternalServerError
}

// restyLogger forwards resty's internal messages to slog.
type restyLogger struct {
	logger *slog.Logger
}

func (l restyLogger) Errorf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...), "component", "resty")
}

func (l restyLogger) Warnf(format string, v ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, v...), "component", "resty")
}

func (l restyLogger) Debugf(format string, v ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, v...), "component", "resty")
}
