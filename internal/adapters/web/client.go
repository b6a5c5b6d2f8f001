// Package web talks to the sites bookmarks point at: it checks that links
// answer and discovers their icons. Each host gets its own circuit breaker so
// one dead server does not stall a whole iteration on timeouts.
package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

const (
	defaultUserAgent = "bookmarked/1.0 (+link checker)"

	// consecutive failures before a host is skipped
	tripAfter = 3
)

// ErrHostUnavailable is returned without contacting a host whose breaker is open
var ErrHostUnavailable = errors.New("host unavailable")

// StatusError is a response the server answered with an error code
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return e.Status
}

// Client issues requests through a per-host circuit breaker
type Client struct {
	http        *http.Client
	logger      *zap.Logger
	userAgent   string
	openTimeout time.Duration

	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the client logger
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithUserAgent overrides the User-Agent header
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithBreakerTimeout sets how long a tripped host is skipped before it is tried again
func WithBreakerTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.openTimeout = d
	}
}

// NewClient creates a client. Request deadlines come from the caller's context.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http:        &http.Client{},
		logger:      zap.NewNop(),
		userAgent:   defaultUserAgent,
		openTimeout: 60 * time.Second,
		breakers:    make(map[string]*gobreaker.CircuitBreaker),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) breaker(host string) *gobreaker.CircuitBreaker {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cb, ok := c.breakers[host]; ok {
		return cb
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        host,
		MaxRequests: 1,
		Timeout:     c.openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= tripAfter
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Info("host breaker state changed",
				zap.String("host", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
		// Client errors mean the server is up
		IsSuccessful: func(err error) bool {
			var se *StatusError
			if errors.As(err, &se) {
				return se.Code < 500
			}
			return err == nil || errors.Is(err, context.Canceled)
		},
	})
	c.breakers[host] = cb
	return cb
}

// response is what survives of a request once its body is closed
type response struct {
	code   int
	status string
	url    *url.URL
	body   []byte
}

// do sends one request through the host's breaker. With a positive limit the
// body of a successful response is kept, up to limit bytes.
func (c *Client) do(ctx context.Context, method, rawURL string, limit int64) (*response, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid url %q: no host", rawURL)
	}

	out, err := c.breaker(u.Host).Execute(func() (any, error) {
		return c.send(ctx, method, u, limit)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%s: %w", u.Host, ErrHostUnavailable)
	}
	resp, _ := out.(*response)
	return resp, err
}

func (c *Client) send(ctx context.Context, method string, u *url.URL, limit int64) (*response, error) {
	req, err := http.NewRequestWithContext(ctx, method, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("request failed", zap.String("method", method), zap.String("url", u.String()), zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	r := &response{code: resp.StatusCode, status: resp.Status, url: resp.Request.URL}
	if limit > 0 && resp.StatusCode < 300 {
		r.body, err = readLimited(resp.Body, limit)
		if err != nil {
			return nil, fmt.Errorf("failed to read body: %w", err)
		}
	}

	c.logger.Debug("request done",
		zap.String("method", method),
		zap.String("url", u.String()),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)),
	)
	if resp.StatusCode >= 400 {
		return r, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}
	return r, nil
}

func readLimited(r io.Reader, limit int64) ([]byte, error) {
	return io.ReadAll(io.LimitReader(r, limit))
}
