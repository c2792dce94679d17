package riotapi

import (
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	defaultBudget = 100
	defaultWindow = 2 * time.Minute
)

// Client talks to the Riot API. Every call goes through the window limiter of
// its routing group.
type Client struct {
	apiKey     string
	httpClient *http.Client
	region     string
	host       string
	logger     *logrus.Logger

	budget int
	window time.Duration

	maxNetworkElapsed time.Duration
	defaultRetryAfter time.Duration

	mu       sync.Mutex
	limiters map[string]*WindowLimiter
}

// Option configures a Client.
type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithHost overrides the host template, mostly for tests.
func WithHost(host string) Option {
	return func(c *Client) { c.host = host }
}

func WithLogger(l *logrus.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithBudget sets the per-group admission budget for one window.
func WithBudget(budget int, window time.Duration) Option {
	return func(c *Client) {
		c.budget = budget
		c.window = window
	}
}

// WithNetworkRetry bounds the time spent retrying connection failures.
func WithNetworkRetry(maxElapsed time.Duration) Option {
	return func(c *Client) { c.maxNetworkElapsed = maxElapsed }
}

// WithDefaultRetryAfter sets the wait used when a 429 carries no Retry-After header.
func WithDefaultRetryAfter(d time.Duration) Option {
	return func(c *Client) { c.defaultRetryAfter = d }
}

// NewClient creates and returns a new Client instance for interacting with the Riot API.
// region is the default platform routing value (euw1, na1, ...).
func NewClient(apiKey, region string, opts ...Option) *Client {
	c := &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: time.Second * 10,
		},
		region:            region,
		host:              DefaultHost,
		logger:            logrus.StandardLogger(),
		budget:            defaultBudget,
		window:            defaultWindow,
		maxNetworkElapsed: 30 * time.Second,
		defaultRetryAfter: time.Second,
		limiters:          make(map[string]*WindowLimiter),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Region returns the default platform routing value.
func (c *Client) Region() string {
	return c.region
}

// Limiter returns the limiter of a routing group, creating it on first use.
func (c *Client) Limiter(group string) *WindowLimiter {
	c.mu.Lock()
	defer c.mu.Unlock()

	l, ok := c.limiters[group]
	if !ok {
		l = NewWindowLimiter(group, c.budget, c.window)
		c.limiters[group] = l
	}
	return l
}

// LimiterStats returns a snapshot of every limiter created so far.
func (c *Client) LimiterStats() []LimiterStats {
	c.mu.Lock()
	limiters := make([]*WindowLimiter, 0, len(c.limiters))
	for _, l := range c.limiters {
		limiters = append(limiters, l)
	}
	c.mu.Unlock()

	stats := make([]LimiterStats, 0, len(limiters))
	for _, l := range limiters {
		stats = append(stats, l.Stats())
	}
	return stats
}

// Close stops the rollover timers.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, l := range c.limiters {
		l.Stop()
	}
}
