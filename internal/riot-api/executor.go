package riotapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
	"github.com/tristan-derez/league-stats/internal/metrics"
)

// Do builds the request URL, waits for admission, issues the call and decodes
// the JSON body into out.
//
// A 429 is retried exactly once after the upstream-declared delay. Connection
// failures are retried with exponential backoff. Any other error status is
// returned as *UpstreamError.
func (c *Client) Do(ctx context.Context, r Request, out any) error {
	endpoint, err := r.URL(c.host)
	if err != nil {
		return err
	}
	limiter := c.Limiter(r.Region)

	resp, err := c.send(ctx, limiter, endpoint)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		retryAfter := c.parseRetryAfter(resp)
		limitType := resp.Header.Get("X-Rate-Limit-Type")
		drain(resp)

		c.logger.WithFields(logrus.Fields{
			"group":       r.Region,
			"url":         endpoint,
			"retry_after": retryAfter.String(),
			"limit_type":  limitType,
		}).Warn("Rate limited by upstream, retrying once")
		limiter.Penalize(retryAfter)

		resp, err = c.send(ctx, limiter, endpoint)
		if err != nil {
			return err
		}
		if resp.StatusCode == http.StatusTooManyRequests {
			retryAfter = c.parseRetryAfter(resp)
			limiter.Penalize(retryAfter)
			drain(resp)
			return &RateLimitExceededError{
				URL:        endpoint,
				RetryAfter: retryAfter,
				LimitType:  resp.Header.Get("X-Rate-Limit-Type"),
			}
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return &UpstreamError{
			StatusCode: resp.StatusCode,
			URL:        endpoint,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}
	return nil
}

// send waits for the limiter and performs one HTTP call, retrying transport
// failures. Every attempt consumes budget.
func (c *Client) send(ctx context.Context, limiter *WindowLimiter, endpoint string) (*http.Response, error) {
	strategy := backoff.NewExponentialBackOff()
	strategy.InitialInterval = 200 * time.Millisecond
	strategy.MaxInterval = 5 * time.Second
	strategy.MaxElapsedTime = c.maxNetworkElapsed

	operation := func() (*http.Response, error) {
		if err := limiter.Wait(ctx); err != nil {
			return nil, backoff.Permanent(err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, backoff.Permanent(fmt.Errorf("error creating request: %w", err))
		}
		req.Header.Set("X-Riot-Token", c.apiKey)
		req.Header.Set("Accept", "application/json")

		start := time.Now()
		resp, err := c.httpClient.Do(req)
		metrics.UpstreamLatency.WithLabelValues(limiter.group).Observe(float64(time.Since(start).Milliseconds()))
		if err != nil {
			metrics.RiotRequestsTotal.WithLabelValues(limiter.group, "network_error").Inc()
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, backoff.Permanent(ctxErr)
			}
			return nil, &NetworkError{URL: endpoint, Err: err}
		}
		metrics.RiotRequestsTotal.WithLabelValues(limiter.group, outcome(resp.StatusCode)).Inc()
		return resp, nil
	}

	notify := func(err error, wait time.Duration) {
		c.logger.WithFields(logrus.Fields{
			"url":  endpoint,
			"wait": wait.String(),
		}).Warnf("Network error, retrying: %v", err)
	}

	resp, err := backoff.RetryNotifyWithData(operation, backoff.WithContext(strategy, ctx), notify)
	if err != nil {
		var netErr *NetworkError
		if errors.As(err, &netErr) {
			return nil, netErr
		}
		return nil, err
	}
	return resp, nil
}

// parseRetryAfter reads Retry-After as seconds or an HTTP date.
func (c *Client) parseRetryAfter(resp *http.Response) time.Duration {
	val := strings.TrimSpace(resp.Header.Get("Retry-After"))
	if val == "" {
		return c.defaultRetryAfter
	}
	if seconds, err := strconv.Atoi(val); err == nil && seconds >= 0 {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(val); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
		return 0
	}
	return c.defaultRetryAfter
}

func outcome(status int) string {
	switch {
	case status == http.StatusTooManyRequests:
		return "rate_limited"
	case status >= 500:
		return "server_error"
	case status >= 400:
		return "client_error"
	default:
		return "ok"
	}
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
	resp.Body.Close()
}
