package riotapi

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// InvalidParameterError is returned when a caller supplied value cannot be used
// to build a request. It is never retried.
type InvalidParameterError struct {
	Param  string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %q: %s", e.Param, e.Reason)
}

// NetworkError wraps a transport failure (dial, TLS, timeout).
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error calling %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// UpstreamError represents a non-429 error status returned by the Riot API or a CDN.
type UpstreamError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *UpstreamError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("Riot API error (status %d) for %s", e.StatusCode, e.URL)
	}
	return fmt.Sprintf("Riot API error (status %d) for %s: %s", e.StatusCode, e.URL, e.Body)
}

// NotFound reports whether the upstream answered 404.
func (e *UpstreamError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// RateLimitExceededError is returned when the upstream still rejects a call
// after the single retry that honors its Retry-After header.
type RateLimitExceededError struct {
	URL        string
	RetryAfter time.Duration
	LimitType  string
}

func (e *RateLimitExceededError) Error() string {
	if e.LimitType != "" {
		return fmt.Sprintf("rate limit exceeded (%s) for %s, retry after %s", e.LimitType, e.URL, e.RetryAfter)
	}
	return fmt.Sprintf("rate limit exceeded for %s, retry after %s", e.URL, e.RetryAfter)
}

// IsRateLimitError checks if the error is a rate limit error.
func IsRateLimitError(err error) bool {
	var rateErr *RateLimitExceededError
	return errors.As(err, &rateErr)
}

// IsNotFound checks if the error is an upstream 404.
func IsNotFound(err error) bool {
	var upErr *UpstreamError
	return errors.As(err, &upErr) && upErr.NotFound()
}
