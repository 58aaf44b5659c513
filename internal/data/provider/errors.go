package provider

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/penwyp/go-feed-digest/internal/core/constants"
)

var (
	// ErrRateLimited matches provider failures caused by rate limiting.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrMalformedResponse marks a response body that could not be decoded.
	ErrMalformedResponse = errors.New("malformed provider response")

	// ErrNoTimeZone is returned when the account has no timezone configured.
	ErrNoTimeZone = errors.New("time zone not available for account")
)

// APIErrorDetail is one entry of an API error payload.
type APIErrorDetail struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// APIError is a non-2xx response from the timeline API.
type APIError struct {
	StatusCode int
	Errors     []APIErrorDetail
}

func (e *APIError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("timeline API returned status %d", e.StatusCode)
	}
	parts := make([]string, 0, len(e.Errors))
	for _, d := range e.Errors {
		parts = append(parts, fmt.Sprintf("%d: %s", d.Code, d.Message))
	}
	return fmt.Sprintf("timeline API returned status %d: %s", e.StatusCode, strings.Join(parts, "; "))
}

// RateLimited reports whether the response signals an exceeded rate limit.
func (e *APIError) RateLimited() bool {
	if e.StatusCode == http.StatusTooManyRequests {
		return true
	}
	for _, d := range e.Errors {
		if d.Code == constants.RateLimitExceededCode {
			return true
		}
	}
	return false
}

func (e *APIError) Is(target error) bool {
	return target == ErrRateLimited && e.RateLimited()
}

// IsRateLimited reports whether err is, or wraps, a rate limit failure.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}
