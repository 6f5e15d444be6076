package domain

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
}

type (
	// NotFoundError indicates a document was not found
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input
	ValidationError struct {
		Message string
	}
)

func (e *NotFoundError) Error() string   { return e.Message }
func (e *ValidationError) Error() string { return e.Message }

func (e *NotFoundError) StatusCode() int   { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int { return http.StatusBadRequest }

func (e *NotFoundError) Is(target error) bool   { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound    = errors.New("not found")
	ErrValidation  = errors.New("validation failed")
	ErrRateLimited = errors.New("too many attempts")
	ErrUnavailable = errors.New("content store unavailable")
)

// TooManyRequestsError reports a throttled action and when it may be retried.
type TooManyRequestsError struct {
	Key        string
	RetryAfter time.Duration
}

// Error implements the error interface
func (e *TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many attempts, retry in %s", e.RetryAfter.Round(time.Second))
}

// StatusCode implements the HTTPError interface
func (e *TooManyRequestsError) StatusCode() int {
	return http.StatusTooManyRequests
}

// Is allows errors.Is() to match against ErrRateLimited
func (e *TooManyRequestsError) Is(target error) bool {
	return target == ErrRateLimited
}
