package yahoo

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrAuthentication    = errors.New("yahoo: authentication failed")
	ErrConnection        = errors.New("yahoo: connection failed")
	ErrRateLimited       = errors.New("yahoo: rate limited")
	ErrNotFound          = errors.New("yahoo: no data")
	ErrMalformedResponse = errors.New("yahoo: malformed response")
)

const (
	msgConnectionFailed = "Yahoo Finance connection failed"
	msgMalformed        = "Yahoo Finance returned an invalid response"
)

// FetchError is the error returned by the fetch pipeline. Message is the
// caller-facing text; Kind is one of the sentinels above.
type FetchError struct {
	Kind    error
	Message string
	Status  int
	Err     error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is matches the error kind. A 429 connection failure also matches ErrRateLimited.
func (e *FetchError) Is(target error) bool {
	if target == e.Kind {
		return true
	}
	return target == ErrRateLimited && e.Kind == ErrConnection && e.Status == http.StatusTooManyRequests
}

func authExhaustedError(retries int) *FetchError {
	return &FetchError{Kind: ErrAuthentication, Message: fmt.Sprintf("Authentication failed after %d retries", retries)}
}

func connectionError(status int, err error) *FetchError {
	return &FetchError{Kind: ErrConnection, Message: msgConnectionFailed, Status: status, Err: err}
}

func notFoundError(symbol string) *FetchError {
	return &FetchError{Kind: ErrNotFound, Message: "No data was found for " + symbol}
}

func malformedError(err error) *FetchError {
	return &FetchError{Kind: ErrMalformedResponse, Message: msgMalformed, Err: err}
}
