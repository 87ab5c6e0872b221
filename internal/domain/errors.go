package domain

import "errors"

var (
	// ErrProviderFailure is returned when a nutrition provider request fails
	// at the transport level or answers with a non-success status
	ErrProviderFailure = errors.New("nutrition provider request failed")

	// ErrMalformedResponse is returned when the provider body cannot be decoded
	ErrMalformedResponse = errors.New("malformed provider response")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
