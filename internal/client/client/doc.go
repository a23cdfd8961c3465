// Package client talks to the learnkit backend over HTTP/JSON.
//
// # Overview
//
// The package provides:
//  1. The Client interface: maps, courses, step completion and verification,
//     progress, wallet linking and NFT vouchers.
//  2. HTTPClient, the implementation. Every call carries the static API key,
//     a bearer credential from an auth.TokenSource and a fresh X-Request-Id.
//     Transient failures (5xx, 429, network errors, timeouts) are retried by
//     the transport package. A 401 invalidates the credential, fetches a new
//     one and re-sends the request exactly once.
//
// # Error Handling
//
// Missing arguments fail with ErrValidation before any request is made.
// Every backend failure is an *apierr.Error; use apierr.IsAuthError,
// apierr.IsRetryable and apierr.IsNotFound to decide what to do next.
// GetCourseProgress is the only call that turns NOT_FOUND into a nil result.
//
// # Concurrency
//
// HTTPClient is safe for concurrent use. Concurrent calls that need a new
// credential share a single provider call.
package client
