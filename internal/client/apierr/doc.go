// Package apierr classifies every failure the learnkit backend can produce
// into a closed set of kinds.
//
// Classification happens once, at the transport boundary: HTTP status plus
// the optional "type" hint of the error body select the Kind, and a network
// or timeout failure (no HTTP response at all) is recorded with status 0.
// Callers decide what to do with an error through the two predicates
// IsAuthError and IsRetryable; no other package re-derives the mapping.
//
// Errors may be wrapped freely; the package-level helpers use errors.As:
//
//	if apierr.IsNotFound(err) {
//	    // course was never started
//	}
package apierr
