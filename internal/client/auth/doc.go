// Package auth owns the bearer credential of an API client.
//
// TokenSource moves between three states: EMPTY, REFRESHING and CACHED.
// Concurrent Token calls that find no cached credential share a single
// Provider call; its result or error is delivered to every waiter. Expiry is
// never tracked locally: callers Invalidate the credential after the backend
// rejects it and ask for a new one.
package auth
