// Package transport sends one logical HTTP call with a per-attempt deadline
// and a bounded, fixed-delay retry on 5xx, 429, network errors and timeouts.
//
// Other 4xx responses are returned untouched so that callers can react to
// them (for example by re-authenticating on 401).
package transport
