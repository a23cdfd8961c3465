// Package progress stores the last known progress of every course in the
// local SQLite cache so that it can be shown while the backend is
// unreachable.
package progress
