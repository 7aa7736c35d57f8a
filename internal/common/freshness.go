// Package common provides shared utilities for StockPulse
package common

import "time"

// Freshness TTLs for cached data
const (
	FreshnessProfile = 1 * time.Hour // collected profiles go stale quickly
)

// IsFresh returns true if the given timestamp is within the TTL
func IsFresh(updated time.Time, ttl time.Duration) bool {
	if updated.IsZero() {
		return false
	}
	return time.Since(updated) < ttl
}
