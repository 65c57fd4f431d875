package common

import "time"

// Default TTLs for the cache tables. Metadata moves slowly; history
// must pick up intraday bars quickly.
const (
	FreshnessMetadata = 5 * time.Minute
	FreshnessHistory  = 1 * time.Minute
)

// IsFresh returns true if the given timestamp is within the TTL
func IsFresh(updated time.Time, ttl time.Duration) bool {
	if updated.IsZero() {
		return false
	}
	return time.Since(updated) < ttl
}

// IsFreshAt is IsFresh against an explicit clock reading.
func IsFreshAt(updated time.Time, ttl time.Duration, now time.Time) bool {
	if updated.IsZero() {
		return false
	}
	return now.Sub(updated) < ttl
}
