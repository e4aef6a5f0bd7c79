package cache

// Stats holds cache statistics for monitoring.
type Stats struct {
	// Len is the current number of cached entries.
	Len int

	// Hits is the number of lookups that found an entry.
	Hits uint64

	// Misses is the number of lookups that created (or failed to
	// create) an entry.
	Misses uint64

	// HitRate is Hits / (Hits + Misses), or 0 before any lookup.
	HitRate float64
}
