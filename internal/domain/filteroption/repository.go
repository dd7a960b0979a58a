package filteroption

import "context"

// Repository reads the persisted filter options.
type Repository interface {
	List(ctx context.Context) ([]Option, error)
}

// CacheKey names the cache entry holding the filter options.
const CacheKey = "weekly_filter_options"
