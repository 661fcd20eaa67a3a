// Package cache provides an in-process LRU cache with deduplicated loading.
//
// It backs pando's compiled-resource cache: compiled simplates are closures,
// so they live in process memory only. GetOrSet guarantees that concurrent
// misses for the same key run the loader once and share its result.
//
//	c := cache.NewMemory[*Resource](cache.WithMaxEntries(1024))
//	res, err := c.GetOrSet(ctx, key, func(ctx context.Context) (*Resource, error) {
//	    return compile(ctx, key)
//	})
package cache
