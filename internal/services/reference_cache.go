package services

import (
	"time"

	"airport-booking/skyport/internal/common"
	"airport-booking/skyport/internal/logging"
	"airport-booking/skyport/internal/metrics"
)

// ListCache keeps whole reference lists (airports, airplane types, crew) under one key each.
// A nil *ListCache or nil cache disables caching.
type ListCache struct {
	cache   common.CacheInterface
	ttl     time.Duration
	metrics *metrics.MetricsRegistry
}

func NewListCache(cache common.CacheInterface, ttl time.Duration, m *metrics.MetricsRegistry) *ListCache {
	return &ListCache{cache: cache, ttl: ttl, metrics: m}
}

func (lc *ListCache) enabled() bool {
	return lc != nil && lc.cache != nil
}

func (lc *ListCache) invalidate(keys ...string) {
	if !lc.enabled() {
		return
	}
	for _, key := range keys {
		lc.cache.Delete(key)
	}
}

func (lc *ListCache) record(key string, hit bool) {
	if lc.metrics == nil {
		return
	}
	if hit {
		lc.metrics.CacheHitsTotal.WithLabelValues(key).Inc()
	} else {
		lc.metrics.CacheMissesTotal.WithLabelValues(key).Inc()
	}
}

// cachedList returns the full list under key, loading it on a miss
func cachedList[T any](lc *ListCache, key string, load func() ([]T, error)) ([]T, error) {
	if !lc.enabled() {
		return load()
	}

	items, hit, err := common.GetOrLoadJSON(lc.cache, key, lc.ttl, load)
	if err != nil {
		return nil, err
	}
	lc.record(key, hit)
	if hit {
		logging.Debug("Reference list served from cache", "key", key)
	}
	return items, nil
}
