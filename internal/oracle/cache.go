// Package oracle provides caching for simulation results.
package oracle

import (
	"fmt"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/yourusername/lineup-lab/internal/metrics"
	"github.com/yourusername/lineup-lab/internal/models"
	"github.com/yourusername/lineup-lab/internal/simulation"
)

// CacheKey identifies a batch submission: the ordered player ids of every
// config plus the game count. Two batches with the same configs in the same
// order and the same game count are interchangeable.
type CacheKey struct {
	BatchKey string
	NumGames int
}

// String returns string representation of cache key
func (k CacheKey) String() string {
	return fmt.Sprintf("%s@%d", k.BatchKey, k.NumGames)
}

// NewCacheKey derives the key for a batch of configs. Baselines are keyed on
// the canonical player set (their order is oracle-determined); user configs
// are keyed on the exact batting order.
func NewCacheKey(configs []models.SimulationConfig, numGames int) CacheKey {
	key := ""
	for _, cfg := range configs {
		if key != "" {
			key += "|"
		}
		if cfg.IsBaseline {
			key += "b:" + simulation.CanonicalKey(cfg.PlayerIDs)
		} else {
			key += orderKey(cfg.PlayerIDs)
		}
	}
	return CacheKey{BatchKey: key, NumGames: numGames}
}

// ResultCache provides in-memory caching for oracle batch results
type ResultCache struct {
	cache     *cache.Cache
	ttl       time.Duration
	maxSize   int
	hitCount  uint64
	missCount uint64
}

// NewResultCache creates a new simulation result cache
func NewResultCache(ttl time.Duration, maxSize int) *ResultCache {
	return &ResultCache{
		cache:   cache.New(ttl, ttl*2),
		ttl:     ttl,
		maxSize: maxSize,
	}
}

// Get retrieves cached batch results, or nil on a miss.
func (rc *ResultCache) Get(key CacheKey) []models.SimulationResult {
	if found, ok := rc.cache.Get(key.String()); ok {
		if results, ok := found.([]models.SimulationResult); ok {
			rc.hitCount++
			rc.updateMetrics()
			return results
		}
	}

	rc.missCount++
	rc.updateMetrics()
	return nil
}

// Set stores batch results unless the cache is full.
func (rc *ResultCache) Set(key CacheKey, results []models.SimulationResult) {
	if rc.cache.ItemCount() >= rc.maxSize {
		return
	}
	rc.cache.Set(key.String(), results, rc.ttl)
}

// Clear removes all cached results and resets counters.
func (rc *ResultCache) Clear() {
	rc.cache.Flush()
	rc.hitCount = 0
	rc.missCount = 0
}

// Stats returns hit and miss counts.
func (rc *ResultCache) Stats() (hits, misses uint64) {
	return rc.hitCount, rc.missCount
}

func (rc *ResultCache) updateMetrics() {
	total := rc.hitCount + rc.missCount
	if total == 0 {
		return
	}
	metrics.OracleCacheHitRatio.Set(float64(rc.hitCount) / float64(total))
}

func orderKey(ids []int64) string {
	key := ""
	for i, id := range ids {
		if i > 0 {
			key += "-"
		}
		key += fmt.Sprintf("%d", id)
	}
	return key
}
