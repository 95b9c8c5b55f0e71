package oracle

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/lineup-lab/internal/models"
)

// CachedClient wraps a BatchRunner with result caching. Identical batches
// (same configs in the same order, same game count) are served from memory.
type CachedClient struct {
	client BatchRunner
	cache  *ResultCache
	logger *logrus.Logger
}

// NewCachedClient creates a caching wrapper around an oracle client.
func NewCachedClient(client BatchRunner, cache *ResultCache, logger *logrus.Logger) *CachedClient {
	return &CachedClient{
		client: client,
		cache:  cache,
		logger: logger,
	}
}

// RunBatch returns cached results when the batch has been simulated before,
// otherwise delegates to the underlying client. Cached results are aligned
// positionally, so config ids are rewritten to the caller's ids.
func (c *CachedClient) RunBatch(ctx context.Context, configs []models.SimulationConfig, numGames int) ([]models.SimulationResult, error) {
	if len(configs) == 0 {
		return nil, ErrEmptyBatch
	}

	key := NewCacheKey(configs, numGames)

	if cached := c.cache.Get(key); cached != nil && len(cached) == len(configs) {
		c.logger.WithField("batch_key", key.BatchKey).Debug("Serving simulation batch from cache")
		results := make([]models.SimulationResult, len(cached))
		copy(results, cached)
		for i := range results {
			results[i].ConfigID = configs[i].ID
		}
		return results, nil
	}

	results, err := c.client.RunBatch(ctx, configs, numGames)
	if err != nil {
		return nil, err
	}

	c.cache.Set(key, alignToConfigs(configs, results))
	return results, nil
}

// ClearCache drops all cached batches, e.g. on lineup switch.
func (c *CachedClient) ClearCache() {
	c.cache.Clear()
}

// alignToConfigs orders results to match the config order so cached entries
// can be re-correlated positionally.
func alignToConfigs(configs []models.SimulationConfig, results []models.SimulationResult) []models.SimulationResult {
	byID := make(map[string]models.SimulationResult, len(results))
	for _, r := range results {
		byID[r.ConfigID] = r
	}
	aligned := make([]models.SimulationResult, len(configs))
	for i, cfg := range configs {
		aligned[i] = byID[cfg.ID]
	}
	return aligned
}
