package oracle

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/lineup-lab/internal/models"
)

type fakeRunner struct {
	calls   int
	results []models.SimulationResult
	err     error
}

func (f *fakeRunner) RunBatch(_ context.Context, configs []models.SimulationConfig, _ int) ([]models.SimulationResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if f.results != nil {
		return f.results, nil
	}
	out := make([]models.SimulationResult, len(configs))
	for i, cfg := range configs {
		out[i] = models.SimulationResult{ConfigID: cfg.ID, AvgScore: 4.5, NumGames: 100}
	}
	return out, nil
}

func TestCacheKeyDistinguishesOrder(t *testing.T) {
	a := []models.SimulationConfig{{ID: "a", PlayerIDs: []int64{1, 2, 3}}}
	b := []models.SimulationConfig{{ID: "b", PlayerIDs: []int64{3, 2, 1}}}

	assert.NotEqual(t, NewCacheKey(a, 100).String(), NewCacheKey(b, 100).String())
}

func TestCacheKeyBaselineIgnoresOrder(t *testing.T) {
	a := []models.SimulationConfig{{ID: "a", PlayerIDs: []int64{1, 2, 3}, IsBaseline: true}}
	b := []models.SimulationConfig{{ID: "b", PlayerIDs: []int64{3, 2, 1}, IsBaseline: true}}

	assert.Equal(t, NewCacheKey(a, 100).BatchKey, NewCacheKey(b, 100).BatchKey)
}

func TestCacheKeyIncludesGameCount(t *testing.T) {
	cfgs := []models.SimulationConfig{{ID: "a", PlayerIDs: []int64{1, 2, 3}}}
	assert.NotEqual(t, NewCacheKey(cfgs, 100).String(), NewCacheKey(cfgs, 200).String())
}

func TestResultCacheRoundTrip(t *testing.T) {
	rc := NewResultCache(time.Minute, 10)
	key := CacheKey{BatchKey: "1-2-3", NumGames: 100}

	require.Nil(t, rc.Get(key))

	stored := []models.SimulationResult{{ConfigID: "a", AvgScore: 5.0}}
	rc.Set(key, stored)

	got := rc.Get(key)
	require.NotNil(t, got)
	assert.Equal(t, 5.0, got[0].AvgScore)

	hits, misses := rc.Stats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(1), misses)
}

func TestResultCacheRespectsMaxSize(t *testing.T) {
	rc := NewResultCache(time.Minute, 1)
	rc.Set(CacheKey{BatchKey: "a", NumGames: 100}, []models.SimulationResult{{ConfigID: "a"}})
	rc.Set(CacheKey{BatchKey: "b", NumGames: 100}, []models.SimulationResult{{ConfigID: "b"}})

	assert.NotNil(t, rc.Get(CacheKey{BatchKey: "a", NumGames: 100}))
	assert.Nil(t, rc.Get(CacheKey{BatchKey: "b", NumGames: 100}))
}

func TestCachedClientServesSecondCallFromCache(t *testing.T) {
	runner := &fakeRunner{}
	cc := NewCachedClient(runner, NewResultCache(time.Minute, 10), quietLogger())
	configs := []models.SimulationConfig{{ID: "cfg-1", PlayerIDs: []int64{1, 2, 3, 4, 5, 6, 7, 8, 9}}}

	first, err := cc.RunBatch(context.Background(), configs, 20000)
	require.NoError(t, err)

	second, err := cc.RunBatch(context.Background(), configs, 20000)
	require.NoError(t, err)

	assert.Equal(t, 1, runner.calls)
	assert.Equal(t, first, second)
}

func TestCachedClientRewritesConfigIDs(t *testing.T) {
	runner := &fakeRunner{}
	cc := NewCachedClient(runner, NewResultCache(time.Minute, 10), quietLogger())

	ids := []int64{1, 2, 3, 4, 5, 6, 7, 8, 9}
	_, err := cc.RunBatch(context.Background(), []models.SimulationConfig{{ID: "old-id", PlayerIDs: ids}}, 20000)
	require.NoError(t, err)

	// Same batch resubmitted under a fresh config id
	results, err := cc.RunBatch(context.Background(), []models.SimulationConfig{{ID: "new-id", PlayerIDs: ids}}, 20000)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "new-id", results[0].ConfigID)
	assert.Equal(t, 1, runner.calls)
}

func TestCachedClientDoesNotCacheFailures(t *testing.T) {
	runner := &fakeRunner{err: ErrOracleUnavailable}
	cc := NewCachedClient(runner, NewResultCache(time.Minute, 10), quietLogger())
	configs := []models.SimulationConfig{{ID: "cfg-1", PlayerIDs: []int64{1, 2, 3}}}

	_, err := cc.RunBatch(context.Background(), configs, 20000)
	require.Error(t, err)

	runner.err = nil
	_, err = cc.RunBatch(context.Background(), configs, 20000)
	require.NoError(t, err)
	assert.Equal(t, 2, runner.calls)
}
