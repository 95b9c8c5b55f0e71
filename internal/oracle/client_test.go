package oracle

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/lineup-lab/internal/config"
	"github.com/yourusername/lineup-lab/internal/models"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testConfigs() []models.SimulationConfig {
	return []models.SimulationConfig{
		{ID: "cfg-1", Name: "Opening Day", PlayerIDs: []int64{1, 2, 3, 4, 5, 6, 7, 8, 9}},
		{ID: "baseline-cfg-1", Name: "wOBA Baseline (Opening Day)", PlayerIDs: []int64{1, 2, 3, 4, 5, 6, 7, 8, 9}, IsBaseline: true},
	}
}

func newTestClient(serverURL string) *Client {
	return NewClient(&config.OracleConfig{
		HTTPAddress:           serverURL,
		RequestTimeoutSeconds: 5,
		CacheTTLSeconds:       60,
		CacheMaxSize:          10,
	}, quietLogger())
}

func TestRunBatchSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/simulations", r.URL.Path)

		var req batchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Configs, 2)
		require.Equal(t, 20000, req.NumGames)

		resp := batchResponse{Results: []models.SimulationResult{
			{ConfigID: "cfg-1", AvgScore: 5.2, NumGames: req.NumGames, ScoreDistribution: map[string]int{"5": 100}},
			{ConfigID: "baseline-cfg-1", AvgScore: 4.8, NumGames: req.NumGames, ScoreDistribution: map[string]int{"4": 100}},
		}}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer server.Close()

	results, err := newTestClient(server.URL).RunBatch(context.Background(), testConfigs(), 20000)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, 5.2, results[0].AvgScore)
}

func TestRunBatchEmptyBatch(t *testing.T) {
	_, err := newTestClient("http://localhost:0").RunBatch(context.Background(), nil, 20000)
	assert.ErrorIs(t, err, ErrEmptyBatch)
}

func TestRunBatchHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "simulation backend overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).RunBatch(context.Background(), testConfigs(), 20000)
	require.ErrorIs(t, err, ErrBatchRejected)
	assert.Contains(t, err.Error(), "503")
}

func TestRunBatchNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // immediately unreachable

	_, err := newTestClient(server.URL).RunBatch(context.Background(), testConfigs(), 20000)
	assert.ErrorIs(t, err, ErrOracleUnavailable)
}

func TestRunBatchCorrelationMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := batchResponse{Results: []models.SimulationResult{
			{ConfigID: "cfg-1", AvgScore: 5.2},
			{ConfigID: "unknown-config", AvgScore: 4.8},
		}}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).RunBatch(context.Background(), testConfigs(), 20000)
	assert.ErrorIs(t, err, ErrResultMismatch)
}

func TestRunBatchMissingResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := batchResponse{Results: []models.SimulationResult{{ConfigID: "cfg-1", AvgScore: 5.2}}}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).RunBatch(context.Background(), testConfigs(), 20000)
	assert.ErrorIs(t, err, ErrResultMismatch)
}

func TestHealthCheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	assert.NoError(t, newTestClient(server.URL).HealthCheck(context.Background()))
}
