// Package oracle provides the HTTP client for the run-simulation oracle.
package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/lineup-lab/internal/config"
	"github.com/yourusername/lineup-lab/internal/metrics"
	"github.com/yourusername/lineup-lab/internal/models"
)

// BatchRunner is the oracle surface the rest of the system depends on.
type BatchRunner interface {
	RunBatch(ctx context.Context, configs []models.SimulationConfig, numGames int) ([]models.SimulationResult, error)
}

// Client provides an HTTP client for the simulation oracle
type Client struct {
	client  *http.Client
	baseURL string
	apiKey  string
	logger  *logrus.Logger
}

// NewClient creates a new oracle client
func NewClient(cfg *config.OracleConfig, logger *logrus.Logger) *Client {
	return &Client{
		client: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeoutSeconds) * time.Second,
		},
		baseURL: cfg.HTTPAddress,
		apiKey:  cfg.APIKey,
		logger:  logger,
	}
}

// batchRequest is the simulation batch payload
type batchRequest struct {
	Configs  []models.SimulationConfig `json:"configs"`
	NumGames int                       `json:"num_games"`
}

// batchResponse is the oracle's batch response
type batchResponse struct {
	Results []models.SimulationResult `json:"results"`
}

// RunBatch submits one batch of simulation configs and returns one result
// per config, correlated by config id. The batch succeeds or fails as a
// unit; no partial results are returned.
func (c *Client) RunBatch(ctx context.Context, configs []models.SimulationConfig, numGames int) ([]models.SimulationResult, error) {
	if len(configs) == 0 {
		return nil, ErrEmptyBatch
	}

	start := time.Now()
	defer func() {
		metrics.OracleRequestDuration.WithLabelValues("run_batch").Observe(time.Since(start).Seconds())
	}()

	body, err := json.Marshal(batchRequest{Configs: configs, NumGames: numGames})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal batch request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/simulations", bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		metrics.OracleErrorsTotal.WithLabelValues("run_batch", "network").Inc()
		c.logger.WithError(err).Error("Failed to reach simulation oracle")
		return nil, fmt.Errorf("%w: %v", ErrOracleUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		metrics.OracleErrorsTotal.WithLabelValues("run_batch", "http_error").Inc()
		return nil, fmt.Errorf("%w: status %d: %s", ErrBatchRejected, resp.StatusCode, string(raw))
	}

	var batchResp batchResponse
	if err := json.NewDecoder(resp.Body).Decode(&batchResp); err != nil {
		metrics.OracleErrorsTotal.WithLabelValues("run_batch", "decode").Inc()
		return nil, fmt.Errorf("failed to decode oracle response: %w", err)
	}

	if err := correlate(configs, batchResp.Results); err != nil {
		metrics.OracleErrorsTotal.WithLabelValues("run_batch", "mismatch").Inc()
		return nil, err
	}

	c.logger.WithFields(logrus.Fields{
		"configs":   len(configs),
		"num_games": numGames,
		"duration":  time.Since(start),
	}).Info("Simulation batch completed")

	return batchResp.Results, nil
}

// HealthCheck checks oracle service health
func (c *Client) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOracleUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrOracleUnavailable, resp.StatusCode)
	}

	return nil
}

// correlate verifies every submitted config has exactly one result.
func correlate(configs []models.SimulationConfig, results []models.SimulationResult) error {
	if len(results) != len(configs) {
		return fmt.Errorf("%w: %d configs, %d results", ErrResultMismatch, len(configs), len(results))
	}

	byID := make(map[string]bool, len(results))
	for _, r := range results {
		byID[r.ConfigID] = true
	}
	for _, cfg := range configs {
		if !byID[cfg.ID] {
			return fmt.Errorf("%w: missing result for config %s", ErrResultMismatch, cfg.ID)
		}
	}
	return nil
}
