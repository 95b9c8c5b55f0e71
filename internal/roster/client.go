package roster

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/lineup-lab/internal/config"
	"github.com/yourusername/lineup-lab/internal/models"
)

// Client fetches rosters from the roster source API.
type Client struct {
	http       *RateLimitedHTTPClient
	baseURL    string
	apiKey     string
	normalizer *Normalizer
	logger     *logrus.Logger
}

// NewClient creates a roster client from configuration.
func NewClient(cfg *config.RosterConfig, logger *logrus.Logger) *Client {
	httpCfg := DefaultHTTPClientConfig()
	httpCfg.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	httpCfg.MaxRetries = cfg.MaxRetries
	httpCfg.RateLimit = cfg.RateLimitPerSecond

	return &Client{
		http:       NewRateLimitedHTTPClient(httpCfg, logger),
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		normalizer: NewNormalizer(logger),
		logger:     logger,
	}
}

// rosterResponse is the raw roster payload from the source API.
type rosterResponse struct {
	TeamID  string      `json:"team_id"`
	Players []rawPlayer `json:"players"`
}

// FetchRoster retrieves and normalizes the roster for a team. Players that
// fail normalization are skipped, never propagated as untyped records.
func (c *Client) FetchRoster(ctx context.Context, teamID string) ([]models.Player, error) {
	url := fmt.Sprintf("%s/api/v1/teams/%s/roster", c.baseURL, teamID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch roster for team %s: %w", teamID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("roster request for team %s failed with status %d", teamID, resp.StatusCode)
	}

	var payload rosterResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode roster response: %w", err)
	}

	players := make([]models.Player, 0, len(payload.Players))
	for _, raw := range payload.Players {
		player, err := c.normalizer.NormalizePlayer(raw)
		if err != nil {
			c.logger.WithFields(logrus.Fields{
				"team_id":   teamID,
				"player_id": raw.ID,
			}).WithError(err).Warn("Skipping malformed roster record")
			continue
		}
		players = append(players, player)
	}

	c.logger.WithFields(logrus.Fields{
		"team_id": teamID,
		"players": len(players),
		"skipped": len(payload.Players) - len(players),
	}).Debug("Roster fetched")

	return players, nil
}
