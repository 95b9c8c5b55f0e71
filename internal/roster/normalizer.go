package roster

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/lineup-lab/internal/models"
)

// Stat bounds. Rate stats live in [0, 1.5]; OPS can exceed 1 but anything
// past 3 is a feed error.
var (
	maxRateStat = decimal.NewFromFloat(1.5)
	maxOPSStat  = decimal.NewFromInt(3)
)

// rawPlayer is a roster record as the source API sends it. Stats arrive as
// strings in several formats (".312", "0.312", "", "-").
type rawPlayer struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Team     string `json:"team"`
	Position string `json:"position"`
	AVG      string `json:"avg"`
	OBP      string `json:"obp"`
	OPS      string `json:"ops"`
}

// Normalizer validates and coerces raw roster records into typed players.
type Normalizer struct {
	logger *logrus.Logger
}

// NewNormalizer creates a new roster normalizer.
func NewNormalizer(logger *logrus.Logger) *Normalizer {
	return &Normalizer{logger: logger}
}

// NormalizePlayer converts a raw record into a models.Player. Identity
// fields are required; malformed stat strings coerce to 0 with a warning,
// out-of-range values reject the record.
func (n *Normalizer) NormalizePlayer(raw rawPlayer) (models.Player, error) {
	if raw.ID <= 0 {
		return models.Player{}, fmt.Errorf("invalid player id %d", raw.ID)
	}
	if strings.TrimSpace(raw.Name) == "" {
		return models.Player{}, fmt.Errorf("player %d has no name", raw.ID)
	}

	avg, err := n.normalizeStat(raw.ID, "avg", raw.AVG, maxRateStat)
	if err != nil {
		return models.Player{}, err
	}
	obp, err := n.normalizeStat(raw.ID, "obp", raw.OBP, maxRateStat)
	if err != nil {
		return models.Player{}, err
	}
	ops, err := n.normalizeStat(raw.ID, "ops", raw.OPS, maxOPSStat)
	if err != nil {
		return models.Player{}, err
	}

	return models.Player{
		ID:       raw.ID,
		Name:     strings.TrimSpace(raw.Name),
		Team:     strings.TrimSpace(raw.Team),
		Position: strings.ToUpper(strings.TrimSpace(raw.Position)),
		AVG:      avg,
		OBP:      obp,
		OPS:      ops,
	}, nil
}

// normalizeStat parses a stat string to a float. Empty and "-" mean the stat
// is unavailable and coerce to 0; unparseable strings coerce to 0 with a
// warning; negative or out-of-range values are rejected.
func (n *Normalizer) normalizeStat(playerID int64, name, value string, max decimal.Decimal) (float64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || trimmed == "-" || trimmed == "—" {
		return 0, nil
	}

	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		n.logger.WithFields(logrus.Fields{
			"player_id": playerID,
			"stat":      name,
			"value":     value,
		}).Warn("Unparseable stat value, coercing to 0")
		return 0, nil
	}

	if d.IsNegative() {
		return 0, fmt.Errorf("player %d has negative %s %s", playerID, name, trimmed)
	}
	if d.GreaterThan(max) {
		return 0, fmt.Errorf("player %d has out-of-range %s %s", playerID, name, trimmed)
	}

	f, _ := d.Float64()
	return f, nil
}
