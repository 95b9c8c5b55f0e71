package models

// SimulationConfig is one ordered lineup submitted to the simulation oracle.
// It is ephemeral, built per run and never persisted.
type SimulationConfig struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	PlayerIDs  []int64 `json:"player_ids" validate:"len=9"`
	IsBaseline bool    `json:"is_baseline"`
}

// SimulationResult is the oracle's score-distribution summary for one config.
// ScoreDistribution maps run count (stored as a numeric string key, as the
// oracle emits it) to the number of simulated games that produced it.
type SimulationResult struct {
	ConfigID          string         `json:"config_id"`
	AvgScore          float64        `json:"avg_score"`
	MedianScore       float64        `json:"median_score"`
	StdDev            float64        `json:"std_dev"`
	NumGames          int            `json:"num_games"`
	ScoreDistribution map[string]int `json:"score_distribution"`
	Lineup            []string       `json:"lineup"`
}
