package models

// Winner values for a comparison between a user lineup and its baseline.
const (
	WinnerUser     = "user"
	WinnerBaseline = "baseline"
	WinnerTie      = "tie"
)

// ComparisonResult compares a user lineup's simulation against the wOBA
// baseline run over the same players.
type ComparisonResult struct {
	UserLineup     SimulationResult `json:"user_lineup"`
	BaselineLineup SimulationResult `json:"baseline_lineup"`
	Winner         string           `json:"winner"`
	Difference     float64          `json:"difference"`
	Histogram      []HistogramRow   `json:"histogram"`
}

// HistogramRow is one merged distribution row, keyed by runs scored in a
// game. Used for display overlays, never for winner determination.
type HistogramRow struct {
	Score    int `json:"score"`
	User     int `json:"user"`
	Baseline int `json:"baseline"`
}
