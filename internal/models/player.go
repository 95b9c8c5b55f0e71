package models

// Player represents a roster player snapshot fetched from the roster source.
// Stats are season aggregates; BattingOrder is only meaningful inside a
// lineup context and is recomputed by the sequencer, never hand-edited.
type Player struct {
	ID           int64   `db:"id" json:"id" validate:"required,gt=0"`
	Name         string  `db:"name" json:"name" validate:"required"`
	Team         string  `db:"team" json:"team,omitempty"`
	Position     string  `db:"position" json:"position"`
	AVG          float64 `db:"avg" json:"avg" validate:"gte=0,lte=1.5"`
	OBP          float64 `db:"obp" json:"obp" validate:"gte=0,lte=1.5"`
	OPS          float64 `db:"ops" json:"ops" validate:"gte=0,lte=3"`
	BattingOrder int     `db:"batting_order" json:"batting_order,omitempty"`
}

// HasBattingOrder reports whether the player has been assigned a slot.
func (p *Player) HasBattingOrder() bool {
	return p.BattingOrder >= 1
}
