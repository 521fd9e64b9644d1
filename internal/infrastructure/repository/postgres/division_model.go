package postgres

import "time"

type divisionTableModel struct {
	Key       string    `db:"key"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

type matchupTableModel struct {
	MatchupOrder int    `db:"matchup_order"`
	RedKey       string `db:"red_division_key"`
	BlueKey      string `db:"blue_division_key"`
}
