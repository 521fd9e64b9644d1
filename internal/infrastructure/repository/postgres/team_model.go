package postgres

import "time"

type teamTableModel struct {
	Key         string    `db:"key"`
	Number      int       `db:"number"`
	Name        string    `db:"name"`
	City        string    `db:"city"`
	StateProv   string    `db:"state_prov"`
	Country     string    `db:"country"`
	RookieYear  int       `db:"rookie_year"`
	Website     string    `db:"website"`
	DivisionKey string    `db:"division_key"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type teamInsertModel struct {
	Key         string `db:"key"`
	Number      int    `db:"number"`
	Name        string `db:"name"`
	City        string `db:"city"`
	StateProv   string `db:"state_prov"`
	Country     string `db:"country"`
	RookieYear  int    `db:"rookie_year"`
	Website     string `db:"website"`
	DivisionKey string `db:"division_key"`
}
