package postgres

import "time"

type credentialTableModel struct {
	ID        int64      `db:"id"`
	Name      string     `db:"name"`
	APIKey    string     `db:"api_key"`
	BaseURL   string     `db:"base_url"`
	Priority  int        `db:"priority"`
	IsActive  bool       `db:"is_active"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}
