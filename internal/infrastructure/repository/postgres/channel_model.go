package postgres

import (
	"database/sql"
	"time"
)

type channelTableModel struct {
	ID        int64          `db:"id"`
	ChannelID string         `db:"channel_id"`
	Timezone  sql.NullString `db:"timezone"`
	Language  sql.NullString `db:"language"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
	DeletedAt *time.Time     `db:"deleted_at"`
}
