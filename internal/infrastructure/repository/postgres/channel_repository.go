package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	qb "github.com/riskibarqy/match-relevance/internal/platform/querybuilder"
)

type ChannelRepository struct {
	db *sqlx.DB
}

func NewChannelRepository(db *sqlx.DB) *ChannelRepository {
	return &ChannelRepository{db: db}
}

// GetTimezone returns the channel's configured IANA timezone. An unknown
// channel or an unset timezone resolves to an empty string, which callers
// treat as UTC.
func (r *ChannelRepository) GetTimezone(ctx context.Context, channelID string) (string, error) {
	query, args, err := qb.Select("*").From("channel_configs").
		Where(
			qb.Eq("channel_id", channelID),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return "", fmt.Errorf("build select channel config query: %w", err)
	}

	var row channelTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return "", nil
		}
		return "", fmt.Errorf("select channel config channel_id=%s: %w", channelID, err)
	}

	if !row.Timezone.Valid {
		return "", nil
	}
	return row.Timezone.String, nil
}
