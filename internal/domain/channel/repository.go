package channel

import "context"

// Repository exposes channel configuration reads.
type Repository interface {
	GetTimezone(ctx context.Context, channelID string) (string, error)
}
