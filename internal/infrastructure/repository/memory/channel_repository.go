package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/match-relevance/internal/domain/channel"
)

type ChannelRepository struct {
	mu    sync.RWMutex
	items map[string]channel.Config
}

func NewChannelRepository(configs []channel.Config) *ChannelRepository {
	items := make(map[string]channel.Config, len(configs))
	for _, cfg := range configs {
		items[cfg.ChannelID] = cfg
	}

	return &ChannelRepository{items: items}
}

func (r *ChannelRepository) GetTimezone(_ context.Context, channelID string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cfg, ok := r.items[channelID]
	if !ok {
		return "", nil
	}
	return cfg.Timezone, nil
}

// Upsert replaces the channel's configuration, mainly for tests and the
// seeded in-memory mode.
func (r *ChannelRepository) Upsert(_ context.Context, cfg channel.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	r.items[cfg.ChannelID] = cfg
	r.mu.Unlock()
	return nil
}
