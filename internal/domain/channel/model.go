package channel

import "fmt"

// Config holds per-channel delivery settings the engine cares about. The
// timezone drives channel-local timing relevance.
type Config struct {
	ChannelID string
	Timezone  string
	Language  string
}

func (c Config) Validate() error {
	if c.ChannelID == "" {
		return fmt.Errorf("channel id is required")
	}

	return nil
}
