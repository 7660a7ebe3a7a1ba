package memory

import (
	"github.com/riskibarqy/match-relevance/internal/domain/channel"
	"github.com/riskibarqy/match-relevance/internal/domain/provider"
)

// SeedChannels covers the delivery channels used in local runs. Timezones
// span the markets the relevance curves are most sensitive to.
func SeedChannels() []channel.Config {
	return []channel.Config{
		{ChannelID: "tg-global", Timezone: "UTC", Language: "en"},
		{ChannelID: "tg-jakarta", Timezone: "Asia/Jakarta", Language: "id"},
		{ChannelID: "tg-madrid", Timezone: "Europe/Madrid", Language: "es"},
		{ChannelID: "tg-london", Timezone: "Europe/London", Language: "en"},
	}
}

// SeedCredentials mirrors the provider priority order used in production
// configuration, with placeholder keys for local runs.
func SeedCredentials() []provider.Credential {
	return []provider.Credential{
		{Name: "apifootball", APIKey: "local-dev-key", BaseURL: "", Priority: 1, IsActive: true},
		{Name: "footballdata", APIKey: "local-dev-key", BaseURL: "", Priority: 2, IsActive: true},
	}
}
