package relevance

import (
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/match-relevance/internal/domain/match"
)

// ContentType is the consumer-facing category of generated content. Each
// type carries its own time-relevance rules.
type ContentType string

const (
	ContentNews          ContentType = "news"
	ContentBettingTip    ContentType = "betting_tip"
	ContentPoll          ContentType = "poll"
	ContentAnalysis      ContentType = "analysis"
	ContentDailySummary  ContentType = "daily_summary"
	ContentWeeklySummary ContentType = "weekly_summary"
	ContentLiveUpdate    ContentType = "live_update"
)

var AllContentTypes = []ContentType{
	ContentNews,
	ContentBettingTip,
	ContentPoll,
	ContentAnalysis,
	ContentDailySummary,
	ContentWeeklySummary,
	ContentLiveUpdate,
}

func ParseContentType(value string) (ContentType, error) {
	normalized := ContentType(strings.ToLower(strings.TrimSpace(value)))
	for _, ct := range AllContentTypes {
		if ct == normalized {
			return ct, nil
		}
	}

	return "", fmt.Errorf("unknown content type: %q", value)
}

// Score holds the per-term relevance breakdown. Total is the plain sum of
// the terms.
type Score struct {
	Competition int
	Teams       int
	Timing      int
	Stage       int
	Rivalry     int
	Total       int
}

// Preferences carries caller-specific boosts.
type Preferences struct {
	FavoriteTeams []string
	BoostScore    int
}

// Request is the scoring context for one selection call.
type Request struct {
	ContentType     ContentType
	Language        string
	MaxResults      int
	ChannelTimezone string
	ReferenceTime   time.Time
	Preferences     *Preferences
}

// ScoredMatch is a canonical match plus its derived relevance. It is
// recomputed per request and never persisted; any cached copy is stale the
// moment "now" moves.
type ScoredMatch struct {
	Match       match.Match
	Score       Score
	Reasons     []string
	Suitability map[ContentType]int
}
