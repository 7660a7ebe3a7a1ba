package match

import (
	"fmt"
	"strings"
	"time"
)

const (
	StatusScheduled = "SCHEDULED"
	StatusLive      = "LIVE"
	StatusInPlay    = "IN_PLAY"
	StatusFinished  = "FINISHED"
)

// Team is one side of a fixture. ID is the provider-native identifier when
// known, otherwise a deterministic slug of the name.
type Team struct {
	ID   string
	Name string
}

// Competition is used only as a scoring lookup key.
type Competition struct {
	ID   string
	Name string
}

// Score holds a final or running result.
type Score struct {
	Home int
	Away int
}

// Match is the canonical provider-agnostic fixture record. KickoffAt is
// always an absolute UTC instant; provider-local times are normalized
// before this struct is built.
type Match struct {
	ID          string
	HomeTeam    Team
	AwayTeam    Team
	Competition Competition
	KickoffAt   time.Time
	Status      string
	Score       *Score
	Season      string
	Provider    string
}

func (m Match) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("match id is required")
	}
	if m.HomeTeam.Name == "" {
		return fmt.Errorf("home team name is required")
	}
	if m.AwayTeam.Name == "" {
		return fmt.Errorf("away team name is required")
	}
	if m.KickoffAt.IsZero() {
		return fmt.Errorf("kickoff time is required")
	}
	if m.KickoffAt.Location() != time.UTC {
		return fmt.Errorf("kickoff must be stored in UTC")
	}

	return nil
}

// DedupKey identifies the same real-world fixture across providers that use
// different ID schemes: both sides plus the UTC calendar day of kickoff.
func (m Match) DedupKey() string {
	return m.HomeTeam.ID + "|" + m.AwayTeam.ID + "|" + m.KickoffAt.UTC().Format("2006-01-02")
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return StatusScheduled
	}
	return status
}

func IsLiveStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusLive, StatusInPlay:
		return true
	default:
		return false
	}
}

func IsFinishedStatus(status string) bool {
	return NormalizeStatus(status) == StatusFinished
}

// SlugID derives a stable identifier from a display name for providers that
// omit entity IDs. Repeated calls with the same name yield the same slug.
func SlugID(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
