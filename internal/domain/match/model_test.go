package match

import (
	"testing"
	"time"
)

func TestSlugID_Deterministic(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Real Madrid":         "real-madrid",
		"  Real Madrid  ":     "real-madrid",
		"Atlético Madrid":     "atl-tico-madrid",
		"1. FC Köln":          "1-fc-k-ln",
		"Borussia M'gladbach": "borussia-m-gladbach",
	}

	for name, want := range cases {
		if got := SlugID(name); got != want {
			t.Fatalf("SlugID(%q): got=%q want=%q", name, got, want)
		}
		if SlugID(name) != SlugID(name) {
			t.Fatalf("SlugID(%q) is not deterministic", name)
		}
	}
}

func TestDedupKey_SameFixtureAcrossProviders(t *testing.T) {
	t.Parallel()

	kickoff := time.Date(2024, 3, 11, 20, 0, 0, 0, time.UTC)

	a := Match{
		ID:        "af-1001",
		HomeTeam:  Team{ID: "real-madrid", Name: "Real Madrid"},
		AwayTeam:  Team{ID: "barcelona", Name: "Barcelona"},
		KickoffAt: kickoff,
	}
	b := Match{
		ID:       "fd-77",
		HomeTeam: Team{ID: "real-madrid", Name: "Real Madrid"},
		AwayTeam: Team{ID: "barcelona", Name: "Barcelona"},
		// Same day, different kickoff precision from a second provider.
		KickoffAt: kickoff.Add(30 * time.Minute),
	}

	if a.DedupKey() != b.DedupKey() {
		t.Fatalf("expected identical dedup keys: %q vs %q", a.DedupKey(), b.DedupKey())
	}
}

func TestStatusHelpers(t *testing.T) {
	t.Parallel()

	if !IsLiveStatus("IN_PLAY") || !IsLiveStatus("live") {
		t.Fatal("expected live statuses to be detected")
	}
	if !IsFinishedStatus("Finished") {
		t.Fatal("expected finished statuses to be detected")
	}
	if IsLiveStatus("SCHEDULED") || IsFinishedStatus("SCHEDULED") {
		t.Fatal("scheduled must be neither live nor finished")
	}
	if IsLiveStatus("HT") || IsFinishedStatus("FT") {
		t.Fatal("provider vocabulary must not count as canonical statuses")
	}
	if NormalizeStatus("  ") != StatusScheduled {
		t.Fatal("empty status must normalize to SCHEDULED")
	}
}

func TestValidate_RejectsNonUTCKickoff(t *testing.T) {
	t.Parallel()

	loc, err := time.LoadLocation("Europe/Madrid")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	m := Match{
		ID:        "x",
		HomeTeam:  Team{ID: "a", Name: "A"},
		AwayTeam:  Team{ID: "b", Name: "B"},
		KickoffAt: time.Date(2024, 3, 11, 20, 0, 0, 0, loc),
	}

	if err := m.Validate(); err == nil {
		t.Fatal("expected validation error for non-UTC kickoff")
	}
}
