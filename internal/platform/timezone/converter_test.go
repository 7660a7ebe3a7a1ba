package timezone

import (
	"errors"
	"testing"
	"time"
)

func TestRoundTrip_AcrossDSTTransition(t *testing.T) {
	t.Parallel()

	instants := []time.Time{
		time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC),
		// Europe/Madrid springs forward on 2024-03-31.
		time.Date(2024, 3, 31, 0, 30, 0, 0, time.UTC),
		time.Date(2024, 3, 31, 3, 30, 0, 0, time.UTC),
		time.Date(2024, 10, 27, 1, 30, 0, 0, time.UTC),
		time.Date(2024, 12, 25, 23, 59, 59, 0, time.UTC),
	}

	for _, tz := range []string{"Europe/Madrid", "America/New_York", "Asia/Jakarta", "UTC"} {
		for _, instant := range instants {
			local, err := UTCToLocal(instant, tz)
			if err != nil {
				t.Fatalf("UTCToLocal(%v, %s): %v", instant, tz, err)
			}

			back, err := LocalToUTC(local, tz)
			if err != nil {
				t.Fatalf("LocalToUTC(%v, %s): %v", local, tz, err)
			}

			if !back.Equal(instant) {
				t.Fatalf("round trip mismatch tz=%s: got=%v want=%v", tz, back, instant)
			}
		}
	}
}

func TestResolve_InvalidIdentifier(t *testing.T) {
	t.Parallel()

	for _, tz := range []string{"", "Mars/Olympus", "not a timezone"} {
		if _, err := Resolve(tz); !errors.Is(err, ErrInvalidTimezone) {
			t.Fatalf("Resolve(%q): expected ErrInvalidTimezone, got %v", tz, err)
		}
		if IsValid(tz) {
			t.Fatalf("IsValid(%q): expected false", tz)
		}
	}
}

func TestResolveOrUTC_FallsBack(t *testing.T) {
	t.Parallel()

	loc, degraded := ResolveOrUTC("Mars/Olympus")
	if loc != time.UTC {
		t.Fatalf("expected UTC fallback, got %v", loc)
	}
	if !degraded {
		t.Fatal("expected degraded flag for unknown timezone")
	}

	loc, degraded = ResolveOrUTC("Europe/Madrid")
	if degraded {
		t.Fatal("unexpected degraded flag for valid timezone")
	}
	if loc.String() != "Europe/Madrid" {
		t.Fatalf("unexpected location: %s", loc)
	}
}

func TestOffset_DSTAware(t *testing.T) {
	t.Parallel()

	winter := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	summer := time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC)

	winterOffset, err := Offset("Europe/Madrid", winter)
	if err != nil {
		t.Fatalf("Offset winter: %v", err)
	}
	summerOffset, err := Offset("Europe/Madrid", summer)
	if err != nil {
		t.Fatalf("Offset summer: %v", err)
	}

	if winterOffset != time.Hour {
		t.Fatalf("unexpected winter offset: %v", winterOffset)
	}
	if summerOffset != 2*time.Hour {
		t.Fatalf("unexpected summer offset: %v", summerOffset)
	}
}

func TestLocalHour(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 10, 23, 30, 0, 0, time.UTC)

	hour, err := LocalHour("Asia/Jakarta", now)
	if err != nil {
		t.Fatalf("LocalHour: %v", err)
	}
	if hour != 6 {
		t.Fatalf("unexpected local hour: got=%d want=6", hour)
	}
}
