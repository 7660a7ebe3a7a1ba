package relevance

import "time"

// Window is an inclusive UTC day range for fetching candidate fixtures.
type Window struct {
	From time.Time
	To   time.Time
}

// Days enumerates the UTC calendar days covered by the window, oldest
// first.
func (w Window) Days() []time.Time {
	from := startOfDay(w.From)
	to := startOfDay(w.To)
	if to.Before(from) {
		return nil
	}

	days := make([]time.Time, 0, int(to.Sub(from)/(24*time.Hour))+1)
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		days = append(days, day)
	}

	return days
}

func (w Window) Contains(t time.Time) bool {
	day := startOfDay(t)
	return !day.Before(startOfDay(w.From)) && !day.After(startOfDay(w.To))
}

// WindowFor returns the content-type-specific fetch window around now.
// Every call site shares this one function; window logic lives nowhere
// else.
func WindowFor(contentType ContentType, now time.Time) Window {
	now = now.UTC()

	switch contentType {
	case ContentBettingTip:
		return Window{From: now, To: now.AddDate(0, 0, 14)}
	case ContentDailySummary:
		yesterday := now.AddDate(0, 0, -1)
		return Window{From: yesterday, To: yesterday}
	case ContentWeeklySummary:
		return Window{From: now.AddDate(0, 0, -7), To: now.AddDate(0, 0, -1)}
	case ContentLiveUpdate:
		return Window{From: now, To: now.AddDate(0, 0, 1)}
	case ContentAnalysis:
		return Window{From: now.AddDate(0, 0, -5), To: now.AddDate(0, 0, 14)}
	case ContentPoll:
		return Window{From: now.AddDate(0, 0, -1), To: now.AddDate(0, 0, 7)}
	case ContentNews:
		return Window{From: now.AddDate(0, 0, -2), To: now.AddDate(0, 0, 7)}
	default:
		return Window{From: now.AddDate(0, 0, -2), To: now.AddDate(0, 0, 7)}
	}
}

// Thresholds are the selector-side filtering constants. They are tunable
// configuration, not derived values.
type Thresholds struct {
	// MinTiming drops matches whose timing term fell below the
	// per-content-type floor.
	MinTiming map[ContentType]int
	// MaxLookbackDays drops matches older than the per-content-type
	// look-back limit, measured against kickoff.
	MaxLookbackDays map[ContentType]int
	// SuitabilityFloor drops matches whose suitability for the requested
	// type is below this 0-100 floor.
	SuitabilityFloor int
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		MinTiming: map[ContentType]int{
			ContentNews:          1,
			ContentBettingTip:    1,
			ContentPoll:          1,
			ContentAnalysis:      1,
			ContentDailySummary:  1,
			ContentWeeklySummary: 1,
			ContentLiveUpdate:    1,
		},
		MaxLookbackDays: map[ContentType]int{
			ContentNews:          7,
			ContentBettingTip:    0,
			ContentPoll:          2,
			ContentAnalysis:      5,
			ContentDailySummary:  2,
			ContentWeeklySummary: 7,
			ContentLiveUpdate:    1,
		},
		SuitabilityFloor: 30,
	}
}

// WithinLookback reports whether kickoff is not older than the configured
// look-back for the content type. The boundary day itself is included.
func (t Thresholds) WithinLookback(contentType ContentType, kickoff, now time.Time) bool {
	lookback, ok := t.MaxLookbackDays[contentType]
	if !ok {
		return true
	}

	earliest := startOfDay(now.UTC()).AddDate(0, 0, -lookback)
	return !kickoff.UTC().Before(earliest)
}

func (t Thresholds) MinTimingFor(contentType ContentType) int {
	if min, ok := t.MinTiming[contentType]; ok {
		return min
	}
	return 1
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
