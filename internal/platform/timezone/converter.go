package timezone

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidTimezone = errors.New("invalid timezone")

// Resolve loads an IANA timezone identifier. DST rules come from the
// platform tz database; no manual offset tables.
func Resolve(tz string) (*time.Location, error) {
	if tz == "" {
		return nil, fmt.Errorf("%w: empty identifier", ErrInvalidTimezone)
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTimezone, tz)
	}

	return loc, nil
}

// ResolveOrUTC resolves tz and falls back to UTC when the identifier is
// unknown. The second return value reports whether the fallback was taken.
func ResolveOrUTC(tz string) (*time.Location, bool) {
	if tz == "" {
		return time.UTC, false
	}

	loc, err := Resolve(tz)
	if err != nil {
		return time.UTC, true
	}

	return loc, false
}

func IsValid(tz string) bool {
	_, err := Resolve(tz)
	return err == nil
}

// UTCToLocal converts an absolute instant to wall-clock time in tz.
func UTCToLocal(t time.Time, tz string) (time.Time, error) {
	loc, err := Resolve(tz)
	if err != nil {
		return time.Time{}, err
	}

	return t.In(loc), nil
}

// LocalToUTC interprets the wall-clock fields of local as a time in tz and
// returns the corresponding UTC instant.
func LocalToUTC(local time.Time, tz string) (time.Time, error) {
	loc, err := Resolve(tz)
	if err != nil {
		return time.Time{}, err
	}

	year, month, day := local.Date()
	hour, minute, second := local.Clock()

	return time.Date(year, month, day, hour, minute, second, local.Nanosecond(), loc).UTC(), nil
}

// Offset returns the UTC offset of tz at the given instant.
func Offset(tz string, at time.Time) (time.Duration, error) {
	loc, err := Resolve(tz)
	if err != nil {
		return 0, err
	}

	_, seconds := at.In(loc).Zone()
	return time.Duration(seconds) * time.Second, nil
}

// LocalHour returns the wall-clock hour (0-23) in tz at the given instant.
func LocalHour(tz string, now time.Time) (int, error) {
	loc, err := Resolve(tz)
	if err != nil {
		return 0, err
	}

	return now.In(loc).Hour(), nil
}
