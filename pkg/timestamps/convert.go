package timestamps

import (
	"strconv"
	"time"
)

// Upper bounds (exclusive) of the magnitude bands for each coarser unit.
const (
	secondsLimit      int64 = 10_000_000_000
	millisecondsLimit int64 = 10_000_000_000_000
	microsecondsLimit int64 = 10_000_000_000_000_000
)

// ParsedTime is the result of converting one epoch value.
type ParsedTime struct {
	Unit    Unit
	Seconds int64
	// Nanos is always in [0, 999999999] for values produced by Convert.
	Nanos int64
}

// Classify infers the unit of raw from its magnitude alone.
//
// Every negative value lands in Seconds; nothing rejects it.
func Classify(raw int64) Unit {
	switch {
	case raw < secondsLimit:
		return Seconds
	case raw < millisecondsLimit:
		return Milliseconds
	case raw < microsecondsLimit:
		return Microseconds
	default:
		return Nanoseconds
	}
}

// Convert splits raw ticks of unit into whole seconds and a nanosecond remainder.
func Convert(raw int64, unit Unit) ParsedTime {
	scale := unit.PerSecond()
	seconds := raw / scale
	remainder := raw - seconds*scale

	return ParsedTime{
		Unit:    unit,
		Seconds: seconds,
		Nanos:   remainder * (nanosPerSecond / scale),
	}
}

// TryParse reads text as a base 10 int64 and converts it using the inferred unit.
// The boolean is false when text is not an integer.
func TryParse(text string) (ParsedTime, bool) {
	raw, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return ParsedTime{}, false
	}
	return Convert(raw, Classify(raw)), true
}

// FromTime wraps t as a nanosecond-resolution ParsedTime.
func FromTime(t time.Time) ParsedTime {
	return Convert(t.UnixNano(), Nanoseconds)
}

// Time returns the converted instant in UTC.
func (p ParsedTime) Time() time.Time {
	return time.Unix(p.Seconds, p.Nanos).UTC()
}

// In returns the converted instant in loc.
func (p ParsedTime) In(loc *time.Location) time.Time {
	return p.Time().In(loc)
}

// Local returns the converted instant in the host's zone.
func (p ParsedTime) Local() time.Time {
	return p.In(time.Local)
}

// Ticks rebuilds the original raw value from the seconds and remainder.
func (p ParsedTime) Ticks() int64 {
	scale := p.Unit.PerSecond()
	return p.Seconds*scale + p.Nanos/(nanosPerSecond/scale)
}
