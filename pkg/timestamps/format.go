package timestamps

import (
	"fmt"
	"io"
	"time"
)

const (
	layoutSeconds = "2006-01-02T15:04:05-07:00"
	layoutMillis  = "2006-01-02T15:04:05.000-07:00"
	layoutMicros  = "2006-01-02T15:04:05.000000-07:00"
	layoutNanos   = "2006-01-02T15:04:05.000000000-07:00"
)

// FormatRFC3339 renders t with a numeric offset and 0, 3, 6 or 9 fractional
// digits, whichever is the shortest that keeps every non-zero digit.
func FormatRFC3339(t time.Time) string {
	nanos := t.Nanosecond()
	switch {
	case nanos == 0:
		return t.Format(layoutSeconds)
	case nanos%1_000_000 == 0:
		return t.Format(layoutMillis)
	case nanos%1_000 == 0:
		return t.Format(layoutMicros)
	default:
		return t.Format(layoutNanos)
	}
}

// WriteReport writes t in UTC and in loc, followed by its epoch in seconds and milliseconds.
func WriteReport(w io.Writer, t time.Time, loc *time.Location) error {
	utc := t.UTC()
	_, err := fmt.Fprintf(w,
		"UTC:        %s\nLocal:      %s\nEpoch (s):  %d\nEpoch (ms): %d\n",
		FormatRFC3339(utc),
		FormatRFC3339(utc.In(loc)),
		utc.Unix(),
		utc.UnixMilli(),
	)
	return err
}
