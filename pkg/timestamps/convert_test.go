package timestamps

import (
	"testing"
	"time"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		raw  int64
		want Unit
	}{
		{0, Seconds},
		{1630779114, Seconds},
		{9_999_999_999, Seconds},
		{10_000_000_000, Milliseconds},
		{1630779114123, Milliseconds},
		{9_999_999_999_999, Milliseconds},
		{10_000_000_000_000, Microseconds},
		{1630779114123456, Microseconds},
		{9_999_999_999_999_999, Microseconds},
		{10_000_000_000_000_000, Nanoseconds},
		{1630779114123456789, Nanoseconds},
		{9_223_372_036_854_775_807, Nanoseconds},
		{-1, Seconds},
	}

	for _, tt := range tests {
		if got := Classify(tt.raw); got != tt.want {
			t.Errorf("Classify(%d): expected %s, got %s", tt.raw, tt.want, got)
		}
	}
}

func TestTryParseKnownInstants(t *testing.T) {
	tests := []struct {
		input string
		unit  Unit
		want  time.Time
	}{
		{"1630779114", Seconds, time.Date(2021, 9, 4, 18, 11, 54, 0, time.UTC)},
		{"1630779114123", Milliseconds, time.Date(2021, 9, 4, 18, 11, 54, 123_000_000, time.UTC)},
		{"1630779114123456", Microseconds, time.Date(2021, 9, 4, 18, 11, 54, 123_456_000, time.UTC)},
		{"1630779114123456789", Nanoseconds, time.Date(2021, 9, 4, 18, 11, 54, 123_456_789, time.UTC)},
	}

	for _, tt := range tests {
		parsed, ok := TryParse(tt.input)
		if !ok {
			t.Fatalf("TryParse(%q) returned no result", tt.input)
		}
		if parsed.Unit != tt.unit {
			t.Errorf("TryParse(%q): expected unit %s, got %s", tt.input, tt.unit, parsed.Unit)
		}
		if !parsed.Time().Equal(tt.want) {
			t.Errorf("TryParse(%q): expected %v, got %v", tt.input, tt.want, parsed.Time())
		}
		if parsed.Time().Location() != time.UTC {
			t.Errorf("TryParse(%q): expected UTC location, got %v", tt.input, parsed.Time().Location())
		}
	}
}

func TestTryParseRejectsNonIntegers(t *testing.T) {
	inputs := []string{"abc", "", " 1630779114", "1630779114 ", "1_630_779_114", "1,630", "16.5", "0x10", "99999999999999999999"}

	for _, input := range inputs {
		if _, ok := TryParse(input); ok {
			t.Errorf("Expected TryParse(%q) to return no result", input)
		}
	}
}

func TestTryParseAcceptsSign(t *testing.T) {
	parsed, ok := TryParse("-5")
	if !ok {
		t.Fatalf("TryParse(\"-5\") returned no result")
	}
	if parsed.Unit != Seconds || parsed.Seconds != -5 || parsed.Nanos != 0 {
		t.Errorf("Expected -5 seconds with no remainder, got %+v", parsed)
	}
}

func TestConvertSecondsBand(t *testing.T) {
	for _, raw := range []int64{0, 1, 59, 86_400, 1630779114, 9_999_999_999} {
		parsed := Convert(raw, Classify(raw))
		if parsed.Unit != Seconds {
			t.Errorf("Expected %d to classify as seconds, got %s", raw, parsed.Unit)
		}
		if parsed.Seconds != raw {
			t.Errorf("Expected whole seconds %d, got %d", raw, parsed.Seconds)
		}
		if parsed.Nanos != 0 {
			t.Errorf("Expected zero nanos for %d, got %d", raw, parsed.Nanos)
		}
	}
}

func TestConvertRoundTrip(t *testing.T) {
	values := []int64{
		0,
		1630779114,
		9_999_999_999,
		10_000_000_000,
		1630779114001,
		9_999_999_999_999,
		10_000_000_000_000,
		1630779114000999,
		9_999_999_999_999_999,
		10_000_000_000_000_000,
		1630779114123456789,
		9_223_372_036_854_775_807,
	}

	for _, raw := range values {
		parsed := Convert(raw, Classify(raw))
		if parsed.Nanos < 0 || parsed.Nanos > 999_999_999 {
			t.Errorf("Nanos out of range for %d: %d", raw, parsed.Nanos)
		}
		if got := parsed.Ticks(); got != raw {
			t.Errorf("Round trip failed for %d (%s): got %d", raw, parsed.Unit, got)
		}
	}
}

func TestConvertIsDeterministic(t *testing.T) {
	first := Convert(1630779114123456, Microseconds)
	second := Convert(1630779114123456, Microseconds)
	if first != second {
		t.Errorf("Expected identical results, got %+v and %+v", first, second)
	}
}

func TestConvertExplicitUnit(t *testing.T) {
	parsed := Convert(1630779114123, Seconds)
	if parsed.Seconds != 1630779114123 || parsed.Nanos != 0 {
		t.Errorf("Expected raw value kept as seconds, got %+v", parsed)
	}

	parsed = Convert(1500, Milliseconds)
	if parsed.Seconds != 1 || parsed.Nanos != 500_000_000 {
		t.Errorf("Expected 1s + 500000000ns, got %+v", parsed)
	}
}

func TestFromTime(t *testing.T) {
	now := time.Date(2021, 9, 4, 18, 11, 54, 123_456_789, time.UTC)
	parsed := FromTime(now)
	if parsed.Unit != Nanoseconds {
		t.Errorf("Expected nano-seconds, got %s", parsed.Unit)
	}
	if !parsed.Time().Equal(now) {
		t.Errorf("Expected %v, got %v", now, parsed.Time())
	}
}

func TestInLocation(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	parsed, _ := TryParse("1630779114")
	local := parsed.In(loc)
	if local.Hour() != 20 {
		t.Errorf("Expected hour 20 in UTC+2, got %d", local.Hour())
	}
	if !local.Equal(parsed.Time()) {
		t.Errorf("Expected same instant, got %v and %v", local, parsed.Time())
	}
}
