package timestamps

import (
	"fmt"
)

// Unit is the granularity an epoch value is counted in.
type Unit int

const (
	Seconds Unit = iota
	Milliseconds
	Microseconds
	Nanoseconds
)

const nanosPerSecond int64 = 1_000_000_000

var unitNames = map[Unit]string{
	Seconds:      "seconds",
	Milliseconds: "milli-seconds",
	Microseconds: "micro-seconds",
	Nanoseconds:  "nano-seconds",
}

// PerSecond returns the number of ticks of u in one second.
func (u Unit) PerSecond() int64 {
	switch u {
	case Milliseconds:
		return 1_000
	case Microseconds:
		return 1_000_000
	case Nanoseconds:
		return nanosPerSecond
	default:
		return 1
	}
}

func (u Unit) String() string {
	if name, ok := unitNames[u]; ok {
		return name
	}
	return fmt.Sprintf("Unit(%d)", int(u))
}

// ParseUnit maps a display name such as "milli-seconds" back to its Unit.
func ParseUnit(name string) (Unit, error) {
	for u, n := range unitNames {
		if n == name {
			return u, nil
		}
	}
	return Seconds, fmt.Errorf("unknown unit: %s", name)
}

func (u Unit) MarshalText() ([]byte, error) {
	if _, ok := unitNames[u]; !ok {
		return nil, fmt.Errorf("unknown unit: %d", int(u))
	}
	return []byte(u.String()), nil
}

func (u *Unit) UnmarshalText(text []byte) error {
	parsed, err := ParseUnit(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}
