package history

import (
	"time"

	"github.com/google/uuid"
	"github.com/unowned-ai/epoch/pkg/timestamps"
)

// Record is one saved conversion.
type Record struct {
	ID      uuid.UUID       `json:"id"`
	Input   string          `json:"input"`
	Raw     int64           `json:"raw"`
	Unit    timestamps.Unit `json:"unit"`
	Seconds int64           `json:"seconds"`
	Nanos   int64           `json:"nanos"`
	// CreatedAt is in unix seconds with a fractional part, as written by SQLite.
	CreatedAt float64 `json:"created_at"`
}

// Parsed rebuilds the conversion the record was saved from.
func (r Record) Parsed() timestamps.ParsedTime {
	return timestamps.ParsedTime{Unit: r.Unit, Seconds: r.Seconds, Nanos: r.Nanos}
}

// Time returns the converted instant in UTC.
func (r Record) Time() time.Time {
	return r.Parsed().Time()
}

// SavedAt returns when the record was written.
func (r Record) SavedAt() time.Time {
	sec := int64(r.CreatedAt)
	return time.Unix(sec, int64((r.CreatedAt-float64(sec))*1e9))
}
