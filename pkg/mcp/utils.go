package mcp

import (
	"time"

	"github.com/unowned-ai/epoch/pkg/timestamps"
)

// conversionResult is the JSON body returned by convert_epoch and current_time.
type conversionResult struct {
	Input        string          `json:"input,omitempty"`
	Unit         timestamps.Unit `json:"unit"`
	UTC          string          `json:"utc"`
	Local        string          `json:"local"`
	Seconds      int64           `json:"seconds"`
	Nanos        int64           `json:"nanos"`
	EpochSeconds int64           `json:"epoch_seconds"`
	EpochMillis  int64           `json:"epoch_millis"`
}

func newConversionResult(input string, parsed timestamps.ParsedTime, loc *time.Location) conversionResult {
	utc := parsed.Time()
	return conversionResult{
		Input:        input,
		Unit:         parsed.Unit,
		UTC:          timestamps.FormatRFC3339(utc),
		Local:        timestamps.FormatRFC3339(utc.In(loc)),
		Seconds:      parsed.Seconds,
		Nanos:        parsed.Nanos,
		EpochSeconds: utc.Unix(),
		EpochMillis:  utc.UnixMilli(),
	}
}
