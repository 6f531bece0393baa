// Package metrics defines conversion observability hooks. Components take a
// Recorder and default to NoopRecorder.
package metrics

import "time"

// SheetResult enumerates per-sheet outcomes.
type SheetResult string

const (
	SheetConverted SheetResult = "converted"
	SheetEmpty     SheetResult = "empty"
	SheetFailed    SheetResult = "failed"
)

// Outcome enumerates whole-conversion outcomes.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeEmpty   Outcome = "empty"
	OutcomeFailed  Outcome = "failed"
)

// Recorder receives conversion metrics.
type Recorder interface {
	IncSheetResult(result SheetResult)
	IncReadFallback(strategy string)
	ObservePages(n int)
	ObserveConversionDuration(d time.Duration)
	IncConversionOutcome(outcome Outcome)
}

// NoopRecorder is a Recorder that does nothing.
type NoopRecorder struct{}

func (NoopRecorder) IncSheetResult(SheetResult)              {}
func (NoopRecorder) IncReadFallback(string)                  {}
func (NoopRecorder) ObservePages(int)                        {}
func (NoopRecorder) ObserveConversionDuration(time.Duration) {}
func (NoopRecorder) IncConversionOutcome(Outcome)            {}
