package telemetry

import (
	"go.trai.ch/kiln/internal/adapters/telemetry/progrock"
	"go.trai.ch/kiln/internal/core/ports"
)

var _ ports.Telemetry = (*Session)(nil)

// Session records on the progrock recorder and the tracer, and points either one at a
// file on request. Both must be set up before the first Record.
type Session struct {
	*Tee
	recorder *progrock.Recorder
	tracer   *Tracer
}

// NewSession creates a Session over recorder and tracer.
func NewSession(recorder *progrock.Recorder, tracer *Tracer) *Session {
	return &Session{
		Tee:      NewTee(recorder, tracer),
		recorder: recorder,
		tracer:   tracer,
	}
}

// RecordJournal writes the progrock status stream of every process to path.
func (s *Session) RecordJournal(path string) error {
	return s.recorder.Journal(path)
}

// ExportTrace writes one span per process to path.
func (s *Session) ExportTrace(path string) error {
	return s.tracer.ExportTo(path)
}
