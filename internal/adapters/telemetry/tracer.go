// Package telemetry records spawned processes as OpenTelemetry spans and fans every
// recording out to the configured backends.
package telemetry

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

// InstrumentationName names the tracer spans are created with.
const InstrumentationName = "go.trai.ch/kiln"

var _ ports.Telemetry = (*Tracer)(nil)

// Tracer implements ports.Telemetry with one span per process.
type Tracer struct {
	mu       sync.RWMutex
	provider trace.TracerProvider
	tracer   trace.Tracer
	file     io.Closer
}

// NewTracer creates a Tracer on the globally registered provider, which drops every span
// until ExportTo is called or the embedding process installs an SDK provider.
func NewTracer() *Tracer {
	return NewTracerWithProvider(otel.GetTracerProvider())
}

// NewTracerWithProvider creates a Tracer on tp.
func NewTracerWithProvider(tp trace.TracerProvider) *Tracer {
	return &Tracer{
		provider: tp,
		tracer:   tp.Tracer(InstrumentationName),
	}
}

// ExportTo switches the Tracer to an SDK provider writing every finished span to path as
// JSON. Spans started earlier stay on the previous provider.
func (t *Tracer) ExportTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrTraceExportFailed.Error()), "path", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrTraceExportFailed.Error()), "path", path)
	}
	exp, err := stdouttrace.New(stdouttrace.WithWriter(f))
	if err != nil {
		_ = f.Close()
		return zerr.With(zerr.Wrap(err, domain.ErrTraceExportFailed.Error()), "path", path)
	}
	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exp))

	t.mu.Lock()
	defer t.mu.Unlock()
	t.provider = tp
	t.tracer = tp.Tracer(InstrumentationName)
	t.file = f
	return nil
}

// Record starts a span named after the work it tracks.
func (t *Tracer) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	t.mu.RLock()
	tracer := t.tracer
	t.mu.RUnlock()

	ctx, span := tracer.Start(ctx, name)
	s := &Span{span: span}
	return ports.ContextWithVertex(ctx, s), s
}

// Close flushes the provider when it supports it and closes the trace file.
func (t *Tracer) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	var errs []error
	if p, ok := t.provider.(interface{ Shutdown(context.Context) error }); ok {
		errs = append(errs, p.Shutdown(context.Background()))
	}
	if t.file != nil {
		errs = append(errs, t.file.Close())
		t.file = nil
	}
	return errors.Join(errs...)
}

// Span is one recorded process.
type Span struct {
	span trace.Span
}

// Stdout returns a writer that adds each write to the span as a "stdout" event.
func (s *Span) Stdout() io.Writer {
	return &eventWriter{span: s.span, name: "stdout"}
}

// Stderr returns a writer that adds each write to the span as a "stderr" event.
func (s *Span) Stderr() io.Writer {
	return &eventWriter{span: s.span, name: "stderr"}
}

// Log adds a "log" event carrying the level and message.
func (s *Span) Log(level domain.LogLevel, msg string) {
	if !s.span.IsRecording() {
		return
	}
	s.span.AddEvent("log", trace.WithAttributes(
		attribute.String("level", level.String()),
		attribute.String("message", msg),
	))
}

// Complete ends the span, marking it failed when err is non-nil.
func (s *Span) Complete(err error) {
	if err != nil {
		s.span.RecordError(err)
		s.span.SetStatus(codes.Error, err.Error())
	} else {
		s.span.SetStatus(codes.Ok, "")
	}
	s.span.End()
}

// Cached ends the span without running anything.
func (s *Span) Cached() {
	s.span.SetAttributes(attribute.Bool("kiln.cached", true))
	s.span.End()
}

type eventWriter struct {
	span trace.Span
	name string
}

// Write satisfies io.Writer. Empty writes add no event.
func (w *eventWriter) Write(p []byte) (int, error) {
	if len(p) == 0 || !w.span.IsRecording() {
		return len(p), nil
	}
	w.span.AddEvent(w.name, trace.WithAttributes(attribute.String("output", string(p))))
	return len(p), nil
}
