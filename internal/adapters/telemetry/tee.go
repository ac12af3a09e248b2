package telemetry

import (
	"context"
	"errors"
	"io"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
)

// Tee records every vertex on all of its backends.
type Tee struct {
	backends []ports.Telemetry
}

// NewTee creates a Tee over backends, in order.
func NewTee(backends ...ports.Telemetry) *Tee {
	return &Tee{backends: backends}
}

// Record starts a vertex on every backend. Each backend sees the context returned by the
// previous one, so spans nest under whatever the caller's context carries.
func (t *Tee) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	vertices := make(teeVertex, 0, len(t.backends))
	for _, b := range t.backends {
		var v ports.Vertex
		ctx, v = b.Record(ctx, name)
		vertices = append(vertices, v)
	}
	return ports.ContextWithVertex(ctx, vertices), vertices
}

// Close closes every backend and joins their errors.
func (t *Tee) Close() error {
	var errs []error
	for _, b := range t.backends {
		if err := b.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type teeVertex []ports.Vertex

func (vs teeVertex) Stdout() io.Writer {
	ws := make([]io.Writer, len(vs))
	for i, v := range vs {
		ws[i] = v.Stdout()
	}
	return io.MultiWriter(ws...)
}

func (vs teeVertex) Stderr() io.Writer {
	ws := make([]io.Writer, len(vs))
	for i, v := range vs {
		ws[i] = v.Stderr()
	}
	return io.MultiWriter(ws...)
}

func (vs teeVertex) Log(level domain.LogLevel, msg string) {
	for _, v := range vs {
		v.Log(level, msg)
	}
}

func (vs teeVertex) Complete(err error) {
	for _, v := range vs {
		v.Complete(err)
	}
}

func (vs teeVertex) Cached() {
	for _, v := range vs {
		v.Cached()
	}
}
