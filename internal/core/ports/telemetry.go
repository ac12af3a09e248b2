package ports

import (
	"context"
	"io"

	"go.trai.ch/kiln/internal/core/domain"
)

//go:generate mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Telemetry records one vertex per spawned process.
type Telemetry interface {
	// Record starts a new vertex named after the work it tracks.
	Record(ctx context.Context, name string) (context.Context, Vertex)
	// Close flushes the recording session.
	Close() error
}

// Vertex is one unit of recorded work.
type Vertex interface {
	// Stdout returns a writer for the vertex's standard output.
	Stdout() io.Writer
	// Stderr returns a writer for the vertex's error output.
	Stderr() io.Writer
	// Log attaches a message to the vertex.
	Log(level domain.LogLevel, msg string)
	// Complete marks the vertex as finished.
	Complete(err error)
	// Cached marks the vertex as skipped because its output was current.
	Cached()
}

type vertexKey struct{}

// ContextWithVertex returns a copy of ctx carrying v.
func ContextWithVertex(ctx context.Context, v Vertex) context.Context {
	return context.WithValue(ctx, vertexKey{}, v)
}

// VertexFromContext returns the vertex stored in ctx, if any.
func VertexFromContext(ctx context.Context) (Vertex, bool) {
	v, ok := ctx.Value(vertexKey{}).(Vertex)
	return v, ok
}
