package progrock

import (
	"fmt"
	"io"

	"github.com/vito/progrock"
	"go.trai.ch/kiln/internal/core/domain"
)

// Vertex is one recorded process: its output streams and completion state.
type Vertex struct {
	vertex *progrock.VertexRecorder
}

// Stdout returns the writer receiving the process's captured standard output.
func (v *Vertex) Stdout() io.Writer {
	return v.vertex.Stdout()
}

// Stderr returns the writer receiving the process's captured error output.
func (v *Vertex) Stderr() io.Writer {
	return v.vertex.Stderr()
}

// Log attaches a classified message. Warnings and errors go to the error stream.
func (v *Vertex) Log(level domain.LogLevel, msg string) {
	w := v.vertex.Stdout()
	if level >= domain.LogLevelWarn {
		w = v.vertex.Stderr()
	}
	_, _ = fmt.Fprintf(w, "[%s] %s\n", level.String(), msg)
}

// Complete marks the process as exited; a non-nil err marks the vertex failed.
func (v *Vertex) Complete(err error) {
	v.vertex.Done(err)
}

// Cached marks the vertex as skipped because its output was current.
func (v *Vertex) Cached() {
	v.vertex.Cached()
}
