// Package progrock records one progrock vertex per spawned compiler, linker or archiver.
package progrock

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Telemetry = (*Recorder)(nil)

// Recorder implements ports.Telemetry by streaming progrock status updates to its writers.
// The progrock recorder is created on the first Record, so writers attached before then
// also see the root group.
type Recorder struct {
	sink *sink

	once sync.Once
	rec  *progrock.Recorder

	mu    sync.Mutex
	names map[string]int
}

// New creates a new Recorder with no writers attached.
func New() *Recorder {
	return NewRecorder()
}

// NewRecorder creates a new Recorder streaming to writers.
func NewRecorder(writers ...progrock.Writer) *Recorder {
	return &Recorder{
		sink:  &sink{writers: writers},
		names: make(map[string]int),
	}
}

// Journal streams every status update to a JSON-lines journal at path.
func (r *Recorder) Journal(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrJournalCreateFailed.Error()), "path", path)
	}
	w, err := progrock.CreateJournal(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrJournalCreateFailed.Error()), "path", path)
	}
	r.sink.add(w)
	return nil
}

// Record starts a vertex for name. Recording the same name twice yields distinct vertices.
func (r *Recorder) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	v := r.recorder().Vertex(r.digest(name), name)
	vertex := &Vertex{vertex: v}
	return ports.ContextWithVertex(ctx, vertex), vertex
}

func (r *Recorder) recorder() *progrock.Recorder {
	r.once.Do(func() {
		r.rec = progrock.NewRecorder(r.sink)
	})
	return r.rec
}

func (r *Recorder) digest(name string) digest.Digest {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := r.names[name]
	r.names[name] = n + 1
	if n == 0 {
		return digest.FromString(name)
	}
	return digest.FromString(fmt.Sprintf("%s#%d", name, n))
}

// Close completes the root group and closes every writer.
func (r *Recorder) Close() error {
	r.recorder().Complete()
	return r.sink.Close()
}

// sink fans status updates out to writers attached at any time.
type sink struct {
	mu      sync.Mutex
	writers progrock.MultiWriter
}

func (s *sink) add(w progrock.Writer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writers = append(s.writers, w)
}

func (s *sink) WriteStatus(update *progrock.StatusUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writers.WriteStatus(update)
}

func (s *sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writers.Close()
}
