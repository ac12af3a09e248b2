package telemetry

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/kiln/internal/adapters/telemetry/progrock"
	"go.trai.ch/kiln/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the combined telemetry node.
	NodeID graft.ID = "adapter.telemetry"
	// TracerNodeID is the unique identifier for the OpenTelemetry tracer node.
	TracerNodeID graft.ID = "adapter.telemetry.otel"
)

func init() {
	graft.Register(graft.Node[*Tracer]{
		ID:        TracerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Tracer, error) {
			return NewTracer(), nil
		},
	})

	graft.Register(graft.Node[ports.Telemetry]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{progrock.NodeID, TracerNodeID},
		Run: func(ctx context.Context) (ports.Telemetry, error) {
			rec, err := graft.Dep[*progrock.Recorder](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[*Tracer](ctx)
			if err != nil {
				return nil, err
			}
			return NewSession(rec, tracer), nil
		},
	})
}
