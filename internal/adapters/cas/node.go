package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/kiln/internal/core/ports"
)

// NodeID is the unique identifier for the settings store Graft node.
const NodeID graft.ID = "adapter.settings_store"

func init() {
	graft.Register(graft.Node[ports.SettingsStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.SettingsStore, error) {
			return NewStore(), nil
		},
	})
}
