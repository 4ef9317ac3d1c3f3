package dockerfile

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lcr/internal/core/ports"
)

// NodeID is the unique identifier for the Dockerfile renderer Graft node.
const NodeID graft.ID = "adapter.dockerfile_renderer"

func init() {
	graft.Register(graft.Node[ports.Renderer]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Renderer, error) {
			return New(), nil
		},
	})
}
