package pyast

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lcr/internal/core/ports"
)

// NodeID is the unique identifier for the feature extractor Graft node.
const NodeID graft.ID = "adapter.feature_extractor"

func init() {
	graft.Register(graft.Node[ports.FeatureExtractor]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.FeatureExtractor, error) {
			return New(), nil
		},
	})
}
