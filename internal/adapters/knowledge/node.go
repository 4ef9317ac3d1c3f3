package knowledge

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/lcr/internal/adapters/config"
	"go.trai.ch/lcr/internal/adapters/logger"
	"go.trai.ch/lcr/internal/core/domain"
	"go.trai.ch/lcr/internal/core/ports"
)

// NodeID is the unique identifier for the knowledge base Graft node.
const NodeID graft.ID = "adapter.knowledge"

func init() {
	graft.Register(graft.Node[ports.KnowledgeBase]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, config.ConfigNodeID},
		Run: func(ctx context.Context) (ports.KnowledgeBase, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}

			home, _ := os.UserHomeDir()
			return New(log, Options{
				Overlays: OverlayPaths(home, cfg.Root),
				UserPath: cfg.Abs(cfg.Paths.UserKnowledge),
			})
		},
	})
}
