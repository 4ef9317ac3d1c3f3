package history

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lcr/internal/adapters/config"
	"go.trai.ch/lcr/internal/core/domain"
	"go.trai.ch/lcr/internal/core/ports"
)

// NodeID is the unique identifier for the run history Graft node.
const NodeID graft.ID = "adapter.history_store"

func init() {
	graft.Register(graft.Node[ports.HistoryStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.ConfigNodeID},
		Run: func(ctx context.Context) (ports.HistoryStore, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return NewStore(cfg.Abs(cfg.Paths.History), cfg.Root)
		},
	})
}
