package docker

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lcr/internal/adapters/config"
	"go.trai.ch/lcr/internal/adapters/logger"
	"go.trai.ch/lcr/internal/core/domain"
	"go.trai.ch/lcr/internal/core/ports"
)

// NodeID is the unique identifier for the container runtime Graft node.
const NodeID graft.ID = "adapter.container_runtime"

func init() {
	graft.Register(graft.Node[ports.ContainerRuntime]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.ConfigNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.ContainerRuntime, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(cfg.Docker.Binary, log), nil
		},
	})
}
