package resolver

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lcr/internal/adapters/config"
	"go.trai.ch/lcr/internal/adapters/knowledge"
	"go.trai.ch/lcr/internal/adapters/logger"
	"go.trai.ch/lcr/internal/adapters/pypi"
	"go.trai.ch/lcr/internal/core/domain"
	"go.trai.ch/lcr/internal/core/ports"
)

// NodeID is the unique identifier for the package resolver Graft node.
const NodeID graft.ID = "engine.resolver"

func init() {
	graft.Register(graft.Node[ports.PackageResolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			knowledge.NodeID,
			pypi.IndexNodeID,
			pypi.CacheNodeID,
			logger.NodeID,
			config.ConfigNodeID,
		},
		Run: func(ctx context.Context) (ports.PackageResolver, error) {
			kb, err := graft.Dep[ports.KnowledgeBase](ctx)
			if err != nil {
				return nil, err
			}

			index, err := graft.Dep[ports.PackageIndex](ctx)
			if err != nil {
				return nil, err
			}

			cache, err := graft.Dep[ports.IndexCache](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}

			return New(kb, index, cache, log, cfg.Resolver.AptPrefix), nil
		},
	})
}
