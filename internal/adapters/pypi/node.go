package pypi

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lcr/internal/adapters/config"
	"go.trai.ch/lcr/internal/adapters/logger"
	"go.trai.ch/lcr/internal/core/domain"
	"go.trai.ch/lcr/internal/core/ports"
)

const (
	// IndexNodeID is the unique identifier for the package index Graft node.
	IndexNodeID graft.ID = "adapter.package_index"

	// CacheNodeID is the unique identifier for the package index cache Graft node.
	CacheNodeID graft.ID = "adapter.package_index_cache"
)

func init() {
	graft.Register(graft.Node[ports.PackageIndex]{
		ID:        IndexNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.ConfigNodeID},
		Run: func(ctx context.Context) (ports.PackageIndex, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			if cfg.Index.Offline {
				return Offline{}, nil
			}
			return NewClient(cfg.Index.URL, cfg.Index.Timeout), nil
		},
	})

	graft.Register(graft.Node[ports.IndexCache]{
		ID:        CacheNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.ConfigNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.IndexCache, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewCache(cfg.Index.MemoryEntries, cfg.Abs(cfg.Paths.Cache), log)
		},
	})
}
