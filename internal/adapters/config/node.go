package config

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/lcr/internal/adapters/logger"
	"go.trai.ch/lcr/internal/core/domain"
	"go.trai.ch/lcr/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the configuration loader Graft node.
	NodeID graft.ID = "adapter.config_loader"

	// ConfigNodeID is the unique identifier for the loaded configuration Graft node.
	ConfigNodeID graft.ID = "adapter.config"
)

func init() {
	graft.Register(graft.Node[ports.ConfigLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ConfigLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log), nil
		},
	})

	graft.Register(graft.Node[*domain.Config]{
		ID:        ConfigNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{NodeID},
		Run: func(ctx context.Context) (*domain.Config, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}
			cwd, err := os.Getwd()
			if err != nil {
				return nil, err
			}
			return loader.Load(cwd)
		},
	})
}
