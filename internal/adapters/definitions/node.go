package definitions

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lcr/internal/adapters/config"
	"go.trai.ch/lcr/internal/adapters/logger"
	"go.trai.ch/lcr/internal/core/domain"
	"go.trai.ch/lcr/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the definition store Graft node.
	NodeID graft.ID = "adapter.definition_store"

	// RuleSetNodeID is the unique identifier for the active rule set Graft node.
	RuleSetNodeID graft.ID = "adapter.rule_set"
)

func init() {
	graft.Register(graft.Node[ports.DefinitionStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.ConfigNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.DefinitionStore, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewStore(cfg.Abs(cfg.Paths.Definitions), log), nil
		},
	})

	graft.Register(graft.Node[*domain.RuleSet]{
		ID:        RuleSetNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{NodeID, config.ConfigNodeID, logger.NodeID},
		Run: func(ctx context.Context) (*domain.RuleSet, error) {
			store, err := graft.Dep[ports.DefinitionStore](ctx)
			if err != nil {
				return nil, err
			}

			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return ActiveRules(cfg.ImageRules(), store, log)
		},
	})
}
