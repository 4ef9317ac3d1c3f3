package selector

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lcr/internal/adapters/config"
	"go.trai.ch/lcr/internal/adapters/definitions"
	"go.trai.ch/lcr/internal/adapters/logger"
	"go.trai.ch/lcr/internal/core/domain"
	"go.trai.ch/lcr/internal/core/ports"
)

// NodeID is the unique identifier for the runtime selector Graft node.
const NodeID graft.ID = "engine.selector"

func init() {
	graft.Register(graft.Node[ports.RuntimeSelector]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{definitions.RuleSetNodeID, config.ConfigNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.RuntimeSelector, error) {
			rules, err := graft.Dep[*domain.RuleSet](ctx)
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

			return New(rules, cfg.Scoring, log), nil
		},
	})
}
