package txn

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lcr/internal/adapters/definitions"
	"go.trai.ch/lcr/internal/adapters/logger"
	"go.trai.ch/lcr/internal/core/domain"
	"go.trai.ch/lcr/internal/core/ports"
)

// NodeID is the unique identifier for the transaction manager Graft node.
const NodeID graft.ID = "engine.transactions"

func init() {
	graft.Register(graft.Node[ports.TransactionManager]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{definitions.NodeID, definitions.RuleSetNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.TransactionManager, error) {
			store, err := graft.Dep[ports.DefinitionStore](ctx)
			if err != nil {
				return nil, err
			}

			rules, err := graft.Dep[*domain.RuleSet](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(store, rules, log), nil
		},
	})
}
