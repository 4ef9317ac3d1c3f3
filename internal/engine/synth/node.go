package synth

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lcr/internal/adapters/definitions"
	"go.trai.ch/lcr/internal/adapters/knowledge"
	"go.trai.ch/lcr/internal/adapters/logger"
	"go.trai.ch/lcr/internal/core/domain"
	"go.trai.ch/lcr/internal/core/ports"
	"go.trai.ch/lcr/internal/engine/resolver"
)

// NodeID is the unique identifier for the environment synthesizer Graft node.
const NodeID graft.ID = "engine.synthesizer"

func init() {
	graft.Register(graft.Node[ports.Synthesizer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			definitions.RuleSetNodeID,
			knowledge.NodeID,
			resolver.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (ports.Synthesizer, error) {
			rules, err := graft.Dep[*domain.RuleSet](ctx)
			if err != nil {
				return nil, err
			}

			kb, err := graft.Dep[ports.KnowledgeBase](ctx)
			if err != nil {
				return nil, err
			}

			res, err := graft.Dep[ports.PackageResolver](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(rules, kb, res, log), nil
		},
	})
}
