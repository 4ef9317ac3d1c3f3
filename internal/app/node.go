package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lcr/internal/adapters/config"      //nolint:depguard // Wired in app layer
	"go.trai.ch/lcr/internal/adapters/definitions" //nolint:depguard // Wired in app layer
	"go.trai.ch/lcr/internal/adapters/docker"      //nolint:depguard // Wired in app layer
	"go.trai.ch/lcr/internal/adapters/dockerfile"  //nolint:depguard // Wired in app layer
	"go.trai.ch/lcr/internal/adapters/history"     //nolint:depguard // Wired in app layer
	"go.trai.ch/lcr/internal/adapters/knowledge"   //nolint:depguard // Wired in app layer
	"go.trai.ch/lcr/internal/adapters/logger"      //nolint:depguard // Wired in app layer
	"go.trai.ch/lcr/internal/adapters/pyast"       //nolint:depguard // Wired in app layer
	"go.trai.ch/lcr/internal/core/domain"
	"go.trai.ch/lcr/internal/core/ports"
	"go.trai.ch/lcr/internal/engine/resolver"
	"go.trai.ch/lcr/internal/engine/runplan"
	"go.trai.ch/lcr/internal/engine/selector"
	"go.trai.ch/lcr/internal/engine/synth"
	"go.trai.ch/lcr/internal/engine/txn"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.ConfigNodeID,
			logger.NodeID,
			definitions.RuleSetNodeID,
			definitions.NodeID,
			pyast.NodeID,
			knowledge.NodeID,
			resolver.NodeID,
			selector.NodeID,
			synth.NodeID,
			txn.NodeID,
			dockerfile.NodeID,
			docker.NodeID,
			runplan.NodeID,
			history.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			config.ConfigNodeID,
		},
		Run: runComponentsNode,
	})
}

//nolint:cyclop,funlen // one dependency per collaborator
func runAppNode(ctx context.Context) (*App, error) {
	var (
		d   Deps
		err error
	)

	if d.Config, err = graft.Dep[*domain.Config](ctx); err != nil {
		return nil, err
	}
	if d.Logger, err = graft.Dep[ports.Logger](ctx); err != nil {
		return nil, err
	}
	if d.Rules, err = graft.Dep[*domain.RuleSet](ctx); err != nil {
		return nil, err
	}
	if d.Store, err = graft.Dep[ports.DefinitionStore](ctx); err != nil {
		return nil, err
	}
	if d.Extractor, err = graft.Dep[ports.FeatureExtractor](ctx); err != nil {
		return nil, err
	}
	if d.Knowledge, err = graft.Dep[ports.KnowledgeBase](ctx); err != nil {
		return nil, err
	}
	if d.Resolver, err = graft.Dep[ports.PackageResolver](ctx); err != nil {
		return nil, err
	}
	if d.Selector, err = graft.Dep[ports.RuntimeSelector](ctx); err != nil {
		return nil, err
	}
	if d.Synthesizer, err = graft.Dep[ports.Synthesizer](ctx); err != nil {
		return nil, err
	}
	if d.Txn, err = graft.Dep[ports.TransactionManager](ctx); err != nil {
		return nil, err
	}
	if d.Renderer, err = graft.Dep[ports.Renderer](ctx); err != nil {
		return nil, err
	}
	if d.Docker, err = graft.Dep[ports.ContainerRuntime](ctx); err != nil {
		return nil, err
	}
	if d.Planner, err = graft.Dep[ports.RunPlanner](ctx); err != nil {
		return nil, err
	}
	if d.History, err = graft.Dep[ports.HistoryStore](ctx); err != nil {
		return nil, err
	}

	return New(d), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
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

	return NewComponents(app, log, cfg), nil
}
