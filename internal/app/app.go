// Package app implements the application layer for lcr.
package app

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"go.trai.ch/lcr/internal/core/domain"
	"go.trai.ch/lcr/internal/core/ports"
	"go.trai.ch/zerr"
)

// Deps are the collaborators the use cases are built from.
type Deps struct {
	Config      *domain.Config
	Logger      ports.Logger
	Rules       *domain.RuleSet
	Extractor   ports.FeatureExtractor
	Knowledge   ports.KnowledgeBase
	Resolver    ports.PackageResolver
	Selector    ports.RuntimeSelector
	Synthesizer ports.Synthesizer
	Txn         ports.TransactionManager
	Store       ports.DefinitionStore
	Renderer    ports.Renderer
	Docker      ports.ContainerRuntime
	Planner     ports.RunPlanner
	History     ports.HistoryStore
}

// App represents the main application logic.
type App struct {
	cfg         *domain.Config
	logger      ports.Logger
	rules       *domain.RuleSet
	extractor   ports.FeatureExtractor
	knowledge   ports.KnowledgeBase
	resolver    ports.PackageResolver
	selector    ports.RuntimeSelector
	synthesizer ports.Synthesizer
	txn         ports.TransactionManager
	store       ports.DefinitionStore
	renderer    ports.Renderer
	docker      ports.ContainerRuntime
	planner     ports.RunPlanner
	history     ports.HistoryStore

	stdout io.Writer
	stderr io.Writer
}

// New creates a new App instance.
func New(d Deps) *App {
	cfg := d.Config
	if cfg == nil {
		def := domain.DefaultConfig()
		cfg = &def
	}
	return &App{
		cfg:         cfg,
		logger:      d.Logger,
		rules:       d.Rules,
		extractor:   d.Extractor,
		knowledge:   d.Knowledge,
		resolver:    d.Resolver,
		selector:    d.Selector,
		synthesizer: d.Synthesizer,
		txn:         d.Txn,
		store:       d.Store,
		renderer:    d.Renderer,
		docker:      d.Docker,
		planner:     d.Planner,
		history:     d.History,
		stdout:      os.Stdout,
		stderr:      os.Stderr,
	}
}

// WithOutput redirects report and container output.
// This is primarily used for testing.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	return a
}

// OutputOptions select the report format.
type OutputOptions struct {
	JSON bool
}

func (a *App) extract(ctx context.Context, path string) (domain.CodeFeature, error) {
	feature, err := a.extractor.ExtractFile(ctx, path)
	if err != nil {
		return domain.CodeFeature{}, zerr.Wrap(err, "failed to analyze source")
	}
	return feature, nil
}

func (a *App) writeJSON(v any) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
