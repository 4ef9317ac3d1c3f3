package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"go.trai.ch/lcr/internal/core/domain"
	"go.trai.ch/lcr/internal/ui/output"
	"go.trai.ch/lcr/internal/ui/style"
	"go.trai.ch/zerr"
)

// Create synthesizes an environment for a source file, persists it
// provisionally, builds its image and keeps the definition only when the
// build succeeds.
func (a *App) Create(ctx context.Context, path string, opts SynthesizeOptions) error {
	// 1. The daemon must be reachable before anything touches the disk
	if err := a.docker.Ping(ctx); err != nil {
		return err
	}

	// 2. Synthesize
	def, err := a.synthesize(ctx, path, opts)
	if err != nil {
		return err
	}
	id := def.ID
	if id == "" {
		id = domain.DefinitionID(def.Tag)
	}

	// 3. Provisional save
	defPath, err := a.txn.SaveProvisional(id, def)
	if err != nil {
		return err
	}
	a.logger.Info(fmt.Sprintf("saved definition %s to %s", id, defPath))

	// 4. Dockerfile
	imagesDir := a.cfg.Abs(a.cfg.Paths.Images)
	dockerfile, err := a.renderer.WriteFile(imagesDir, def)
	if err != nil {
		a.txn.Rollback(id)
		return err
	}

	// 5. Build, then reconcile the transaction with the outcome
	if err := a.docker.Build(ctx, def.Tag, dockerfile, imagesDir, a.stdout, a.stderr); err != nil {
		a.txn.Rollback(id)
		if rmErr := os.Remove(dockerfile); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			a.logger.Warn("failed to remove " + dockerfile + ": " + rmErr.Error())
		}
		return err
	}

	a.txn.Commit(id)
	a.logger.Info(fmt.Sprintf("%s created environment %s (%s)", style.Check, def.Name, def.Tag))
	return nil
}

// Render prints, or writes into the images directory, the Dockerfile of a
// stored definition. The definition is found by id or tag.
func (a *App) Render(_ context.Context, ref string, write bool) error {
	def, err := a.findDefinition(ref)
	if err != nil {
		return err
	}

	if write {
		path, err := a.renderer.WriteFile(a.cfg.Abs(a.cfg.Paths.Images), def)
		if err != nil {
			return err
		}
		a.logger.Info("wrote " + path)
		return nil
	}

	content, err := a.renderer.Render(def)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(a.stdout, content)
	return err
}

// Definitions lists the stored environment definitions.
func (a *App) Definitions(opts OutputOptions) error {
	defs, err := a.store.Load()
	if err != nil {
		return err
	}
	if opts.JSON {
		if defs == nil {
			defs = []domain.EnvironmentDefinition{}
		}
		return a.writeJSON(defs)
	}

	rows := make([][]string, 0, len(defs))
	for _, d := range defs {
		rows = append(rows, []string{d.ID, d.Tag, d.BaseImage, strconv.Itoa(len(d.PipPackages)), strconv.Itoa(len(d.AptPackages))})
	}
	return output.Table(a.stdout, []string{"ID", "TAG", "BASE", "PIP", "APT"}, rows)
}

func (a *App) findDefinition(ref string) (domain.EnvironmentDefinition, error) {
	defs, err := a.store.Load()
	if err != nil {
		return domain.EnvironmentDefinition{}, err
	}
	for _, d := range defs {
		if d.ID == ref || d.Tag == ref {
			return d, nil
		}
	}
	return domain.EnvironmentDefinition{}, zerr.With(domain.ErrDefinitionNotFound, "definition", ref)
}

// Learn records a user mapping for an import name.
func (a *App) Learn(name string, pip, apt []string) error {
	mapping := domain.PackageMapping{Pip: pip, Apt: apt}
	if mapping.Pip == nil {
		mapping.Pip = []string{}
	}
	if mapping.Apt == nil {
		mapping.Apt = []string{}
	}
	if err := a.knowledge.SaveUserKnowledge(name, mapping); err != nil {
		return err
	}
	a.logger.Info(fmt.Sprintf("learned %s %s pip=%v apt=%v", name, style.Arrow, mapping.Pip, mapping.Apt))
	return nil
}
