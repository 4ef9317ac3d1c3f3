package app

import (
	"context"
	"fmt"
	"path/filepath"

	"go.trai.ch/lcr/internal/core/domain"
	"go.trai.ch/lcr/internal/ui/output"
	"go.trai.ch/zerr"
)

// RunOptions configuration for the Run method.
type RunOptions struct {
	// Runtime forces an image rule by id instead of selecting one.
	Runtime   string
	DataDir   string
	OutputDir string
}

// Run executes a script in its selected runtime and records the outcome.
//
//nolint:cyclop // orchestration function
func (a *App) Run(ctx context.Context, script string, opts RunOptions) error {
	// 1. Pick the runtime
	var rule domain.ImageRule
	if opts.Runtime != "" {
		r, ok := a.rules.Get(opts.Runtime)
		if !ok {
			return zerr.With(domain.ErrRuleNotFound, "rule_id", opts.Runtime)
		}
		rule = r
	} else {
		feature, err := a.extract(ctx, script)
		if err != nil {
			return err
		}
		rule = a.selector.Select(feature.SearchTerms(), feature.VersionHint).Rule
	}

	// 2. The daemon must be reachable before the output directory is created
	if err := a.docker.Ping(ctx); err != nil {
		return err
	}

	// 3. Plan mounts and output
	cfg, err := a.planner.Plan(rule, script, domain.RunOptions{
		DataDir:   opts.DataDir,
		OutputDir: opts.OutputDir,
	})
	if err != nil {
		return err
	}

	// 4. Execute
	a.logger.Info(fmt.Sprintf("running %s in %s (%s)", cfg.ScriptName, cfg.RuntimeName, cfg.Image))
	runErr := a.docker.Run(ctx, cfg, a.stdout, a.stderr)

	// 5. Record
	status := domain.RunStatusSuccess
	if runErr != nil {
		status = domain.RunStatusFailed
	}
	if _, err := a.history.Append(domain.HistoryRecord{
		ScriptPath:  scriptHostPath(cfg),
		RuntimeName: cfg.RuntimeName,
		ImageTag:    cfg.Image,
		OutputDir:   cfg.HostWorkDir,
		Status:      status,
	}); err != nil {
		a.logger.Error(err)
	}

	if runErr != nil {
		return runErr
	}
	a.logger.Info("results in " + cfg.HostWorkDir)
	return nil
}

// History lists the recorded runs, newest first.
func (a *App) History(opts OutputOptions) error {
	records, err := a.history.List()
	if err != nil {
		return err
	}
	if opts.JSON {
		return a.writeJSON(records)
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{r.Timestamp, r.Status, r.RuntimeName, r.ScriptPath, r.OutputDir})
	}
	return output.Table(a.stdout, []string{"TIME", "STATUS", "RUNTIME", "SCRIPT", "OUTPUT"}, rows)
}

func scriptHostPath(cfg domain.RunConfig) string {
	for _, m := range cfg.Volumes {
		if m.Bind == domain.ContainerInputDir {
			return filepath.Join(m.Host, cfg.ScriptName)
		}
	}
	return cfg.ScriptName
}
