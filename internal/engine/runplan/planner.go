// Package runplan prepares the container configuration for running a script.
package runplan

import (
	"io"
	"os"
	"path"
	"path/filepath"
	"time"

	"go.trai.ch/lcr/internal/core/domain"
	"go.trai.ch/lcr/internal/core/ports"
	"go.trai.ch/zerr"
)

// Planner implements ports.RunPlanner.
type Planner struct {
	resultsDir string
	logger     ports.Logger
	now        func() time.Time
}

// New creates a Planner. Runs without an explicit output directory are
// placed under resultsDir.
func New(resultsDir string, logger ports.Logger) *Planner {
	return &Planner{
		resultsDir: resultsDir,
		logger:     logger,
		now:        time.Now,
	}
}

// Plan validates the script, creates the run output directory with a
// snapshot of the script, and describes the mounts and command.
func (p *Planner) Plan(rule domain.ImageRule, script string, opts domain.RunOptions) (domain.RunConfig, error) {
	scriptPath, err := filepath.Abs(script)
	if err != nil {
		return domain.RunConfig{}, zerr.With(zerr.Wrap(err, domain.ErrScriptNotFound.Error()), "path", script)
	}
	if info, err := os.Stat(scriptPath); err != nil || info.IsDir() {
		return domain.RunConfig{}, zerr.With(domain.ErrScriptNotFound, "path", script)
	}

	inputDir := filepath.Dir(scriptPath)
	scriptName := filepath.Base(scriptPath)
	stamp := p.now().Format(domain.RunTimestampLayout)

	outputDir := filepath.Join(p.resultsDir, stamp)
	if opts.OutputDir != "" {
		base, err := filepath.Abs(opts.OutputDir)
		if err != nil {
			return domain.RunConfig{}, zerr.With(zerr.Wrap(err, domain.ErrOutputCreateFailed.Error()), "path", opts.OutputDir)
		}
		if base == inputDir {
			return domain.RunConfig{}, zerr.With(domain.ErrOutputCollision, "path", inputDir)
		}
		outputDir = filepath.Join(base, domain.RunDirPrefix+stamp)
	}

	if err := os.MkdirAll(outputDir, domain.DirPerm); err != nil {
		return domain.RunConfig{}, zerr.With(zerr.Wrap(err, domain.ErrOutputCreateFailed.Error()), "path", outputDir)
	}

	if err := copyFile(scriptPath, filepath.Join(outputDir, domain.SnapshotFileName)); err != nil {
		p.logger.Warn("failed to create source snapshot: " + err.Error())
	}

	volumes := []domain.Mount{
		{Host: inputDir, Bind: domain.ContainerInputDir, Mode: "ro"},
		{Host: outputDir, Bind: domain.ContainerOutputDir, Mode: "rw"},
	}
	if opts.DataDir != "" {
		if dataDir, err := filepath.Abs(opts.DataDir); err == nil {
			if info, err := os.Stat(dataDir); err == nil && info.IsDir() {
				volumes = append(volumes, domain.Mount{Host: dataDir, Bind: domain.ContainerDataDir, Mode: "ro"})
			}
		}
	}

	target := path.Join(domain.ContainerInputDir, scriptName)
	command := []string{target}
	if rule.PrependPython {
		command = []string{"python", target}
	}

	return domain.RunConfig{
		Image:       rule.Image,
		RuntimeName: rule.Name,
		Volumes:     volumes,
		WorkingDir:  domain.ContainerOutputDir,
		Command:     command,
		ScriptName:  scriptName,
		HostWorkDir: outputDir,
	}, nil
}

func copyFile(src, dst string) error {
	//nolint:gosec // src is the script the user asked to run
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		_ = in.Close()
	}()

	//nolint:gosec // dst is inside the run output directory
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, domain.FilePerm)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
