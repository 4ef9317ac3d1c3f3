// Package docker drives the docker CLI to probe the daemon, build images and
// run containers.
package docker

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"

	"github.com/creack/pty"
	"golang.org/x/term"
	"go.trai.ch/lcr/internal/core/domain"
	"go.trai.ch/lcr/internal/core/ports"
	"go.trai.ch/zerr"
)

// Client implements ports.ContainerRuntime.
type Client struct {
	binary string
	logger ports.Logger
	tty    bool
}

// New creates a Client invoking binary. An empty binary uses domain.DefaultDockerBinary.
func New(binary string, logger ports.Logger) *Client {
	if binary == "" {
		binary = domain.DefaultDockerBinary
	}
	return &Client{
		binary: binary,
		logger: logger,
		tty:    term.IsTerminal(int(os.Stdout.Fd())),
	}
}

// Ping checks that the daemon answers `docker info`.
func (c *Client) Ping(ctx context.Context) error {
	//nolint:gosec // binary comes from configuration
	cmd := exec.CommandContext(ctx, c.binary, "info")
	if err := cmd.Run(); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrDockerUnavailable, err.Error()), "binary", c.binary)
	}
	return nil
}

// ImageExists reports whether `docker image inspect tag` succeeds.
func (c *Client) ImageExists(ctx context.Context, tag string) (bool, error) {
	//nolint:gosec // binary comes from configuration
	cmd := exec.CommandContext(ctx, c.binary, "image", "inspect", tag)
	err := cmd.Run()
	if err == nil {
		return true, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return false, nil
	}
	return false, zerr.With(zerr.Wrap(domain.ErrDockerUnavailable, err.Error()), "binary", c.binary)
}

// Build runs `docker build -t tag -f dockerfile contextDir`.
func (c *Client) Build(ctx context.Context, tag, dockerfile, contextDir string, stdout, stderr io.Writer) error {
	c.logger.Info("building image " + tag)

	//nolint:gosec // arguments are built from the definition being built
	cmd := exec.CommandContext(ctx, c.binary, domain.BuildArgs(tag, dockerfile, contextDir)...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		return withExitCode(zerr.With(zerr.Wrap(domain.ErrBuildFailed, err.Error()), "tag", tag), err)
	}
	return nil
}

// Run executes the container described by cfg. When lcr itself writes to a
// terminal, output is streamed through a pseudo-terminal so the script sees
// line buffering; stdout and stderr are merged in that case.
func (c *Client) Run(ctx context.Context, cfg domain.RunConfig, stdout, stderr io.Writer) error {
	//nolint:gosec // arguments are built from the planned run configuration
	cmd := exec.CommandContext(ctx, c.binary, domain.RunArgs(cfg)...)

	err := errNoPTY
	if c.tty {
		err = runWithPTY(cmd, stdout)
	}
	if errors.Is(err, errNoPTY) {
		//nolint:gosec // same command, started without a terminal
		cmd = exec.CommandContext(ctx, c.binary, domain.RunArgs(cfg)...)
		cmd.Stdout = stdout
		cmd.Stderr = stderr
		err = cmd.Run()
	}

	if err != nil {
		return withExitCode(zerr.With(zerr.Wrap(domain.ErrRunFailed, err.Error()), "image", cfg.Image), err)
	}
	return nil
}

var errNoPTY = errors.New("pseudo-terminal unavailable")

func runWithPTY(cmd *exec.Cmd, stdout io.Writer) error {
	ptmx, err := pty.Start(cmd)
	if err != nil {
		if cmd.Process == nil {
			return errNoPTY
		}
		return err
	}

	ioDone := make(chan struct{})
	go func() {
		defer close(ioDone)
		_, _ = io.Copy(stdout, ptmx)
	}()

	err = cmd.Wait()
	<-ioDone
	_ = ptmx.Close()
	return err
}

func withExitCode(err, cause error) error {
	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(cause, &exitErr) {
		exitCode = exitErr.ExitCode()
	}
	return zerr.With(err, "exit_code", exitCode)
}
