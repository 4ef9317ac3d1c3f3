// Package main is the entry point for the lcr environment engine.
package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"github.com/joho/godotenv"
	"go.trai.ch/lcr/cmd/lcr/commands"
	"go.trai.ch/lcr/internal/app"
	_ "go.trai.ch/lcr/internal/wiring"
)

func main() {
	os.Exit(run())
}

func run(opts ...func(*app.App)) int {
	// 0. Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// 1. Environment overrides from .env
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		_, _ = os.Stderr.WriteString("Error: failed to load .env: " + err.Error() + "\n")
		return 1
	}

	// 2. Initialize application components
	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		// Write directly to stderr
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}

	// Apply options
	for _, opt := range opts {
		opt(components.App)
	}

	// 3. Interface - CLI
	cli := commands.New(components.App, components.Logger)

	// 4. Execution
	if err := cli.Execute(ctx); err != nil {
		components.Logger.Error(err)
		return 1
	}
	return 0
}
