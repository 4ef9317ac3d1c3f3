package ports

import (
	"context"
	"io"

	"go.trai.ch/lcr/internal/core/domain"
)

// ContainerRuntime builds images and runs containers.
//
//go:generate mockgen -source=container.go -destination=mocks/mock_container.go -package=mocks
type ContainerRuntime interface {
	// Ping fails with domain.ErrDockerUnavailable when the daemon is unreachable.
	Ping(ctx context.Context) error

	ImageExists(ctx context.Context, tag string) (bool, error)

	Build(ctx context.Context, tag, dockerfile, contextDir string, stdout, stderr io.Writer) error

	Run(ctx context.Context, cfg domain.RunConfig, stdout, stderr io.Writer) error
}
