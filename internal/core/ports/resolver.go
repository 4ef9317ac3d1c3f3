package ports

import (
	"context"

	"go.trai.ch/lcr/internal/core/domain"
)

// PackageResolver maps import names to installable packages.
//
//go:generate mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type PackageResolver interface {
	Resolve(ctx context.Context, imports []string) (domain.PackageResolution, error)
}
