package ports

import (
	"context"

	"go.trai.ch/lcr/internal/core/domain"
)

// PackageIndex queries an external package index for a project.
//
//go:generate mockgen -source=package_index.go -destination=mocks/mock_package_index.go -package=mocks
type PackageIndex interface {
	// Lookup returns the index entry for name. A missing project is reported
	// with Found set to false and a nil error.
	Lookup(ctx context.Context, name string) (domain.IndexEntry, error)
}

// IndexCache memoizes package index answers for the lifetime of the process.
type IndexCache interface {
	Get(name string) (domain.IndexEntry, bool)
	Put(name string, entry domain.IndexEntry)
}
