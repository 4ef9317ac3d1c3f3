// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/lcr/internal/core/domain"
)

// FeatureExtractor derives a CodeFeature from Python source.
//
//go:generate mockgen -source=extractor.go -destination=mocks/mock_extractor.go -package=mocks
type FeatureExtractor interface {
	// Extract analyzes source text. Unparseable input yields VersionUnknown,
	// never an error; errors are reserved for cancellation.
	Extract(ctx context.Context, code []byte) (domain.CodeFeature, error)

	// ExtractFile reads and analyzes the file at path.
	ExtractFile(ctx context.Context, path string) (domain.CodeFeature, error)
}
