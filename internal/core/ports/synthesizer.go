package ports

import (
	"context"

	"go.trai.ch/lcr/internal/core/domain"
)

// Synthesizer derives a new environment definition from a base rule.
//
//go:generate mockgen -source=synthesizer.go -destination=mocks/mock_synthesizer.go -package=mocks
type Synthesizer interface {
	Synthesize(
		ctx context.Context,
		feature domain.CodeFeature,
		baseRuleID string,
		opts domain.SynthesisOptions,
	) (domain.EnvironmentDefinition, error)
}
