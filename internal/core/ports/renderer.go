package ports

import "go.trai.ch/lcr/internal/core/domain"

// Renderer turns an environment definition into a Dockerfile.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	Render(def domain.EnvironmentDefinition) (string, error)

	// WriteFile renders def into dir and returns the Dockerfile path.
	WriteFile(dir string, def domain.EnvironmentDefinition) (string, error)
}
