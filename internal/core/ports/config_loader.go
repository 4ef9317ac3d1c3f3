package ports

import "go.trai.ch/lcr/internal/core/domain"

// ConfigLoader defines the interface for loading the project configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load discovers lcr.yaml by walking up from cwd. When none is found the
	// defaults are returned with Root set to cwd.
	Load(cwd string) (*domain.Config, error)
}
