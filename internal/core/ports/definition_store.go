package ports

import "go.trai.ch/lcr/internal/core/domain"

// DefinitionStore persists environment definitions, one file per id.
//
//go:generate mockgen -source=definition_store.go -destination=mocks/mock_definition_store.go -package=mocks
type DefinitionStore interface {
	// Write stores def under id and returns the file path.
	// A failed write leaves no partial file behind.
	Write(id string, def domain.EnvironmentDefinition) (string, error)

	// Delete removes the definition stored under id.
	Delete(id string) error

	// Load reads every valid definition in the store, ordered by id.
	Load() ([]domain.EnvironmentDefinition, error)

	// Exists reports whether a file is stored under id, valid or not.
	Exists(id string) (bool, error)

	// Path returns the file path used for id.
	Path(id string) string
}
