package ports

import "go.trai.ch/lcr/internal/core/domain"

// KnowledgeBase exposes the merged package mapping table.
//
//go:generate mockgen -source=knowledge.go -destination=mocks/mock_knowledge.go -package=mocks
type KnowledgeBase interface {
	// Table returns a snapshot of the merged mapping table.
	Table() domain.MappingTable

	// SaveUserKnowledge records a mapping in the user layer and merges it
	// into the live table.
	SaveUserKnowledge(name string, mapping domain.PackageMapping) error
}
