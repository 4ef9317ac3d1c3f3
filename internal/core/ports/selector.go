package ports

import "go.trai.ch/lcr/internal/core/domain"

// RuntimeSelector picks the best image rule for a set of search terms.
//
//go:generate mockgen -source=selector.go -destination=mocks/mock_selector.go -package=mocks
type RuntimeSelector interface {
	Select(terms []string, versionHint string) domain.Selection
}
