package ports

import "go.trai.ch/lcr/internal/core/domain"

// TransactionManager persists definitions provisionally and reconciles them
// with the outcome of the image build.
//
//go:generate mockgen -source=transaction.go -destination=mocks/mock_transaction.go -package=mocks
type TransactionManager interface {
	// SaveProvisional writes def, activates it as a rule and marks it pending.
	SaveProvisional(id string, def domain.EnvironmentDefinition) (string, error)

	// Commit makes a pending definition permanent.
	Commit(id string)

	// Rollback removes every trace of a pending definition.
	Rollback(id string)

	State(id string) domain.TxState
	IsPending(id string) bool
}
