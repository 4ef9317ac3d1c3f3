package ports

import "go.trai.ch/lcr/internal/core/domain"

// HistoryStore records finished runs.
//
//go:generate mockgen -source=history.go -destination=mocks/mock_history.go -package=mocks
type HistoryStore interface {
	// Append stores rec, assigning an id when it has none, and returns the stored record.
	Append(rec domain.HistoryRecord) (domain.HistoryRecord, error)

	// List returns the recorded runs, newest first.
	List() ([]domain.HistoryRecord, error)
}
