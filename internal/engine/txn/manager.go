// Package txn tracks provisional environment definitions until the image
// built from them succeeds or fails.
package txn

import (
	"sync"

	"go.trai.ch/lcr/internal/core/domain"
	"go.trai.ch/lcr/internal/core/ports"
	"go.trai.ch/zerr"
)

// Manager implements ports.TransactionManager.
// Saves for the same id are serialized; different ids may be pending at once.
type Manager struct {
	store  ports.DefinitionStore
	rules  *domain.RuleSet
	logger ports.Logger

	mu     sync.Mutex
	states map[string]domain.TxState
}

// New creates a Manager writing through store and activating rules in rules.
func New(store ports.DefinitionStore, rules *domain.RuleSet, logger ports.Logger) *Manager {
	return &Manager{
		store:  store,
		rules:  rules,
		logger: logger,
		states: make(map[string]domain.TxState),
	}
}

// SaveProvisional persists def under id, activates it as an image rule and
// marks it pending. It returns the path of the written file. An id that is an
// active rule or already has a file in the store, even an unreadable one, is a
// conflict.
func (m *Manager) SaveProvisional(id string, def domain.EnvironmentDefinition) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.rules.Has(id) {
		return "", zerr.With(domain.ErrDefinitionConflict, "id", id)
	}

	exists, err := m.store.Exists(id)
	if err != nil {
		return "", err
	}
	if exists {
		return "", zerr.With(zerr.With(domain.ErrDefinitionConflict, "id", id), "path", m.store.Path(id))
	}

	def.ID = id
	if err := domain.Validate(def); err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrInvalidDefinition.Error()), "id", id)
	}

	path, err := m.store.Write(id, def)
	if err != nil {
		return "", err
	}

	if err := m.rules.Add(domain.RuleFromDefinition(def)); err != nil {
		if delErr := m.store.Delete(id); delErr != nil {
			m.logger.Error(delErr)
		}
		return "", err
	}

	m.states[id] = domain.TxPending
	return path, nil
}

// Commit makes a pending definition permanent. Committing an id that is not
// pending only logs a warning.
func (m *Manager) Commit(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.states[id] != domain.TxPending {
		m.logger.Warn("commit of " + id + " ignored: no pending definition")
		return
	}
	m.states[id] = domain.TxCommitted
}

// Rollback removes the definition file and the active rule of a pending id.
// Rolling back an id that is not pending only logs a warning, which makes
// repeated rollbacks harmless.
func (m *Manager) Rollback(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.states[id] != domain.TxPending {
		m.logger.Warn("rollback of " + id + " ignored: no pending definition")
		return
	}

	if err := m.store.Delete(id); err != nil {
		m.logger.Error(err)
	}
	m.rules.Remove(id)
	m.states[id] = domain.TxRolledBack
}

// State returns the lifecycle state of id.
func (m *Manager) State(id string) domain.TxState {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.states[id]; ok {
		return s
	}
	return domain.TxAbsent
}

// IsPending reports whether id awaits a commit or rollback.
func (m *Manager) IsPending(id string) bool {
	return m.State(id) == domain.TxPending
}
