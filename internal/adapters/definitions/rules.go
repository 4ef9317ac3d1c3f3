package definitions

import (
	"go.trai.ch/lcr/internal/core/domain"
	"go.trai.ch/lcr/internal/core/ports"
)

// ActiveRules builds the active rule set: the configured rules first, then one
// rule per stored definition. Definitions whose id is already taken are
// skipped with a warning.
func ActiveRules(rules []domain.ImageRule, store ports.DefinitionStore, logger ports.Logger) (*domain.RuleSet, error) {
	rs, err := domain.NewRuleSet(rules...)
	if err != nil {
		return nil, err
	}

	defs, err := store.Load()
	if err != nil {
		return nil, err
	}

	for _, def := range defs {
		if rs.Has(def.ID) {
			logger.Warn("definition " + def.ID + " shadows an existing rule; skipped")
			continue
		}
		if err := rs.Add(domain.RuleFromDefinition(def)); err != nil {
			logger.Warn(err.Error())
		}
	}
	return rs, nil
}
