// Package selector scores the active image rules against extracted code features.
package selector

import (
	"fmt"
	"slices"

	"go.trai.ch/lcr/internal/core/domain"
	"go.trai.ch/lcr/internal/core/ports"
)

// Selector implements ports.RuntimeSelector over a shared rule set.
type Selector struct {
	rules    *domain.RuleSet
	scoring  domain.Scoring
	logger   ports.Logger
	fallback domain.ImageRule
}

// New creates a Selector. The fallback is used when the rule set is empty.
func New(rules *domain.RuleSet, scoring domain.Scoring, logger ports.Logger) *Selector {
	return &Selector{
		rules:    rules,
		scoring:  scoring,
		logger:   logger,
		fallback: domain.FallbackRule(),
	}
}

type candidate struct {
	rule    domain.ImageRule
	score   int
	reasons []string
}

// Select returns the highest scoring rule. Ties keep the rule declared first.
// When no rule exceeds the baseline the last declared rule is returned with
// Fallback set.
func (s *Selector) Select(terms []string, versionHint string) domain.Selection {
	rules := s.rules.All()
	scores := make(map[string]int, len(rules))

	if len(rules) == 0 {
		s.logger.Warn("no image rules are active; falling back to " + s.fallback.ID)
		return domain.Selection{
			Rule:     s.fallback,
			Reasons:  []string{"no active image rules"},
			Scores:   scores,
			Fallback: true,
		}
	}

	termSet := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		termSet[t] = struct{}{}
	}

	var best *candidate
	for _, rule := range rules {
		c := s.score(rule, termSet, versionHint)
		scores[rule.ID] = c.score
		if c.score <= s.scoring.Baseline {
			continue
		}
		if best == nil || c.score > best.score {
			best = &c
		}
	}

	if best == nil {
		last := rules[len(rules)-1]
		s.logger.Warn(fmt.Sprintf("no image rule is compatible with version %s; falling back to %s", versionHint, last.ID))
		return domain.Selection{
			Rule:     last,
			Score:    scores[last.ID],
			Reasons:  []string{"no compatible rule; using the most generic declared runtime"},
			Scores:   scores,
			Fallback: true,
		}
	}

	return domain.Selection{
		Rule:    best.rule,
		Score:   best.score,
		Reasons: best.reasons,
		Scores:  scores,
	}
}

func (s *Selector) score(rule domain.ImageRule, terms map[string]struct{}, hint string) candidate {
	c := candidate{rule: rule}
	add := func(points int, reason string) {
		c.score += points
		c.reasons = append(c.reasons, fmt.Sprintf("%+d %s", points, reason))
	}

	codeMajor, codeKnown := domain.MajorVersion(hint)
	ruleMajor, ruleKnown := domain.MajorVersion(rule.Version)
	switch {
	case codeKnown && ruleKnown && codeMajor == ruleMajor:
		add(s.scoring.MajorMatch, fmt.Sprintf("python %c matches the code", ruleMajor))
	case codeKnown && ruleKnown:
		add(s.scoring.MajorMismatch, fmt.Sprintf("python %c is incompatible with python %c code", ruleMajor, codeMajor))
	}

	if hint != domain.VersionUnknown && rule.Version == hint {
		add(s.scoring.ExactVersion, "exact version "+hint)
	}

	criteria := domain.SortedSet(slices.Concat(rule.Libs, rule.Triggers))
	for _, term := range criteria {
		if _, ok := terms[term]; ok {
			add(s.scoring.PerMatch, "uses "+term)
		}
	}
	for _, lib := range rule.Libs {
		if _, ok := terms[lib]; !ok {
			add(s.scoring.PerMissing, "does not use "+lib)
		}
	}
	for _, trigger := range rule.Triggers {
		if _, ok := terms[trigger]; ok {
			add(s.scoring.Trigger, "trigger "+trigger)
			break
		}
	}

	if len(c.reasons) == 0 {
		c.reasons = []string{"no specific evidence"}
	}
	return c
}
