// Package resolver maps Python import names to installable packages.
package resolver

import (
	"context"
	"slices"
	"strings"

	"go.trai.ch/lcr/internal/core/domain"
	"go.trai.ch/lcr/internal/core/ports"
	"go.trai.ch/zerr"
)

// ReasonStdlib is recorded for standard library imports.
const ReasonStdlib = "standard library"

// Resolver implements ports.PackageResolver. Index answers are memoized in
// the injected cache; failed lookups are not.
type Resolver struct {
	knowledge ports.KnowledgeBase
	index     ports.PackageIndex
	cache     ports.IndexCache
	logger    ports.Logger
	aptPrefix string
}

// New creates a Resolver. An empty aptPrefix defaults to domain.DefaultAptPrefix.
func New(
	knowledge ports.KnowledgeBase,
	index ports.PackageIndex,
	cache ports.IndexCache,
	logger ports.Logger,
	aptPrefix string,
) *Resolver {
	if aptPrefix == "" {
		aptPrefix = domain.DefaultAptPrefix
	}
	return &Resolver{
		knowledge: knowledge,
		index:     index,
		cache:     cache,
		logger:    logger,
		aptPrefix: aptPrefix,
	}
}

type accumulator struct {
	pip        []string
	apt        []string
	unresolved []string
	reasons    map[string]string
}

// Resolve maps every import name to pip or apt packages, or files it as
// unresolved. Each processed name receives exactly one reason.
func (r *Resolver) Resolve(ctx context.Context, imports []string) (domain.PackageResolution, error) {
	acc := &accumulator{reasons: make(map[string]string)}
	table := r.knowledge.Table()

	for _, name := range domain.SortedSet(imports) {
		if err := ctx.Err(); err != nil {
			return domain.PackageResolution{}, zerr.Wrap(err, "resolution cancelled")
		}

		if domain.IsStdlib(name) {
			acc.reasons[name] = ReasonStdlib
			continue
		}

		if mapping, ok := table.Lookup(name); ok {
			r.applyMapping(acc, name, mapping)
			continue
		}

		r.resolveFromIndex(ctx, acc, name)
	}

	return domain.PackageResolution{
		Pip:        domain.SortedSet(acc.pip),
		Apt:        domain.SortedSet(acc.apt),
		Unresolved: domain.SortedSet(acc.unresolved),
		Reasons:    acc.reasons,
	}, nil
}

func (r *Resolver) applyMapping(acc *accumulator, name string, m domain.PackageMapping) {
	source := "mapping table"
	if m.Source != "" {
		source = m.Source
	}

	if slices.ContainsFunc(m.Apt, domain.IsRuntimePackage) {
		acc.apt = append(acc.apt, m.Apt...)
		acc.reasons[name] = source + ": provided by system package " + strings.Join(m.Apt, ", ")
		return
	}

	if len(m.Pip) == 0 && len(m.Apt) == 0 {
		acc.unresolved = append(acc.unresolved, name)
		acc.reasons[name] = source + ": mapping declares no packages"
		return
	}

	acc.pip = append(acc.pip, m.Pip...)
	acc.apt = append(acc.apt, m.Apt...)
	acc.reasons[name] = source + ": " + describe(m)
}

func describe(m domain.PackageMapping) string {
	parts := make([]string, 0, 2)
	if len(m.Pip) > 0 {
		parts = append(parts, "pip "+strings.Join(m.Pip, ", "))
	}
	if len(m.Apt) > 0 {
		parts = append(parts, "apt "+strings.Join(m.Apt, ", "))
	}
	return strings.Join(parts, "; ")
}

func (r *Resolver) resolveFromIndex(ctx context.Context, acc *accumulator, name string) {
	var (
		placeholder string
		failed      bool
	)

	for _, candidate := range variants(name) {
		entry, err := r.lookup(ctx, candidate)
		if err != nil {
			failed = true
			continue
		}
		if !entry.Found {
			continue
		}

		if entry.Placeholder {
			confirmed, ok := r.followSuggestion(ctx, entry)
			if !ok {
				placeholder = candidate
				continue
			}
			entry = confirmed
		}

		pkg := r.aptPrefix + domain.DistroName(entry.Name)
		acc.apt = append(acc.apt, pkg)
		acc.reasons[name] = "package index: found " + entry.Name + ", mapped to " + pkg
		return
	}

	acc.unresolved = append(acc.unresolved, name)
	switch {
	case placeholder != "":
		acc.reasons[name] = "package index: " + placeholder + " is a placeholder project"
	case failed:
		acc.reasons[name] = "package index unavailable"
	default:
		acc.reasons[name] = "not found in mapping table or package index"
	}
}

// followSuggestion looks up the project a placeholder redirects to.
func (r *Resolver) followSuggestion(ctx context.Context, placeholder domain.IndexEntry) (domain.IndexEntry, bool) {
	if placeholder.Suggestion == "" || domain.NormalizeName(placeholder.Suggestion) == domain.NormalizeName(placeholder.Name) {
		return domain.IndexEntry{}, false
	}

	entry, err := r.lookup(ctx, placeholder.Suggestion)
	if err != nil || !entry.Found || entry.Placeholder {
		return domain.IndexEntry{}, false
	}
	return entry, true
}

func (r *Resolver) lookup(ctx context.Context, name string) (domain.IndexEntry, error) {
	if entry, ok := r.cache.Get(name); ok {
		return entry, nil
	}

	entry, err := r.index.Lookup(ctx, name)
	if err != nil {
		r.logger.Warn("package index lookup for " + name + " failed: " + err.Error())
		return domain.IndexEntry{}, err
	}

	r.cache.Put(name, entry)
	return entry, nil
}

// variants returns name followed by its hyphen/underscore spelling when it differs.
func variants(name string) []string {
	var alt string
	switch {
	case strings.Contains(name, "_"):
		alt = strings.ReplaceAll(name, "_", "-")
	case strings.Contains(name, "-"):
		alt = strings.ReplaceAll(name, "-", "_")
	}
	if alt == "" || alt == name {
		return []string{name}
	}
	return []string{name, alt}
}
