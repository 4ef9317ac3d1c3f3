// Package synth derives new environment definitions from a base image rule
// and the packages a script needs on top of it.
package synth

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/lcr/internal/core/domain"
	"go.trai.ch/lcr/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultEnv are the environment variables set in every synthesized image.
func DefaultEnv() map[string]string {
	return map[string]string{
		"PYTHONUNBUFFERED":        "1",
		"PYTHONDONTWRITEBYTECODE": "1",
	}
}

// Synthesizer implements ports.Synthesizer.
type Synthesizer struct {
	rules     *domain.RuleSet
	knowledge ports.KnowledgeBase
	resolver  ports.PackageResolver
	logger    ports.Logger
	fallback  domain.ImageRule
}

// New creates a Synthesizer. Unknown base ids fall back to domain.FallbackRule.
func New(
	rules *domain.RuleSet,
	knowledge ports.KnowledgeBase,
	resolver ports.PackageResolver,
	logger ports.Logger,
) *Synthesizer {
	return &Synthesizer{
		rules:     rules,
		knowledge: knowledge,
		resolver:  resolver,
		logger:    logger,
		fallback:  domain.FallbackRule(),
	}
}

// inventory indexes installed packages by normalized name. Values are the
// exact pinned version, or "" when unpinned.
type inventory map[string]string

func newInventory(pkgs []string) inventory {
	inv := make(inventory, len(pkgs))
	for _, p := range pkgs {
		name, spec := domain.SplitSpecifier(p)
		inv[domain.NormalizeName(name)] = domain.ExactPin(spec)
	}
	return inv
}

type draft struct {
	pip         []string
	apt         []string
	skipped     []string
	skipReasons map[string]string
	conflicts   []string
}

// Synthesize builds a definition that installs only what the base image lacks.
func (s *Synthesizer) Synthesize(
	ctx context.Context,
	feature domain.CodeFeature,
	baseRuleID string,
	opts domain.SynthesisOptions,
) (domain.EnvironmentDefinition, error) {
	table := s.knowledge.Table()
	base := Hydrate(s.baseRule(baseRuleID), s.rules.All(), table.Meta.GoldenImages)

	res, err := s.resolver.Resolve(ctx, feature.Imports)
	if err != nil {
		return domain.EnvironmentDefinition{}, zerr.With(zerr.Wrap(err, "failed to resolve packages"), "base_rule", base.ID)
	}

	inv := newInventory(base.InstalledPackages)
	d := &draft{skipReasons: make(map[string]string)}

	for _, pkg := range res.Apt {
		if _, ok := inv[domain.NormalizeName(pkg)]; ok {
			d.skip(pkg, "already installed in "+base.Image)
			continue
		}
		d.apt = append(d.apt, pkg)
	}

	series := base.Series()
	for _, req := range res.Pip {
		name, spec := domain.SplitSpecifier(req)

		if have, ok := inv[domain.NormalizeName(name)]; ok {
			d.skip(name, "already installed in "+base.Image)
			if want := domain.ExactPin(spec); want != "" && have != "" && want != have {
				d.conflicts = append(d.conflicts, fmt.Sprintf("%s: requested ==%s but %s has ==%s", name, want, base.Image, have))
			}
			continue
		}

		if reason, ok := aptConflict(table.Meta.AptCompatibility, res.Apt, name); ok {
			d.skip(name, reason)
			continue
		}

		if series != "" {
			if pin, ok := table.LegacyPin(series, name); ok {
				req = d.applyPin(name, spec, pin, series)
			}
		}
		d.pip = append(d.pip, req)
	}

	def := domain.EnvironmentDefinition{
		Name:              opts.Name,
		Tag:               opts.Tag,
		Version:           base.Version,
		BaseImage:         base.Image,
		Libs:              libs(feature.Imports),
		AptPackages:       d.apt,
		PipPackages:       d.pip,
		InstalledPackages: layer(base.InstalledPackages, d.pip, d.apt),
		EnvVars:           DefaultEnv(),
		RunCommands:       []string{},
		TrustedHosts:      domain.DefaultTrustedHosts(),
		ResolutionReasons: res.Reasons,
		Unresolved:        res.Unresolved,
		SkippedPackages:   d.skipped,
		SkipReasons:       d.skipReasons,
		VersionConflicts:  d.conflicts,
	}
	if def.AptPackages == nil {
		def.AptPackages = []string{}
	}
	if def.PipPackages == nil {
		def.PipPackages = []string{}
	}

	if major, ok := domain.MajorVersion(base.Version); ok && major == '2' {
		def.UseArchiveRepo = true
		def.DebianRelease = domain.DefaultDebianRelease
	}

	if pc := table.Meta.PipConfig; pc != nil {
		cfg := *pc
		def.PipConfig = &cfg
	}

	if def.Tag == "" {
		def.Tag = defaultTag(base.ID, d.pip, d.apt)
	}
	if def.Name == "" {
		def.Name = defaultName(base, d.pip, d.apt)
	}
	def.ID = domain.DefinitionID(def.Tag)

	return def, nil
}

// applyPin rewrites a requirement to the runtime's stable pin. An explicit
// exact pin is kept; when it disagrees with the stable pin it is recorded as a
// version conflict.
func (d *draft) applyPin(name, spec, pin, series string) string {
	want := domain.ExactPin(spec)
	if want == "" {
		return name + pin
	}
	if stable := domain.ExactPin(pin); stable != want {
		d.conflicts = append(d.conflicts, fmt.Sprintf("%s: requested ==%s but Python %s is pinned to %s", name, want, series, pin))
	}
	return name + spec
}

func (s *Synthesizer) baseRule(id string) domain.ImageRule {
	if rule, ok := s.rules.Get(id); ok {
		return rule
	}
	for _, rule := range s.rules.All() {
		if rule.Image == id {
			return rule
		}
	}
	s.logger.Warn("unknown base rule " + id + "; using " + s.fallback.ID)
	return s.fallback.Clone()
}

func (d *draft) skip(name, reason string) {
	if _, ok := d.skipReasons[name]; ok {
		return
	}
	d.skipped = append(d.skipped, name)
	d.skipReasons[name] = reason
}

// aptConflict reports whether a selected apt package declares the pip
// package name as incompatible.
func aptConflict(rules map[string]domain.AptRule, selected []string, name string) (string, bool) {
	norm := domain.NormalizeName(name)
	for _, apt := range selected {
		rule, ok := rules[apt]
		if !ok {
			continue
		}
		for _, other := range rule.IncompatibleWith {
			if domain.NormalizeName(other) == norm {
				return rule.Reason, true
			}
		}
	}
	return "", false
}

// layer returns the base inventory followed by newly added packages not
// already present under the same normalized name.
func layer(base []string, added ...[]string) []string {
	out := slices.Clone(base)
	seen := newInventory(base)
	for _, group := range added {
		for _, req := range group {
			name, _ := domain.SplitSpecifier(req)
			norm := domain.NormalizeName(name)
			if _, ok := seen[norm]; ok {
				continue
			}
			seen[norm] = ""
			out = append(out, req)
		}
	}
	if out == nil {
		out = []string{}
	}
	return out
}

func libs(imports []string) []string {
	out := make([]string, 0, len(imports))
	for _, name := range domain.SortedSet(imports) {
		if !domain.IsStdlib(name) {
			out = append(out, name)
		}
	}
	return out
}

func defaultTag(baseID string, pip, apt []string) string {
	h := xxhash.New()
	for _, p := range slices.Sorted(slices.Values(slices.Concat(pip, apt))) {
		_, _ = h.WriteString(p)
		_, _ = h.WriteString("\n")
	}
	return fmt.Sprintf("lcr-%s-%08x", baseID, uint32(h.Sum64()))
}

func defaultName(base domain.ImageRule, pip, apt []string) string {
	added := make(map[string]struct{}, len(pip)+len(apt))
	for _, req := range slices.Concat(pip, apt) {
		name, _ := domain.SplitSpecifier(req)
		added[name] = struct{}{}
	}
	if len(added) == 0 {
		return base.Name + " (custom)"
	}
	return base.Name + " + " + strings.Join(slices.Sorted(maps.Keys(added)), ", ")
}
