package synth

import (
	"slices"

	"go.trai.ch/lcr/internal/core/domain"
)

// Hydrate returns a copy of rule with its package inventory filled in.
// A rule that already has an inventory is returned unchanged. Otherwise the
// first sibling running the same image with a known inventory wins, then the
// golden image registry keyed by image tag.
func Hydrate(rule domain.ImageRule, siblings []domain.ImageRule, golden map[string][]string) domain.ImageRule {
	out := rule.Clone()
	if len(out.InstalledPackages) > 0 {
		return out
	}

	for _, s := range siblings {
		if s.ID != rule.ID && s.Image == rule.Image && len(s.InstalledPackages) > 0 {
			out.InstalledPackages = slices.Clone(s.InstalledPackages)
			return out
		}
	}

	if pkgs, ok := golden[rule.Image]; ok {
		out.InstalledPackages = slices.Clone(pkgs)
	}
	return out
}
