package domain

import (
	"slices"
	"strings"
)

const (
	// VersionLegacy is the version hint for Python 2 era source.
	VersionLegacy = "2.7"

	// VersionModern is the version hint for source that parses as Python 3.
	VersionModern = "3.x"

	// VersionUnknown is the version hint when no evidence decides the runtime.
	VersionUnknown = "unknown"
)

// CodeFeature is the static summary extracted from a single source file.
type CodeFeature struct {
	// VersionHint is one of VersionLegacy, VersionModern or VersionUnknown.
	VersionHint string `json:"version_hint"`

	// Imports are the deduplicated root module names, sorted.
	Imports []string `json:"imports"`

	// Keywords are weak signals such as deprecated attribute accesses, sorted.
	Keywords []string `json:"keywords"`

	// ValidationYear is the earliest year token found in the source.
	// It is a provenance hint only and may be empty.
	ValidationYear string `json:"validation_year,omitempty"`

	// Evidence names the detection step that decided VersionHint.
	Evidence string `json:"evidence,omitempty"`
}

// SearchTerms returns the union of imports and keywords used for runtime scoring.
func (f CodeFeature) SearchTerms() []string {
	terms := make([]string, 0, len(f.Imports)+len(f.Keywords))
	terms = append(terms, f.Imports...)
	terms = append(terms, f.Keywords...)
	return SortedSet(terms)
}

// MajorVersion returns the leading major-version digit of a version string.
// It reports false for "unknown", empty strings, and strings without a leading digit.
func MajorVersion(version string) (byte, bool) {
	v := strings.TrimSpace(version)
	if v == "" || v == VersionUnknown {
		return 0, false
	}
	if v[0] < '0' || v[0] > '9' {
		return 0, false
	}
	return v[0], true
}

// SortedSet returns the sorted, deduplicated, non-empty values of items.
func SortedSet(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item != "" {
			out = append(out, item)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
