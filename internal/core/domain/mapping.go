package domain

import (
	"encoding/json"
	"slices"
)

// MetaKey is the reserved key holding table metadata in mapping files.
const MetaKey = "_meta"

// UserKnowledgeSource marks mappings contributed by the user knowledge layer.
const UserKnowledgeSource = "User Knowledge"

// PackageMapping lists the installable packages that provide one import name.
type PackageMapping struct {
	Pip    []string `json:"pip"`
	Apt    []string `json:"apt"`
	Source string   `json:"_source,omitempty"`
}

// AptRule declares pip packages that conflict with an apt package.
type AptRule struct {
	IncompatibleWith []string `json:"incompatible_with"`
	Reason           string   `json:"reason"`
}

// PipConfig overrides the package registry used by rendered images.
type PipConfig struct {
	IndexURL    string `json:"index_url" validate:"required,url"`
	TrustedHost string `json:"trusted_host"`
}

// MetaRecord is the typed metadata block of the mapping table.
type MetaRecord struct {
	// GoldenImages maps an image tag to its known pre-installed packages.
	GoldenImages map[string][]string `json:"golden_images,omitempty"`

	// LegacyVersions maps a runtime series ("3.6") to package name to forced specifier.
	LegacyVersions map[string]map[string]string `json:"legacy_versions,omitempty"`

	// AptCompatibility maps an apt package to the pip packages it conflicts with.
	AptCompatibility map[string]AptRule `json:"apt_compatibility,omitempty"`

	// PipConfig is the optional registry override.
	PipConfig *PipConfig `json:"pip_config,omitempty"`
}

// MappingTable maps import names to package mappings, plus typed metadata.
// On disk it is a single JSON object whose "_meta" key holds the metadata.
type MappingTable struct {
	Packages map[string]PackageMapping
	Meta     MetaRecord
}

// Lookup finds the mapping for an import name, trying the exact key first and
// then any key with the same normalized form.
func (t MappingTable) Lookup(name string) (PackageMapping, bool) {
	if m, ok := t.Packages[name]; ok {
		return m, true
	}

	norm := NormalizeName(name)
	keys := make([]string, 0, len(t.Packages))
	for k := range t.Packages {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		if NormalizeName(k) == norm {
			return t.Packages[k], true
		}
	}
	return PackageMapping{}, false
}

// LegacyPin returns the forced specifier for a package on a runtime series.
func (t MappingTable) LegacyPin(series, pkg string) (string, bool) {
	pins, ok := t.Meta.LegacyVersions[series]
	if !ok {
		return "", false
	}
	if spec, ok := pins[pkg]; ok {
		return spec, true
	}

	norm := NormalizeName(pkg)
	keys := make([]string, 0, len(pins))
	for k := range pins {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if NormalizeName(k) == norm {
			return pins[k], true
		}
	}
	return "", false
}

// UnmarshalJSON decodes the flat on-disk form, separating "_meta" from package entries.
// Entries that are not objects are ignored.
func (t *MappingTable) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	t.Packages = make(map[string]PackageMapping, len(raw))
	t.Meta = MetaRecord{}

	for key, value := range raw {
		if key == MetaKey {
			if err := json.Unmarshal(value, &t.Meta); err != nil {
				return err
			}
			continue
		}

		var m PackageMapping
		if err := json.Unmarshal(value, &m); err != nil {
			continue
		}
		t.Packages[key] = m
	}
	return nil
}

// MarshalJSON encodes the table back into the flat on-disk form.
func (t MappingTable) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(t.Packages)+1)
	for k, v := range t.Packages {
		out[k] = v
	}
	out[MetaKey] = t.Meta
	return json.Marshal(out)
}
