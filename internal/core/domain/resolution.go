package domain

// PackageResolution is the outcome of resolving a set of import names.
type PackageResolution struct {
	Pip        []string          `json:"pip"`
	Apt        []string          `json:"apt"`
	Unresolved []string          `json:"unresolved"`
	Reasons    map[string]string `json:"reasons"`
}

// IndexEntry is a memoized package index answer for one name.
type IndexEntry struct {
	// Name is the canonical project name reported by the index.
	Name string `json:"name"`

	// Found is false when the index has no project under the queried name.
	Found bool `json:"found"`

	Version string `json:"version,omitempty"`
	Summary string `json:"summary,omitempty"`

	// LargestArtifact is the size in bytes of the biggest release file.
	LargestArtifact int64 `json:"largest_artifact,omitempty"`

	// Placeholder marks name-squatting or redirect projects with no real payload.
	Placeholder bool `json:"placeholder,omitempty"`

	// Suggestion is the real project a placeholder asks users to install.
	Suggestion string `json:"suggestion,omitempty"`
}

// Selection is the outcome of scoring the active rules against a feature.
type Selection struct {
	Rule     ImageRule      `json:"rule"`
	Score    int            `json:"score"`
	Reasons  []string       `json:"reasons"`
	Scores   map[string]int `json:"scores"`
	Fallback bool           `json:"fallback,omitempty"`
}

// Scoring holds the weights used by the runtime selector.
type Scoring struct {
	MajorMatch    int `yaml:"major_match" json:"major_match"`
	MajorMismatch int `yaml:"major_mismatch" json:"major_mismatch"`
	ExactVersion  int `yaml:"exact_version" json:"exact_version"`
	PerMatch      int `yaml:"per_match" json:"per_match"`
	PerMissing    int `yaml:"per_missing" json:"per_missing"`
	Trigger       int `yaml:"trigger" json:"trigger"`

	// Baseline is the score a candidate must exceed to be selectable.
	Baseline int `yaml:"baseline" json:"baseline"`
}

// DefaultScoring returns the default weights. The major-version terms dominate
// every other term so compatibility gates the rest of the score.
func DefaultScoring() Scoring {
	return Scoring{
		MajorMatch:    1000,
		MajorMismatch: -10000,
		ExactVersion:  50,
		PerMatch:      20,
		PerMissing:    -10,
		Trigger:       30,
		Baseline:      -999,
	}
}
