package domain

import (
	"path/filepath"
	"time"
)

const (
	// DefaultIndexURL is the base URL of the package index JSON API.
	DefaultIndexURL = "https://pypi.org/pypi"

	// DefaultIndexTimeout bounds a single package index request.
	DefaultIndexTimeout = 3 * time.Second

	// DefaultIndexMemoryEntries is the size of the in-memory index cache.
	DefaultIndexMemoryEntries = 1024

	// DefaultAptPrefix prefixes distro package names derived from index hits.
	DefaultAptPrefix = "python3-"

	// DefaultDockerBinary is the container CLI looked up on PATH.
	DefaultDockerBinary = "docker"
)

// Config is the project configuration read from lcr.yaml.
type Config struct {
	// Root is the directory the relative paths are resolved against.
	Root string `yaml:"-"`

	Paths    PathsConfig    `yaml:"paths"`
	Index    IndexConfig    `yaml:"index"`
	Resolver ResolverConfig `yaml:"resolver"`
	Scoring  Scoring        `yaml:"scoring"`
	Docker   DockerConfig   `yaml:"docker"`

	// Rules replaces the built-in image rules when non-empty.
	Rules []ImageRule `yaml:"rules" validate:"dive"`
}

// PathsConfig locates the on-disk state of the project.
type PathsConfig struct {
	Definitions   string `yaml:"definitions" validate:"required"`
	Images        string `yaml:"images" validate:"required"`
	Results       string `yaml:"results" validate:"required"`
	History       string `yaml:"history" validate:"required"`
	Cache         string `yaml:"cache"`
	UserKnowledge string `yaml:"user_knowledge" validate:"required"`
}

// IndexConfig configures the package index client.
type IndexConfig struct {
	URL           string        `yaml:"url" validate:"required,url"`
	Timeout       time.Duration `yaml:"timeout" validate:"gt=0"`
	MemoryEntries int           `yaml:"memory_entries" validate:"gt=0"`
	Offline       bool          `yaml:"offline"`
}

// ResolverConfig configures package resolution.
type ResolverConfig struct {
	AptPrefix string `yaml:"apt_prefix"`
}

// DockerConfig selects the container CLI.
type DockerConfig struct {
	Binary string `yaml:"binary" validate:"required"`
}

// DefaultConfig returns the configuration used when no lcr.yaml is present.
func DefaultConfig() Config {
	return Config{
		Paths: PathsConfig{
			Definitions:   DefaultDefinitionsPath(),
			Images:        DefaultImagesPath(),
			Results:       DefaultResultsPath(),
			History:       DefaultHistoryPath(),
			Cache:         DefaultIndexCachePath(),
			UserKnowledge: DefaultUserKnowledgePath(),
		},
		Index: IndexConfig{
			URL:           DefaultIndexURL,
			Timeout:       DefaultIndexTimeout,
			MemoryEntries: DefaultIndexMemoryEntries,
		},
		Resolver: ResolverConfig{AptPrefix: DefaultAptPrefix},
		Scoring:  DefaultScoring(),
		Docker:   DockerConfig{Binary: DefaultDockerBinary},
	}
}

// Abs resolves a configured path against Root. Absolute paths are returned as is.
func (c Config) Abs(p string) string {
	if p == "" || filepath.IsAbs(p) || c.Root == "" {
		return p
	}
	return filepath.Join(c.Root, p)
}

// ImageRules returns the configured rules, or the built-in rules when none are configured.
func (c Config) ImageRules() []ImageRule {
	if len(c.Rules) == 0 {
		return DefaultRules()
	}
	out := make([]ImageRule, len(c.Rules))
	for i, r := range c.Rules {
		out[i] = r.Clone()
	}
	return out
}
