package domain

import (
	"strings"
)

// DefaultDebianRelease is the release used for archive repository rewrites.
const DefaultDebianRelease = "stretch"

// DefaultBaseImage is used when a definition names no base image.
const DefaultBaseImage = "python:3.10-slim"

// DefaultTrustedHosts are the package hosts trusted by rendered images.
func DefaultTrustedHosts() []string {
	return []string{"pypi.python.org", "pypi.org", "files.pythonhosted.org"}
}

// EnvironmentDefinition is a synthesized environment persisted as JSON.
type EnvironmentDefinition struct {
	// ID is the store key; it is the file stem and is not serialized.
	ID string `json:"-"`

	Tag               string            `json:"tag" validate:"required"`
	Name              string            `json:"name,omitempty"`
	Version           string            `json:"version,omitempty"`
	BaseImage         string            `json:"base_image" validate:"required"`
	Libs              []string          `json:"libs,omitempty"`
	AptPackages       []string          `json:"apt_packages"`
	PipPackages       []string          `json:"pip_packages"`
	InstalledPackages []string          `json:"installed_packages"`
	EnvVars           map[string]string `json:"env_vars"`
	RunCommands       []string          `json:"run_commands"`
	PipConfig         *PipConfig        `json:"pip_config,omitempty" validate:"omitempty"`
	UseArchiveRepo    bool              `json:"use_archive_repo,omitempty"`
	DebianRelease     string            `json:"debian_release,omitempty"`
	TrustedHosts      []string          `json:"trusted_hosts,omitempty"`

	ResolutionReasons map[string]string `json:"_resolution_reasons,omitempty"`
	Unresolved        []string          `json:"_unresolved,omitempty"`
	SkippedPackages   []string          `json:"_skipped_packages,omitempty"`
	SkipReasons       map[string]string `json:"_skip_reasons,omitempty"`
	VersionConflicts  []string          `json:"_version_conflicts,omitempty"`
}

// RuleFromDefinition converts a stored definition into an active image rule.
// Images built from definitions carry a python entrypoint, so the interpreter
// is never prepended.
func RuleFromDefinition(def EnvironmentDefinition) ImageRule {
	name := def.Name
	if name == "" {
		name = def.Tag
	}
	version := def.Version
	if version == "" {
		version = VersionUnknown
	}
	return ImageRule{
		ID:                def.ID,
		Name:              name,
		Version:           version,
		Image:             def.Tag,
		Libs:              append([]string(nil), def.Libs...),
		PrependPython:     false,
		InstalledPackages: append([]string(nil), def.InstalledPackages...),
	}
}

// DockerfileName returns the generated Dockerfile name for a tag:
// "lcr-py36:1" becomes "Dockerfile.lcr_py36_1".
func DockerfileName(tag string) string {
	if tag == "" {
		tag = "custom-image"
	}
	return "Dockerfile." + strings.NewReplacer("-", "_", ":", "_").Replace(tag)
}

// SynthesisOptions names the environment produced by a synthesis.
// Empty fields are derived from the base rule and the package set.
type SynthesisOptions struct {
	Tag  string
	Name string
}

// DefinitionID derives a store id from an image tag: "lcr-py36:1" becomes "lcr-py36_1".
func DefinitionID(tag string) string {
	return strings.NewReplacer(":", "_", "/", "_").Replace(tag)
}
