package config

import "go.trai.ch/lcr/internal/core/domain"

// Configfile is the structure of lcr.yaml. Fields absent from the file keep
// their default values.
type Configfile struct {
	Version       string `yaml:"version"`
	domain.Config `yaml:",inline"`
}
