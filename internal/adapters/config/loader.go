// Package config loads the lcr.yaml project configuration.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.trai.ch/lcr/internal/core/domain"
	"go.trai.ch/lcr/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// SupportedVersion is the lcr.yaml schema version understood by the loader.
const SupportedVersion = "1"

// Environment variables that override the file.
const (
	EnvIndexURL     = "LCR_INDEX_URL"
	EnvIndexTimeout = "LCR_INDEX_TIMEOUT"
	EnvOffline      = "LCR_OFFLINE"
	EnvDocker       = "LCR_DOCKER"
)

// Loader implements ports.ConfigLoader.
type Loader struct {
	Logger ports.Logger
	FS     FileSystem

	// Getenv reads override variables; nil means os.Getenv.
	Getenv func(string) string
}

// NewLoader creates a Loader reading from the OS filesystem.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger, FS: OSFS{}}
}

// Load finds lcr.yaml in cwd or the nearest parent directory and merges it
// over the defaults. Relative paths in the result resolve against the
// directory holding the file, or cwd when there is none.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	path, err := l.findConfiguration(cwd)
	if err != nil {
		return nil, err
	}

	file := Configfile{Config: domain.DefaultConfig()}
	file.Root = cwd

	if path != "" {
		if err := l.readAndUnmarshalYAML(path, &file); err != nil {
			return nil, zerr.With(err, "path", path)
		}
		file.Root = filepath.Dir(path)
		if file.Version != "" && file.Version != SupportedVersion {
			l.Logger.Warn("unsupported config version " + strconv.Quote(file.Version) + " in " + path)
		}
	}

	cfg := file.Config
	if err := l.applyEnv(&cfg); err != nil {
		return nil, err
	}

	if err := domain.Validate(cfg); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigInvalid.Error()), "path", path)
	}
	return &cfg, nil
}

func (l *Loader) findConfiguration(cwd string) (string, error) {
	current := cwd
	for {
		candidate := filepath.Join(current, domain.ConfigFileName)
		_, err := l.FS.Stat(candidate)
		if err == nil {
			return candidate, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", candidate)
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", nil
		}
		current = parent
	}
}

func (l *Loader) readAndUnmarshalYAML(path string, target *Configfile) error {
	data, err := l.FS.ReadFile(path)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if err := yaml.Unmarshal(data, target); err != nil {
		return zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}
	return nil
}

func (l *Loader) applyEnv(cfg *domain.Config) error {
	getenv := l.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	if v := strings.TrimSpace(getenv(EnvIndexURL)); v != "" {
		cfg.Index.URL = strings.TrimRight(v, "/")
	}

	if v := strings.TrimSpace(getenv(EnvIndexTimeout)); v != "" {
		d, err := parseTimeout(v)
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrConfigInvalid.Error()), "variable", EnvIndexTimeout)
		}
		cfg.Index.Timeout = d
	}

	if v := strings.TrimSpace(getenv(EnvOffline)); v != "" {
		offline, err := strconv.ParseBool(v)
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrConfigInvalid.Error()), "variable", EnvOffline)
		}
		cfg.Index.Offline = offline
	}

	if v := strings.TrimSpace(getenv(EnvDocker)); v != "" {
		cfg.Docker.Binary = v
	}
	return nil
}

// parseTimeout accepts a Go duration ("2s") or a number of seconds ("2.5").
func parseTimeout(v string) (time.Duration, error) {
	if d, err := time.ParseDuration(v); err == nil {
		return d, nil
	}
	secs, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, err
	}
	return time.Duration(secs * float64(time.Second)), nil
}
