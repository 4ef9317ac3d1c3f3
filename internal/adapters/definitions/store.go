// Package definitions stores environment definitions as one JSON file per id.
package definitions

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/lcr/internal/adapters/atomicfile"
	"go.trai.ch/lcr/internal/core/domain"
	"go.trai.ch/lcr/internal/core/ports"
	"go.trai.ch/zerr"
)

const fileExt = ".json"

// Store implements ports.DefinitionStore on a directory.
type Store struct {
	dir    string
	logger ports.Logger
}

// NewStore creates a Store rooted at dir. The directory is created on first write.
func NewStore(dir string, logger ports.Logger) *Store {
	return &Store{dir: filepath.Clean(dir), logger: logger}
}

// Path returns <dir>/<id>.json.
func (s *Store) Path(id string) string {
	return filepath.Join(s.dir, id+fileExt)
}

// Write stores def under id.
func (s *Store) Write(id string, def domain.EnvironmentDefinition) (string, error) {
	path := s.Path(id)

	data, err := json.MarshalIndent(def, "", "  ")
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrPersistenceFailed.Error()), "id", id)
	}
	data = append(data, '\n')

	if err := atomicfile.Write(path, data, domain.FilePerm); err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrPersistenceFailed.Error()), "path", path)
	}
	return path, nil
}

// Delete removes the file stored under id.
func (s *Store) Delete(id string) error {
	path := s.Path(id)
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return zerr.With(zerr.Wrap(domain.ErrDefinitionNotFound, "nothing to delete"), "path", path)
		}
		return zerr.With(zerr.Wrap(err, domain.ErrDefinitionDeleteFailed.Error()), "path", path)
	}
	return nil
}

// Exists reports whether <dir>/<id>.json is present, including files Load skips.
func (s *Store) Exists(id string) (bool, error) {
	path := s.Path(id)
	if _, err := os.Lstat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, zerr.With(zerr.Wrap(err, domain.ErrDefinitionReadFailed.Error()), "path", path)
	}
	return true, nil
}

// Load reads every definition in the directory, ordered by id. Files that are
// not valid JSON or have no tag are skipped with a warning. A missing
// directory yields no definitions.
func (s *Store) Load() ([]domain.EnvironmentDefinition, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrDefinitionReadFailed.Error()), "path", s.dir)
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != fileExt || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(e.Name(), fileExt))
	}
	slices.Sort(ids)

	defs := make([]domain.EnvironmentDefinition, 0, len(ids))
	for _, id := range ids {
		def, err := s.read(id)
		if err != nil {
			s.logger.Warn("skipping definition " + id + ": " + err.Error())
			continue
		}
		defs = append(defs, def)
	}
	return defs, nil
}

func (s *Store) read(id string) (domain.EnvironmentDefinition, error) {
	path := s.Path(id)

	//nolint:gosec // path is built from the store directory and a directory entry
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.EnvironmentDefinition{}, zerr.With(zerr.Wrap(err, domain.ErrDefinitionReadFailed.Error()), "path", path)
	}

	var def domain.EnvironmentDefinition
	if err := json.Unmarshal(data, &def); err != nil {
		return domain.EnvironmentDefinition{}, zerr.With(zerr.Wrap(err, "invalid JSON"), "path", path)
	}
	if def.Tag == "" {
		return domain.EnvironmentDefinition{}, zerr.With(zerr.New("definition has no tag"), "path", path)
	}

	def.ID = id
	return def, nil
}
