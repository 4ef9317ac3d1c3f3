// Package history records finished runs in a flat JSON file.
package history

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.trai.ch/lcr/internal/adapters/atomicfile"
	"go.trai.ch/lcr/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.HistoryStore. Records are kept newest first.
type Store struct {
	path    string
	root    string
	mu      sync.RWMutex
	records []domain.HistoryRecord
	now     func() time.Time
}

// NewStore creates a store backed by the file at path. Paths inside root are
// recorded relative to it.
func NewStore(path, root string) (*Store, error) {
	s := &Store{
		path: filepath.Clean(path),
		root: root,
		now:  time.Now,
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // Path comes from the project configuration
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.With(zerr.Wrap(err, domain.ErrHistoryReadFailed.Error()), "path", s.path)
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &s.records); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrHistoryReadFailed.Error()), "path", s.path)
	}
	return nil
}

// Append stores rec at the head of the history.
func (s *Store) Append(rec domain.HistoryRecord) (domain.HistoryRecord, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Timestamp == "" {
		rec.Timestamp = s.now().Format(time.RFC3339)
	}
	rec.ScriptPath = s.relative(rec.ScriptPath)
	rec.OutputDir = s.relative(rec.OutputDir)

	s.mu.Lock()
	defer s.mu.Unlock()

	records := slices.Insert(slices.Clone(s.records), 0, rec)
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return domain.HistoryRecord{}, zerr.Wrap(err, domain.ErrHistoryWriteFailed.Error())
	}
	if err := atomicfile.Write(s.path, append(data, '\n'), domain.FilePerm); err != nil {
		return domain.HistoryRecord{}, zerr.With(zerr.Wrap(err, domain.ErrHistoryWriteFailed.Error()), "path", s.path)
	}

	s.records = records
	return rec, nil
}

// List returns a copy of the recorded runs, newest first.
func (s *Store) List() ([]domain.HistoryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.records), nil
}

func (s *Store) relative(p string) string {
	if p == "" || s.root == "" || !filepath.IsAbs(p) {
		return p
	}
	rel, err := filepath.Rel(s.root, p)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return p
	}
	return rel
}
