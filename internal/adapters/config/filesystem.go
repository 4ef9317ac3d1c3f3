package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileSystem abstracts the filesystem reads of the loader.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	ReadFile(path string) ([]byte, error)
}

// OSFS implements FileSystem using the standard library.
type OSFS struct{}

// Stat returns file info for the given path.
func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	// #nosec G304 -- path comes from config discovery
	return os.ReadFile(path)
}

// MapFSAdapter serves an fs.FS (such as fstest.MapFS) as if it were mounted at Root.
type MapFSAdapter struct {
	FS   fs.FS
	Root string
}

// Stat returns file info for the given path.
func (m MapFSAdapter) Stat(path string) (fs.FileInfo, error) {
	return fs.Stat(m.FS, m.toRelPath(path))
}

// ReadFile reads the entire file at path.
func (m MapFSAdapter) ReadFile(path string) ([]byte, error) {
	return fs.ReadFile(m.FS, m.toRelPath(path))
}

// toRelPath strips Root from absPath. Paths outside Root are returned
// unchanged so the fs operation fails with a not-found error.
func (m MapFSAdapter) toRelPath(absPath string) string {
	if !filepath.IsAbs(absPath) {
		return absPath
	}
	if absPath == m.Root {
		return "."
	}
	if m.Root != "/" && !strings.HasPrefix(absPath, m.Root+string(filepath.Separator)) {
		return absPath
	}
	return strings.TrimPrefix(strings.TrimPrefix(absPath, m.Root), string(filepath.Separator))
}
