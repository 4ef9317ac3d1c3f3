package pypi_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lcr/internal/adapters/pypi"
	"go.trai.ch/lcr/internal/core/domain"
	"go.trai.ch/lcr/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestCache_Memory(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache, err := pypi.NewCache(2, "", mocks.NewMockLogger(ctrl))
	require.NoError(t, err)

	_, ok := cache.Get("numpy")
	assert.False(t, ok)

	cache.Put("NumPy", domain.IndexEntry{Name: "numpy", Found: true})
	entry, ok := cache.Get("numpy")
	require.True(t, ok)
	assert.True(t, entry.Found)

	cache.Put("a", domain.IndexEntry{Name: "a"})
	cache.Put("b", domain.IndexEntry{Name: "b"})
	_, ok = cache.Get("numpy")
	assert.False(t, ok, "least recently used entry should be evicted")
}

func TestCache_Disk(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := filepath.Join(t.TempDir(), "cache", "pypi")

	first, err := pypi.NewCache(4, dir, mocks.NewMockLogger(ctrl))
	require.NoError(t, err)
	first.Put("requests", domain.IndexEntry{Name: "requests", Found: true, Version: "2.31.0"})

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, ".json", filepath.Ext(files[0].Name()))

	second, err := pypi.NewCache(4, dir, mocks.NewMockLogger(ctrl))
	require.NoError(t, err)
	entry, ok := second.Get("requests")
	require.True(t, ok)
	assert.Equal(t, "2.31.0", entry.Version)
}

func TestCache_DiskExpiry(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := t.TempDir()

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	writer, err := pypi.NewCache(4, dir, mocks.NewMockLogger(ctrl))
	require.NoError(t, err)
	writer.SetClock(func() time.Time { return now })
	writer.Put("flask", domain.IndexEntry{Name: "flask", Found: true})

	reader, err := pypi.NewCache(4, dir, mocks.NewMockLogger(ctrl))
	require.NoError(t, err)
	reader.SetClock(func() time.Time { return now.Add(pypi.DefaultMaxAge + time.Hour) })

	_, ok := reader.Get("flask")
	assert.False(t, ok)
}

func TestCache_DiskWriteFailureIsLogged(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	dir := t.TempDir()

	cache, err := pypi.NewCache(4, dir, log)
	require.NoError(t, err)

	require.NoError(t, os.Chmod(dir, 0o500))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o750) })
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}

	log.EXPECT().Warn(gomock.Any()).Times(1)
	cache.Put("flask", domain.IndexEntry{Name: "flask", Found: true})

	entry, ok := cache.Get("flask")
	require.True(t, ok)
	assert.Equal(t, "flask", entry.Name)
}

func TestNewCache_InvalidSize(t *testing.T) {
	ctrl := gomock.NewController(t)
	_, err := pypi.NewCache(0, "", mocks.NewMockLogger(ctrl))
	require.ErrorContains(t, err, domain.ErrIndexCacheCreateFailed.Error())
}
