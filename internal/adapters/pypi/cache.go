package pypi

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.trai.ch/lcr/internal/adapters/atomicfile"
	"go.trai.ch/lcr/internal/core/domain"
	"go.trai.ch/lcr/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultMaxAge bounds how long an on-disk answer is trusted.
const DefaultMaxAge = 7 * 24 * time.Hour

// Cache implements ports.IndexCache with an in-memory LRU in front of an
// optional directory of JSON files.
type Cache struct {
	memory *lru.Cache[string, domain.IndexEntry]
	dir    string
	maxAge time.Duration
	now    func() time.Time
	logger ports.Logger
}

type cacheEntry struct {
	Query     string            `json:"query"`
	Entry     domain.IndexEntry `json:"entry"`
	Timestamp time.Time         `json:"timestamp"`
}

// NewCache creates a cache holding size entries in memory. An empty dir
// disables the disk layer.
func NewCache(size int, dir string, logger ports.Logger) (*Cache, error) {
	memory, err := lru.New[string, domain.IndexEntry](size)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrIndexCacheCreateFailed.Error())
	}

	if dir != "" {
		dir = filepath.Clean(dir)
		if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrIndexCacheCreateFailed.Error()), "path", dir)
		}
	}

	return &Cache{
		memory: memory,
		dir:    dir,
		maxAge: DefaultMaxAge,
		now:    time.Now,
		logger: logger,
	}, nil
}

// Get returns the memoized answer for name.
func (c *Cache) Get(name string) (domain.IndexEntry, bool) {
	key := cacheKey(name)
	if entry, ok := c.memory.Get(key); ok {
		return entry, true
	}

	entry, ok := c.loadFromDisk(key)
	if ok {
		c.memory.Add(key, entry)
	}
	return entry, ok
}

// Put memoizes the answer for name. Disk failures are logged, not returned.
func (c *Cache) Put(name string, entry domain.IndexEntry) {
	key := cacheKey(name)
	c.memory.Add(key, entry)

	if c.dir == "" {
		return
	}
	if err := c.saveToDisk(key, entry); err != nil {
		c.logger.Warn(err.Error())
	}
}

func (c *Cache) loadFromDisk(key string) (domain.IndexEntry, bool) {
	if c.dir == "" {
		return domain.IndexEntry{}, false
	}

	//nolint:gosec // path is built from the cache directory and a hashed key
	data, err := os.ReadFile(c.path(key))
	if err != nil {
		return domain.IndexEntry{}, false
	}

	var stored cacheEntry
	if err := json.Unmarshal(data, &stored); err != nil || stored.Query != key {
		return domain.IndexEntry{}, false
	}
	if c.maxAge > 0 && c.now().Sub(stored.Timestamp) > c.maxAge {
		return domain.IndexEntry{}, false
	}
	return stored.Entry, true
}

func (c *Cache) saveToDisk(key string, entry domain.IndexEntry) error {
	data, err := json.MarshalIndent(cacheEntry{Query: key, Entry: entry, Timestamp: c.now()}, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrIndexCacheWriteFailed.Error())
	}
	if err := atomicfile.Write(c.path(key), data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrIndexCacheWriteFailed.Error()), "query", key)
	}
	return nil
}

func (c *Cache) path(key string) string {
	return filepath.Join(c.dir, fmt.Sprintf("%016x.json", xxhash.Sum64String(key)))
}

func cacheKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
