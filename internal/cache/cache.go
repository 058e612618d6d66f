// Package cache provides the on-disk memo of per-dataset results. One
// file per provider identifier, written once and reused by later runs so
// remote sources are only downloaded a single time per cache directory.
package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"traitbase/internal/codec"
	"traitbase/internal/domain"
)

// Cache is a keyed persistent store under one directory. Get never
// touches the network; Put persists the result so a later process run
// pointed at the same directory observes it. There is no eviction or
// expiry. Concurrent writers to the same directory are last-writer-wins.
type Cache struct {
	dir   string
	codec codec.ResultCodec
}

// New opens (creating if needed) a cache directory.
func New(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create cache dir %s: %w", dir, err)
	}
	return &Cache{dir: dir, codec: codec.NewJSONCodec()}, nil
}

// Dir returns the cache directory path.
func (c *Cache) Dir() string {
	return c.dir
}

// Get loads a previously stored result. The second return value is false
// when no entry exists for the key.
func (c *Cache) Get(key string) (*domain.Result, bool, error) {
	f, err := os.Open(c.path(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("open cache entry %s: %w", key, err)
	}
	defer f.Close()

	res, err := c.codec.Decode(f)
	if err != nil {
		return nil, false, fmt.Errorf("cache entry %s: %w", key, err)
	}
	return res, true, nil
}

// Put persists a result under the key. The entry is written to a
// temporary file and renamed into place so a crashed run never leaves a
// truncated entry behind.
func (c *Cache) Put(key string, res *domain.Result) error {
	tmp, err := os.CreateTemp(c.dir, entryName(key)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp entry for %s: %w", key, err)
	}
	defer os.Remove(tmp.Name())

	if err := c.codec.Encode(tmp, res); err != nil {
		tmp.Close()
		return fmt.Errorf("write cache entry %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close cache entry %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), c.path(key)); err != nil {
		return fmt.Errorf("store cache entry %s: %w", key, err)
	}
	return nil
}

func (c *Cache) path(key string) string {
	return filepath.Join(c.dir, entryName(key)+c.codec.Extension())
}

// entryName derives a deterministic file name from a provider identifier
// by stripping everything but letters and digits.
func entryName(key string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(key) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
