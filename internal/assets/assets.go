// Package assets resolves and caches files from the asset directory.
package assets

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/starscroll/internal/engine/audio"
	"github.com/Faultbox/starscroll/internal/engine/texture"
	"github.com/Faultbox/starscroll/internal/logger"
)

// ErrOutsideRoot is returned for names that escape the asset directory.
var ErrOutsideRoot = errors.New("asset path escapes asset directory")

// Manager loads files relative to a root directory.
type Manager struct {
	dir   string
	cache *Cache
	log   *zap.Logger
}

// NewManager creates a manager rooted at dir.
func NewManager(dir string, log *zap.Logger) *Manager {
	return &Manager{
		dir:   dir,
		cache: NewCache(),
		log:   logger.OrNamed(log, "assets"),
	}
}

// Dir returns the asset root.
func (m *Manager) Dir() string {
	return m.dir
}

// Path resolves a slash-separated asset name to a file path.
func (m *Manager) Path(name string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(name))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, name)
	}
	return filepath.Join(m.dir, clean), nil
}

// Read returns the contents of an asset, from cache when possible.
func (m *Manager) Read(name string) ([]byte, error) {
	if data, ok := m.cache.Get(name); ok {
		return data, nil
	}

	path, err := m.Path(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading asset %s: %w", name, err)
	}

	m.cache.Set(name, data)
	m.log.Debug("asset loaded", zap.String("name", name), zap.Int("bytes", len(data)))
	return data, nil
}

// Image decodes an image asset. Its signature matches scene.ImageLoader.
func (m *Manager) Image(name string) (image.Image, error) {
	data, err := m.Read(name)
	if err != nil {
		return nil, err
	}
	img, _, err := texture.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return img, nil
}

// Clip decodes a sound effect asset.
func (m *Manager) Clip(name string) (*audio.Clip, error) {
	data, err := m.Read(name)
	if err != nil {
		return nil, err
	}
	return audio.DecodeClip(data, name)
}

// Close drops cached data.
func (m *Manager) Close() {
	m.cache.Clear()
}

// Cache is an in-memory cache for loaded assets.
type Cache struct {
	data map[string][]byte
	mu   sync.Mutex

	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Clear empties the cache and resets its counters.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
