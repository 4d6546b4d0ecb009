package folio

import (
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/imamrpratama/folio/content"
)

// CatalogCache is an in-memory copy of the stored catalog with a TTL.
// Concurrent reloads of a stale catalog share one store read.
type CatalogCache struct {
	mu      sync.RWMutex
	catalog *content.Catalog
	fetched time.Time
	ttl     time.Duration
	store   *Store
	loads   singleflight.Group
}

// NewCatalogCache creates a CatalogCache backed by the given Store.
func NewCatalogCache(s *Store, ttl time.Duration) *CatalogCache {
	return &CatalogCache{store: s, ttl: ttl}
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *CatalogCache) Invalidate() {
	c.mu.Lock()
	c.catalog = nil
	c.mu.Unlock()
}

// Catalog returns the cached catalog, reloading it when stale.
func (c *CatalogCache) Catalog() (*content.Catalog, error) {
	c.mu.RLock()
	if c.catalog != nil && time.Since(c.fetched) < c.ttl {
		cat := c.catalog
		c.mu.RUnlock()
		return cat, nil
	}
	c.mu.RUnlock()

	v, err, _ := c.loads.Do("catalog", func() (any, error) {
		cat, err := c.store.LoadCatalog()
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.catalog = cat
		c.fetched = time.Now()
		c.mu.Unlock()
		return cat, nil
	})
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return v.(*content.Catalog), nil
}

// Project returns a single project from the cached catalog.
func (c *CatalogCache) Project(id int) (content.Project, error) {
	cat, err := c.Catalog()
	if err != nil {
		return content.Project{}, err
	}
	return cat.Project(id)
}
