package catalog

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Ahsankhan2345/shopping-hify/internal/domain"
)

// Cache holds the last successfully fetched product list. A completed fetch
// replaces the whole list atomically; readers never see a partial update.
// Each Refresh is stamped with a sequence number and a fetch that was
// superseded by a later one has its result discarded, so the newest-initiated
// fetch always wins.
type Cache struct {
	client *Client
	logger *zap.Logger

	mu       sync.Mutex
	products []domain.Product
	byID     map[string]domain.Product
	lastSync time.Time
	seq      uint64
}

func NewCache(client *Client, logger *zap.Logger) *Cache {
	return &Cache{
		client: client,
		logger: logger,
		byID:   make(map[string]domain.Product),
	}
}

// Refresh fetches the catalog and swaps it in. On failure the previous
// products stay intact and the error is returned for the caller to surface.
func (c *Cache) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.mu.Unlock()

	products, err := c.client.FetchAll(ctx)
	if err != nil {
		c.logger.Warn("catalog refresh failed, keeping cached products", zap.Error(err))
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		c.logger.Debug("discarding superseded catalog fetch", zap.Uint64("seq", seq))
		return nil
	}

	byID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	c.products = products
	c.byID = byID
	c.lastSync = time.Now()
	c.logger.Info("catalog refreshed", zap.Int("products", len(products)))
	return nil
}

// Products returns a copy of the cached list in fetch order.
func (c *Cache) Products() []domain.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Search filters cached products by case-insensitive name substring.
func (c *Cache) Search(term string) []domain.Product {
	term = strings.ToLower(term)
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Product, 0)
	for _, p := range c.products {
		if strings.Contains(strings.ToLower(p.Name), term) {
			out = append(out, p)
		}
	}
	return out
}

// Get returns the product by id, falling through to a single-item fetch when
// the cache misses (for example before the first Refresh).
func (c *Cache) Get(ctx context.Context, id string) (domain.Product, error) {
	c.mu.Lock()
	p, ok := c.byID[id]
	c.mu.Unlock()
	if ok {
		return p, nil
	}
	return c.client.FetchByID(ctx, id)
}

// LastSync reports when the cache last refreshed successfully; zero if never.
func (c *Cache) LastSync() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastSync
}
