package cart

import (
	"sync"

	"go.uber.org/zap"

	"github.com/Ahsankhan2345/shopping-hify/internal/domain"
)

// Store is the single source of truth for what each user intends to buy.
// Carts are scoped per user and never shared; each cart is guarded by its own
// mutex so concurrent requests for different users never contend.
//
// Every operation is total: unknown product ids are no-ops, never errors.
type Store struct {
	logger *zap.Logger

	mu    sync.RWMutex
	carts map[string]*cart

	subMu sync.RWMutex
	subs  []func(userID string)
}

type cart struct {
	mu    sync.Mutex
	lines []domain.CartLine
}

func NewStore(logger *zap.Logger) *Store {
	return &Store{
		logger: logger,
		carts:  make(map[string]*cart),
	}
}

// Subscribe registers a callback invoked after every cart mutation. Callbacks
// run on the mutating goroutine and must not call back into the Store.
func (s *Store) Subscribe(fn func(userID string)) {
	s.subMu.Lock()
	s.subs = append(s.subs, fn)
	s.subMu.Unlock()
}

func (s *Store) notify(userID string) {
	s.subMu.RLock()
	subs := s.subs
	s.subMu.RUnlock()
	for _, fn := range subs {
		fn(userID)
	}
}

func (s *Store) cartFor(userID string) *cart {
	s.mu.RLock()
	c, ok := s.carts[userID]
	s.mu.RUnlock()
	if ok {
		return c
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.carts[userID]; ok {
		return c
	}
	c = &cart{}
	s.carts[userID] = c
	return c
}

// Add inserts a new line with qty 1, snapshotting name, price and image from
// the product, or increments the existing line. Quantity has no upper bound
// and stock is never consulted.
func (s *Store) Add(userID string, p domain.Product) {
	c := s.cartFor(userID)
	c.mu.Lock()
	if line := c.find(p.ID); line != nil {
		line.Qty++
	} else {
		c.lines = append(c.lines, domain.CartLine{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			ImageURL:  p.ImageURL,
			Qty:       1,
		})
	}
	c.mu.Unlock()

	s.logger.Debug("cart add", zap.String("user_id", userID), zap.String("product_id", p.ID))
	s.notify(userID)
}

// Increment raises the matching line's qty by 1. No-op for unknown ids.
func (s *Store) Increment(userID, productID string) {
	c := s.cartFor(userID)
	c.mu.Lock()
	if line := c.find(productID); line != nil {
		line.Qty++
	}
	c.mu.Unlock()
	s.notify(userID)
}

// Decrement lowers the matching line's qty by 1, but never below 1: at qty 1
// it is a no-op, not a removal. Removal is the explicit Remove call.
func (s *Store) Decrement(userID, productID string) {
	c := s.cartFor(userID)
	c.mu.Lock()
	if line := c.find(productID); line != nil && line.Qty > 1 {
		line.Qty--
	}
	c.mu.Unlock()
	s.notify(userID)
}

// Remove deletes the matching line entirely. No-op for unknown ids.
func (s *Store) Remove(userID, productID string) {
	c := s.cartFor(userID)
	c.mu.Lock()
	for i, line := range c.lines {
		if line.ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			break
		}
	}
	c.mu.Unlock()
	s.notify(userID)
}

// Clear empties the cart unconditionally.
func (s *Store) Clear(userID string) {
	c := s.cartFor(userID)
	c.mu.Lock()
	c.lines = nil
	c.mu.Unlock()

	s.logger.Debug("cart cleared", zap.String("user_id", userID))
	s.notify(userID)
}

// Lines returns a copy of the cart in insertion order.
func (s *Store) Lines(userID string) []domain.CartLine {
	c := s.cartFor(userID)
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Total is derived on demand, never cached, so it is always consistent with
// the current lines. Empty cart totals zero.
func (s *Store) Total(userID string) int64 {
	c := s.cartFor(userID)
	c.mu.Lock()
	defer c.mu.Unlock()
	var total int64
	for _, line := range c.lines {
		total += line.Subtotal()
	}
	return total
}

func (c *cart) find(productID string) *domain.CartLine {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			return &c.lines[i]
		}
	}
	return nil
}
