// Package cart holds the not-yet-purchased product lines. Every mutation
// writes the full line list back to durable storage so a restart (or a
// second invocation of the CLI) sees the same cart.
package cart

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/deltapharm/pharmacy-client-golang/internal/models"
	"github.com/deltapharm/pharmacy-client-golang/internal/storage"
)

type Container struct {
	store *storage.Store
	log   *slog.Logger

	mu    sync.Mutex
	lines []models.CartLine
	total float64
}

func New(store *storage.Store, log *slog.Logger) *Container {
	return &Container{store: store, log: log}
}

// Initialize loads the persisted line list. An absent or unparsable entry
// means an empty cart; it never fails.
func (c *Container) Initialize() {
	raw, ok, err := c.store.Get(storage.KeyCart)
	if err != nil || !ok {
		return
	}

	var lines []models.CartLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		c.log.Warn("discarding unparsable persisted cart", "err", err)
		return
	}

	c.mu.Lock()
	c.lines = lines
	c.recomputeTotalLocked()
	c.mu.Unlock()
}

// Add puts quantity units of the product in the cart, merging into the
// existing line when the product is already there. At most one line exists
// per product id.
func (c *Container) Add(product models.Product, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	merged := false
	for i := range c.lines {
		if c.lines[i].ProductID == product.ID {
			c.lines[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		c.lines = append(c.lines, models.CartLine{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			ImageURL:  product.ImageURL,
			Quantity:  quantity,
		})
	}

	return c.persistLocked()
}

// Remove deletes the line for the product id. Removing an absent line is
// not an error.
func (c *Container) Remove(productID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.removeLocked(productID)
}

func (c *Container) removeLocked(productID int64) error {
	kept := c.lines[:0]
	for _, line := range c.lines {
		if line.ProductID != productID {
			kept = append(kept, line)
		}
	}
	c.lines = kept
	return c.persistLocked()
}

// UpdateQuantity sets the line's quantity. A value of zero or below removes
// the line. Unknown product ids are a silent no-op: only existing lines are
// mapped over, never created.
func (c *Container) UpdateQuantity(productID int64, quantity int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity <= 0 {
		return c.removeLocked(productID)
	}

	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Quantity = quantity
			break
		}
	}
	return c.persistLocked()
}

// Clear empties the cart and removes the storage entry entirely, as
// opposed to persisting an empty list.
func (c *Container) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lines = nil
	c.total = 0
	return c.store.Delete(storage.KeyCart)
}

// Lines returns a copy of the current line list.
func (c *Container) Lines() []models.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Total is the sum of price times quantity over all lines. It is derived
// state, recomputed on every mutation and never stored on its own.
func (c *Container) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// ItemCount is the sum of quantities across all lines.
func (c *Container) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for _, line := range c.lines {
		count += line.Quantity
	}
	return count
}

func (c *Container) persistLocked() error {
	c.recomputeTotalLocked()

	raw, err := json.Marshal(c.lines)
	if err != nil {
		return err
	}
	return c.store.Put(storage.KeyCart, raw)
}

func (c *Container) recomputeTotalLocked() {
	sum := 0.0
	for _, line := range c.lines {
		sum += line.Price * float64(line.Quantity)
	}
	c.total = sum
}
