// Package cart holds a shopper's cart lines. A line is identified by the pair
// (product id, classification); an empty classification is a full bottle.
package cart

import (
	"encoding/json"
	"errors"
)

// MaxQuantity is the most units a single line may hold.
const MaxQuantity = 99

var (
	// ErrInvalidQuantity is returned when adding a non-positive quantity.
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	// ErrQuantityLimit is returned when a line would exceed MaxQuantity.
	ErrQuantityLimit = errors.New("quantity exceeds the per-line limit of 99")
)

// Item is one cart line. Price is the unit price resolved when the line was
// added (full bottle or prorated decant); it is never re-derived.
type Item struct {
	ProductID      int64  `json:"product_id"`
	Name           string `json:"name"`
	Image          string `json:"image,omitempty"`
	Category       string `json:"category,omitempty"`
	Price          int64  `json:"price"`
	Quantity       int    `json:"quantity"`
	Classification string `json:"classification,omitempty"`
}

// Subtotal is Price * Quantity.
func (i Item) Subtotal() int64 {
	return i.Price * int64(i.Quantity)
}

func (i Item) matches(productID int64, classification string) bool {
	return i.ProductID == productID && i.Classification == classification
}

// Cart is an ordered set of lines. The zero value is an empty cart.
type Cart struct {
	items []Item
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// Add merges quantity into the line for (item.ProductID, item.Classification),
// appending a new line when none exists. A line never holds more than
// MaxQuantity units; an Add that would exceed it leaves the cart unchanged.
func (c *Cart) Add(item Item, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if quantity > MaxQuantity {
		return ErrQuantityLimit
	}
	for i := range c.items {
		if c.items[i].matches(item.ProductID, item.Classification) {
			if c.items[i].Quantity > MaxQuantity-quantity {
				return ErrQuantityLimit
			}
			c.items[i].Quantity += quantity
			return nil
		}
	}
	item.Quantity = quantity
	c.items = append(c.items, item)
	return nil
}

// Remove deletes the line for (productID, classification). It reports
// whether a line was removed.
func (c *Cart) Remove(productID int64, classification string) bool {
	return c.filter(func(it Item) bool { return it.matches(productID, classification) }) > 0
}

// UpdateQuantity sets the quantity of the (productID, classification) line.
// A quantity <= 0 removes the line; one above MaxQuantity is capped. It
// reports whether a line was affected.
func (c *Cart) UpdateQuantity(productID int64, classification string, quantity int) bool {
	if quantity <= 0 {
		return c.Remove(productID, classification)
	}
	quantity = min(quantity, MaxQuantity)
	for i := range c.items {
		if c.items[i].matches(productID, classification) {
			c.items[i].Quantity = quantity
			return true
		}
	}
	return false
}

// RemoveAll deletes every line of productID whatever its classification and
// returns how many lines were removed.
func (c *Cart) RemoveAll(productID int64) int {
	return c.filter(func(it Item) bool { return it.ProductID == productID })
}

// UpdateAllQuantities sets quantity on every line of productID. A quantity
// <= 0 behaves like RemoveAll; one above MaxQuantity is capped. It returns
// how many lines were affected.
func (c *Cart) UpdateAllQuantities(productID int64, quantity int) int {
	if quantity <= 0 {
		return c.RemoveAll(productID)
	}
	quantity = min(quantity, MaxQuantity)
	n := 0
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items[i].Quantity = quantity
			n++
		}
	}
	return n
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.items = nil
}

// Total is the sum of price * quantity over all lines.
func (c *Cart) Total() int64 {
	var total int64
	for _, it := range c.items {
		total += it.Subtotal()
	}
	return total
}

// Count is the number of units across all lines.
func (c *Cart) Count() int {
	n := 0
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

// Len is the number of lines.
func (c *Cart) Len() int {
	return len(c.items)
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Lines returns a copy of the lines in insertion order.
func (c *Cart) Lines() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Clone returns an independent copy of the cart.
func (c *Cart) Clone() *Cart {
	return &Cart{items: c.Lines()}
}

func (c *Cart) filter(drop func(Item) bool) int {
	kept := c.items[:0]
	removed := 0
	for _, it := range c.items {
		if drop(it) {
			removed++
			continue
		}
		kept = append(kept, it)
	}
	c.items = kept
	return removed
}

// MarshalJSON encodes the cart as its list of lines.
func (c *Cart) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Lines())
}

// UnmarshalJSON decodes a list of lines.
func (c *Cart) UnmarshalJSON(data []byte) error {
	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	c.items = items
	return nil
}
