// Package cart holds the per-session shopping cart: a mapping of product id to
// quantity that never stores a non-positive quantity.
package cart

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// DefaultMaxQuantity caps a single entry so pricing cannot be driven to overflow.
const DefaultMaxQuantity = 99

var (
	ErrValidation = errors.New("cart: validation failed")
	ErrNotInCart  = errors.New("cart: product is not in cart")
)

// ValidationError reports a rejected mutation together with the offending field.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

type Entry struct {
	ProductID uint `json:"productId"`
	Quantity  int  `json:"quantity"`
}

type Cart struct {
	Items       map[uint]int `json:"items"`
	maxQuantity int
}

func New() *Cart {
	return &Cart{Items: map[uint]int{}}
}

// WithMaxQuantity overrides the per-entry cap. Values below 1 restore the default.
func (c *Cart) WithMaxQuantity(max int) *Cart {
	c.maxQuantity = max
	return c
}

func (c *Cart) limit() int {
	if c.maxQuantity < 1 {
		return DefaultMaxQuantity
	}
	return c.maxQuantity
}

func (c *Cart) ensure() {
	if c.Items == nil {
		c.Items = map[uint]int{}
	}
}

// Add increments the quantity for productID by one and returns the new quantity.
func (c *Cart) Add(productID uint) int {
	c.ensure()
	qty := c.Items[productID] + 1
	if qty > c.limit() {
		qty = c.limit()
	}
	c.Items[productID] = qty
	return qty
}

// Remove deletes the entry; removing an absent product is a no-op.
func (c *Cart) Remove(productID uint) {
	delete(c.Items, productID)
}

// SetQuantity replaces the quantity of an entry that is already in the cart.
// The raw value must parse as an integer; it is then clamped to [1, max].
func (c *Cart) SetQuantity(productID uint, raw string) (int, error) {
	qty, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &ValidationError{Field: "quantity", Message: "invalid quantity", Err: err}
	}
	if _, ok := c.Items[productID]; !ok {
		return 0, &ValidationError{Field: "productId", Message: "product not in cart", Err: ErrNotInCart}
	}
	qty = max(1, min(qty, c.limit()))
	c.Items[productID] = qty
	return qty, nil
}

func (c *Cart) Clear() {
	c.Items = map[uint]int{}
}

func (c *Cart) Quantity(productID uint) int {
	return c.Items[productID]
}

// Count is the total number of units across all entries.
func (c *Cart) Count() int {
	n := 0
	for _, qty := range c.Items {
		n += qty
	}
	return n
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Snapshot returns the entries ordered by product id. Entries that somehow hold a
// non-positive quantity are dropped.
func (c *Cart) Snapshot() []Entry {
	entries := make([]Entry, 0, len(c.Items))
	for id, qty := range c.Items {
		if qty < 1 {
			continue
		}
		entries = append(entries, Entry{ProductID: id, Quantity: qty})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ProductID < entries[j].ProductID
	})
	return entries
}
