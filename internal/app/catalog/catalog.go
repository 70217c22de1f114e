/*
Package catalog holds the storefront content managed through the CMS panel:
products, promo codes, and the header promo message.

Content lives in process memory seeded with the launch collection; the CMS
endpoints mutate it directly. There is no durable product database.
*/
package catalog

import (
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Product categories.
const (
	CategoryParty   = "Party Wear"
	CategoryWedding = "Wedding Wear"
)

// Product is one item in the collection.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl"`
}

// Promo is a discount voucher. Codes are stored upper-cased.
type Promo struct {
	Code            string `json:"code"`
	DiscountPercent int    `json:"discountPercent"`
}

// ValidCategory reports whether the category is one the storefront sells.
func ValidCategory(category string) bool {
	return category == CategoryParty || category == CategoryWedding
}

// Catalog is the concurrency-safe content registry.
type Catalog struct {
	mu       sync.RWMutex
	products []Product
	promos   map[string]Promo
	header   string
}

// New returns a catalog seeded with the launch collection and promos.
func New() *Catalog {
	c := &Catalog{
		promos: make(map[string]Promo),
		header: "FREE SHIPPING ON ORDERS OVER $500 | USE CODE: LUXE10",
	}
	c.products = append(c.products, seedProducts...)
	for _, p := range seedPromos {
		c.promos[p.Code] = p
	}
	return c
}

// Products returns the collection, optionally filtered by category.
// An empty category returns everything.
func (c *Catalog) Products(category string) []Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Product, 0, len(c.products))
	for _, p := range c.products {
		if category == "" || p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// Product looks up a single product by ID.
func (c *Catalog) Product(id string) (Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// AddProduct stores a new product, assigning its ID.
func (c *Catalog) AddProduct(p Product) Product {
	p.ID = uuid.New().String()

	c.mu.Lock()
	c.products = append(c.products, p)
	c.mu.Unlock()

	return p
}

// UpdateProduct replaces the product with the same ID. It reports whether the
// product existed.
func (c *Catalog) UpdateProduct(p Product) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.products {
		if c.products[i].ID == p.ID {
			c.products[i] = p
			return true
		}
	}
	return false
}

// DeleteProduct removes the product. It returns the removed product so the
// caller can release any stored image, and whether it existed.
func (c *Catalog) DeleteProduct(id string) (Product, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.products {
		if c.products[i].ID == id {
			removed := c.products[i]
			c.products = append(c.products[:i], c.products[i+1:]...)
			return removed, true
		}
	}
	return Product{}, false
}

// Promos returns all promo codes sorted by code.
func (c *Catalog) Promos() []Promo {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Promo, 0, len(c.promos))
	for _, p := range c.promos {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// Promo looks up a voucher, case-insensitively.
func (c *Catalog) Promo(code string) (Promo, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.promos[strings.ToUpper(code)]
	return p, ok
}

// AddPromo stores a new voucher, upper-casing the code. It reports false when
// the code already exists.
func (c *Catalog) AddPromo(code string, discountPercent int) (Promo, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.promos[code]; exists {
		return Promo{}, false
	}

	p := Promo{Code: code, DiscountPercent: discountPercent}
	c.promos[code] = p
	return p, true
}

// RemovePromo deletes a voucher, reporting whether it existed.
func (c *Catalog) RemovePromo(code string) bool {
	code = strings.ToUpper(code)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.promos[code]; !ok {
		return false
	}
	delete(c.promos, code)
	return true
}

// HeaderMessage returns the promo banner text shown above the navigation.
func (c *Catalog) HeaderMessage() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.header
}

// SetHeaderMessage replaces the promo banner text. An empty message hides the banner.
func (c *Catalog) SetHeaderMessage(msg string) {
	c.mu.Lock()
	c.header = msg
	c.mu.Unlock()
}
