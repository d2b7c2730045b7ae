// Package pos implements the checkout pipeline: cart assembly,
// discount computation and order finalization.
package pos

import (
	"fmt"

	"supershop/m/domain"
	"supershop/m/internal/store"
)

// Line is one cart entry. UnitPrice is snapshotted when the line is
// added so later catalog price edits do not move the cart total.
type Line struct {
	ProductID int
	Name      string
	Quantity  int
	UnitPrice float64
}

func (l Line) Subtotal() float64 {
	return float64(l.Quantity) * l.UnitPrice
}

// Cart is owned by the active sale session and discarded after
// checkout or cancellation. Adding a line validates against the
// catalog but does not reserve stock; stock is decremented only at
// checkout confirmation.
type Cart struct {
	lines []Line
}

func NewCart() *Cart { return &Cart{} }

// AddLine validates the product and quantity against the catalog and
// appends a line, merging into an existing line for the same product.
// A merge re-checks the combined quantity against current stock.
func (c *Cart) AddLine(catalog *store.ProductStore, productID, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("quantity %d: %w", quantity, domain.ErrInvalidQuantity)
	}
	product, err := catalog.Get(productID)
	if err != nil {
		return err
	}

	requested := quantity
	if i := c.find(productID); i >= 0 {
		requested += c.lines[i].Quantity
	}
	if requested > product.Quantity {
		return fmt.Errorf("product %d has %d: %w", productID, product.Quantity, domain.ErrInsufficientStock)
	}

	if i := c.find(productID); i >= 0 {
		c.lines[i].Quantity += quantity
		return nil
	}
	c.lines = append(c.lines, Line{
		ProductID: productID,
		Name:      product.Name,
		Quantity:  quantity,
		UnitPrice: product.SalePrice,
	})
	return nil
}

// RemoveLine deletes the line for productID. Stock was never reserved,
// so nothing is returned to the catalog.
func (c *Cart) RemoveLine(productID int) error {
	i := c.find(productID)
	if i < 0 {
		return fmt.Errorf("product %d not in cart: %w", productID, domain.ErrNotFound)
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	return nil
}

// Clear discards all lines unconditionally.
func (c *Cart) Clear() { c.lines = nil }

func (c *Cart) Empty() bool { return len(c.lines) == 0 }

// Lines returns a copy of the cart contents in add order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// GrossTotal is the undiscounted sum of all line subtotals.
func (c *Cart) GrossTotal() float64 {
	var total float64
	for _, line := range c.lines {
		total += line.Subtotal()
	}
	return total
}

func (c *Cart) find(productID int) int {
	for i, line := range c.lines {
		if line.ProductID == productID {
			return i
		}
	}
	return -1
}
