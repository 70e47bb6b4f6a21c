package checkout

import (
	"github.com/example/glowmart/pkg/models"
)

// Line is one cart entry: a product snapshot plus how many of it.
type Line struct {
	Product  models.Product
	Quantity int
}

// Cart accumulates selected products before checkout. It is an explicit
// value owned by its caller, never persisted and never shared through a
// global; it is discarded on successful checkout or explicit clear.
type Cart struct {
	lines []Line
}

func NewCart() *Cart {
	return &Cart{}
}

// Add puts one unit of a product in the cart, incrementing the quantity
// if the product is already present. It reports whether a new line was
// created.
func (c *Cart) Add(p models.Product) bool {
	id := p.ID.Hex()
	for i := range c.lines {
		if c.lines[i].Product.ID.Hex() == id {
			c.lines[i].Quantity++
			return false
		}
	}
	c.lines = append(c.lines, Line{Product: p, Quantity: 1})
	return true
}

// UpdateQuantity sets the quantity of a line. Zero removes the line;
// negative quantities are not expected and are treated as zero.
func (c *Cart) UpdateQuantity(productID string, quantity int) {
	if quantity <= 0 {
		c.Remove(productID)
		return
	}
	for i := range c.lines {
		if c.lines[i].Product.ID.Hex() == productID {
			c.lines[i].Quantity = quantity
			return
		}
	}
}

func (c *Cart) Remove(productID string) bool {
	for i := range c.lines {
		if c.lines[i].Product.ID.Hex() == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return true
		}
	}
	return false
}

func (c *Cart) Clear() {
	c.lines = nil
}

func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}

func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Total is recomputed from the lines on every call, so it can never
// drift from the cart contents.
func (c *Cart) Total() float64 {
	var sum float64
	for _, line := range c.lines {
		sum += line.Product.Price * float64(line.Quantity)
	}
	return sum
}

// Items renders the cart as order line items with computed subtotals.
func (c *Cart) Items() []models.OrderItem {
	items := make([]models.OrderItem, len(c.lines))
	for i, line := range c.lines {
		items[i] = models.OrderItem{
			ProductID: line.Product.ID.Hex(),
			Name:      line.Product.Name,
			Price:     line.Product.Price,
			Quantity:  line.Quantity,
			Subtotal:  line.Product.Price * float64(line.Quantity),
		}
	}
	return items
}
