package models

// Cart represents a shopping cart held in the session. It is transient:
// nothing is reserved until checkout applies the lines against stock.
type Cart struct {
	Items       []CartItem `json:"items"`
	TotalAmount int        `json:"total_amount"` // in cents
}

// CartItem represents an item in the shopping cart
type CartItem struct {
	SweetID   int    `json:"sweet_id"`
	SweetName string `json:"sweet_name"`
	Price     int    `json:"price"` // unit price snapshot, in cents
	Quantity  int    `json:"quantity"`
	Subtotal  int    `json:"subtotal"` // in cents
}

// CartLine is a (sweet id, quantity) pair submitted for checkout
type CartLine struct {
	SweetID  int `json:"sweet_id"`
	Quantity int `json:"quantity"`
}

// Lines converts the cart items to checkout lines
func (c *Cart) Lines() []CartLine {
	lines := make([]CartLine, 0, len(c.Items))
	for _, item := range c.Items {
		lines = append(lines, CartLine{SweetID: item.SweetID, Quantity: item.Quantity})
	}
	return lines
}

// Recalculate recomputes subtotals and the cart total from current items
func (c *Cart) Recalculate() {
	total := 0
	for i := range c.Items {
		c.Items[i].Subtotal = c.Items[i].Price * c.Items[i].Quantity
		total += c.Items[i].Subtotal
	}
	c.TotalAmount = total
}
