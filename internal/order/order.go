// Package order implements the order aggregate: a list of line items in
// which lines for the same product at the same price are merged.
//
// An Order is not safe for concurrent use. Callers sharing one must
// serialize AddItem, otherwise two calls can both miss an existing line and
// both append.
package order

// Order holds line items in insertion order.
type Order struct {
	items []*Item
}

// New returns an empty order.
func New() *Order {
	return &Order{items: []*Item{}}
}

// AddItem validates item and then either folds its quantity into the first
// existing line with an equal product and the same price, or appends it.
//
// Validation runs before anything is touched, so a rejected item leaves the
// order unchanged. The error wraps ErrIncorrectItem.
func (o *Order) AddItem(item *Item) error {
	if item == nil {
		return newIncorrectItem(ReasonNilItem)
	}
	// Written as a negation so NaN is rejected too.
	if !(item.Price() >= 0) {
		return newIncorrectItem(ReasonInvalidPrice)
	}
	if item.Quantity() <= 0 {
		return newIncorrectItem(ReasonInvalidQuantity)
	}

	if existing := o.find(item.Product(), item.Price()); existing != nil {
		existing.SetQuantity(existing.Quantity() + item.Quantity())
		return nil
	}

	o.items = append(o.items, item)
	return nil
}

// find returns the first line matching product and price exactly, or nil.
func (o *Order) find(product Product, price float64) *Item {
	for _, existing := range o.items {
		if existing.Product().Equal(product) && existing.Price() == price {
			return existing
		}
	}
	return nil
}

// Items returns the order's lines. The slice is the order's own storage,
// not a copy; callers must not modify it.
func (o *Order) Items() []*Item {
	return o.items
}

// Len returns the number of lines.
func (o *Order) Len() int {
	return len(o.items)
}

// Restore rebuilds an order from previously accepted lines by adding them
// in sequence. Lines that would have been merged are merged again, so the
// result always satisfies the order's invariants.
func Restore(items []*Item) (*Order, error) {
	o := New()
	for _, item := range items {
		if err := o.AddItem(item); err != nil {
			return nil, err
		}
	}
	return o, nil
}
