package order

// Item represents a single line on an order: a product at a unit price,
// ordered some number of times.
//
// Product and price are fixed at construction. Quantity is changed by the
// owning Order when another item with the same product and price is merged in.
type Item struct {
	product  Product
	price    float64
	quantity int
}

// NewItem creates an item. No validation happens here; an Order rejects
// invalid items when they are added.
func NewItem(product Product, price float64, quantity int) *Item {
	return &Item{
		product:  product,
		price:    price,
		quantity: quantity,
	}
}

// Product returns the product this line refers to.
func (i *Item) Product() Product {
	return i.product
}

// Price returns the unit price.
func (i *Item) Price() float64 {
	return i.price
}

// Quantity returns how many units the line holds.
func (i *Item) Quantity() int {
	return i.quantity
}

// SetQuantity replaces the quantity.
func (i *Item) SetQuantity(quantity int) {
	i.quantity = quantity
}
