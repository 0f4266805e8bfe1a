package models

// Order represents a customer's order and its lines.
type Order struct {
	// ID is the unique identifier for the order (UUID format).
	ID string

	// CustomerID is the user who owns the order.
	CustomerID string

	// Items are the order lines in insertion order.
	Items []LineItem

	// CreatedAt is the Unix timestamp when the order was created.
	CreatedAt int64

	// UpdatedAt is the Unix timestamp of the last change to the order's lines.
	UpdatedAt int64
}

// LineItem represents a single stored line on an order.
type LineItem struct {
	// ID is the unique identifier for the line (UUID format).
	// Merging another item into a line keeps its ID.
	ID string

	// ProductID is the SKU of the product on this line.
	ProductID string

	// Price is the unit price. Never negative.
	Price float64

	// Quantity is the number of units. Always greater than zero.
	Quantity int

	// Position is the zero-based insertion index of the line within the order.
	Position int
}
