package order

// Product is the thing an Item refers to. Two items name the same product
// when Equal reports true; the relation must be reflexive, symmetric,
// transitive and stable for the life of an Order.
type Product interface {
	Equal(other Product) bool
}

// SKU is a Product identified by its stock keeping unit string.
type SKU string

// Equal reports whether other is a SKU with the same value.
func (s SKU) Equal(other Product) bool {
	o, ok := other.(SKU)
	return ok && o == s
}

// String returns the SKU value.
func (s SKU) String() string {
	return string(s)
}
