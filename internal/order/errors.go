package order

import "errors"

// ErrIncorrectItem is returned (wrapped) by AddItem for every rejected item.
var ErrIncorrectItem = errors.New("incorrect item")

// Rejection reasons.
const (
	ReasonNilItem         = "item must not be nil"
	ReasonInvalidPrice    = "item price must be zero or greater"
	ReasonInvalidQuantity = "item quantity must be greater than zero"
)

// IncorrectItemError describes why an item was refused.
type IncorrectItemError struct {
	Reason string
}

func (e *IncorrectItemError) Error() string {
	return "incorrect item: " + e.Reason
}

// Is makes errors.Is(err, ErrIncorrectItem) hold for every IncorrectItemError.
func (e *IncorrectItemError) Is(target error) bool {
	return target == ErrIncorrectItem
}

func newIncorrectItem(reason string) *IncorrectItemError {
	return &IncorrectItemError{Reason: reason}
}
