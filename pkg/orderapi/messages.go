// Package orderapi defines the orderlines RPC surface: request and response
// messages, procedure names, and Connect handler and client constructors.
//
// Messages are plain Go structs carried as JSON by Codec.
package orderapi

// Outcome values reported by AddItem.
const (
	OutcomeAppended = "appended"
	OutcomeMerged   = "merged"
)

// LineItem is one line of an order.
type LineItem struct {
	ID        string  `json:"id"`
	ProductID string  `json:"productId"`
	Price     float64 `json:"price"`
	Quantity  int64   `json:"quantity"`
}

// Order is an order and its lines in insertion order.
type Order struct {
	ID         string      `json:"id"`
	CustomerID string      `json:"customerId"`
	Items      []*LineItem `json:"items"`
	CreatedAt  int64       `json:"createdAt"`
	UpdatedAt  int64       `json:"updatedAt"`
}

type CreateOrderRequest struct{}

type CreateOrderResponse struct {
	Order *Order `json:"order"`
}

type AddItemRequest struct {
	OrderID   string  `json:"orderId"`
	ProductID string  `json:"productId"`
	Price     float64 `json:"price"`
	Quantity  int32   `json:"quantity"`
}

type AddItemResponse struct {
	Order *Order `json:"order"`
	// Outcome is OutcomeAppended or OutcomeMerged.
	Outcome string `json:"outcome"`
}

type GetItemsRequest struct {
	OrderID string `json:"orderId"`
}

type GetItemsResponse struct {
	Order *Order `json:"order"`
}

type ListOrdersRequest struct{}

type ListOrdersResponse struct {
	Orders []*Order `json:"orders"`
}

// User is the public view of an account.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	CreatedAt   int64  `json:"createdAt"`
}

type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
}

type RegisterResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	User *User `json:"user"`
}
