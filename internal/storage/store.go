// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/orderlines/internal/models"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when an insert violates a uniqueness constraint.
	ErrDuplicate = errors.New("duplicate record")
)

// Store defines the interface for order and user storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateOrder persists a new order.
	// The order.ID and CreatedAt fields will be populated by the store.
	CreateOrder(ctx context.Context, order *models.Order) error

	// GetOrder retrieves an order and its lines by ID.
	// Returns an error wrapping ErrNotFound if the order does not exist.
	GetOrder(ctx context.Context, orderID string) (*models.Order, error)

	// ListOrders returns all orders owned by the customer, newest first.
	ListOrders(ctx context.Context, customerID string) ([]*models.Order, error)

	// SaveItems replaces the lines of an order in a single transaction.
	// Lines without an ID are assigned one. Positions are rewritten from
	// the slice order.
	SaveItems(ctx context.Context, orderID string, items []models.LineItem) error

	// CreateUser inserts a new user.
	// Returns an error wrapping ErrDuplicate if the email is taken.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail returns the user with the email, or nil if there is none.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID returns the user with the ID, or nil if there is none.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Close releases any resources held by the store.
	Close() error
}
