package repository

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrOrderNotFound is returned when an order is not found.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository defines the interface for order database operations.
// Orders are append-only apart from status updates; there is no delete.
type OrderRepository interface {
	// Create persists a new order and its line items.
	Create(ctx context.Context, order *entity.Order) error

	// FindByID retrieves an order by id. Returns ErrOrderNotFound when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// FindAll retrieves every order, newest first.
	FindAll(ctx context.Context) ([]*entity.Order, error)

	// FindByUser retrieves the given user's orders, newest first.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)

	// UpdateStatus sets the order's status. Returns ErrOrderNotFound when the
	// order does not exist.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error
}
