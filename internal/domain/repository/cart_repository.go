package repository

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Domain-specific errors for cart persistence.
var (
	// ErrCartNotFound is returned when the user has no cart.
	ErrCartNotFound = errors.New("cart not found")
	// ErrCartItemNotFound is returned when the product is not in the cart.
	ErrCartItemNotFound = errors.New("cart item not found")
)

// CartRepository defines the interface for cart database operations.
//
// AddItem and RemoveItem must be implemented as atomic conditional updates at
// the storage layer, not load-then-save: two concurrent AddItem calls for the
// same product must both land, and concurrent cart creation must converge to a
// single cart row per user.
type CartRepository interface {
	// AddItem increments the quantity of the product in the user's cart by one,
	// inserting the item (quantity 1) if absent and creating the cart if the
	// user has none yet.
	AddItem(ctx context.Context, userID, productID uuid.UUID) error

	// RemoveItem decrements the quantity of the product in the user's cart by
	// one, deleting the item when its quantity is 1. Returns ErrCartNotFound or
	// ErrCartItemNotFound.
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) error

	// FindByUser retrieves the user's cart with its items.
	// Returns ErrCartNotFound when the user has no cart.
	FindByUser(ctx context.Context, userID uuid.UUID) (*entity.Cart, error)

	// Clear empties the user's cart item collection. Clearing an absent or
	// already-empty cart is not an error.
	Clear(ctx context.Context, userID uuid.UUID) error
}
