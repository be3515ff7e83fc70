package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartProductRef is a cart item's product reference resolved into a
// display-ready shape.
type CartProductRef struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image"`
}

// CartItemView is one resolved line of a cart.
type CartItemView struct {
	Product  CartProductRef `json:"product"`
	Quantity int            `json:"quantity"`
}

// CartView is the resolved cart returned to clients. Items whose product no
// longer exists in the catalog are filtered out of the view.
type CartView struct {
	ID     string         `json:"id"`
	UserID string         `json:"userId"`
	Items  []CartItemView `json:"items"`
}

// CartUsecase defines the per-user cart mutation operations.
type CartUsecase interface {
	// AddItem adds one unit of the product to the user's cart, creating the
	// cart on first use. productID must be a syntactically valid id.
	AddItem(ctx context.Context, userID uuid.UUID, productID string) (*CartView, error)

	// RemoveItem removes one unit of the product from the user's cart,
	// dropping the line entirely when its quantity reaches zero.
	RemoveItem(ctx context.Context, userID uuid.UUID, productID string) (*CartView, error)

	// GetCart returns the user's resolved cart.
	GetCart(ctx context.Context, userID uuid.UUID) (*CartView, error)
}
