package entity

import (
	"time"

	"github.com/google/uuid"
)

// Cart holds a user's pre-checkout purchase intent. Each user has at most one
// live cart, and no two items in the same cart reference the same product.
type Cart struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Items     []CartItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CartItem is one product/quantity pair within a cart. Quantity is always at
// least 1 while the item exists; dropping to zero removes the item instead.
type CartItem struct {
	ProductID uuid.UUID
	Quantity  int
}
