package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog entry available for purchase.
// Products are immutable once listed, except for deletion by an admin.
// Carts reference products by identity; orders snapshot name and price at
// placement time so later edits or deletion never rewrite order history.
type Product struct {
	ID          uuid.UUID
	Name        string
	Description string
	Price       decimal.Decimal // Unit price in major currency units; never negative.
	Category    string
	Image       string // Object key of the product image in the uploads bucket.
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
