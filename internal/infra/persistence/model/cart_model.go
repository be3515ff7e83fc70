package model

import (
	"time"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// CartModel mirrors the 'carts' table. The unique index on UserID is what
// makes concurrent first-use cart creation converge to a single row.
type CartModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID    uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null"`
	Items     []CartItemModel `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (CartModel) TableName() string {
	return "carts"
}

// CartItemModel mirrors the 'cart_items' table. The composite unique index on
// (CartID, ProductID) is the conflict target for the quantity upsert; it also
// guarantees at most one row per product per cart.
type CartItemModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	CartID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_cart_product;not null"`
	ProductID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_cart_product;not null"`
	Quantity  int       `gorm:"not null;check:quantity >= 1"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (CartItemModel) TableName() string {
	return "cart_items"
}

// ToDomain maps the persistence model to a pure domain entity.
func (m *CartModel) ToDomain() *entity.Cart {
	items := make([]entity.CartItem, 0, len(m.Items))
	for _, item := range m.Items {
		items = append(items, entity.CartItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	return &entity.Cart{
		ID:        m.ID,
		UserID:    m.UserID,
		Items:     items,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
