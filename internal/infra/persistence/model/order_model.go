package model

import (
	"time"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderModel mirrors the 'orders' table.
type OrderModel struct {
	ID              uuid.UUID        `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID          uuid.UUID        `gorm:"type:uuid;index;not null"`
	Items           []OrderItemModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	DeliveryAddress string           `gorm:"type:text;not null"`
	TotalAmount     decimal.Decimal  `gorm:"type:numeric(12,2);not null"`
	Status          string           `gorm:"type:varchar(20);not null;default:'Pending'"`
	CreatedAt       time.Time        `gorm:"index:idx_orders_created_at,sort:desc"`
	UpdatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel mirrors the 'order_items' table. ProductID is deliberately
// not a foreign key: items are snapshots and must outlive catalog deletions.
type OrderItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OrderID     uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	Name        string          `gorm:"type:varchar(255);not null"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Quantity    int             `gorm:"not null;check:quantity >= 1"`
	CreatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain maps the persistence model to a pure domain entity.
func (m *OrderModel) ToDomain() *entity.Order {
	items := make([]entity.OrderItem, 0, len(m.Items))
	for _, item := range m.Items {
		items = append(items, entity.OrderItem{
			ProductID:   item.ProductID,
			Name:        item.Name,
			Description: item.Description,
			Price:       item.Price,
			Quantity:    item.Quantity,
		})
	}

	return &entity.Order{
		ID:              m.ID,
		UserID:          m.UserID,
		Items:           items,
		DeliveryAddress: m.DeliveryAddress,
		TotalAmount:     m.TotalAmount,
		Status:          entity.OrderStatus(m.Status),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// OrderModelFromDomain maps a domain entity to its persistence model.
func OrderModelFromDomain(order *entity.Order) *OrderModel {
	items := make([]OrderItemModel, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemModel{
			ProductID:   item.ProductID,
			Name:        item.Name,
			Description: item.Description,
			Price:       item.Price,
			Quantity:    item.Quantity,
		})
	}

	return &OrderModel{
		ID:              order.ID,
		UserID:          order.UserID,
		Items:           items,
		DeliveryAddress: order.DeliveryAddress,
		TotalAmount:     order.TotalAmount,
		Status:          order.Status.String(),
	}
}
