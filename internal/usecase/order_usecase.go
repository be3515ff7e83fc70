package usecase

import (
	"context"
	"time"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItemInput is one line of an order request. Name, description and price
// are snapshots supplied by the client from the resolved cart view.
type OrderItemInput struct {
	ProductID   string          `json:"productId"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

// PlaceOrderInput defines the data required to place an order.
type PlaceOrderInput struct {
	UserID          uuid.UUID        `json:"-"`
	Items           []OrderItemInput `json:"items"`
	DeliveryAddress string           `json:"deliveryAddress"`
	TotalAmount     decimal.Decimal  `json:"totalAmount"`
	// CallbackBaseURL is the frontend origin used to build the payment
	// success/cancel redirect URLs.
	CallbackBaseURL string `json:"-"`
}

// OrderItemView is one resolved line of an order.
type OrderItemView struct {
	ProductID   string          `json:"productId"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

// OrderView is the order shape returned to clients.
type OrderView struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId"`
	Items           []OrderItemView `json:"items"`
	DeliveryAddress string          `json:"deliveryAddress"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// PlaceOrderOutput returns the persisted order plus the payment redirect.
// SessionQR is a base64 PNG of the session URL when QR generation is enabled.
type PlaceOrderOutput struct {
	Order      OrderView `json:"order"`
	SessionURL string    `json:"session_url,omitempty"`
	SessionQR  string    `json:"session_qr,omitempty"`
}

// UpdateStatusInput identifies an order and its new status.
type UpdateStatusInput struct {
	OrderID string `json:"-"`
	Status  string `json:"status"`
}

// NewOrderView maps an order entity to its client-facing shape.
func NewOrderView(order *entity.Order) OrderView {
	items := make([]OrderItemView, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemView{
			ProductID:   item.ProductID.String(),
			Name:        item.Name,
			Description: item.Description,
			Price:       item.Price,
			Quantity:    item.Quantity,
		})
	}

	return OrderView{
		ID:              order.ID.String(),
		UserID:          order.UserID.String(),
		Items:           items,
		DeliveryAddress: order.DeliveryAddress,
		TotalAmount:     order.TotalAmount,
		Status:          order.Status.String(),
		CreatedAt:       order.CreatedAt,
	}
}

// OrderUsecase defines order placement and tracking operations.
type OrderUsecase interface {
	// PlaceOrder persists a Pending order, clears the originating cart and
	// initiates an external checkout session. The order survives payment
	// failure.
	PlaceOrder(ctx context.Context, input *PlaceOrderInput) (*PlaceOrderOutput, error)

	// PlaceOrderDirect persists a Pending order and clears the cart without
	// contacting the payment provider.
	PlaceOrderDirect(ctx context.Context, input *PlaceOrderInput) (*PlaceOrderOutput, error)

	// ListOrders returns every order, newest first.
	ListOrders(ctx context.Context) ([]OrderView, error)

	// ListUserOrders returns the given user's orders, newest first.
	ListUserOrders(ctx context.Context, userID uuid.UUID) ([]OrderView, error)

	// UpdateStatus transitions an order to the given status. Any enumerated
	// status may follow any other.
	UpdateStatus(ctx context.Context, input *UpdateStatusInput) (*OrderView, error)
}
