package impl

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Fixed shipping line appended to every checkout session.
const (
	shippingFeeMinorUnits = 20000
	shippingFeeName       = "Shipping Fee"
	shippingFeeDesc       = "Standard delivery"
)

// orderService implements the OrderUsecase interface. It coordinates three
// steps on placement: persist the order, clear the originating cart, open a
// payment session. The order record is the step that must never be lost;
// everything after it is subordinate.
type orderService struct {
	orderRepo  repository.OrderRepository
	cartRepo   repository.CartRepository
	paymentSvc service.PaymentService
	qrSvc      service.QRCodeService
	qrEnabled  bool
	logger     *slog.Logger
}

// OrderServiceParams holds dependencies for orderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	OrderRepo  repository.OrderRepository
	CartRepo   repository.CartRepository
	PaymentSvc service.PaymentService
	QRSvc      service.QRCodeService `optional:"true"`
	Config     *config.Config
	Logger     *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	qrEnabled := params.QRSvc != nil &&
		params.Config != nil && params.Config.QRCode != nil && params.Config.QRCode.Enabled

	return &orderService{
		orderRepo:  params.OrderRepo,
		cartRepo:   params.CartRepo,
		paymentSvc: params.PaymentSvc,
		qrSvc:      params.QRSvc,
		qrEnabled:  qrEnabled,
		logger:     params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// PlaceOrder validates the request, persists a Pending order, clears the
// user's cart and opens a checkout session with the payment provider.
//
// Ordering is deliberate: the order row is written before the provider is
// contacted, so a provider outage can never lose the sale. When the session
// cannot be created the Pending order stays in place and the caller receives
// ErrPaymentSession; reconciliation of such abandoned orders happens outside
// this service.
func (srv *orderService) PlaceOrder(ctx context.Context, input *usecase.PlaceOrderInput) (*usecase.PlaceOrderOutput, error) {
	order, err := srv.persistOrder(ctx, input)
	if err != nil {
		return nil, err
	}

	session, err := srv.paymentSvc.CreateCheckoutSession(ctx, service.CreateCheckoutInput{
		OrderID:    order.ID,
		LineItems:  buildPaymentLines(order.Items),
		SuccessURL: fmt.Sprintf("%s/verify?success=true&orderId=%s", input.CallbackBaseURL, order.ID),
		CancelURL:  fmt.Sprintf("%s/verify?success=false&orderId=%s", input.CallbackBaseURL, order.ID),
	})
	if err != nil {
		srv.log(ctx).Error("Checkout session creation failed; order kept as Pending",
			slog.Any("orderID", order.ID), slog.Any("error", err))

		return nil, domainerrors.ErrPaymentSession.WrapMessage("failed to create checkout session")
	}
	if session == nil || session.URL == "" {
		srv.log(ctx).Error("Checkout session missing redirect URL; order kept as Pending",
			slog.Any("orderID", order.ID))

		return nil, domainerrors.ErrPaymentSession.WrapMessage("payment provider returned no redirect URL")
	}

	output := &usecase.PlaceOrderOutput{
		Order:      usecase.NewOrderView(order),
		SessionURL: session.URL,
	}

	if srv.qrEnabled {
		if png, qrErr := srv.qrSvc.GenerateCheckoutQR(session.URL); qrErr != nil {
			// The redirect URL already reached the caller; a missing QR image
			// is not worth failing the placement over.
			srv.log(ctx).Warn("Failed to generate checkout QR",
				slog.Any("orderID", order.ID), slog.Any("error", qrErr))
		} else {
			output.SessionQR = base64.StdEncoding.EncodeToString(png)
		}
	}

	return output, nil
}

// PlaceOrderDirect persists a Pending order and clears the cart without
// contacting the payment provider.
func (srv *orderService) PlaceOrderDirect(ctx context.Context, input *usecase.PlaceOrderInput) (*usecase.PlaceOrderOutput, error) {
	order, err := srv.persistOrder(ctx, input)
	if err != nil {
		return nil, err
	}

	return &usecase.PlaceOrderOutput{Order: usecase.NewOrderView(order)}, nil
}

// persistOrder validates the input, writes the order with status Pending and
// clears the user's cart. The cart clear is best effort: a failure is logged
// and the placement continues, because a stale cart is recoverable while a
// lost order is not.
func (srv *orderService) persistOrder(ctx context.Context, input *usecase.PlaceOrderInput) (*entity.Order, error) {
	order, err := buildOrder(input)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Placing order",
		slog.Any("userID", input.UserID), slog.Int("items", len(order.Items)))

	if err := srv.orderRepo.Create(ctx, order); err != nil {
		return nil, errors.Wrap(err, "failed to persist order")
	}

	if err := srv.cartRepo.Clear(ctx, input.UserID); err != nil {
		srv.log(ctx).Warn("Failed to clear cart after order placement",
			slog.Any("userID", input.UserID), slog.Any("orderID", order.ID), slog.Any("error", err))
	}

	return order, nil
}

// buildOrder validates a placement request and maps it to an order entity.
// Validation happens before any write, so a rejected request leaves no
// partial order behind.
func buildOrder(input *usecase.PlaceOrderInput) (*entity.Order, error) {
	if input.UserID == uuid.Nil {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("missing user id")
	}
	if len(input.Items) == 0 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("order has no items")
	}
	if input.DeliveryAddress == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("missing delivery address")
	}
	if !input.TotalAmount.IsPositive() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("missing or non-positive total amount")
	}

	items := make([]entity.OrderItem, 0, len(input.Items))
	for _, item := range input.Items {
		pid, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, domainerrors.ErrValidationFailed.WrapMessage("invalid product id in order items")
		}
		if item.Quantity < 1 {
			return nil, domainerrors.ErrValidationFailed.WrapMessage("item quantity must be at least 1")
		}
		if item.Price.IsNegative() {
			return nil, domainerrors.ErrValidationFailed.WrapMessage("item price must not be negative")
		}

		items = append(items, entity.OrderItem{
			ProductID:   pid,
			Name:        item.Name,
			Description: item.Description,
			Price:       item.Price,
			Quantity:    item.Quantity,
		})
	}

	return &entity.Order{
		UserID:          input.UserID,
		Items:           items,
		DeliveryAddress: input.DeliveryAddress,
		TotalAmount:     input.TotalAmount,
		Status:          entity.OrderStatusPending,
	}, nil
}

// buildPaymentLines converts order items to provider line items in integer
// minor units and appends the fixed shipping fee line.
func buildPaymentLines(items []entity.OrderItem) []service.PaymentLineItem {
	lines := make([]service.PaymentLineItem, 0, len(items)+1)
	for _, item := range items {
		name := item.Name
		if name == "" {
			name = "Unnamed Product"
		}
		description := item.Description
		if description == "" {
			description = "No description"
		}

		lines = append(lines, service.PaymentLineItem{
			Name:        name,
			Description: description,
			UnitAmount:  item.PriceMinorUnits(),
			Quantity:    int64(item.Quantity),
		})
	}

	return append(lines, service.PaymentLineItem{
		Name:        shippingFeeName,
		Description: shippingFeeDesc,
		UnitAmount:  shippingFeeMinorUnits,
		Quantity:    1,
	})
}

// ListOrders returns every order, newest first.
func (srv *orderService) ListOrders(ctx context.Context) ([]usecase.OrderView, error) {
	orders, err := srv.orderRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return toOrderViews(orders), nil
}

// ListUserOrders returns the given user's orders, newest first.
func (srv *orderService) ListUserOrders(ctx context.Context, userID uuid.UUID) ([]usecase.OrderView, error) {
	orders, err := srv.orderRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list user orders")
	}

	return toOrderViews(orders), nil
}

// UpdateStatus transitions an order to the given status. The status set is
// closed; the transition graph is complete, so any status may follow any
// other.
func (srv *orderService) UpdateStatus(ctx context.Context, input *usecase.UpdateStatusInput) (*usecase.OrderView, error) {
	orderID, err := uuid.Parse(input.OrderID)
	if err != nil {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("invalid order id")
	}

	status := entity.OrderStatus(input.Status)
	if !status.IsValid() {
		return nil, domainerrors.ErrInvalidOrderStatus.WrapMessage("status must be one of Pending, Confirmed, Shipped, Delivered, Cancelled")
	}

	if err := srv.orderRepo.UpdateStatus(ctx, orderID, status); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound.WrapMessage("order does not exist")
		}

		return nil, errors.Wrap(err, "failed to update order status")
	}

	order, err := srv.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to reload order after status update")
	}

	srv.log(ctx).Info("Order status updated",
		slog.Any("orderID", orderID), slog.String("status", status.String()))

	view := usecase.NewOrderView(order)

	return &view, nil
}

func toOrderViews(orders []*entity.Order) []usecase.OrderView {
	views := make([]usecase.OrderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, usecase.NewOrderView(order))
	}

	return views
}
