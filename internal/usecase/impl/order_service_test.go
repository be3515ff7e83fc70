package impl

import (
	"context"
	"encoding/base64"
	"testing"

	"storefront/config"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type orderServiceMocks struct {
	orderRepo  *MockOrderRepository
	cartRepo   *MockCartRepository
	paymentSvc *MockPaymentService
	qrSvc      *MockQRCodeService
}

func newOrderService(m *orderServiceMocks, cfg *config.Config) usecase.OrderUsecase {
	return NewOrderService(OrderServiceParams{
		OrderRepo:  m.orderRepo,
		CartRepo:   m.cartRepo,
		PaymentSvc: m.paymentSvc,
		QRSvc:      m.qrSvc,
		Config:     cfg,
		Logger:     newTestLogger(),
	})
}

func newOrderServiceMocks() *orderServiceMocks {
	return &orderServiceMocks{
		orderRepo:  new(MockOrderRepository),
		cartRepo:   new(MockCartRepository),
		paymentSvc: new(MockPaymentService),
		qrSvc:      new(MockQRCodeService),
	}
}

func validPlaceOrderInput(userID uuid.UUID) *usecase.PlaceOrderInput {
	return &usecase.PlaceOrderInput{
		UserID: userID,
		Items: []usecase.OrderItemInput{
			{
				ProductID:   uuid.NewString(),
				Name:        "Espresso Beans",
				Description: "250g bag",
				Price:       decimal.NewFromFloat(15.50),
				Quantity:    2,
			},
		},
		DeliveryAddress: "1 Harbour St",
		TotalAmount:     decimal.NewFromFloat(31.00),
		CallbackBaseURL: "http://localhost:5173",
	}
}

func TestOrderService_PlaceOrder(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("persists pending order, clears cart and returns session URL", func(t *testing.T) {
		t.Parallel()

		m := newOrderServiceMocks()

		var persisted *entity.Order
		m.orderRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Order")).
			Run(func(args mock.Arguments) {
				persisted = args.Get(1).(*entity.Order)
				persisted.ID = uuid.New()
			}).
			Return(nil)
		m.cartRepo.On("Clear", mock.Anything, userID).Return(nil)
		m.paymentSvc.On("CreateCheckoutSession", mock.Anything, mock.AnythingOfType("service.CreateCheckoutInput")).
			Return(&service.CheckoutSession{ID: "cs_123", URL: "https://pay.example/cs_123"}, nil)

		svc := newOrderService(m, nil)

		out, err := svc.PlaceOrder(context.Background(), validPlaceOrderInput(userID))

		require.NoError(t, err)
		require.NotNil(t, persisted)
		assert.Equal(t, entity.OrderStatusPending, persisted.Status)
		assert.Equal(t, "https://pay.example/cs_123", out.SessionURL)
		assert.Empty(t, out.SessionQR)
		assert.Equal(t, persisted.ID.String(), out.Order.ID)
		m.cartRepo.AssertExpectations(t)
	})

	t.Run("sends minor-unit line items plus fixed shipping line", func(t *testing.T) {
		t.Parallel()

		m := newOrderServiceMocks()

		m.orderRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		m.cartRepo.On("Clear", mock.Anything, userID).Return(nil)

		var captured service.CreateCheckoutInput
		m.paymentSvc.On("CreateCheckoutSession", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				captured = args.Get(1).(service.CreateCheckoutInput)
			}).
			Return(&service.CheckoutSession{ID: "cs_1", URL: "https://pay.example/cs_1"}, nil)

		svc := newOrderService(m, nil)

		_, err := svc.PlaceOrder(context.Background(), validPlaceOrderInput(userID))

		require.NoError(t, err)
		require.Len(t, captured.LineItems, 2)
		assert.Equal(t, int64(1550), captured.LineItems[0].UnitAmount)
		assert.Equal(t, int64(2), captured.LineItems[0].Quantity)
		shipping := captured.LineItems[1]
		assert.Equal(t, "Shipping Fee", shipping.Name)
		assert.Equal(t, "Standard delivery", shipping.Description)
		assert.Equal(t, int64(20000), shipping.UnitAmount)
		assert.Equal(t, int64(1), shipping.Quantity)
		assert.Contains(t, captured.SuccessURL, "/verify?success=true&orderId=")
		assert.Contains(t, captured.CancelURL, "/verify?success=false&orderId=")
	})

	t.Run("keeps order when payment session fails", func(t *testing.T) {
		t.Parallel()

		m := newOrderServiceMocks()

		m.orderRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		m.cartRepo.On("Clear", mock.Anything, userID).Return(nil)
		m.paymentSvc.On("CreateCheckoutSession", mock.Anything, mock.Anything).
			Return(nil, errors.New("provider unreachable"))

		svc := newOrderService(m, nil)

		_, err := svc.PlaceOrder(context.Background(), validPlaceOrderInput(userID))

		require.Error(t, err)
		assert.ErrorIs(t, err, domainerrors.ErrPaymentSession)
		// The order was written before the provider call and must stay.
		m.orderRepo.AssertCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("continues when cart clear fails", func(t *testing.T) {
		t.Parallel()

		m := newOrderServiceMocks()

		m.orderRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		m.cartRepo.On("Clear", mock.Anything, userID).Return(errors.New("db timeout"))
		m.paymentSvc.On("CreateCheckoutSession", mock.Anything, mock.Anything).
			Return(&service.CheckoutSession{ID: "cs_2", URL: "https://pay.example/cs_2"}, nil)

		svc := newOrderService(m, nil)

		out, err := svc.PlaceOrder(context.Background(), validPlaceOrderInput(userID))

		require.NoError(t, err)
		assert.Equal(t, "https://pay.example/cs_2", out.SessionURL)
	})

	t.Run("attaches QR image when enabled", func(t *testing.T) {
		t.Parallel()

		m := newOrderServiceMocks()

		m.orderRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		m.cartRepo.On("Clear", mock.Anything, userID).Return(nil)
		m.paymentSvc.On("CreateCheckoutSession", mock.Anything, mock.Anything).
			Return(&service.CheckoutSession{ID: "cs_3", URL: "https://pay.example/cs_3"}, nil)
		m.qrSvc.On("GenerateCheckoutQR", "https://pay.example/cs_3").
			Return([]byte{0x89, 0x50, 0x4e, 0x47}, nil)

		cfg := &config.Config{QRCode: &config.QRCodeConfig{Enabled: true}}
		svc := newOrderService(m, cfg)

		out, err := svc.PlaceOrder(context.Background(), validPlaceOrderInput(userID))

		require.NoError(t, err)
		assert.Equal(t, base64.StdEncoding.EncodeToString([]byte{0x89, 0x50, 0x4e, 0x47}), out.SessionQR)
	})

	t.Run("rejects invalid input before any write", func(t *testing.T) {
		t.Parallel()

		cases := []struct {
			name   string
			mutate func(*usecase.PlaceOrderInput)
		}{
			{"empty items", func(in *usecase.PlaceOrderInput) { in.Items = nil }},
			{"missing address", func(in *usecase.PlaceOrderInput) { in.DeliveryAddress = "" }},
			{"negative total", func(in *usecase.PlaceOrderInput) { in.TotalAmount = decimal.NewFromInt(-1) }},
			{"absent total", func(in *usecase.PlaceOrderInput) { in.TotalAmount = decimal.Decimal{} }},
			{"zero quantity", func(in *usecase.PlaceOrderInput) { in.Items[0].Quantity = 0 }},
			{"negative price", func(in *usecase.PlaceOrderInput) { in.Items[0].Price = decimal.NewFromInt(-5) }},
			{"bad product id", func(in *usecase.PlaceOrderInput) { in.Items[0].ProductID = "nope" }},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				t.Parallel()

				m := newOrderServiceMocks()
				svc := newOrderService(m, nil)

				input := validPlaceOrderInput(userID)
				tc.mutate(input)

				_, err := svc.PlaceOrder(context.Background(), input)

				require.Error(t, err)
				assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
				m.orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				m.cartRepo.AssertNotCalled(t, "Clear", mock.Anything, mock.Anything)
			})
		}
	})
}

func TestOrderService_PlaceOrderDirect(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	m := newOrderServiceMocks()
	m.orderRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	m.cartRepo.On("Clear", mock.Anything, userID).Return(nil)

	svc := newOrderService(m, nil)

	out, err := svc.PlaceOrderDirect(context.Background(), validPlaceOrderInput(userID))

	require.NoError(t, err)
	assert.Empty(t, out.SessionURL)
	assert.Equal(t, entity.OrderStatusPending.String(), out.Order.Status)
	m.paymentSvc.AssertNotCalled(t, "CreateCheckoutSession", mock.Anything, mock.Anything)
}

func TestOrderService_UpdateStatus(t *testing.T) {
	t.Parallel()

	orderID := uuid.New()

	t.Run("updates to a valid status", func(t *testing.T) {
		t.Parallel()

		m := newOrderServiceMocks()

		m.orderRepo.On("UpdateStatus", mock.Anything, orderID, entity.OrderStatusShipped).Return(nil)
		m.orderRepo.On("FindByID", mock.Anything, orderID).
			Return(&entity.Order{ID: orderID, Status: entity.OrderStatusShipped}, nil)

		svc := newOrderService(m, nil)

		view, err := svc.UpdateStatus(context.Background(), &usecase.UpdateStatusInput{
			OrderID: orderID.String(),
			Status:  "Shipped",
		})

		require.NoError(t, err)
		assert.Equal(t, "Shipped", view.Status)
	})

	t.Run("rejects a status outside the enumerated set", func(t *testing.T) {
		t.Parallel()

		m := newOrderServiceMocks()
		svc := newOrderService(m, nil)

		_, err := svc.UpdateStatus(context.Background(), &usecase.UpdateStatusInput{
			OrderID: orderID.String(),
			Status:  "Teleported",
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, domainerrors.ErrInvalidOrderStatus)
		m.orderRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("maps a missing order to domain error", func(t *testing.T) {
		t.Parallel()

		m := newOrderServiceMocks()
		m.orderRepo.On("UpdateStatus", mock.Anything, orderID, entity.OrderStatusCancelled).
			Return(repository.ErrOrderNotFound)

		svc := newOrderService(m, nil)

		_, err := svc.UpdateStatus(context.Background(), &usecase.UpdateStatusInput{
			OrderID: orderID.String(),
			Status:  "Cancelled",
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
	})
}

func TestOrderService_ListUserOrders(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	m := newOrderServiceMocks()
	m.orderRepo.On("FindByUser", mock.Anything, userID).
		Return([]*entity.Order{
			{ID: uuid.New(), UserID: userID, Status: entity.OrderStatusPending},
			{ID: uuid.New(), UserID: userID, Status: entity.OrderStatusDelivered},
		}, nil)

	svc := newOrderService(m, nil)

	views, err := svc.ListUserOrders(context.Background(), userID)

	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, userID.String(), views[0].UserID)
}
