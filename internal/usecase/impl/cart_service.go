// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

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

// cartService implements the CartUsecase interface.
type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	imageStore  service.ImageStore
	logger      *slog.Logger
}

// CartServiceParams holds dependencies for cartService, injected by Fx.
type CartServiceParams struct {
	fx.In

	CartRepo    repository.CartRepository
	ProductRepo repository.ProductRepository
	ImageStore  service.ImageStore
	Logger      *slog.Logger
}

// NewCartService is the constructor for cartService.
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	return &cartService{
		cartRepo:    params.CartRepo,
		productRepo: params.ProductRepo,
		imageStore:  params.ImageStore,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *cartService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// AddItem adds one unit of the product to the user's cart. The increment and
// the cart creation both happen as atomic upserts in the repository, so
// concurrent adds for the same user converge instead of losing updates.
func (srv *cartService) AddItem(ctx context.Context, userID uuid.UUID, productID string) (*usecase.CartView, error) {
	pid, err := uuid.Parse(productID)
	if err != nil || pid == uuid.Nil {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("invalid product id")
	}

	srv.log(ctx).Info("Adding item to cart",
		slog.Any("userID", userID), slog.String("productID", productID))

	if err := srv.cartRepo.AddItem(ctx, userID, pid); err != nil {
		return nil, errors.Wrap(err, "failed to add item to cart")
	}

	return srv.resolveCart(ctx, userID)
}

// RemoveItem removes one unit of the product from the user's cart.
func (srv *cartService) RemoveItem(ctx context.Context, userID uuid.UUID, productID string) (*usecase.CartView, error) {
	pid, err := uuid.Parse(productID)
	if err != nil || pid == uuid.Nil {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("invalid product id")
	}

	srv.log(ctx).Info("Removing item from cart",
		slog.Any("userID", userID), slog.String("productID", productID))

	if err := srv.cartRepo.RemoveItem(ctx, userID, pid); err != nil {
		switch {
		case errors.Is(err, repository.ErrCartNotFound):
			return nil, domainerrors.ErrCartNotFound.WrapMessage("no cart for user")
		case errors.Is(err, repository.ErrCartItemNotFound):
			return nil, domainerrors.ErrCartItemNotFound.WrapMessage("product not in cart")
		}

		return nil, errors.Wrap(err, "failed to remove item from cart")
	}

	return srv.resolveCart(ctx, userID)
}

// GetCart returns the user's resolved cart.
func (srv *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*usecase.CartView, error) {
	return srv.resolveCart(ctx, userID)
}

// resolveCart loads the cart and expands product references into their
// display-ready shape. Items whose product has since been removed from the
// catalog are dropped from the view; stale references are hygiene, not errors.
func (srv *cartService) resolveCart(ctx context.Context, userID uuid.UUID) (*usecase.CartView, error) {
	cart, err := srv.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return nil, domainerrors.ErrCartNotFound.WrapMessage("no cart for user")
		}

		return nil, errors.Wrap(err, "failed to load cart")
	}

	ids := make([]uuid.UUID, 0, len(cart.Items))
	for _, item := range cart.Items {
		ids = append(ids, item.ProductID)
	}

	products, err := srv.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve cart products")
	}

	byID := make(map[uuid.UUID]*entity.Product, len(products))
	for _, product := range products {
		byID[product.ID] = product
	}

	view := &usecase.CartView{
		ID:     cart.ID.String(),
		UserID: cart.UserID.String(),
		Items:  make([]usecase.CartItemView, 0, len(cart.Items)),
	}

	for _, item := range cart.Items {
		product, ok := byID[item.ProductID]
		if !ok {
			srv.log(ctx).Debug("Dropping dangling cart item",
				slog.Any("userID", userID), slog.Any("productID", item.ProductID))

			continue
		}

		view.Items = append(view.Items, usecase.CartItemView{
			Product: usecase.CartProductRef{
				ID:    product.ID.String(),
				Name:  product.Name,
				Price: product.Price,
				Image: srv.imageStore.URL(product.Image),
			},
			Quantity: item.Quantity,
		})
	}

	return view, nil
}
