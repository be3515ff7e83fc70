package impl

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// productService implements the ProductUsecase interface.
type productService struct {
	productRepo repository.ProductRepository
	imageStore  service.ImageStore
	logger      *slog.Logger
}

// ProductServiceParams holds dependencies for productService, injected by Fx.
type ProductServiceParams struct {
	fx.In

	ProductRepo repository.ProductRepository
	ImageStore  service.ImageStore
	Logger      *slog.Logger
}

// NewProductService is the constructor for productService.
func NewProductService(params ProductServiceParams) usecase.ProductUsecase {
	return &productService{
		productRepo: params.ProductRepo,
		imageStore:  params.ImageStore,
		logger:      params.Logger,
	}
}

func (srv *productService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Add stores the uploaded image and lists the product. The image is written
// first; if the catalog insert then fails the stored object is removed again
// so the bucket never accumulates orphans.
func (srv *productService) Add(ctx context.Context, input *usecase.AddProductInput) (*usecase.ProductView, error) {
	if input.Name == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("missing product name")
	}
	if input.Image == nil {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("missing product image")
	}

	price, err := decimal.NewFromString(input.Price)
	if err != nil {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("price is not a valid decimal")
	}
	if price.IsNegative() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("price must not be negative")
	}

	key := fmt.Sprintf("%s%s", uuid.New(), filepath.Ext(input.ImageName))
	if _, err := srv.imageStore.Save(ctx, key, input.ContentType, input.Image); err != nil {
		return nil, errors.Wrap(err, "failed to store product image")
	}

	product := &entity.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       price,
		Category:    input.Category,
		Image:       key,
	}

	if err := srv.productRepo.Create(ctx, product); err != nil {
		if delErr := srv.imageStore.Delete(ctx, key); delErr != nil {
			srv.log(ctx).Warn("Failed to remove image after catalog insert failure",
				slog.String("key", key), slog.Any("error", delErr))
		}

		return nil, errors.Wrap(err, "failed to persist product")
	}

	srv.log(ctx).Info("Product listed",
		slog.Any("productID", product.ID), slog.String("name", product.Name))

	view := usecase.NewProductView(product, srv.imageStore.URL)

	return &view, nil
}

// List returns the whole catalog. An empty catalog is reported as not found
// rather than an empty page.
func (srv *productService) List(ctx context.Context) ([]usecase.ProductView, error) {
	products, err := srv.productRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}
	if len(products) == 0 {
		return nil, domainerrors.ErrProductNotFound.WrapMessage("no products listed")
	}

	views := make([]usecase.ProductView, 0, len(products))
	for _, product := range products {
		views = append(views, usecase.NewProductView(product, srv.imageStore.URL))
	}

	return views, nil
}

// Remove deletes a product from the catalog. Carts holding the product keep
// their rows; the dangling references are filtered out on the next cart read.
// Orders are untouched since they carry snapshots, not references.
func (srv *productService) Remove(ctx context.Context, id string) error {
	productID, err := uuid.Parse(id)
	if err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage("invalid product id")
	}

	if err := srv.productRepo.Delete(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return domainerrors.ErrProductNotFound.WrapMessage("product does not exist")
		}

		return errors.Wrap(err, "failed to delete product")
	}

	srv.log(ctx).Info("Product removed", slog.Any("productID", productID))

	return nil
}
