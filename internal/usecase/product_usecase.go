package usecase

import (
	"context"
	"io"

	"storefront/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// AddProductInput defines the data required to list a new product.
// Image is the uploaded file content; it is stored before the product row is
// written, so a failed upload never leaves a dangling catalog entry.
type AddProductInput struct {
	Name        string
	Description string
	Price       string // Raw form value; parsed and validated as a decimal.
	Category    string
	ImageName   string
	ContentType string
	Image       io.Reader
}

// ProductView is the product shape returned to clients, with the image object
// key resolved to a public URL.
type ProductView struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
}

// NewProductView maps a product entity to its client-facing shape.
// resolveURL converts the stored object key to a public URL.
func NewProductView(product *entity.Product, resolveURL func(string) string) ProductView {
	image := product.Image
	if image != "" && resolveURL != nil {
		image = resolveURL(image)
	}

	return ProductView{
		ID:          product.ID.String(),
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Category:    product.Category,
		Image:       image,
	}
}

// ProductUsecase defines catalog management operations.
type ProductUsecase interface {
	// Add stores the uploaded image and lists the product.
	Add(ctx context.Context, input *AddProductInput) (*ProductView, error)

	// List returns the whole catalog.
	List(ctx context.Context) ([]ProductView, error)

	// Remove deletes a product by id. Existing orders keep their snapshots.
	Remove(ctx context.Context, id string) error
}
