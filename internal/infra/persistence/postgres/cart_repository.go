package postgres

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// cartRepository implements the repository.CartRepository interface using GORM.
//
// Both mutations are conditional updates executed inside the database rather
// than load-then-save in Go. Concurrent AddItem calls for the same product
// serialize on the (cart_id, product_id) row and both increments land.
type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository is the constructor for cartRepository.
func NewCartRepository(db *gorm.DB) repository.CartRepository {
	return &cartRepository{db: db}
}

// AddItem increments the quantity of the product in the user's cart by one.
// The cart row and the item row are both upserts: first use creates the cart,
// a new product inserts at quantity 1, an existing product increments.
func (repo *cartRepository) AddItem(ctx context.Context, userID, productID uuid.UUID) error {
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cartID, err := ensureCart(tx, userID)
		if err != nil {
			return err
		}

		item := &model.CartItemModel{
			CartID:    cartID,
			ProductID: productID,
			Quantity:  1,
		}

		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"quantity":   gorm.Expr("cart_items.quantity + 1"),
				"updated_at": gorm.Expr("NOW()"),
			}),
		}).Create(item).Error
	})
	if err != nil {
		return errors.Wrap(err, "failed to add cart item")
	}

	return nil
}

// ensureCart resolves the user's cart id, creating the cart row if the user
// has none. The insert is ON CONFLICT DO NOTHING against the unique user_id
// index, so two first-use requests converge to the same row.
func ensureCart(tx *gorm.DB, userID uuid.UUID) (uuid.UUID, error) {
	cart := &model.CartModel{UserID: userID}

	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(cart).Error
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "failed to ensure cart")
	}

	// On conflict the insert returns no id; read the winning row back.
	var existing model.CartModel
	if err := tx.Select("id").Where("user_id = ?", userID).First(&existing).Error; err != nil {
		return uuid.Nil, errors.Wrap(err, "failed to resolve cart id")
	}

	return existing.ID, nil
}

// RemoveItem decrements the quantity of the product in the user's cart by
// one, deleting the row when it would drop below one. Both branches are
// conditional statements keyed on the current quantity, so concurrent
// removals cannot push a quantity below zero.
func (repo *cartRepository) RemoveItem(ctx context.Context, userID, productID uuid.UUID) error {
	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart model.CartModel
		if err := tx.Select("id").Where("user_id = ?", userID).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repository.ErrCartNotFound
			}

			return errors.Wrap(err, "failed to find cart")
		}

		decrement := tx.Model(&model.CartItemModel{}).
			Where("cart_id = ? AND product_id = ? AND quantity > 1", cart.ID, productID).
			Updates(map[string]any{
				"quantity":   gorm.Expr("quantity - 1"),
				"updated_at": gorm.Expr("NOW()"),
			})
		if decrement.Error != nil {
			return errors.Wrap(decrement.Error, "failed to decrement cart item")
		}
		if decrement.RowsAffected > 0 {
			return nil
		}

		remove := tx.Where("cart_id = ? AND product_id = ? AND quantity <= 1", cart.ID, productID).
			Delete(&model.CartItemModel{})
		if remove.Error != nil {
			return errors.Wrap(remove.Error, "failed to delete cart item")
		}
		if remove.RowsAffected == 0 {
			return repository.ErrCartItemNotFound
		}

		return nil
	})
}

// FindByUser retrieves the user's cart with its items.
func (repo *cartRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	var cartM model.CartModel

	err := repo.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		First(&cartM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCartNotFound
		}

		return nil, errors.Wrap(err, "failed to find cart by user")
	}

	return cartM.ToDomain(), nil
}

// Clear empties the user's cart item collection. An absent cart is fine.
func (repo *cartRepository) Clear(ctx context.Context, userID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Where("cart_id IN (?)", repo.db.Model(&model.CartModel{}).Select("id").Where("user_id = ?", userID)).
		Delete(&model.CartItemModel{}).Error
	if err != nil {
		return errors.Wrap(err, "failed to clear cart")
	}

	return nil
}
