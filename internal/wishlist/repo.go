package wishlist

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/storekit/storefront-backend/internal/repo"
	"github.com/storekit/storefront-backend/pkg/db/models"
)

type repository struct {
	repo.Base
}

// NewRepository builds a wishlist repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{Base: repo.NewBase(tx)}
}

func (r *repository) ListItems(ctx context.Context, ownerKey string) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	err := r.DB(ctx).
		Preload("Product").
		Where("owner_key = ?", ownerKey).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

// AddItem inserts an entry and leaves an existing duplicate untouched.
func (r *repository) AddItem(ctx context.Context, item *models.WishlistItem) error {
	return r.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(item).Error
}

func (r *repository) RemoveItem(ctx context.Context, ownerKey string, productID uuid.UUID) error {
	return r.DB(ctx).
		Where("owner_key = ? AND product_id = ?", ownerKey, productID).
		Delete(&models.WishlistItem{}).Error
}
