package cart

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storekit/storefront-backend/internal/repo"
	"github.com/storekit/storefront-backend/pkg/db/models"
)

type repository struct {
	repo.Base
}

// NewRepository builds a cart repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{Base: repo.NewBase(tx)}
}

func (r *repository) ListLines(ctx context.Context, ownerKey string) ([]models.CartLine, error) {
	var lines []models.CartLine
	err := r.DB(ctx).
		Preload("Product").
		Where("owner_key = ?", ownerKey).
		Order("created_at ASC").
		Find(&lines).Error
	return lines, err
}

func (r *repository) FindLine(ctx context.Context, ownerKey string, productID uuid.UUID) (*models.CartLine, error) {
	var line models.CartLine
	err := r.DB(ctx).
		Where("owner_key = ? AND product_id = ?", ownerKey, productID).
		First(&line).Error
	if err != nil {
		return nil, err
	}
	return &line, nil
}

func (r *repository) CreateLine(ctx context.Context, line *models.CartLine) (*models.CartLine, error) {
	if err := r.DB(ctx).Create(line).Error; err != nil {
		return nil, err
	}
	return line, nil
}

func (r *repository) UpdateLineQuantity(ctx context.Context, lineID uuid.UUID, quantity int) error {
	return r.DB(ctx).
		Model(&models.CartLine{}).
		Where("id = ?", lineID).
		Update("quantity", quantity).Error
}

func (r *repository) DeleteLine(ctx context.Context, ownerKey string, productID uuid.UUID) error {
	return r.DB(ctx).
		Where("owner_key = ? AND product_id = ?", ownerKey, productID).
		Delete(&models.CartLine{}).Error
}

func (r *repository) DeleteAllLines(ctx context.Context, ownerKey string) error {
	return r.DB(ctx).
		Where("owner_key = ?", ownerKey).
		Delete(&models.CartLine{}).Error
}
