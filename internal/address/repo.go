package address

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

// NewRepository builds an address repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{Base: repo.NewBase(tx)}
}

func (r *repository) CreateAddress(ctx context.Context, address *models.Address) (*models.Address, error) {
	if err := r.DB(ctx).Create(address).Error; err != nil {
		return nil, err
	}
	return address, nil
}

func (r *repository) ListAddresses(ctx context.Context, ownerKey string) ([]models.Address, error) {
	var rows []models.Address
	err := r.DB(ctx).
		Where("owner_key = ?", ownerKey).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAddress(ctx context.Context, id uuid.UUID) (*models.Address, error) {
	var address models.Address
	if err := r.DB(ctx).Where("id = ?", id).First(&address).Error; err != nil {
		return nil, err
	}
	return &address, nil
}

func (r *repository) DeleteAddress(ctx context.Context, ownerKey string, id uuid.UUID) error {
	return r.DB(ctx).
		Where("id = ? AND owner_key = ?", id, ownerKey).
		Delete(&models.Address{}).Error
}
