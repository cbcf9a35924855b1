package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storekit/storefront-backend/pkg/enums"
	"github.com/storekit/storefront-backend/pkg/types"
)

// Order is the immutable record produced by a successful checkout.
// Only its status (and the matching timestamps) ever changes afterwards.
type Order struct {
	ID              uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	OwnerKey        string            `gorm:"column:owner_key;not null;index"`
	OrderNumber     string            `gorm:"column:order_number;not null;uniqueIndex"`
	Status          enums.OrderStatus `gorm:"column:status;not null;default:'pending'"`
	SubtotalCents   int               `gorm:"column:subtotal_cents;not null"`
	ShippingCents   int               `gorm:"column:shipping_cents;not null;default:0"`
	TaxCents        int               `gorm:"column:tax_cents;not null;default:0"`
	TotalCents      int               `gorm:"column:total_cents;not null"`
	ShippingAddress *types.Address    `gorm:"column:shipping_address;serializer:json"`
	CanceledAt      *time.Time        `gorm:"column:canceled_at"`
	DeliveredAt     *time.Time        `gorm:"column:delivered_at"`
	Lines           []OrderLine       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

func (o *Order) BeforeCreate(_ *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
