package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storekit/storefront-backend/internal/address"
	"github.com/storekit/storefront-backend/internal/cart"
	"github.com/storekit/storefront-backend/internal/orders"
	"github.com/storekit/storefront-backend/pkg/config"
	"github.com/storekit/storefront-backend/pkg/db"
	"github.com/storekit/storefront-backend/pkg/db/models"
	"github.com/storekit/storefront-backend/pkg/enums"
	pkgerrors "github.com/storekit/storefront-backend/pkg/errors"
	"github.com/storekit/storefront-backend/pkg/types"
)

const orderNumberAttempts = 3

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service executes checkout orchestration: it converts a cart into an order
// in one transaction.
type Service interface {
	Execute(ctx context.Context, ownerKey string, input Input) (*models.Order, error)
}

// Input captures the shipping destination for a checkout. Exactly one of
// AddressID (a saved address) or ShippingAddress (an inline one) is required.
type Input struct {
	AddressID       *uuid.UUID     `json:"address_id,omitempty"`
	ShippingAddress *types.Address `json:"shipping_address,omitempty"`
}

type service struct {
	tx          txRunner
	cartRepo    cart.Repository
	ordersRepo  orders.Repository
	addressRepo address.Repository
	pricer      *Pricer
}

// NewService builds the checkout service.
func NewService(
	tx txRunner,
	cartRepo cart.Repository,
	ordersRepo orders.Repository,
	addressRepo address.Repository,
	cfg config.CheckoutConfig,
) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if cartRepo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if ordersRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if addressRepo == nil {
		return nil, fmt.Errorf("address repository required")
	}
	pricer, err := NewPricer(cfg)
	if err != nil {
		return nil, err
	}
	return &service{
		tx:          tx,
		cartRepo:    cartRepo,
		ordersRepo:  ordersRepo,
		addressRepo: addressRepo,
		pricer:      pricer,
	}, nil
}

// Execute validates the cart, prices it, decrements stock, snapshots the
// lines into an order and empties the cart. Everything happens in a single
// transaction: any failure leaves cart and stock untouched.
func (s *service) Execute(ctx context.Context, ownerKey string, input Input) (*models.Order, error) {
	if strings.TrimSpace(ownerKey) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "checkout owner missing")
	}
	if input.AddressID == nil && input.ShippingAddress == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shipping address required")
	}

	var result *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		ordersRepo := s.ordersRepo.WithTx(tx)

		lines, err := cartRepo.ListLines(ctx, ownerKey)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
		}
		if len(lines) == 0 {
			return pkgerrors.New(pkgerrors.CodeEmptyCart, "cart is empty")
		}

		shippingAddress, err := s.resolveShippingAddress(ctx, tx, ownerKey, input)
		if err != nil {
			return err
		}

		subtotal := 0
		orderLines := make([]models.OrderLine, 0, len(lines))
		for _, line := range lines {
			if line.Product == nil {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product no longer exists")
			}
			if !line.Product.IsActive {
				return pkgerrors.New(pkgerrors.CodeConflict, "product is no longer available").
					WithDetails(map[string]any{"product_id": line.ProductID})
			}

			if err := DecrementStock(ctx, tx, line.ProductID, line.Quantity); err != nil {
				return err
			}

			lineSubtotal := line.Product.PriceCents * line.Quantity
			subtotal += lineSubtotal
			orderLines = append(orderLines, models.OrderLine{
				ProductID:      line.ProductID,
				Name:           line.Product.Name,
				Quantity:       line.Quantity,
				UnitPriceCents: line.Product.PriceCents,
				SubtotalCents:  lineSubtotal,
			})
		}

		quote := s.pricer.Price(subtotal)

		order, err := s.createOrderWithNumber(ctx, tx, &models.Order{
			OwnerKey:        ownerKey,
			Status:          enums.OrderStatusPending,
			SubtotalCents:   quote.SubtotalCents,
			ShippingCents:   quote.ShippingCents,
			TaxCents:        quote.TaxCents,
			TotalCents:      quote.TotalCents,
			ShippingAddress: shippingAddress,
		})
		if err != nil {
			return err
		}

		for i := range orderLines {
			orderLines[i].OrderID = order.ID
		}
		if err := ordersRepo.CreateOrderLines(ctx, orderLines); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order lines")
		}

		if err := cartRepo.DeleteAllLines(ctx, ownerKey); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "empty cart")
		}

		result, err = ordersRepo.FindOrder(ctx, order.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload order")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) resolveShippingAddress(ctx context.Context, tx *gorm.DB, ownerKey string, input Input) (*types.Address, error) {
	if input.AddressID != nil {
		saved, err := s.addressRepo.WithTx(tx).FindAddress(ctx, *input.AddressID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "address not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load address")
		}
		if saved.OwnerKey != ownerKey {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "address not found")
		}
		return address.Snapshot(saved), nil
	}

	addr := input.ShippingAddress
	for field, value := range map[string]string{
		"recipient":   addr.Recipient,
		"line1":       addr.Line1,
		"city":        addr.City,
		"state":       addr.State,
		"postal_code": addr.PostalCode,
	} {
		if strings.TrimSpace(value) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, field+" is required")
		}
	}
	return addr, nil
}

// createOrderWithNumber inserts the order under a savepoint so a colliding
// order number can be retried without poisoning the outer transaction.
func (s *service) createOrderWithNumber(ctx context.Context, tx *gorm.DB, order *models.Order) (*models.Order, error) {
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		number, err := GenerateOrderNumber(time.Now())
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate order number")
		}
		order.OrderNumber = number

		err = tx.Transaction(func(inner *gorm.DB) error {
			_, cerr := s.ordersRepo.WithTx(inner).CreateOrder(ctx, order)
			return cerr
		})
		if err == nil {
			return order, nil
		}
		if !db.IsUniqueViolation(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeInternal, "could not allocate order number")
}
