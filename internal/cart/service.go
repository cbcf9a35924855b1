package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storekit/storefront-backend/pkg/db/models"
	pkgerrors "github.com/storekit/storefront-backend/pkg/errors"
)

// Service exposes cart operations for one owner at a time. The owner key is
// resolved by the identity middleware, never by the caller payload.
type Service interface {
	GetCart(ctx context.Context, ownerKey string) (*View, error)
	AddItem(ctx context.Context, ownerKey string, input AddItemInput) (*View, error)
	UpdateQuantity(ctx context.Context, ownerKey string, productID uuid.UUID, quantity int) (*View, error)
	RemoveItem(ctx context.Context, ownerKey string, productID uuid.UUID) (*View, error)
	Clear(ctx context.Context, ownerKey string) error
}

type service struct {
	repo     Repository
	products productReader
}

// NewService constructs a cart service instance.
func NewService(repo Repository, products productReader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product reader required")
	}
	return &service{repo: repo, products: products}, nil
}

func (s *service) GetCart(ctx context.Context, ownerKey string) (*View, error) {
	if err := validateOwnerKey(ownerKey); err != nil {
		return nil, err
	}
	lines, err := s.repo.ListLines(ctx, ownerKey)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list cart lines")
	}
	return buildView(lines), nil
}

// AddItem merges the quantity into an existing line for the same product, or
// creates a new line. A fresh add asking for more than the available stock is
// rejected; merging into an existing line clamps the sum to stock instead so
// repeated adds stay idempotent at the cap.
func (s *service) AddItem(ctx context.Context, ownerKey string, input AddItemInput) (*View, error) {
	if err := validateOwnerKey(ownerKey); err != nil {
		return nil, err
	}
	if input.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if input.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	product, err := s.loadSellableProduct(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product.Stock < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeInsufficientStock, "product is out of stock").
			WithDetails(map[string]any{"product_id": product.ID, "available": 0})
	}

	existing, err := s.repo.FindLine(ctx, ownerKey, input.ProductID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart line")
	}

	if existing == nil {
		if input.Quantity > product.Stock {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity exceeds available stock").
				WithDetails(map[string]any{"product_id": product.ID, "available": product.Stock})
		}
		if _, err := s.repo.CreateLine(ctx, &models.CartLine{
			OwnerKey:  ownerKey,
			ProductID: input.ProductID,
			Quantity:  input.Quantity,
		}); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create cart line")
		}
	} else {
		quantity := clampQuantity(existing.Quantity+input.Quantity, product.Stock)
		if quantity != existing.Quantity {
			if err := s.repo.UpdateLineQuantity(ctx, existing.ID, quantity); err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update cart line")
			}
		}
	}

	return s.GetCart(ctx, ownerKey)
}

// UpdateQuantity sets the line quantity directly. A quantity below one removes
// the line.
func (s *service) UpdateQuantity(ctx context.Context, ownerKey string, productID uuid.UUID, quantity int) (*View, error) {
	if err := validateOwnerKey(ownerKey); err != nil {
		return nil, err
	}
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}

	if quantity < 1 {
		return s.RemoveItem(ctx, ownerKey, productID)
	}

	existing, err := s.repo.FindLine(ctx, ownerKey, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart line")
	}

	product, err := s.loadSellableProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	clamped := clampQuantity(quantity, product.Stock)
	if clamped != existing.Quantity {
		if err := s.repo.UpdateLineQuantity(ctx, existing.ID, clamped); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update cart line")
		}
	}

	return s.GetCart(ctx, ownerKey)
}

// RemoveItem deletes the line if present. Removing a product that is not in
// the cart is not an error.
func (s *service) RemoveItem(ctx context.Context, ownerKey string, productID uuid.UUID) (*View, error) {
	if err := validateOwnerKey(ownerKey); err != nil {
		return nil, err
	}
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if err := s.repo.DeleteLine(ctx, ownerKey, productID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete cart line")
	}
	return s.GetCart(ctx, ownerKey)
}

func (s *service) Clear(ctx context.Context, ownerKey string) error {
	if err := validateOwnerKey(ownerKey); err != nil {
		return err
	}
	if err := s.repo.DeleteAllLines(ctx, ownerKey); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return nil
}

func (s *service) loadSellableProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	product, err := s.products.FindProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if !product.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return product, nil
}

func validateOwnerKey(ownerKey string) error {
	if strings.TrimSpace(ownerKey) == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "cart owner missing")
	}
	return nil
}

func clampQuantity(requested, stock int) int {
	if requested > stock {
		return stock
	}
	return requested
}

func buildView(lines []models.CartLine) *View {
	view := &View{Lines: make([]LineView, 0, len(lines))}
	for _, line := range lines {
		lv := LineView{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		}
		if line.Product != nil {
			lv.Name = line.Product.Name
			lv.UnitPriceCents = line.Product.PriceCents
			lv.SubtotalCents = line.Product.PriceCents * line.Quantity
		}
		view.Lines = append(view.Lines, lv)
		view.ItemCount += line.Quantity
		view.SubtotalCents += lv.SubtotalCents
	}
	return view
}
