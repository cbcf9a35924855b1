package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storekit/storefront-backend/pkg/db/models"
	"github.com/storekit/storefront-backend/pkg/enums"
	pkgerrors "github.com/storekit/storefront-backend/pkg/errors"
	"github.com/storekit/storefront-backend/pkg/pagination"
)

// Service exposes order history and lifecycle operations.
type Service interface {
	ListOrders(ctx context.Context, ownerKey string, params pagination.Params) (*OrderList, error)
	GetOrder(ctx context.Context, ownerKey string, id uuid.UUID) (*models.Order, error)
	CancelOrder(ctx context.Context, ownerKey string, id uuid.UUID) (*models.Order, error)
	ListAllOrders(ctx context.Context, params pagination.Params, filters OrderFilters) (*OrderList, error)
	AdvanceStatus(ctx context.Context, id uuid.UUID, target enums.OrderStatus) (*models.Order, error)
}

type service struct {
	repo Repository
}

// NewService builds an orders service with the required dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListOrders(ctx context.Context, ownerKey string, params pagination.Params) (*OrderList, error) {
	if strings.TrimSpace(ownerKey) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "order owner missing")
	}
	list, err := s.repo.ListOwnerOrders(ctx, ownerKey, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return list, nil
}

// GetOrder is owner scoped: an order that belongs to someone else looks
// exactly like one that does not exist.
func (s *service) GetOrder(ctx context.Context, ownerKey string, id uuid.UUID) (*models.Order, error) {
	if strings.TrimSpace(ownerKey) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "order owner missing")
	}
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	order, err := s.repo.FindOwnerOrder(ctx, ownerKey, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

// CancelOrder moves a not-yet-delivered order to cancelled. Stock consumed at
// checkout is not restored.
func (s *service) CancelOrder(ctx context.Context, ownerKey string, id uuid.UUID) (*models.Order, error) {
	order, err := s.GetOrder(ctx, ownerKey, id)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransitionTo(enums.OrderStatusCancelled) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("order in status %q cannot be cancelled", order.Status))
	}

	now := time.Now().UTC()
	if err := s.repo.UpdateOrderStatus(ctx, order.ID, enums.OrderStatusCancelled, map[string]any{
		"canceled_at": now,
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cancel order")
	}

	order.Status = enums.OrderStatusCancelled
	order.CanceledAt = &now
	return order, nil
}

func (s *service) ListAllOrders(ctx context.Context, params pagination.Params, filters OrderFilters) (*OrderList, error) {
	list, err := s.repo.ListOrders(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return list, nil
}

// AdvanceStatus is the admin transition path. Moves are forward-only; skipping
// intermediate states is allowed, moving backwards is not.
func (s *service) AdvanceStatus(ctx context.Context, id uuid.UUID, target enums.OrderStatus) (*models.Order, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if !target.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}

	order, err := s.repo.FindOrder(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}

	if !order.Status.CanTransitionTo(target) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot move order from %q to %q", order.Status, target))
	}

	updates := map[string]any{}
	now := time.Now().UTC()
	switch target {
	case enums.OrderStatusDelivered:
		updates["delivered_at"] = now
	case enums.OrderStatusCancelled:
		updates["canceled_at"] = now
	}

	if err := s.repo.UpdateOrderStatus(ctx, order.ID, target, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}

	order.Status = target
	switch target {
	case enums.OrderStatusDelivered:
		order.DeliveredAt = &now
	case enums.OrderStatusCancelled:
		order.CanceledAt = &now
	}
	return order, nil
}
