package address

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storekit/storefront-backend/pkg/db/models"
	pkgerrors "github.com/storekit/storefront-backend/pkg/errors"
	"github.com/storekit/storefront-backend/pkg/types"
)

// CreateInput is the payload to save a shipping address.
type CreateInput struct {
	Recipient  string  `json:"recipient" validate:"required,max=255"`
	Line1      string  `json:"line1" validate:"required,max=255"`
	Line2      *string `json:"line2,omitempty" validate:"omitempty,max=255"`
	City       string  `json:"city" validate:"required,max=128"`
	State      string  `json:"state" validate:"required,max=64"`
	PostalCode string  `json:"postal_code" validate:"required,max=16"`
}

// Service manages each owner's saved shipping addresses.
type Service interface {
	Create(ctx context.Context, ownerKey string, input CreateInput) (*models.Address, error)
	List(ctx context.Context, ownerKey string) ([]models.Address, error)
	Get(ctx context.Context, ownerKey string, id uuid.UUID) (*models.Address, error)
	Delete(ctx context.Context, ownerKey string, id uuid.UUID) error
}

type service struct {
	repo Repository
}

// NewService constructs an address service instance.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("address repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, ownerKey string, input CreateInput) (*models.Address, error) {
	if err := validateOwnerKey(ownerKey); err != nil {
		return nil, err
	}
	for field, value := range map[string]string{
		"recipient":   input.Recipient,
		"line1":       input.Line1,
		"city":        input.City,
		"state":       input.State,
		"postal_code": input.PostalCode,
	} {
		if strings.TrimSpace(value) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, field+" is required")
		}
	}

	address := &models.Address{
		OwnerKey:   ownerKey,
		Recipient:  strings.TrimSpace(input.Recipient),
		Line1:      strings.TrimSpace(input.Line1),
		Line2:      input.Line2,
		City:       strings.TrimSpace(input.City),
		State:      strings.TrimSpace(input.State),
		PostalCode: strings.TrimSpace(input.PostalCode),
	}
	created, err := s.repo.CreateAddress(ctx, address)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create address")
	}
	return created, nil
}

func (s *service) List(ctx context.Context, ownerKey string) ([]models.Address, error) {
	if err := validateOwnerKey(ownerKey); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListAddresses(ctx, ownerKey)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list addresses")
	}
	return rows, nil
}

func (s *service) Get(ctx context.Context, ownerKey string, id uuid.UUID) (*models.Address, error) {
	if err := validateOwnerKey(ownerKey); err != nil {
		return nil, err
	}
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "address id required")
	}
	address, err := s.repo.FindAddress(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "address not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load address")
	}
	if address.OwnerKey != ownerKey {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "address not found")
	}
	return address, nil
}

func (s *service) Delete(ctx context.Context, ownerKey string, id uuid.UUID) error {
	if err := validateOwnerKey(ownerKey); err != nil {
		return err
	}
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "address id required")
	}
	if err := s.repo.DeleteAddress(ctx, ownerKey, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete address")
	}
	return nil
}

// Snapshot freezes a saved address into the embedded order format.
func Snapshot(address *models.Address) *types.Address {
	if address == nil {
		return nil
	}
	return &types.Address{
		Recipient:  address.Recipient,
		Line1:      address.Line1,
		Line2:      address.Line2,
		City:       address.City,
		State:      address.State,
		PostalCode: address.PostalCode,
	}
}

func validateOwnerKey(ownerKey string) error {
	if strings.TrimSpace(ownerKey) == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "address owner missing")
	}
	return nil
}
