package controllers

import (
	"net/http"

	"github.com/storekit/storefront-backend/api/middleware"
	"github.com/storekit/storefront-backend/api/responses"
	"github.com/storekit/storefront-backend/api/validators"
	"github.com/storekit/storefront-backend/internal/checkout"
	pkgerrors "github.com/storekit/storefront-backend/pkg/errors"
	"github.com/storekit/storefront-backend/pkg/logger"
)

// Checkout converts the owner's cart into an order in one transaction.
func Checkout(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var payload checkout.Input
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Execute(r.Context(), middleware.OwnerKeyFromContext(r.Context()), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}
