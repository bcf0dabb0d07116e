package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rafaelmbarbosa/cardapiozap-backend/api/middleware"
	"github.com/rafaelmbarbosa/cardapiozap-backend/api/responses"
	"github.com/rafaelmbarbosa/cardapiozap-backend/api/validators"
	cartsvc "github.com/rafaelmbarbosa/cardapiozap-backend/internal/cart"
	"github.com/rafaelmbarbosa/cardapiozap-backend/internal/establishments"
	pkgerrors "github.com/rafaelmbarbosa/cardapiozap-backend/pkg/errors"
	"github.com/rafaelmbarbosa/cardapiozap-backend/pkg/logger"
)

type cartItemRequest struct {
	ItemName string `json:"item_name" validate:"required,min=1"`
}

type cartAddonRequest struct {
	ItemName   string `json:"item_name" validate:"required,min=1"`
	SplitIndex *int   `json:"split_index,omitempty" validate:"omitempty,gte=0"`
	Addon      string `json:"addon" validate:"required,min=1"`
}

func (req cartAddonRequest) lineKey() cartsvc.LineKey {
	if req.SplitIndex != nil {
		return cartsvc.UnitKey(req.ItemName, *req.SplitIndex)
	}
	return cartsvc.WholeLineKey(req.ItemName)
}

func resolveCartScope(r *http.Request, establishmentSvc establishments.Service) (uuid.UUID, string, error) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		return uuid.Nil, "", pkgerrors.New(pkgerrors.CodeValidation, "slug is required")
	}

	establishment, err := establishmentSvc.GetBySlug(r.Context(), slug)
	if err != nil {
		return uuid.Nil, "", err
	}

	sessionID := middleware.CartSessionFromContext(r.Context())
	if sessionID == "" {
		return uuid.Nil, "", pkgerrors.New(pkgerrors.CodeInternal, "cart session missing")
	}

	return establishment.ID, sessionID, nil
}

// CartView returns the expanded, priced cart for the current session.
func CartView(establishmentSvc establishments.Service, svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		establishmentID, sessionID, err := resolveCartScope(r, establishmentSvc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.View(r.Context(), establishmentID, sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

// CartAddItem adds one unit of a menu item to the session cart.
func CartAddItem(establishmentSvc establishments.Service, svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		establishmentID, sessionID, err := resolveCartScope(r, establishmentSvc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload cartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.AddItem(r.Context(), establishmentID, sessionID, payload.ItemName)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

// CartRemoveItem removes one unit of a menu item from the session cart.
func CartRemoveItem(establishmentSvc establishments.Service, svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		establishmentID, sessionID, err := resolveCartScope(r, establishmentSvc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		itemName := chi.URLParam(r, "name")
		if itemName == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "item name is required"))
			return
		}

		view, err := svc.RemoveItem(r.Context(), establishmentID, sessionID, itemName)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

// CartClear drops the session cart entirely.
func CartClear(establishmentSvc establishments.Service, svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		establishmentID, sessionID, err := resolveCartScope(r, establishmentSvc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Clear(r.Context(), establishmentID, sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

// CartAttachAddon attaches one addon unit to an expanded cart line.
func CartAttachAddon(establishmentSvc establishments.Service, svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		establishmentID, sessionID, err := resolveCartScope(r, establishmentSvc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload cartAddonRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.AttachAddon(r.Context(), establishmentID, sessionID, payload.lineKey(), payload.Addon)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

// CartDetachAddon removes one addon unit from an expanded cart line.
func CartDetachAddon(establishmentSvc establishments.Service, svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		establishmentID, sessionID, err := resolveCartScope(r, establishmentSvc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload cartAddonRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.DetachAddon(r.Context(), establishmentID, sessionID, payload.lineKey(), payload.Addon)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}
