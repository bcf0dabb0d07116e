package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rafaelmbarbosa/cardapiozap-backend/api/middleware"
	"github.com/rafaelmbarbosa/cardapiozap-backend/api/responses"
	"github.com/rafaelmbarbosa/cardapiozap-backend/api/validators"
	ordersvc "github.com/rafaelmbarbosa/cardapiozap-backend/internal/order"
	pkgerrors "github.com/rafaelmbarbosa/cardapiozap-backend/pkg/errors"
	"github.com/rafaelmbarbosa/cardapiozap-backend/pkg/logger"
	"github.com/rafaelmbarbosa/cardapiozap-backend/pkg/types"
)

type orderSubmitRequest struct {
	Region       string `json:"region" validate:"required,min=1"`
	Neighborhood string `json:"neighborhood" validate:"required,min=1"`
	Street       string `json:"street" validate:"required,min=1"`
	Number       string `json:"number" validate:"required,min=1"`
	Complement   string `json:"complement"`
	Note         string `json:"note"`
}

// OrderSubmit composes the order message for the session cart and returns the
// WhatsApp deep link the client should open.
func OrderSubmit(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if slug == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "slug is required"))
			return
		}

		sessionID := middleware.CartSessionFromContext(r.Context())
		if sessionID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart session missing"))
			return
		}

		var payload orderSubmitRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		submission, err := svc.Submit(r.Context(), slug, sessionID, types.Location{
			Region:       payload.Region,
			Neighborhood: payload.Neighborhood,
			Street:       payload.Street,
			Number:       payload.Number,
			Complement:   payload.Complement,
			Note:         payload.Note,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, submission)
	}
}
