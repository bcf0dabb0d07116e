package controllers

import (
	"net/http"

	"github.com/rafaelmbarbosa/cardapiozap-backend/api/responses"
	"github.com/rafaelmbarbosa/cardapiozap-backend/api/validators"
	"github.com/rafaelmbarbosa/cardapiozap-backend/internal/establishments"
	"github.com/rafaelmbarbosa/cardapiozap-backend/pkg/logger"
)

// AdminCreateEstablishment registers the owner's establishment.
func AdminCreateEstablishment(svc establishments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := adminUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload establishments.CreateInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Create(r.Context(), ownerID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// AdminUpdateEstablishment updates the owner's establishment record.
func AdminUpdateEstablishment(svc establishments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := adminUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload establishments.UpdateInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Update(r.Context(), ownerID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}
