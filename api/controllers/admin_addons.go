package controllers

import (
	"net/http"

	"github.com/rafaelmbarbosa/cardapiozap-backend/api/responses"
	"github.com/rafaelmbarbosa/cardapiozap-backend/api/validators"
	addonsvc "github.com/rafaelmbarbosa/cardapiozap-backend/internal/addons"
	"github.com/rafaelmbarbosa/cardapiozap-backend/pkg/logger"
)

// AdminListAddons lists the owner's addon catalog, blocked entries included.
func AdminListAddons(svc addonsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		establishmentID, err := adminEstablishmentID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.List(r.Context(), establishmentID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// AdminCreateAddon creates an addon for the owner's establishment.
func AdminCreateAddon(svc addonsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		establishmentID, err := adminEstablishmentID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addonsvc.CreateAddonInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		addon, err := svc.Create(r.Context(), establishmentID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, addon)
	}
}

// AdminUpdateAddon applies a partial update to an addon.
func AdminUpdateAddon(svc addonsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		establishmentID, err := adminEstablishmentID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		addonID, err := pathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addonsvc.UpdateAddonInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		addon, err := svc.Update(r.Context(), establishmentID, addonID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, addon)
	}
}

// AdminDeleteAddon removes an addon permanently.
func AdminDeleteAddon(svc addonsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		establishmentID, err := adminEstablishmentID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		addonID, err := pathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), establishmentID, addonID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// AdminBlockAddon toggles an addon's availability without deleting it.
func AdminBlockAddon(svc addonsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		establishmentID, err := adminEstablishmentID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		addonID, err := pathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload blockRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.SetBlocked(r.Context(), establishmentID, addonID, payload.Blocked); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]bool{"blocked": payload.Blocked})
	}
}
