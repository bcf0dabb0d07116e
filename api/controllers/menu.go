package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rafaelmbarbosa/cardapiozap-backend/api/responses"
	"github.com/rafaelmbarbosa/cardapiozap-backend/internal/addons"
	"github.com/rafaelmbarbosa/cardapiozap-backend/internal/catalog"
	"github.com/rafaelmbarbosa/cardapiozap-backend/internal/establishments"
	pkgerrors "github.com/rafaelmbarbosa/cardapiozap-backend/pkg/errors"
	"github.com/rafaelmbarbosa/cardapiozap-backend/pkg/logger"
)

type menuResponse struct {
	Establishment establishmentSummary  `json:"establishment"`
	Sections      []catalog.MenuSection `json:"sections"`
	Addons        []addons.AddonDTO     `json:"addons"`
}

type establishmentSummary struct {
	Name     string  `json:"name"`
	Slug     string  `json:"slug"`
	ImageURL *string `json:"image_url,omitempty"`
}

// Menu serves the public menu page payload for an establishment slug.
func Menu(establishmentSvc establishments.Service, catalogSvc catalog.Service, addonSvc addons.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if slug == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "slug is required"))
			return
		}

		establishment, err := establishmentSvc.GetBySlug(r.Context(), slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sections, err := catalogSvc.Menu(r.Context(), establishment.ID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		activeAddons, err := addonSvc.ListActive(r.Context(), establishment.ID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, menuResponse{
			Establishment: establishmentSummary{
				Name:     establishment.Name,
				Slug:     establishment.Slug,
				ImageURL: establishment.ImageURL,
			},
			Sections: sections,
			Addons:   activeAddons,
		})
	}
}
