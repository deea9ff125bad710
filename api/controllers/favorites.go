package controllers

import (
	"net/http"

	"github.com/ecocraftid/ecocraft-backend/api/middleware"
	"github.com/ecocraftid/ecocraft-backend/api/responses"
	"github.com/ecocraftid/ecocraft-backend/api/validators"
	factsvc "github.com/ecocraftid/ecocraft-backend/internal/facts"
	favoritesvc "github.com/ecocraftid/ecocraft-backend/internal/favorites"
	"github.com/ecocraftid/ecocraft-backend/pkg/enums"
	pkgerrors "github.com/ecocraftid/ecocraft-backend/pkg/errors"
	"github.com/ecocraftid/ecocraft-backend/pkg/logger"
)

func FavoritesList(svc favoritesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "favorites service unavailable"))
			return
		}

		clientID := middleware.ClientIDFromContext(r.Context())
		list, err := svc.List(r.Context(), clientID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"favorites": list,
			"count":     len(list),
		})
	}
}

type favoriteToggleRequest struct {
	ID             string   `json:"id" validate:"required"`
	Fact           string   `json:"fact" validate:"required"`
	Animal         string   `json:"animal"`
	Category       string   `json:"category"`
	Image          string   `json:"image"`
	Source         string   `json:"source" validate:"required"`
	Name           string   `json:"name"`
	Breed          string   `json:"breed"`
	Age            string   `json:"age"`
	Location       string   `json:"location"`
	Personality    []string `json:"personality"`
	AdoptionStatus string   `json:"adoption_status"`
	SpecialNeeds   string   `json:"special_needs"`
}

func (p favoriteToggleRequest) toFact() (factsvc.Fact, error) {
	source := enums.FactSource(p.Source)
	if !source.IsValid() {
		return factsvc.Fact{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid fact source").
			WithDetails(map[string]any{"source": p.Source})
	}
	return factsvc.Fact{
		ID:             p.ID,
		Fact:           p.Fact,
		Animal:         p.Animal,
		Category:       p.Category,
		Image:          p.Image,
		Source:         source,
		Name:           p.Name,
		Breed:          p.Breed,
		Age:            p.Age,
		Location:       p.Location,
		Personality:    p.Personality,
		AdoptionStatus: p.AdoptionStatus,
		SpecialNeeds:   p.SpecialNeeds,
	}, nil
}

func FavoritesToggle(svc favoritesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "favorites service unavailable"))
			return
		}

		var payload favoriteToggleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		fact, err := payload.toFact()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		clientID := middleware.ClientIDFromContext(r.Context())
		favorited, err := svc.Toggle(r.Context(), clientID, fact)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"id":        fact.ID,
			"favorited": favorited,
		})
	}
}

func FavoritesClear(svc favoritesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "favorites service unavailable"))
			return
		}

		clientID := middleware.ClientIDFromContext(r.Context())
		if err := svc.ClearAll(r.Context(), clientID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "cleared"})
	}
}
