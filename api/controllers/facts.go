package controllers

import (
	"net/http"

	"github.com/ecocraftid/ecocraft-backend/api/responses"
	"github.com/ecocraftid/ecocraft-backend/api/validators"
	factsvc "github.com/ecocraftid/ecocraft-backend/internal/facts"
	pkgerrors "github.com/ecocraftid/ecocraft-backend/pkg/errors"
	"github.com/ecocraftid/ecocraft-backend/pkg/logger"
)

// FactsList returns facts from the upstream API, or the fixed fallback
// dataset when the upstream misbehaves. The response always carries a
// source marker so the UI can surface offline mode.
func FactsList(client *factsvc.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if client == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "facts client unavailable"))
			return
		}

		count, err := validators.ParseQueryInt(r, "count", 0, 0, 50)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result := client.Fetch(r.Context(), count)
		responses.WriteSuccess(w, result)
	}
}
