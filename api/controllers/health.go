package controllers

import (
	"net/http"

	"go.uber.org/multierr"

	"github.com/ecocraftid/ecocraft-backend/api/responses"
	"github.com/ecocraftid/ecocraft-backend/pkg/config"
	"github.com/ecocraftid/ecocraft-backend/pkg/db"
	pkgerrors "github.com/ecocraftid/ecocraft-backend/pkg/errors"
	"github.com/ecocraftid/ecocraft-backend/pkg/logger"
	"github.com/ecocraftid/ecocraft-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-EcoCraft-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every backing dependency and reports the first group of
// failures together.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-EcoCraft-Env", cfg.App.Env)

		var err error
		if dbP != nil {
			err = multierr.Append(err, dbP.Ping(r.Context()))
		}
		if redisP != nil {
			err = multierr.Append(err, redisP.Ping(r.Context()))
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "dependency not ready"))
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
