package controllers

import (
	"net/http"

	"github.com/bookeasy/bookeasy-backend/api/responses"
	"github.com/bookeasy/bookeasy-backend/pkg/config"
	"github.com/bookeasy/bookeasy-backend/pkg/db"
	pkgerrors "github.com/bookeasy/bookeasy-backend/pkg/errors"
	"github.com/bookeasy/bookeasy-backend/pkg/logger"
	redisclient "github.com/bookeasy/bookeasy-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-BookEasy-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]any{"status": "live"})
	}
}

// HealthReady pings the database and redis so the probe fails before traffic
// is routed to an instance that cannot serve it.
func HealthReady(cfg *config.Config, database *db.Client, cache *redisclient.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		w.Header().Set("X-BookEasy-Env", cfg.App.Env)

		if database != nil {
			if err := database.Ping(ctx); err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unavailable"))
				return
			}
		}
		if cache != nil {
			if err := cache.Ping(ctx); err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unavailable"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]any{"status": "ready"})
	}
}
