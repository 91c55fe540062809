package controllers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bookeasy/bookeasy-backend/api/middleware"
	"github.com/bookeasy/bookeasy-backend/api/responses"
	"github.com/bookeasy/bookeasy-backend/api/validators"
	"github.com/bookeasy/bookeasy-backend/internal/intent"
	pkgerrors "github.com/bookeasy/bookeasy-backend/pkg/errors"
	"github.com/bookeasy/bookeasy-backend/pkg/logger"
	"github.com/bookeasy/bookeasy-backend/pkg/session"
)

// Checkout decisions returned to the frontend.
const (
	decisionProceed         = "proceed"
	decisionRedirectToLogin = "redirect_to_login"
	decisionNoIntent        = "no_intent"
)

// Intent dispatches the booking-intent endpoint. Every action is keyed by the
// caller's client key; the tracker carries a visitor's room choice across the
// login wall.
func Intent(tracker *intent.Tracker, sessions *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		clientKey := middleware.ClientKeyFromContext(ctx)
		if clientKey == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "client key is required"))
			return
		}

		action, err := validators.PeekAction(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		switch action {
		case "select":
			var body struct {
				Action      string          `json:"action" validate:"required"`
				RoomID      uuid.UUID       `json:"room_id" validate:"required"`
				RoomName    string          `json:"room_name" validate:"required"`
				Description string          `json:"description"`
				Price       decimal.Decimal `json:"price"`
				ImageURL    string          `json:"image_url"`
				Amenities   string          `json:"amenities"`
			}
			if err := validators.DecodeJSONBody(r, &body); err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			rec, err := tracker.Select(ctx, clientKey, intent.Selection{
				RoomID:      body.RoomID,
				RoomName:    body.RoomName,
				Description: body.Description,
				Price:       body.Price,
				ImageURL:    body.ImageURL,
				Amenities:   body.Amenities,
			})
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "capture intent"))
				return
			}
			responses.WriteSuccess(w, map[string]any{"intent": rec})

		case "checkout":
			authenticated := false
			if _, err := requirePrincipal(r, sessions); err == nil {
				authenticated = true
			}

			if authenticated {
				rec, err := tracker.Current(ctx, clientKey)
				if err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load intent"))
					return
				}
				if rec == nil {
					responses.WriteSuccess(w, map[string]any{"decision": decisionNoIntent})
					return
				}
				responses.WriteSuccess(w, map[string]any{"decision": decisionProceed, "intent": rec})
				return
			}

			rec, err := tracker.CheckoutAttempt(ctx, clientKey)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "park intent"))
				return
			}
			if rec == nil {
				responses.WriteSuccess(w, map[string]any{"decision": decisionNoIntent})
				return
			}
			responses.WriteSuccess(w, map[string]any{"decision": decisionRedirectToLogin, "intent": rec})

		case "resume":
			rec, err := tracker.ResumeAfterLogin(ctx, clientKey)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resume intent"))
				return
			}
			responses.WriteSuccess(w, map[string]any{
				"resumed": rec != nil,
				"intent":  rec,
			})

		case "finalize":
			rec, err := tracker.Finalize(ctx, clientKey)
			if err != nil {
				if errors.Is(err, intent.ErrNoIntent) {
					responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "No booking in progress"))
					return
				}
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "finalize intent"))
				return
			}
			responses.WriteSuccess(w, map[string]any{"intent": rec})

		case "clear":
			if err := tracker.Clear(ctx, clientKey); err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear intent"))
				return
			}
			if sessions != nil {
				if err := sessions.Drop(ctx, clientKey); err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "drop session"))
					return
				}
			}
			responses.WriteMessage(w, "Cleared")

		default:
			responses.WriteError(ctx, logg, w, errUnknownAction(action))
		}
	}
}
