package controllers

import (
	"net/http"

	"github.com/bookeasy/bookeasy-backend/api/middleware"
	"github.com/bookeasy/bookeasy-backend/api/responses"
	"github.com/bookeasy/bookeasy-backend/api/validators"
	"github.com/bookeasy/bookeasy-backend/internal/identity"
	pkgerrors "github.com/bookeasy/bookeasy-backend/pkg/errors"
	"github.com/bookeasy/bookeasy-backend/pkg/logger"
	"github.com/bookeasy/bookeasy-backend/pkg/session"
)

const sessionTokenHeader = "X-BE-Token"

// Users dispatches the legacy account endpoint: one route, an `action`
// discriminator in the body.
func Users(svc identity.Service, sessions *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		action, err := validators.PeekAction(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		switch action {
		case "login":
			var body struct {
				Action string `json:"action" validate:"required"`
				identity.LoginRequest
			}
			if err := validators.DecodeJSONBody(r, &body); err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			result, err := svc.Login(ctx, middleware.ClientKeyFromContext(ctx), body.LoginRequest)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			w.Header().Set(sessionTokenHeader, result.Token)
			responses.WriteSuccess(w, map[string]any{
				"message": "Login successful",
				"token":   result.Token,
				"user":    result.User,
			})

		case "register":
			var body struct {
				Action string `json:"action" validate:"required"`
				identity.RegisterRequest
			}
			if err := validators.DecodeJSONBody(r, &body); err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			user, err := svc.Register(ctx, body.RegisterRequest)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			responses.WriteSuccess(w, map[string]any{
				"message": "Registration successful",
				"user":    user,
			})

		case "updateProfile", "update":
			principal, err := requirePrincipal(r, sessions)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			var body struct {
				Action string `json:"action" validate:"required"`
				identity.UpdateProfileRequest
			}
			if err := validators.DecodeJSONBody(r, &body); err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			user, err := svc.UpdateProfile(ctx, principal.UserID, body.UpdateProfileRequest)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			responses.WriteSuccess(w, map[string]any{
				"message": "Profile updated",
				"user":    user,
			})

		case "updatePassword":
			principal, err := requirePrincipal(r, sessions)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			var body struct {
				Action string `json:"action" validate:"required"`
				identity.ChangePasswordRequest
			}
			if err := validators.DecodeJSONBody(r, &body); err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			if err := svc.ChangePassword(ctx, principal.UserID, body.ChangePasswordRequest); err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			responses.WriteMessage(w, "Password updated successfully")

		default:
			responses.WriteError(ctx, logg, w, errUnknownAction(action))
		}
	}
}

// UsersLookup serves the GET side of the account endpoint.
func UsersLookup(svc identity.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		switch action := validators.QueryAction(r); action {
		case "getUserById":
			id, err := validators.ParseQueryUUID(r, "id")
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			user, err := svc.GetByID(ctx, id)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			responses.WriteSuccess(w, map[string]any{"user": user})

		case "getUserByEmail":
			email := r.URL.Query().Get("email")
			if email == "" {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "query parameter is required").WithDetails(map[string]any{"field": "email"}))
				return
			}
			user, err := svc.GetByEmail(ctx, email)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			responses.WriteSuccess(w, map[string]any{"user": user})

		default:
			responses.WriteError(ctx, logg, w, errUnknownAction(action))
		}
	}
}
