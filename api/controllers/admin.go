package controllers

import (
	"net/http"

	"github.com/bookeasy/bookeasy-backend/api/responses"
	"github.com/bookeasy/bookeasy-backend/api/validators"
	"github.com/bookeasy/bookeasy-backend/internal/admin"
	"github.com/bookeasy/bookeasy-backend/pkg/logger"
)

// Admin dispatches the operator endpoint. Admins are a separate principal
// from guests and never share the users table.
func Admin(svc admin.Service, logg *logger.Logger) http.HandlerFunc {
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
				admin.LoginRequest
			}
			if err := validators.DecodeJSONBody(r, &body); err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			result, err := svc.Login(ctx, body.LoginRequest)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			responses.WriteSuccess(w, map[string]any{
				"message": "Login successful",
				"admin":   result,
			})

		case "create":
			var body struct {
				Action   string `json:"action" validate:"required"`
				Name     string `json:"name" validate:"required"`
				Email    string `json:"email" validate:"required,email"`
				Password string `json:"password" validate:"required,min=6"`
			}
			if err := validators.DecodeJSONBody(r, &body); err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			result, err := svc.Create(ctx, body.Email, body.Password, body.Name)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			responses.WriteSuccess(w, map[string]any{
				"message": "Admin created",
				"admin":   result,
			})

		default:
			responses.WriteError(ctx, logg, w, errUnknownAction(action))
		}
	}
}
