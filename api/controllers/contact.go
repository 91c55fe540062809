package controllers

import (
	"net/http"

	"github.com/bookeasy/bookeasy-backend/api/responses"
	"github.com/bookeasy/bookeasy-backend/api/validators"
	"github.com/bookeasy/bookeasy-backend/internal/contact"
	"github.com/bookeasy/bookeasy-backend/pkg/logger"
)

// Contact accepts a contact-form submission. The endpoint has a single
// action, so the discriminator is optional.
func Contact(svc contact.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var body struct {
			Action string `json:"action,omitempty"`
			contact.SubmitRequest
		}
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if body.Action != "" && body.Action != "submit" {
			responses.WriteError(ctx, logg, w, errUnknownAction(body.Action))
			return
		}

		msg, err := svc.Submit(ctx, body.SubmitRequest)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"message": "Message received",
			"contact": msg,
		})
	}
}
