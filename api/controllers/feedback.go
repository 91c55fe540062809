package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/bookeasy/bookeasy-backend/api/responses"
	"github.com/bookeasy/bookeasy-backend/api/validators"
	"github.com/bookeasy/bookeasy-backend/internal/feedback"
	"github.com/bookeasy/bookeasy-backend/pkg/enums"
	"github.com/bookeasy/bookeasy-backend/pkg/logger"
)

// Feedback dispatches the guest feedback endpoint writes.
func Feedback(svc feedback.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		action, err := validators.PeekAction(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		switch action {
		case "submit":
			var body struct {
				Action string `json:"action" validate:"required"`
				feedback.SubmitRequest
			}
			if err := validators.DecodeJSONBody(r, &body); err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			item, err := svc.Submit(ctx, body.SubmitRequest)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			responses.WriteSuccess(w, map[string]any{
				"message":  "Feedback submitted",
				"feedback": item,
			})

		case "updateStatus":
			var body struct {
				Action     string               `json:"action" validate:"required"`
				FeedbackID uuid.UUID            `json:"feedback_id" validate:"required"`
				Status     enums.FeedbackStatus `json:"status" validate:"required"`
			}
			if err := validators.DecodeJSONBody(r, &body); err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			if err := svc.UpdateStatus(ctx, body.FeedbackID, body.Status); err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			responses.WriteMessage(w, "Feedback status updated")

		case "delete":
			var body struct {
				Action     string    `json:"action" validate:"required"`
				FeedbackID uuid.UUID `json:"feedback_id" validate:"required"`
			}
			if err := validators.DecodeJSONBody(r, &body); err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			if err := svc.Delete(ctx, body.FeedbackID); err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			responses.WriteMessage(w, "Feedback deleted")

		default:
			responses.WriteError(ctx, logg, w, errUnknownAction(action))
		}
	}
}

// FeedbackLookup serves the GET side: list, single item, and the status/type
// counts the admin dashboard renders.
func FeedbackLookup(svc feedback.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		switch action := validators.QueryAction(r); action {
		case "list", "":
			items, err := svc.ListAll(ctx)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			responses.WriteSuccess(w, map[string]any{"feedback": items})

		case "get":
			id, err := validators.ParseQueryUUID(r, "feedbackId")
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			item, err := svc.GetByID(ctx, id)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			responses.WriteSuccess(w, map[string]any{"feedback": item})

		case "statistics":
			stats, err := svc.Stats(ctx)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			responses.WriteSuccess(w, map[string]any{"statistics": stats})

		default:
			responses.WriteError(ctx, logg, w, errUnknownAction(action))
		}
	}
}
