package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/bookeasy/bookeasy-backend/api/responses"
	"github.com/bookeasy/bookeasy-backend/api/validators"
	"github.com/bookeasy/bookeasy-backend/internal/bookings"
	"github.com/bookeasy/bookeasy-backend/pkg/enums"
	"github.com/bookeasy/bookeasy-backend/pkg/logger"
)

// Bookings dispatches the reservation endpoint. The route sits behind
// RequireSession, so every caller here is signed in.
func Bookings(svc bookings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		action, err := validators.PeekAction(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		switch action {
		case "create":
			var body struct {
				Action string `json:"action" validate:"required"`
				bookings.CreateBookingRequest
			}
			if err := validators.DecodeJSONBody(r, &body); err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			booking, err := svc.Create(ctx, body.CreateBookingRequest)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			responses.WriteSuccess(w, map[string]any{
				"message": "Booking created successfully",
				"booking": booking,
			})

		case "updateStatus":
			var body struct {
				Action    string              `json:"action" validate:"required"`
				BookingID uuid.UUID           `json:"booking_id" validate:"required"`
				Status    enums.BookingStatus `json:"status" validate:"required"`
			}
			if err := validators.DecodeJSONBody(r, &body); err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			if err := svc.UpdateStatus(ctx, body.BookingID, body.Status); err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			responses.WriteMessage(w, "Booking status updated")

		default:
			responses.WriteError(ctx, logg, w, errUnknownAction(action))
		}
	}
}

// BookingsLookup serves GET ?action=getByUser&userId= with the caller's
// reservations split into upcoming and past stays.
func BookingsLookup(svc bookings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		switch action := validators.QueryAction(r); action {
		case "getByUser":
			userID, err := validators.ParseQueryUUID(r, "userId")
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			all, err := svc.ListByUser(ctx, userID)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			active, completed := bookings.Partition(all)
			responses.WriteSuccess(w, map[string]any{
				"bookings":  all,
				"active":    active,
				"completed": completed,
			})

		default:
			responses.WriteError(ctx, logg, w, errUnknownAction(action))
		}
	}
}
