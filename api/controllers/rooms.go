package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/bookeasy/bookeasy-backend/api/responses"
	"github.com/bookeasy/bookeasy-backend/api/validators"
	"github.com/bookeasy/bookeasy-backend/internal/rooms"
	"github.com/bookeasy/bookeasy-backend/pkg/logger"
)

// Rooms serves the catalog reads: GET with an action query parameter.
func Rooms(svc rooms.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		switch action := validators.QueryAction(r); action {
		case "getAllRooms", "":
			list, err := svc.ListAll(ctx)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			responses.WriteSuccess(w, map[string]any{"rooms": list})

		case "searchRooms":
			term := strings.TrimSpace(r.URL.Query().Get("searchTerm"))
			list, err := svc.Search(ctx, term)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			responses.WriteSuccess(w, map[string]any{"rooms": list})

		case "getRoomDetails":
			id, err := validators.ParseQueryUUID(r, "roomId")
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			room, err := svc.GetByID(ctx, id)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			responses.WriteSuccess(w, map[string]any{"room": room})

		default:
			responses.WriteError(ctx, logg, w, errUnknownAction(action))
		}
	}
}

// RoomsMutate serves the catalog writes: POST with an action discriminator.
func RoomsMutate(svc rooms.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		action, err := validators.PeekAction(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		switch action {
		case "addRoom":
			var body struct {
				Action string `json:"action" validate:"required"`
				rooms.AddRoomRequest
			}
			if err := validators.DecodeJSONBody(r, &body); err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			room, err := svc.Add(ctx, body.AddRoomRequest)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			responses.WriteSuccess(w, map[string]any{
				"message": "Room added",
				"room":    room,
			})

		case "updateRoom":
			var body struct {
				Action string    `json:"action" validate:"required"`
				RoomID uuid.UUID `json:"room_id" validate:"required"`
				rooms.UpdateRoomRequest
			}
			if err := validators.DecodeJSONBody(r, &body); err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			room, err := svc.Update(ctx, body.RoomID, body.UpdateRoomRequest)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			responses.WriteSuccess(w, map[string]any{
				"message": "Room updated",
				"room":    room,
			})

		case "deleteRoom":
			var body struct {
				Action string    `json:"action" validate:"required"`
				RoomID uuid.UUID `json:"room_id" validate:"required"`
			}
			if err := validators.DecodeJSONBody(r, &body); err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			if err := svc.Delete(ctx, body.RoomID); err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			responses.WriteMessage(w, "Room deleted")

		case "logBooking":
			var body struct {
				Action string    `json:"action" validate:"required"`
				RoomID uuid.UUID `json:"room_id" validate:"required"`
			}
			if err := validators.DecodeJSONBody(r, &body); err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			if err := svc.LogBooking(ctx, body.RoomID); err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			responses.WriteMessage(w, "Booking attempt logged")

		default:
			responses.WriteError(ctx, logg, w, errUnknownAction(action))
		}
	}
}
