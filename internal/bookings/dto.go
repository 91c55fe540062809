package bookings

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bookeasy/bookeasy-backend/pkg/db/models"
	"github.com/bookeasy/bookeasy-backend/pkg/enums"
)

// BookingDTO is the transport shape for a reservation.
type BookingDTO struct {
	ID              uuid.UUID           `json:"id"`
	UserID          uuid.UUID           `json:"user_id"`
	RoomID          uuid.UUID           `json:"room_id"`
	GuestName       string              `json:"guest_name"`
	GuestEmail      string              `json:"guest_email"`
	GuestPhone      string              `json:"guest_phone,omitempty"`
	CheckInDate     time.Time           `json:"check_in_date"`
	CheckOutDate    time.Time           `json:"check_out_date"`
	NumGuests       int                 `json:"num_guests"`
	TotalPrice      decimal.Decimal     `json:"total_price"`
	Status          enums.BookingStatus `json:"status"`
	SpecialRequests string              `json:"special_requests,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
}

// CreateBookingDTO holds the data required by the repo to persist a booking.
type CreateBookingDTO struct {
	UserID          uuid.UUID
	RoomID          uuid.UUID
	GuestName       string
	GuestEmail      string
	GuestPhone      string
	CheckInDate     time.Time
	CheckOutDate    time.Time
	NumGuests       int
	TotalPrice      decimal.Decimal
	SpecialRequests string
}

func FromModel(b *models.Booking) *BookingDTO {
	if b == nil {
		return nil
	}
	return &BookingDTO{
		ID:              b.ID,
		UserID:          b.UserID,
		RoomID:          b.RoomID,
		GuestName:       b.GuestName,
		GuestEmail:      b.GuestEmail,
		GuestPhone:      b.GuestPhone,
		CheckInDate:     b.CheckInDate,
		CheckOutDate:    b.CheckOutDate,
		NumGuests:       b.NumGuests,
		TotalPrice:      b.TotalPrice,
		Status:          b.Status,
		SpecialRequests: b.SpecialRequests,
		CreatedAt:       b.CreatedAt,
	}
}

func FromModels(items []models.Booking) []BookingDTO {
	out := make([]BookingDTO, 0, len(items))
	for i := range items {
		out = append(out, *FromModel(&items[i]))
	}
	return out
}

func (c CreateBookingDTO) ToModel() *models.Booking {
	numGuests := c.NumGuests
	if numGuests <= 0 {
		numGuests = 1
	}
	return &models.Booking{
		ID:              uuid.New(),
		UserID:          c.UserID,
		RoomID:          c.RoomID,
		GuestName:       c.GuestName,
		GuestEmail:      c.GuestEmail,
		GuestPhone:      c.GuestPhone,
		CheckInDate:     c.CheckInDate,
		CheckOutDate:    c.CheckOutDate,
		NumGuests:       numGuests,
		TotalPrice:      c.TotalPrice,
		Status:          enums.BookingStatusPending,
		SpecialRequests: c.SpecialRequests,
	}
}
