package models

import (
	"time"

	"github.com/bookeasy/bookeasy-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Booking is a persisted reservation. Append-only from the API's perspective;
// status transitions past pending are admin-driven.
type Booking struct {
	ID              uuid.UUID           `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID           `gorm:"type:uuid;column:user_id;not null;index:idx_bookings_user_id"`
	RoomID          uuid.UUID           `gorm:"type:uuid;column:room_id;not null"`
	GuestName       string              `gorm:"column:guest_name;not null"`
	GuestEmail      string              `gorm:"column:guest_email;not null"`
	GuestPhone      string              `gorm:"column:guest_phone"`
	CheckInDate     time.Time           `gorm:"column:check_in_date;not null"`
	CheckOutDate    time.Time           `gorm:"column:check_out_date;not null"`
	NumGuests       int                 `gorm:"column:num_guests;not null;default:1"`
	TotalPrice      decimal.Decimal     `gorm:"column:total_price;type:numeric(12,2);not null"`
	Status          enums.BookingStatus `gorm:"column:status;not null;default:pending"`
	SpecialRequests string              `gorm:"column:special_requests"`
	CreatedAt       time.Time           `gorm:"column:created_at;autoCreateTime"`
}
