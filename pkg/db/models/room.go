package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Room is a bookable unit in the catalog.
type Room struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name        string          `gorm:"column:name;not null"`
	Description string          `gorm:"column:description;not null"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	ImageURL    string          `gorm:"column:image_url"`
	Amenities   string          `gorm:"column:amenities"`
	IsAvailable bool            `gorm:"column:is_available;not null;default:true"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// RoomBookingLog records a booking attempt against a room. Best-effort audit
// data written when a visitor starts checkout from the catalog.
type RoomBookingLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	RoomID    uuid.UUID `gorm:"type:uuid;column:room_id;not null"`
	RoomName  string    `gorm:"column:room_name;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
