package rooms

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bookeasy/bookeasy-backend/pkg/db/models"
)

// RoomDTO is the transport shape for a catalog room.
type RoomDTO struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url,omitempty"`
	Amenities   string          `json:"amenities,omitempty"`
	IsAvailable bool            `json:"is_available"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CreateRoomDTO holds the data required to persist a new room.
type CreateRoomDTO struct {
	Name        string
	Description string
	Price       decimal.Decimal
	ImageURL    string
	Amenities   string
	IsAvailable *bool
}

// UpdateRoomDTO carries the mutable room fields. Nil pointers leave the
// stored value untouched.
type UpdateRoomDTO struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	ImageURL    *string
	Amenities   *string
	IsAvailable *bool
}

func FromModel(r *models.Room) *RoomDTO {
	if r == nil {
		return nil
	}
	return &RoomDTO{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		ImageURL:    r.ImageURL,
		Amenities:   r.Amenities,
		IsAvailable: r.IsAvailable,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func FromModels(items []models.Room) []RoomDTO {
	out := make([]RoomDTO, 0, len(items))
	for i := range items {
		out = append(out, *FromModel(&items[i]))
	}
	return out
}

func (c CreateRoomDTO) ToModel() *models.Room {
	isAvailable := true
	if c.IsAvailable != nil {
		isAvailable = *c.IsAvailable
	}
	return &models.Room{
		ID:          uuid.New(),
		Name:        c.Name,
		Description: c.Description,
		Price:       c.Price,
		ImageURL:    c.ImageURL,
		Amenities:   c.Amenities,
		IsAvailable: isAvailable,
	}
}
