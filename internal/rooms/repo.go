package rooms

import (
	"context"
	"strings"

	"github.com/bookeasy/bookeasy-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes room persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a rooms repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a room row.
func (r *Repository) Create(ctx context.Context, dto CreateRoomDTO) (*models.Room, error) {
	room := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(room).Error; err != nil {
		return nil, err
	}
	return room, nil
}

// FindByID loads a room by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	var room models.Room
	if err := r.db.WithContext(ctx).First(&room, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

// ListAll returns the whole catalog in insertion order.
func (r *Repository) ListAll(ctx context.Context) ([]models.Room, error) {
	var items []models.Room
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Search runs a case-insensitive substring match over name, description and
// amenities.
func (r *Repository) Search(ctx context.Context, term string) ([]models.Room, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(term)) + "%"
	var items []models.Room
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(amenities) LIKE ?",
			pattern, pattern, pattern).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Update applies the non-nil fields.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, dto UpdateRoomDTO) error {
	updates := map[string]any{}
	if dto.Name != nil {
		updates["name"] = *dto.Name
	}
	if dto.Description != nil {
		updates["description"] = *dto.Description
	}
	if dto.Price != nil {
		updates["price"] = *dto.Price
	}
	if dto.ImageURL != nil {
		updates["image_url"] = *dto.ImageURL
	}
	if dto.Amenities != nil {
		updates["amenities"] = *dto.Amenities
	}
	if dto.IsAvailable != nil {
		updates["is_available"] = *dto.IsAvailable
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Room{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// Delete removes a room row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Room{}, "id = ?", id).Error
}

// LogBooking records a booking attempt against a room.
func (r *Repository) LogBooking(ctx context.Context, roomID uuid.UUID, roomName string) error {
	entry := &models.RoomBookingLog{
		ID:       uuid.New(),
		RoomID:   roomID,
		RoomName: roomName,
	}
	return r.db.WithContext(ctx).Create(entry).Error
}
