package models

import (
	"time"

	"github.com/bookeasy/bookeasy-backend/pkg/enums"
	"github.com/google/uuid"
)

// Feedback is a visitor report handled by admins.
type Feedback struct {
	ID        uuid.UUID            `gorm:"type:uuid;primaryKey"`
	Name      string               `gorm:"column:name;not null"`
	Email     string               `gorm:"column:email;not null"`
	Type      enums.FeedbackType   `gorm:"column:type;not null"`
	Subject   string               `gorm:"column:subject;not null"`
	Message   string               `gorm:"column:message;not null"`
	Status    enums.FeedbackStatus `gorm:"column:status;not null;default:new"`
	CreatedAt time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
