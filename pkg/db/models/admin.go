package models

import (
	"time"

	"github.com/google/uuid"
)

// Admin is a separate principal type from User: its own table, its own login
// flow, no shared role model. Operator-seeded rows may still hold a plaintext
// verifier; new rows are always hashed.
type Admin struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Email            string     `gorm:"type:text;not null;uniqueIndex:idx_admins_email"`
	PasswordVerifier string     `gorm:"column:password_verifier;not null"`
	Name             string     `gorm:"column:name;not null"`
	Active           bool       `gorm:"column:active;not null;default:true"`
	LastLogin        *time.Time `gorm:"column:last_login"`
	CreatedAt        time.Time  `gorm:"column:created_at;autoCreateTime"`
}
