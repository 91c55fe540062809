package models

import (
	"time"

	"github.com/bookeasy/bookeasy-backend/pkg/enums"
	"github.com/google/uuid"
)

// User represents a guest account. PasswordVerifier usually holds an Argon2id
// hash, but rows imported before the hashing migration still carry the raw
// password until their owner's next successful login upgrades them.
type User struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Email            string         `gorm:"type:text;not null;uniqueIndex:idx_users_email"`
	PasswordVerifier string         `gorm:"column:password_verifier;not null"`
	Name             string         `gorm:"column:name;not null"`
	Phone            *string        `gorm:"column:phone"`
	Role             enums.UserRole `gorm:"column:role;not null;default:user"`
	IsActive         bool           `gorm:"column:is_active;not null;default:true"`
	LastLoginAt      *time.Time     `gorm:"column:last_login_at"`
	CreatedAt        time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
