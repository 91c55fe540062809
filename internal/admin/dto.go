package admin

import (
	"time"

	"github.com/google/uuid"

	"github.com/bookeasy/bookeasy-backend/pkg/db/models"
)

// AdminDTO is the transport shape returned after a successful console login.
type AdminDTO struct {
	ID        uuid.UUID  `json:"admin_id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

// CreateAdminDTO holds the data required to persist a new admin.
type CreateAdminDTO struct {
	Email            string
	PasswordVerifier string
	Name             string
}

func FromModel(a *models.Admin) *AdminDTO {
	if a == nil {
		return nil
	}
	return &AdminDTO{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		LastLogin: a.LastLogin,
	}
}

func (c CreateAdminDTO) ToModel() *models.Admin {
	return &models.Admin{
		ID:               uuid.New(),
		Email:            c.Email,
		PasswordVerifier: c.PasswordVerifier,
		Name:             c.Name,
		Active:           true,
	}
}
