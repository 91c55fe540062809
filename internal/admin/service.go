package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bookeasy/bookeasy-backend/pkg/config"
	"github.com/bookeasy/bookeasy-backend/pkg/db"
	"github.com/bookeasy/bookeasy-backend/pkg/db/models"
	pkgerrors "github.com/bookeasy/bookeasy-backend/pkg/errors"
	"github.com/bookeasy/bookeasy-backend/pkg/security"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const invalidCredentialsMessage = "Invalid email or password"

// LoginRequest is the credential payload for the console login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Service defines the behavior needed by the admin controller.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*AdminDTO, error)
	Create(ctx context.Context, email, password, name string) (*AdminDTO, error)
}

type adminRepository interface {
	Create(ctx context.Context, dto CreateAdminDTO) (*models.Admin, error)
	FindByEmail(ctx context.Context, email string) (*models.Admin, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

type service struct {
	admins      adminRepository
	passwordCfg config.PasswordConfig
}

// ServiceParams bundles the dependencies required to build an admin service.
type ServiceParams struct {
	AdminRepo      adminRepository
	PasswordConfig config.PasswordConfig
}

// NewService constructs an admin service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.AdminRepo == nil {
		return nil, fmt.Errorf("admin repository is required")
	}
	return &service{
		admins:      params.AdminRepo,
		passwordCfg: params.PasswordConfig,
	}, nil
}

// Login authenticates a console operator. Seeded rows may still hold a
// plaintext verifier; those match by byte equality but are left as-is, since
// the seeding process owns those rows.
func (s *service) Login(ctx context.Context, req LoginRequest) (*AdminDTO, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	admin, err := s.admins.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup admin")
	}

	result := security.VerifyCredential(admin.PasswordVerifier, req.Password)
	if !result.Valid || !admin.Active {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	now := time.Now().UTC()
	if err := s.admins.UpdateLastLogin(ctx, admin.ID, now); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update last login")
	}
	admin.LastLogin = &now

	return FromModel(admin), nil
}

// Create persists a new console operator with a hashed verifier.
func (s *service) Create(ctx context.Context, email, password, name string) (*AdminDTO, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password is required")
	}

	verifier, err := security.HashPassword(password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	admin, err := s.admins.Create(ctx, CreateAdminDTO{
		Email:            email,
		PasswordVerifier: verifier,
		Name:             strings.TrimSpace(name),
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeDuplicateEmail, "Email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create admin")
	}
	return FromModel(admin), nil
}
