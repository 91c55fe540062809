package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	pkgauth "github.com/bookeasy/bookeasy-backend/pkg/auth"
	"github.com/bookeasy/bookeasy-backend/pkg/config"
	"github.com/bookeasy/bookeasy-backend/pkg/db"
	"github.com/bookeasy/bookeasy-backend/pkg/db/models"
	pkgerrors "github.com/bookeasy/bookeasy-backend/pkg/errors"
	"github.com/bookeasy/bookeasy-backend/pkg/logger"
	"github.com/bookeasy/bookeasy-backend/pkg/metrics"
	"github.com/bookeasy/bookeasy-backend/pkg/security"
	"github.com/bookeasy/bookeasy-backend/pkg/session"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	invalidCredentialsMessage = "Invalid email or password"

	minRegisterPasswordLen = 6
	minChangePasswordLen   = 8
)

// LoginRequest is the credential payload for the login action.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest is the payload for creating a guest account.
type RegisterRequest struct {
	Name     string  `json:"name" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required"`
	Phone    *string `json:"phone,omitempty"`
}

// UpdateProfileRequest carries the mutable profile fields.
type UpdateProfileRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone *string `json:"phone,omitempty"`
}

// ChangePasswordRequest is the payload for rotating a password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

// LoginResponse carries the signed session token and the signed-in user.
type LoginResponse struct {
	Token string   `json:"token"`
	User  *UserDTO `json:"user"`
}

// Service defines the behavior needed by the users controller.
type Service interface {
	Login(ctx context.Context, clientKey string, req LoginRequest) (*LoginResponse, error)
	Register(ctx context.Context, req RegisterRequest) (*UserDTO, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*UserDTO, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error
	GetByID(ctx context.Context, userID uuid.UUID) (*UserDTO, error)
	GetByEmail(ctx context.Context, email string) (*UserDTO, error)
}

type userRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdatePasswordVerifier(ctx context.Context, id uuid.UUID, verifier string) error
	UpdateProfile(ctx context.Context, id uuid.UUID, dto UpdateProfileDTO) error
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

type sessionWriter interface {
	Put(ctx context.Context, clientKey string, sess session.Session) error
}

type service struct {
	db          *db.Client
	users       userRepository
	sessions    sessionWriter
	sessionCfg  config.SessionConfig
	passwordCfg config.PasswordConfig
	logg        *logger.Logger
	metrics     *metrics.ReservationMetrics
}

// ServiceParams bundles the dependencies required to build an identity service.
type ServiceParams struct {
	DB             *db.Client
	UserRepo       userRepository
	SessionManager sessionWriter
	SessionConfig  config.SessionConfig
	PasswordConfig config.PasswordConfig
	Logger         *logger.Logger
	Metrics        *metrics.ReservationMetrics
}

// NewService constructs an identity service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("database client is required")
	}
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.SessionManager == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{
		db:          params.DB,
		users:       params.UserRepo,
		sessions:    params.SessionManager,
		sessionCfg:  params.SessionConfig,
		passwordCfg: params.PasswordConfig,
		logg:        params.Logger,
		metrics:     params.Metrics,
	}, nil
}

// Login authenticates the credential pair and establishes the client's
// session. Accounts created before the hashing migration still hold the raw
// password as their verifier; those match by byte equality and are upgraded to
// a hash in the background of the same login.
func (s *service) Login(ctx context.Context, clientKey string, req LoginRequest) (*LoginResponse, error) {
	user, err := s.authenticate(ctx, req.Email, req.Password)
	if err != nil {
		s.metrics.IncLogin("failure")
		return nil, err
	}
	s.metrics.IncLogin("success")

	now := time.Now().UTC()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update last login")
	}
	user.LastLoginAt = &now

	sess := session.Session{
		UserID:   user.ID,
		Name:     user.Name,
		Email:    user.Email,
		Role:     user.Role,
		IssuedAt: now,
	}
	if err := s.sessions.Put(ctx, clientKey, sess); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store session")
	}

	token, err := pkgauth.MintSessionToken(s.sessionCfg, now, pkgauth.SessionTokenPayload{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint session token")
	}

	return &LoginResponse{Token: token, User: FromModel(user)}, nil
}

func (s *service) authenticate(ctx context.Context, email, password string) (*models.User, error) {
	input := strings.ToLower(strings.TrimSpace(email))
	if input == "" || password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	user, err := s.users.FindByEmail(ctx, input)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	result := security.VerifyCredential(user.PasswordVerifier, password)
	if !result.Valid || !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	if result.NeedsUpgrade {
		s.upgradeVerifier(ctx, user, password)
	}
	return user, nil
}

// upgradeVerifier rehashes a legacy plaintext verifier after a successful
// match. Failure is logged and never surfaces: the login already succeeded,
// and the row stays eligible for upgrade on the next login.
func (s *service) upgradeVerifier(ctx context.Context, user *models.User, password string) {
	hashed, err := security.HashPassword(password, s.passwordCfg)
	if err != nil {
		s.metrics.IncVerifierUpgrade("failure")
		s.logg.Error(s.logg.WithUserID(ctx, user.ID.String()), "hashing legacy verifier", err)
		return
	}
	if err := s.users.UpdatePasswordVerifier(ctx, user.ID, hashed); err != nil {
		s.metrics.IncVerifierUpgrade("failure")
		s.logg.Error(s.logg.WithUserID(ctx, user.ID.String()), "persisting upgraded verifier", err)
		return
	}
	s.metrics.IncVerifierUpgrade("success")
	user.PasswordVerifier = hashed
	s.logg.Info(s.logg.WithUserID(ctx, user.ID.String()), "legacy verifier upgraded")
}

// Register creates a guest account with a hashed verifier.
func (s *service) Register(ctx context.Context, req RegisterRequest) (*UserDTO, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if len(req.Password) < minRegisterPasswordLen {
		return nil, pkgerrors.New(pkgerrors.CodePasswordPolicy,
			fmt.Sprintf("Password must be at least %d characters", minRegisterPasswordLen))
	}

	verifier, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var created *models.User
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)

		if _, err := repo.FindByEmail(ctx, email); err == nil {
			return pkgerrors.New(pkgerrors.CodeDuplicateEmail, "Email already registered")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check user email")
		}

		user, err := repo.Create(ctx, CreateUserDTO{
			Email:            email,
			PasswordVerifier: verifier,
			Name:             strings.TrimSpace(req.Name),
			Phone:            req.Phone,
		})
		if err != nil {
			// Concurrent registration can slip past the precheck; the unique
			// index is the arbiter.
			if db.IsUniqueViolation(err) {
				return pkgerrors.New(pkgerrors.CodeDuplicateEmail, "Email already registered")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
		}
		created = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncRegistration()
	return FromModel(created), nil
}

// UpdateProfile applies the provided fields and returns the refreshed user.
func (s *service) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*UserDTO, error) {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
	}
	var email *string
	if req.Email != nil {
		normalized := strings.ToLower(strings.TrimSpace(*req.Email))
		if normalized == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "email cannot be empty")
		}
		email = &normalized
	}
	if err := s.users.UpdateProfile(ctx, userID, UpdateProfileDTO{Name: req.Name, Email: email, Phone: req.Phone}); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeDuplicateEmail, "Email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update profile")
	}
	return s.GetByID(ctx, userID)
}

// ChangePassword verifies the current credential (hash or legacy plaintext)
// and stores a hashed verifier for the new password.
func (s *service) ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error {
	if req.NewPassword != req.ConfirmPassword {
		return pkgerrors.New(pkgerrors.CodePasswordPolicy, "New passwords do not match")
	}
	if len(req.NewPassword) < minChangePasswordLen {
		return pkgerrors.New(pkgerrors.CodePasswordPolicy,
			fmt.Sprintf("Password must be at least %d characters", minChangePasswordLen))
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "User not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	result := security.VerifyCredential(user.PasswordVerifier, req.CurrentPassword)
	if !result.Valid {
		return pkgerrors.New(pkgerrors.CodePasswordPolicy, "Current password is incorrect")
	}

	verifier, err := security.HashPassword(req.NewPassword, s.passwordCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}
	if err := s.users.UpdatePasswordVerifier(ctx, userID, verifier); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store new verifier")
	}
	return nil
}

// GetByID loads the transport shape for the given user.
func (s *service) GetByID(ctx context.Context, userID uuid.UUID) (*UserDTO, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "User not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}
	return FromModel(user), nil
}

// GetByEmail loads the transport shape for the given email, normalized the
// same way Login normalizes it.
func (s *service) GetByEmail(ctx context.Context, email string) (*UserDTO, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "User not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}
	return FromModel(user), nil
}
