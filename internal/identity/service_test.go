package identity

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	pkgauth "github.com/bookeasy/bookeasy-backend/pkg/auth"
	"github.com/bookeasy/bookeasy-backend/pkg/config"
	"github.com/bookeasy/bookeasy-backend/pkg/db"
	"github.com/bookeasy/bookeasy-backend/pkg/db/models"
	"github.com/bookeasy/bookeasy-backend/pkg/enums"
	pkgerrors "github.com/bookeasy/bookeasy-backend/pkg/errors"
	"github.com/bookeasy/bookeasy-backend/pkg/logger"
	"github.com/bookeasy/bookeasy-backend/pkg/security"
	"github.com/bookeasy/bookeasy-backend/pkg/session"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func testSessionCfg() config.SessionConfig {
	return config.SessionConfig{
		Secret:          "test-secret",
		Issuer:          "bookeasy-test",
		TokenTTLMinutes: 60,
	}
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "identity-test", Output: io.Discard})
}

func mustHashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return hash
}

func buildTestService(t *testing.T, repo *stubUserRepo) (Service, *stubSessionWriter) {
	t.Helper()
	sessions := &stubSessionWriter{}
	svc, err := NewService(ServiceParams{
		DB:             db.NewWithConn(&gorm.DB{}),
		UserRepo:       repo,
		SessionManager: sessions,
		SessionConfig:  testSessionCfg(),
		Logger:         testLogger(),
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc, sessions
}

func TestLoginWithHashedVerifier(t *testing.T) {
	password := "guest-secret"
	repo := &stubUserRepo{user: &models.User{
		ID:               uuid.New(),
		Email:            "guest@example.com",
		PasswordVerifier: mustHashPassword(t, password),
		Name:             "Guest",
		Role:             enums.UserRoleUser,
		IsActive:         true,
	}}
	svc, sessions := buildTestService(t, repo)

	resp, err := svc.Login(context.Background(), "ck-1", LoginRequest{
		Email:    "Guest@Example.com",
		Password: password,
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := pkgauth.ParseSessionToken(testSessionCfg(), resp.Token)
	if err != nil {
		t.Fatalf("parse session token: %v", err)
	}
	if claims.UserID != repo.user.ID {
		t.Fatalf("expected claims for %s, got %s", repo.user.ID, claims.UserID)
	}
	if sessions.clientKey != "ck-1" || sessions.sess.UserID != repo.user.ID {
		t.Fatalf("expected session stored for client, got %+v", sessions)
	}
	if repo.verifierUpdates != 0 {
		t.Fatalf("hashed verifier should not be rewritten, got %d updates", repo.verifierUpdates)
	}
	if repo.user.LastLoginAt == nil {
		t.Fatal("expected last login to be recorded")
	}
}

func TestLoginUpgradesLegacyVerifier(t *testing.T) {
	password := "plain-old-password"
	repo := &stubUserRepo{user: &models.User{
		ID:               uuid.New(),
		Email:            "legacy@example.com",
		PasswordVerifier: password,
		Name:             "Legacy",
		Role:             enums.UserRoleUser,
		IsActive:         true,
	}}
	svc, _ := buildTestService(t, repo)

	if _, err := svc.Login(context.Background(), "ck-2", LoginRequest{
		Email:    "legacy@example.com",
		Password: password,
	}); err != nil {
		t.Fatalf("login: %v", err)
	}

	if repo.verifierUpdates != 1 {
		t.Fatalf("expected one verifier upgrade, got %d", repo.verifierUpdates)
	}
	ok, err := security.VerifyPassword(password, repo.lastVerifier)
	if err != nil || !ok {
		t.Fatalf("upgraded verifier should be a valid hash of the password (ok=%v err=%v)", ok, err)
	}
}

func TestLoginKeepsWorkingWhenUpgradePersistFails(t *testing.T) {
	password := "plain-old-password"
	repo := &stubUserRepo{
		user: &models.User{
			ID:               uuid.New(),
			Email:            "legacy@example.com",
			PasswordVerifier: password,
			Name:             "Legacy",
			Role:             enums.UserRoleUser,
			IsActive:         true,
		},
		verifierErr: errors.New("write timeout"),
	}
	svc, _ := buildTestService(t, repo)

	resp, err := svc.Login(context.Background(), "ck-3", LoginRequest{
		Email:    "legacy@example.com",
		Password: password,
	})
	if err != nil {
		t.Fatalf("login should survive a failed upgrade: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected a session token")
	}
	if repo.user.PasswordVerifier != password {
		t.Fatal("verifier should be unchanged after failed persist")
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	repo := &stubUserRepo{user: &models.User{
		ID:               uuid.New(),
		Email:            "guest@example.com",
		PasswordVerifier: mustHashPassword(t, "right-password"),
		Name:             "Guest",
		Role:             enums.UserRoleUser,
		IsActive:         true,
	}}
	svc, _ := buildTestService(t, repo)

	cases := []struct {
		name  string
		email string
	}{
		{"wrong password", "guest@example.com"},
		{"unknown email", "nobody@example.com"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), "ck", LoginRequest{
				Email:    tc.email,
				Password: "wrong-password",
			})
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
				t.Fatalf("expected unauthorized, got %v", err)
			}
			if typed.Message() != invalidCredentialsMessage {
				t.Fatalf("credential failures must share one message, got %q", typed.Message())
			}
		})
	}
}

func TestLoginRejectsHashAsPassword(t *testing.T) {
	hash := mustHashPassword(t, "actual-password")
	repo := &stubUserRepo{user: &models.User{
		ID:               uuid.New(),
		Email:            "guest@example.com",
		PasswordVerifier: hash,
		Name:             "Guest",
		Role:             enums.UserRoleUser,
		IsActive:         true,
	}}
	svc, _ := buildTestService(t, repo)

	// Supplying the stored hash itself must not match via the legacy path.
	_, err := svc.Login(context.Background(), "ck", LoginRequest{
		Email:    "guest@example.com",
		Password: hash,
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginRejectsInactiveUser(t *testing.T) {
	password := "guest-secret"
	repo := &stubUserRepo{user: &models.User{
		ID:               uuid.New(),
		Email:            "guest@example.com",
		PasswordVerifier: mustHashPassword(t, password),
		Name:             "Guest",
		Role:             enums.UserRoleUser,
		IsActive:         false,
	}}
	svc, _ := buildTestService(t, repo)

	_, err := svc.Login(context.Background(), "ck", LoginRequest{
		Email:    "guest@example.com",
		Password: password,
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	current := "old-password"
	repo := &stubUserRepo{user: &models.User{
		ID:               uuid.New(),
		Email:            "guest@example.com",
		PasswordVerifier: mustHashPassword(t, current),
		Name:             "Guest",
		Role:             enums.UserRoleUser,
		IsActive:         true,
	}}
	svc, _ := buildTestService(t, repo)
	ctx := context.Background()

	cases := []struct {
		name string
		req  ChangePasswordRequest
	}{
		{"mismatched confirmation", ChangePasswordRequest{CurrentPassword: current, NewPassword: "new-password", ConfirmPassword: "other"}},
		{"too short", ChangePasswordRequest{CurrentPassword: current, NewPassword: "short", ConfirmPassword: "short"}},
		{"wrong current", ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "new-password", ConfirmPassword: "new-password"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.ChangePassword(ctx, repo.user.ID, tc.req)
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != pkgerrors.CodePasswordPolicy {
				t.Fatalf("expected password policy error, got %v", err)
			}
		})
	}

	if err := svc.ChangePassword(ctx, repo.user.ID, ChangePasswordRequest{
		CurrentPassword: current,
		NewPassword:     "brand-new-password",
		ConfirmPassword: "brand-new-password",
	}); err != nil {
		t.Fatalf("change password: %v", err)
	}
	ok, err := security.VerifyPassword("brand-new-password", repo.lastVerifier)
	if err != nil || !ok {
		t.Fatalf("new verifier should match new password (ok=%v err=%v)", ok, err)
	}
}

func TestChangePasswordAcceptsLegacyCurrent(t *testing.T) {
	repo := &stubUserRepo{user: &models.User{
		ID:               uuid.New(),
		Email:            "legacy@example.com",
		PasswordVerifier: "still-plaintext",
		Name:             "Legacy",
		Role:             enums.UserRoleUser,
		IsActive:         true,
	}}
	svc, _ := buildTestService(t, repo)

	if err := svc.ChangePassword(context.Background(), repo.user.ID, ChangePasswordRequest{
		CurrentPassword: "still-plaintext",
		NewPassword:     "brand-new-password",
		ConfirmPassword: "brand-new-password",
	}); err != nil {
		t.Fatalf("change password with legacy current: %v", err)
	}
	ok, err := security.VerifyPassword("brand-new-password", repo.lastVerifier)
	if err != nil || !ok {
		t.Fatalf("new verifier should be hashed (ok=%v err=%v)", ok, err)
	}
}

type stubUserRepo struct {
	user            *models.User
	verifierErr     error
	verifierUpdates int
	lastVerifier    string
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.user == nil || s.user.Email != email {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

func (s *stubUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if s.user == nil || s.user.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

func (s *stubUserRepo) UpdatePasswordVerifier(ctx context.Context, id uuid.UUID, verifier string) error {
	if s.verifierErr != nil {
		return s.verifierErr
	}
	s.verifierUpdates++
	s.lastVerifier = verifier
	if s.user != nil && s.user.ID == id {
		s.user.PasswordVerifier = verifier
	}
	return nil
}

func (s *stubUserRepo) UpdateProfile(ctx context.Context, id uuid.UUID, dto UpdateProfileDTO) error {
	if s.user != nil && s.user.ID == id {
		if dto.Name != nil {
			s.user.Name = *dto.Name
		}
		if dto.Phone != nil {
			s.user.Phone = dto.Phone
		}
	}
	return nil
}

func (s *stubUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	if s.user != nil && s.user.ID == id {
		s.user.LastLoginAt = &at
	}
	return nil
}

type stubSessionWriter struct {
	clientKey string
	sess      session.Session
}

func (s *stubSessionWriter) Put(ctx context.Context, clientKey string, sess session.Session) error {
	s.clientKey = clientKey
	s.sess = sess
	return nil
}
