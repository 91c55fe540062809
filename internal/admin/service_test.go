package admin

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bookeasy/bookeasy-backend/pkg/config"
	"github.com/bookeasy/bookeasy-backend/pkg/db/models"
	pkgerrors "github.com/bookeasy/bookeasy-backend/pkg/errors"
	"github.com/bookeasy/bookeasy-backend/pkg/security"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return hash
}

func buildService(t *testing.T, repo *stubAdminRepo) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{AdminRepo: repo})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

func TestAdminLoginWithHashedVerifier(t *testing.T) {
	password := "console-secret"
	repo := &stubAdminRepo{admin: &models.Admin{
		ID:               uuid.New(),
		Email:            "ops@example.com",
		PasswordVerifier: mustHash(t, password),
		Name:             "Ops",
		Active:           true,
	}}
	svc := buildService(t, repo)

	dto, err := svc.Login(context.Background(), LoginRequest{Email: "ops@example.com", Password: password})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if dto.ID != repo.admin.ID || dto.Name != "Ops" {
		t.Fatalf("unexpected dto %+v", dto)
	}
	if repo.admin.LastLogin == nil {
		t.Fatal("expected last login recorded")
	}
}

func TestAdminLoginWithSeededPlaintextVerifier(t *testing.T) {
	repo := &stubAdminRepo{admin: &models.Admin{
		ID:               uuid.New(),
		Email:            "seed@example.com",
		PasswordVerifier: "seeded-password",
		Name:             "Seed",
		Active:           true,
	}}
	svc := buildService(t, repo)

	if _, err := svc.Login(context.Background(), LoginRequest{
		Email:    "seed@example.com",
		Password: "seeded-password",
	}); err != nil {
		t.Fatalf("login: %v", err)
	}
	// Seeded rows are not rewritten on login.
	if repo.admin.PasswordVerifier != "seeded-password" {
		t.Fatalf("verifier should stay untouched, got %q", repo.admin.PasswordVerifier)
	}
}

func TestAdminLoginFailures(t *testing.T) {
	password := "console-secret"
	repo := &stubAdminRepo{admin: &models.Admin{
		ID:               uuid.New(),
		Email:            "ops@example.com",
		PasswordVerifier: mustHash(t, password),
		Name:             "Ops",
		Active:           true,
	}}
	svc := buildService(t, repo)

	cases := []struct {
		name string
		req  LoginRequest
	}{
		{"wrong password", LoginRequest{Email: "ops@example.com", Password: "nope"}},
		{"unknown email", LoginRequest{Email: "ghost@example.com", Password: password}},
		{"empty password", LoginRequest{Email: "ops@example.com"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tc.req)
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
				t.Fatalf("expected unauthorized, got %v", err)
			}
		})
	}
}

func TestAdminLoginInactive(t *testing.T) {
	password := "console-secret"
	repo := &stubAdminRepo{admin: &models.Admin{
		ID:               uuid.New(),
		Email:            "old@example.com",
		PasswordVerifier: mustHash(t, password),
		Name:             "Former",
		Active:           false,
	}}
	svc := buildService(t, repo)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "old@example.com", Password: password})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestAdminCreateHashesVerifier(t *testing.T) {
	repo := &stubAdminRepo{}
	svc := buildService(t, repo)

	dto, err := svc.Create(context.Background(), "New@Example.com", "fresh-password", "New Admin")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.Email != "new@example.com" {
		t.Fatalf("expected normalized email, got %q", dto.Email)
	}
	ok, err := security.VerifyPassword("fresh-password", repo.created.PasswordVerifier)
	if err != nil || !ok {
		t.Fatalf("stored verifier should be a hash of the password (ok=%v err=%v)", ok, err)
	}
}

func TestAdminCreateDuplicateEmail(t *testing.T) {
	repo := &stubAdminRepo{
		createErr: errors.New(`duplicate key value violates unique constraint "idx_admins_email"`),
	}
	svc := buildService(t, repo)

	_, err := svc.Create(context.Background(), "ops@example.com", "fresh-password", "Ops")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDuplicateEmail {
		t.Fatalf("expected duplicate email, got %v", err)
	}
}

type stubAdminRepo struct {
	admin     *models.Admin
	created   *models.Admin
	createErr error
}

func (s *stubAdminRepo) Create(ctx context.Context, dto CreateAdminDTO) (*models.Admin, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.created = dto.ToModel()
	return s.created, nil
}

func (s *stubAdminRepo) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	if s.admin == nil || s.admin.Email != email {
		return nil, gorm.ErrRecordNotFound
	}
	return s.admin, nil
}

func (s *stubAdminRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	if s.admin != nil && s.admin.ID == id {
		s.admin.LastLogin = &at
	}
	return nil
}
