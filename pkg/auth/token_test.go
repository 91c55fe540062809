package auth

import (
	"testing"
	"time"

	"github.com/bookeasy/bookeasy-backend/pkg/config"
	"github.com/bookeasy/bookeasy-backend/pkg/enums"
	"github.com/google/uuid"
)

func testSessionConfig() config.SessionConfig {
	return config.SessionConfig{
		Secret:          "test-secret",
		Issuer:          "bookeasy-test",
		TokenTTLMinutes: 60,
	}
}

func TestMintAndParseSessionToken(t *testing.T) {
	cfg := testSessionConfig()
	now := time.Now()
	payload := SessionTokenPayload{
		UserID: uuid.New(),
		Name:   "Ada Lovelace",
		Email:  "ada@example.com",
		Role:   enums.UserRoleUser,
	}

	signed, err := MintSessionToken(cfg, now, payload)
	if err != nil {
		t.Fatalf("MintSessionToken: %v", err)
	}

	claims, err := ParseSessionToken(cfg, signed)
	if err != nil {
		t.Fatalf("ParseSessionToken: %v", err)
	}
	if claims.UserID != payload.UserID {
		t.Fatalf("expected user id %s, got %s", payload.UserID, claims.UserID)
	}
	if claims.Email != payload.Email {
		t.Fatalf("expected email %s, got %s", payload.Email, claims.Email)
	}
	if claims.Role != enums.UserRoleUser {
		t.Fatalf("expected role user, got %s", claims.Role)
	}
	if claims.ID == "" {
		t.Fatal("expected a generated jti")
	}
}

func TestMintSessionTokenValidation(t *testing.T) {
	now := time.Now()
	payload := SessionTokenPayload{UserID: uuid.New(), Role: enums.UserRoleUser}

	cases := []struct {
		name string
		cfg  config.SessionConfig
	}{
		{"missing secret", config.SessionConfig{Issuer: "x", TokenTTLMinutes: 5}},
		{"missing issuer", config.SessionConfig{Secret: "x", TokenTTLMinutes: 5}},
		{"zero ttl", config.SessionConfig{Secret: "x", Issuer: "x"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := MintSessionToken(tc.cfg, now, payload); err == nil {
				t.Fatal("expected error")
			}
		})
	}

	cfg := testSessionConfig()
	bad := payload
	bad.Role = enums.UserRole("superuser")
	if _, err := MintSessionToken(cfg, now, bad); err == nil {
		t.Fatal("expected invalid role error")
	}
}

func TestParseSessionTokenRejectsWrongSecret(t *testing.T) {
	cfg := testSessionConfig()
	signed, err := MintSessionToken(cfg, time.Now(), SessionTokenPayload{
		UserID: uuid.New(),
		Role:   enums.UserRoleUser,
	})
	if err != nil {
		t.Fatalf("MintSessionToken: %v", err)
	}

	other := cfg
	other.Secret = "different-secret"
	if _, err := ParseSessionToken(other, signed); err == nil {
		t.Fatal("expected signature validation failure")
	}
}

func TestParseSessionTokenRejectsExpired(t *testing.T) {
	cfg := testSessionConfig()
	signed, err := MintSessionToken(cfg, time.Now().Add(-2*time.Hour), SessionTokenPayload{
		UserID: uuid.New(),
		Role:   enums.UserRoleUser,
	})
	if err != nil {
		t.Fatalf("MintSessionToken: %v", err)
	}
	if _, err := ParseSessionToken(cfg, signed); err == nil {
		t.Fatal("expected expiry validation failure")
	}
}
