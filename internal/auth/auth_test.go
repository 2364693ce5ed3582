package auth

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage/sqlstore"
)

func newTestAuthenticator(t *testing.T) *PasswordAuthenticator {
	t.Helper()
	store, err := sqlstore.NewSQLite(filepath.Join(t.TempDir(), "auth.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return NewPasswordAuthenticator(store).WithCost(bcrypt.MinCost)
}

func TestPasswordAuthenticator_RegisterAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	a := newTestAuthenticator(t)

	user, err := a.Register(ctx, "  Owner@Example.com ", "", "correct horse")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.Email != "owner@example.com" {
		t.Errorf("expected normalized email, got %q", user.Email)
	}
	if user.DisplayName != "owner@example.com" {
		t.Errorf("expected display name to default to email, got %q", user.DisplayName)
	}
	if user.PasswordHash == "correct horse" {
		t.Error("password stored in clear text")
	}

	got, err := a.Authenticate(ctx, "OWNER@example.com", "correct horse")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("expected user %s, got %s", user.ID, got.ID)
	}
}

func TestPasswordAuthenticator_Rejections(t *testing.T) {
	ctx := context.Background()
	a := newTestAuthenticator(t)

	if _, err := a.Register(ctx, "owner@example.com", "Owner", "secret123"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	tests := []struct {
		name    string
		call    func() error
		wantErr error
	}{
		{"weak password", func() error {
			_, err := a.Register(ctx, "new@example.com", "", "short")
			return err
		}, ErrWeakPassword},
		{"bad email", func() error {
			_, err := a.Register(ctx, "not-an-email", "", "secret123")
			return err
		}, ErrInvalidEmail},
		{"duplicate email", func() error {
			_, err := a.Register(ctx, "OWNER@example.com", "", "secret123")
			return err
		}, ErrEmailExists},
		{"wrong password", func() error {
			_, err := a.Authenticate(ctx, "owner@example.com", "secret124")
			return err
		}, ErrInvalidCredentials},
		{"unknown email", func() error {
			_, err := a.Authenticate(ctx, "nobody@example.com", "secret123")
			return err
		}, ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestJWTManager(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	user := &models.User{ID: "user-1", Email: "owner@example.com"}

	token, expires, err := m.Generate(user)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if time.Until(expires) <= 0 {
		t.Error("expected expiry in the future")
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.UserID() != "user-1" || claims.Email != "owner@example.com" {
		t.Errorf("unexpected claims: %+v", claims)
	}

	if _, err := m.ValidateHeader("Bearer " + token); err != nil {
		t.Errorf("ValidateHeader failed: %v", err)
	}
	if _, err := m.ValidateHeader(""); !errors.Is(err, ErrMissingToken) {
		t.Errorf("expected ErrMissingToken, got %v", err)
	}
	if _, err := m.ValidateHeader("Basic " + token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for wrong scheme, got %v", err)
	}
}

func TestJWTManager_RejectsBadTokens(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	user := &models.User{ID: "user-1", Email: "owner@example.com"}

	other := NewJWTManager("other-secret", time.Hour)
	forged, _, err := other.Generate(user)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	expired, _, err := NewJWTManager("test-secret", -time.Minute).Generate(user)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	for name, token := range map[string]string{
		"wrong secret": forged,
		"expired":      expired,
		"wrong issuer": foreign,
		"garbage":      "not.a.token",
		"no signature": strings.Split(forged, ".")[0] + "..",
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := m.Validate(token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}
