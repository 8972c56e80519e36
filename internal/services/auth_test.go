package services

import (
	"errors"
	"testing"

	"github.com/iffypixy/metaorta/internal/config"
	"github.com/iffypixy/metaorta/internal/utils"
)

func init() {
	utils.SetJWTSecret("test-secret-for-auth-testing")
}

func TestRegister(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, &config.JWTConfig{Secret: "s", ExpireHour: 24})

	user, err := svc.Register(&RegisterRequest{
		Username: "aibek",
		Email:    "aibek@example.com",
		Password: "long-enough-password",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.ID == 0 {
		t.Error("expected a persisted user id")
	}
	if user.Password == "long-enough-password" {
		t.Error("password must be stored hashed")
	}
	if !user.IsActive {
		t.Error("new accounts start active")
	}
}

func TestRegister_DuplicateUsernameOrEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, &config.JWTConfig{Secret: "s", ExpireHour: 24})

	seed := &RegisterRequest{Username: "aibek", Email: "aibek@example.com", Password: "long-enough-password"}
	if _, err := svc.Register(seed); err != nil {
		t.Fatalf("seed Register failed: %v", err)
	}

	tests := []struct {
		name string
		req  RegisterRequest
	}{
		{"same username", RegisterRequest{Username: "aibek", Email: "other@example.com", Password: "long-enough-password"}},
		{"same email", RegisterRequest{Username: "other", Email: "aibek@example.com", Password: "long-enough-password"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(&tt.req)
			if !errors.Is(err, ErrDuplicateRequest) {
				t.Errorf("expected ErrDuplicateRequest, got %v", err)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, &config.JWTConfig{Secret: "s", ExpireHour: 24})

	if _, err := svc.Register(&RegisterRequest{
		Username: "aibek",
		Email:    "aibek@example.com",
		Password: "long-enough-password",
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	resp, err := svc.Login(&LoginRequest{Username: "aibek", Password: "long-enough-password"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a session token")
	}

	claims, err := utils.ParseToken(resp.Token)
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if claims.UserID != resp.User.ID {
		t.Errorf("token user id = %d, expected %d", claims.UserID, resp.User.ID)
	}

	// Login stamps LastLogin
	user, err := svc.GetUser(resp.User.ID)
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if user.LastLogin == nil {
		t.Error("LastLogin should be set after login")
	}
}

func TestLogin_Rejections(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, &config.JWTConfig{Secret: "s", ExpireHour: 24})

	user, err := svc.Register(&RegisterRequest{
		Username: "aibek",
		Email:    "aibek@example.com",
		Password: "long-enough-password",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if _, err := svc.Login(&LoginRequest{Username: "nobody", Password: "whatever"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown user: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(&LoginRequest{Username: "aibek", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}

	// Deactivated accounts cannot log in
	if err := db.Model(user).Update("is_active", false).Error; err != nil {
		t.Fatalf("failed to deactivate: %v", err)
	}
	if _, err := svc.Login(&LoginRequest{Username: "aibek", Password: "long-enough-password"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("inactive user: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestGetUser_Missing(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, &config.JWTConfig{Secret: "s", ExpireHour: 24})

	if _, err := svc.GetUser(9999); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
