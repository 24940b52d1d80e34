package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgauth "github.com/lucasmedina/adbridge-backend/pkg/auth"
	"github.com/lucasmedina/adbridge-backend/pkg/config"
	"github.com/lucasmedina/adbridge-backend/pkg/db/models"
	"github.com/lucasmedina/adbridge-backend/pkg/enums"
	pkgerrors "github.com/lucasmedina/adbridge-backend/pkg/errors"
	"github.com/lucasmedina/adbridge-backend/pkg/security"
)

type stubAccountFinder struct {
	data map[string]*models.User
}

func (s *stubAccountFinder) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if user, ok := s.data[email]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "secret",
		Issuer:            "adbridge",
		ExpirationMinutes: 30,
	}
}

func mustHashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{
		ArgonMemoryKB:    32768,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return hash
}

func buildLoginService(t *testing.T, users ...*models.User) Service {
	t.Helper()
	finder := &stubAccountFinder{data: map[string]*models.User{}}
	for _, u := range users {
		finder.data[u.Email] = u
	}
	svc, err := NewService(ServiceParams{
		Accounts:  finder,
		JWTConfig: testJWTConfig(),
		Now:       func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

func TestServiceLoginMintsRoleClaim(t *testing.T) {
	password := "influencer-secret"
	user := &models.User{
		ID:           uuid.New(),
		Username:     "jess",
		Email:        "jess@example.com",
		PasswordHash: mustHashPassword(t, password),
		Role:         enums.AccountRoleInfluencer,
		Approved:     true,
	}
	svc := buildLoginService(t, user)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "Jess@Example.com",
		Password: password,
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("expected user id %s, got %s", user.ID, claims.UserID)
	}
	if claims.Role != enums.AccountRoleInfluencer {
		t.Fatalf("expected influencer role claim, got %s", claims.Role)
	}
	if resp.User == nil || resp.User.Email != "jess@example.com" {
		t.Fatalf("expected user dto in response")
	}
}

func TestServiceLoginRejectsBadCredentials(t *testing.T) {
	password := "sponsor-secret"
	user := &models.User{
		ID:           uuid.New(),
		Username:     "acme",
		Email:        "acme@example.com",
		PasswordHash: mustHashPassword(t, password),
		Role:         enums.AccountRoleSponsor,
		Approved:     true,
	}
	svc := buildLoginService(t, user)

	cases := []struct {
		name string
		req  LoginRequest
	}{
		{"unknown email", LoginRequest{Email: "ghost@example.com", Password: password}},
		{"wrong password", LoginRequest{Email: user.Email, Password: "nope"}},
		{"blank email", LoginRequest{Email: "  ", Password: password}},
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

func TestServiceLoginRejectsUnapprovedAccount(t *testing.T) {
	password := "pending-secret"
	user := &models.User{
		ID:           uuid.New(),
		Username:     "pending",
		Email:        "pending@example.com",
		PasswordHash: mustHashPassword(t, password),
		Role:         enums.AccountRoleSponsor,
		Approved:     false,
	}
	svc := buildLoginService(t, user)

	_, err := svc.Login(context.Background(), LoginRequest{Email: user.Email, Password: password})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for unapproved account, got %v", err)
	}
}
