package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/voiceofchrist/churchsite/internal/app/models"
	"github.com/voiceofchrist/churchsite/internal/app/models/dto"
	"github.com/voiceofchrist/churchsite/internal/pkg/apperrors"
	"github.com/voiceofchrist/churchsite/internal/pkg/auth"
	"golang.org/x/crypto/bcrypt"
)

type fakeAdminRepo struct {
	admins    map[string]*models.Admin
	lastLogin map[int64]time.Time
	loginErr  error
}

func (f *fakeAdminRepo) GetByUsername(_ context.Context, username string) (*models.Admin, error) {
	a, ok := f.admins[username]
	if !ok {
		return nil, apperrors.ErrAdminNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAdminRepo) GetByID(_ context.Context, id int64) (*models.Admin, error) {
	for _, a := range f.admins {
		if a.ID == id {
			cp := *a
			return &cp, nil
		}
	}
	return nil, apperrors.ErrAdminNotFound
}

func (f *fakeAdminRepo) UpdateLastLogin(_ context.Context, id int64, at time.Time) error {
	if f.loginErr != nil {
		return f.loginErr
	}
	f.lastLogin[id] = at
	return nil
}

func newTestAuthService(t *testing.T) (*AuthService, *fakeAdminRepo) {
	t.Helper()
	hash, err := auth.HashPasswordWithCost("Admin@123", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	repo := &fakeAdminRepo{
		admins: map[string]*models.Admin{
			"admin":    {ID: 1, Username: "admin", PasswordHash: hash, Email: "admin@voiceofchrist.org", FullName: "System Administrator", IsActive: true},
			"disabled": {ID: 2, Username: "disabled", PasswordHash: hash, Email: "old@voiceofchrist.org", FullName: "Former Admin", IsActive: false},
		},
		lastLogin: map[int64]time.Time{},
	}
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret-key-with-enough-length",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "VoiceOfChrist.API",
		TokenAudience:  "VoiceOfChrist.Client",
	})
	svc := NewAuthService(repo, jwtService, zerolog.Nop())
	svc.now = func() time.Time { return time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC) }
	return svc, repo
}

func TestLoginSuccess(t *testing.T) {
	svc, repo := newTestAuthService(t)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "admin", Password: "Admin@123"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.Token == "" || resp.Username != "admin" || resp.FullName != "System Administrator" || resp.Email != "admin@voiceofchrist.org" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if got := repo.lastLogin[1]; !got.Equal(time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)) {
		t.Fatalf("lastLoginAt = %v", got)
	}

	claims, err := svc.jwtService.ValidateAndExtractClaims(resp.Token)
	if err != nil {
		t.Fatalf("issued token does not validate: %v", err)
	}
	if claims.AdminID != 1 || claims.Username != "admin" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestLoginRejections(t *testing.T) {
	svc, repo := newTestAuthService(t)

	cases := []struct {
		name string
		req  dto.LoginRequest
	}{
		{"wrong password", dto.LoginRequest{Username: "admin", Password: "nope"}},
		{"unknown user", dto.LoginRequest{Username: "ghost", Password: "Admin@123"}},
		{"inactive admin", dto.LoginRequest{Username: "disabled", Password: "Admin@123"}},
		{"empty password", dto.LoginRequest{Username: "admin"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), &tc.req)
			if !errors.Is(err, apperrors.ErrInvalidCredentials) {
				t.Fatalf("expected invalid credentials, got %v", err)
			}
		})
	}
	if len(repo.lastLogin) != 0 {
		t.Fatalf("failed logins must not stamp lastLoginAt: %v", repo.lastLogin)
	}
}

func TestLoginSurvivesLastLoginFailure(t *testing.T) {
	svc, repo := newTestAuthService(t)
	repo.loginErr = errors.New("db down")

	if _, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "admin", Password: "Admin@123"}); err != nil {
		t.Fatalf("Login should succeed even if lastLoginAt cannot be stored: %v", err)
	}
}

func TestCurrentAdmin(t *testing.T) {
	svc, _ := newTestAuthService(t)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "admin", Password: "Admin@123"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	claims, _ := svc.jwtService.ValidateAndExtractClaims(resp.Token)

	me, err := svc.CurrentAdmin(context.Background(), claims)
	if err != nil {
		t.Fatalf("CurrentAdmin: %v", err)
	}
	if me.ID != 1 || me.Email != "admin@voiceofchrist.org" || me.ExpiresAt.IsZero() {
		t.Fatalf("unexpected current admin: %+v", me)
	}

	_, err = svc.CurrentAdmin(context.Background(), &auth.Claims{AdminID: 2, Username: "disabled"})
	if !errors.Is(err, apperrors.ErrAccountDisabled) {
		t.Fatalf("expected disabled account error, got %v", err)
	}
}
