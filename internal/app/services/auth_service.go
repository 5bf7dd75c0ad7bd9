package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/voiceofchrist/churchsite/internal/app/models"
	"github.com/voiceofchrist/churchsite/internal/app/models/dto"
	"github.com/voiceofchrist/churchsite/internal/pkg/apperrors"
	"github.com/voiceofchrist/churchsite/internal/pkg/auth"
)

// AdminRepository is the admin lookup the auth service needs. It is served by
// repositories.AdminRepository in production and localservice.StaticAdmins in
// local mode.
type AdminRepository interface {
	GetByUsername(ctx context.Context, username string) (*models.Admin, error)
	GetByID(ctx context.Context, id int64) (*models.Admin, error)
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
}

// AuthService handles admin authentication
type AuthService struct {
	adminRepo  AdminRepository
	jwtService *auth.JWTService
	logger     zerolog.Logger
	now        func() time.Time
}

// NewAuthService creates a new AuthService
func NewAuthService(adminRepo AdminRepository, jwtService *auth.JWTService, logger zerolog.Logger) *AuthService {
	return &AuthService{
		adminRepo:  adminRepo,
		jwtService: jwtService,
		logger:     logger,
		now:        time.Now,
	}
}

// Login verifies credentials of an active admin and issues an access token.
// Unknown usernames, inactive accounts and wrong passwords all report
// ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, apperrors.ErrInvalidCredentials
	}

	admin, err := s.adminRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			s.logger.Info().Str("username", username).Msg("Login attempt for unknown admin")
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error loading admin: %w", err)
	}

	if !admin.IsActive || !auth.CheckPassword(admin.PasswordHash, req.Password) {
		s.logger.Info().Str("username", username).Bool("active", admin.IsActive).Msg("Rejected admin login")
		return nil, apperrors.ErrInvalidCredentials
	}

	token, _, err := s.jwtService.GenerateToken(admin)
	if err != nil {
		s.logger.Error().Err(err).Int64("adminID", admin.ID).Msg("Failed to generate access token")
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	if err := s.adminRepo.UpdateLastLogin(ctx, admin.ID, s.now().UTC()); err != nil {
		// The token is already valid; a missed timestamp must not block the login.
		s.logger.Warn().Err(err).Int64("adminID", admin.ID).Msg("Failed to record last login")
	}

	s.logger.Info().Int64("adminID", admin.ID).Str("username", admin.Username).Msg("Admin logged in")

	return &dto.LoginResponse{
		Token:    token,
		Username: admin.Username,
		FullName: admin.FullName,
		Email:    admin.Email,
	}, nil
}

// CurrentAdmin resolves the admin behind validated token claims
func (s *AuthService) CurrentAdmin(ctx context.Context, claims *auth.Claims) (*dto.CurrentAdminResponse, error) {
	admin, err := s.adminRepo.GetByID(ctx, claims.AdminID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.ErrTokenInvalid
		}
		return nil, fmt.Errorf("error loading admin: %w", err)
	}
	if !admin.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	resp := &dto.CurrentAdminResponse{
		ID:       admin.ID,
		Username: admin.Username,
		FullName: admin.FullName,
		Email:    admin.Email,
	}
	if claims.ExpiresAt != nil {
		resp.ExpiresAt = claims.ExpiresAt.Time
	}
	return resp, nil
}
