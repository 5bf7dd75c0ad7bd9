package localservice

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/voiceofchrist/churchsite/internal/app/models"
	"github.com/voiceofchrist/churchsite/internal/app/services"
	"github.com/voiceofchrist/churchsite/internal/pkg/apperrors"
	"github.com/voiceofchrist/churchsite/internal/pkg/auth"
)

// StaticAdmins is an in-memory admin directory for local mode. Passwords are
// bcrypt-hashed when the directory is built and never kept in clear text.
type StaticAdmins struct {
	mu     sync.RWMutex
	admins []*models.Admin
}

var _ services.AdminRepository = (*StaticAdmins)(nil)

// AdminAccount is the configured identity of a local admin
type AdminAccount struct {
	Username string
	Password string
	Email    string
	FullName string
}

// NewStaticAdmins hashes the accounts with cost and returns the directory.
// Ids are assigned from 1 in order.
func NewStaticAdmins(cost int, now time.Time, accounts ...AdminAccount) (*StaticAdmins, error) {
	s := &StaticAdmins{}
	seen := map[string]bool{}
	for i, acc := range accounts {
		username := strings.TrimSpace(acc.Username)
		if username == "" || acc.Password == "" {
			return nil, fmt.Errorf("admin account %d: username and password are required", i+1)
		}
		if seen[username] {
			return nil, apperrors.ErrAdminAlreadyExists
		}
		seen[username] = true

		hash, err := auth.HashPasswordWithCost(acc.Password, cost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password for %s: %w", username, err)
		}
		s.admins = append(s.admins, &models.Admin{
			ID:           int64(i + 1),
			Username:     username,
			PasswordHash: hash,
			Email:        acc.Email,
			FullName:     acc.FullName,
			IsActive:     true,
			CreatedAt:    now,
		})
	}
	return s, nil
}

func (s *StaticAdmins) find(match func(*models.Admin) bool) (*models.Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.admins {
		if match(a) {
			cp := *a
			return &cp, nil
		}
	}
	return nil, apperrors.ErrAdminNotFound
}

func (s *StaticAdmins) GetByUsername(_ context.Context, username string) (*models.Admin, error) {
	return s.find(func(a *models.Admin) bool { return a.Username == username })
}

func (s *StaticAdmins) GetByID(_ context.Context, id int64) (*models.Admin, error) {
	return s.find(func(a *models.Admin) bool { return a.ID == id })
}

func (s *StaticAdmins) UpdateLastLogin(_ context.Context, id int64, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.admins {
		if a.ID == id {
			t := at
			a.LastLoginAt = &t
			return nil
		}
	}
	return apperrors.ErrAdminNotFound
}
