package seed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/voiceofchrist/churchsite/internal/app/models"
	"github.com/voiceofchrist/churchsite/internal/pkg/apperrors"
	"github.com/voiceofchrist/churchsite/internal/pkg/auth"
)

type fakeAdmins struct {
	count   int64
	created []*models.Admin
}

func (f *fakeAdmins) Count(context.Context) (int64, error) { return f.count, nil }

func (f *fakeAdmins) Create(_ context.Context, a *models.Admin) error {
	a.ID = int64(len(f.created) + 1)
	f.created = append(f.created, a)
	return nil
}

func TestCreateAdminOnEmptyTable(t *testing.T) {
	repo := &fakeAdmins{}
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	admin := Admin{Username: "admin", Password: "Admin@123", Email: "admin@voiceofchrist.org", FullName: "System Administrator"}

	if err := CreateAdmin(context.Background(), repo, admin, now, zerolog.Nop()); err != nil {
		t.Fatalf("CreateAdmin: %v", err)
	}
	if len(repo.created) != 1 {
		t.Fatalf("created %d admins", len(repo.created))
	}
	a := repo.created[0]
	if !a.IsActive || a.Username != "admin" || !a.CreatedAt.Equal(now) {
		t.Fatalf("unexpected admin: %+v", a)
	}
	if !auth.CheckPassword(a.PasswordHash, "Admin@123") {
		t.Fatal("stored hash does not match the configured password")
	}
}

func TestCreateAdminSkipsWhenPresent(t *testing.T) {
	repo := &fakeAdmins{count: 1}
	if err := CreateAdmin(context.Background(), repo, Admin{Username: "admin", Password: "x"}, time.Now(), zerolog.Nop()); err != nil {
		t.Fatalf("CreateAdmin: %v", err)
	}
	if len(repo.created) != 0 {
		t.Fatal("admin created although one exists")
	}
}

func TestCreateAdminRequiresCredentials(t *testing.T) {
	err := CreateAdmin(context.Background(), &fakeAdmins{}, Admin{Username: "admin"}, time.Now(), zerolog.Nop())
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("expected validation failure, got %v", err)
	}
}

func TestDefaultDatasetIsFresh(t *testing.T) {
	now := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	a, b := Default(now), Default(now)

	a.Branches[0].Name = "changed"
	if b.Branches[0].Name == "changed" {
		t.Fatal("Default shares values between calls")
	}
	if len(b.Branches) != 3 || len(b.Pastors) != 4 || len(b.Events) != 6 {
		t.Fatalf("unexpected dataset sizes: %d branches, %d pastors, %d events", len(b.Branches), len(b.Pastors), len(b.Events))
	}
	for _, p := range b.Pastors {
		found := false
		for _, br := range b.Branches {
			if br.ID == p.BranchID {
				found = true
			}
		}
		if !found {
			t.Fatalf("pastor %d references unknown branch %d", p.ID, p.BranchID)
		}
	}
	if !b.Events[0].CreatedAt.Equal(now) {
		t.Fatalf("event 1 createdAt = %v, want %v", b.Events[0].CreatedAt, now)
	}
}
