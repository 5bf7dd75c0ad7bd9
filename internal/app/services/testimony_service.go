package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/voiceofchrist/churchsite/internal/app/models"
	"github.com/voiceofchrist/churchsite/internal/app/repositories"
	"github.com/voiceofchrist/churchsite/internal/pkg/apperrors"
	"github.com/voiceofchrist/churchsite/internal/pkg/helpers"
)

// TestimonyService defines operations on visitor testimonies
type TestimonyService interface {
	// GetApprovedTestimonies returns approved testimonies, newest first
	GetApprovedTestimonies(ctx context.Context) ([]*models.Testimony, error)
	// ListTestimonies returns one page of all testimonies, newest first, and the total
	ListTestimonies(ctx context.Context, page, pageSize int) ([]*models.Testimony, int64, error)
	GetTestimony(ctx context.Context, id int64) (*models.Testimony, error)
	// SubmitTestimony stores a visitor testimony; it always starts unapproved
	SubmitTestimony(ctx context.Context, testimony *models.Testimony) (*models.Testimony, error)
	UpdateTestimony(ctx context.Context, id int64, patch models.TestimonyPatch) (*models.Testimony, error)
	ApproveTestimony(ctx context.Context, id int64) (*models.Testimony, error)
	DeleteTestimony(ctx context.Context, id int64) error
}

type testimonyServiceImpl struct {
	repo   *repositories.TestimonyRepository
	logger zerolog.Logger
	now    func() time.Time
}

// NewTestimonyService creates a new TestimonyService
func NewTestimonyService(repo *repositories.TestimonyRepository, logger zerolog.Logger) TestimonyService {
	return &testimonyServiceImpl{repo: repo, logger: logger, now: time.Now}
}

// normalizeTestimony trims text fields; an empty name means anonymous
func normalizeTestimony(t *models.Testimony) error {
	t.Testimony = strings.TrimSpace(t.Testimony)
	if t.Testimony == "" {
		return fmt.Errorf("%w: testimony text is required", apperrors.ErrValidationFailed)
	}
	if t.Name != nil {
		name := strings.TrimSpace(*t.Name)
		if name == "" {
			t.Name = nil
		} else {
			t.Name = &name
		}
	}
	return nil
}

func (s *testimonyServiceImpl) GetApprovedTestimonies(ctx context.Context) ([]*models.Testimony, error) {
	return s.repo.GetApproved(ctx)
}

func (s *testimonyServiceImpl) ListTestimonies(ctx context.Context, page, pageSize int) ([]*models.Testimony, int64, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)
	return s.repo.List(ctx, offset, limit)
}

func (s *testimonyServiceImpl) GetTestimony(ctx context.Context, id int64) (*models.Testimony, error) {
	return s.repo.GetByID(ctx, id)
}

// SubmitTestimony stores a new, unapproved testimony
func (s *testimonyServiceImpl) SubmitTestimony(ctx context.Context, t *models.Testimony) (*models.Testimony, error) {
	if err := normalizeTestimony(t); err != nil {
		return nil, err
	}
	t.ID = 0
	t.IsApproved = false
	t.CreatedAt = s.now().UTC()
	t.UpdatedAt = nil
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("testimonyID", t.ID).Msg("Testimony submitted for review")
	return t, nil
}

// UpdateTestimony merges patch into the stored testimony
func (s *testimonyServiceImpl) UpdateTestimony(ctx context.Context, id int64, patch models.TestimonyPatch) (*models.Testimony, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(t)
	if err := normalizeTestimony(t); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	t.UpdatedAt = &now
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("testimonyID", id).Bool("approved", t.IsApproved).Msg("Testimony updated")
	return t, nil
}

// ApproveTestimony publishes a testimony
func (s *testimonyServiceImpl) ApproveTestimony(ctx context.Context, id int64) (*models.Testimony, error) {
	return s.UpdateTestimony(ctx, id, models.TestimonyPatch{Approve: true})
}

func (s *testimonyServiceImpl) DeleteTestimony(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("testimonyID", id).Msg("Testimony deleted")
	return nil
}
