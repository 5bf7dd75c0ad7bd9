package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/voiceofchrist/churchsite/internal/app/models"
	"github.com/voiceofchrist/churchsite/internal/app/repositories"
	"github.com/voiceofchrist/churchsite/internal/pkg/apperrors"
)

// HighlightService defines operations on home page highlights
type HighlightService interface {
	// GetActiveHighlights returns active highlights by ascending orderIndex
	GetActiveHighlights(ctx context.Context) ([]*models.Highlight, error)
	GetHighlights(ctx context.Context) ([]*models.Highlight, error)
	GetHighlight(ctx context.Context, id int64) (*models.Highlight, error)
	CreateHighlight(ctx context.Context, highlight *models.Highlight) (*models.Highlight, error)
	UpdateHighlight(ctx context.Context, id int64, highlight *models.Highlight) (*models.Highlight, error)
	DeleteHighlight(ctx context.Context, id int64) error
}

type highlightServiceImpl struct {
	repo   *repositories.HighlightRepository
	logger zerolog.Logger
	now    func() time.Time
}

// NewHighlightService creates a new HighlightService
func NewHighlightService(repo *repositories.HighlightRepository, logger zerolog.Logger) HighlightService {
	return &highlightServiceImpl{repo: repo, logger: logger, now: time.Now}
}

func validateHighlight(h *models.Highlight) error {
	if !h.Type.Valid() {
		return fmt.Errorf("%w: unknown highlight type %d", apperrors.ErrValidationFailed, h.Type)
	}
	if h.OrderIndex < 0 {
		return fmt.Errorf("%w: order index must not be negative", apperrors.ErrValidationFailed)
	}
	return nil
}

func (s *highlightServiceImpl) GetActiveHighlights(ctx context.Context) ([]*models.Highlight, error) {
	return s.repo.GetAll(ctx, true)
}

func (s *highlightServiceImpl) GetHighlights(ctx context.Context) ([]*models.Highlight, error) {
	return s.repo.GetAll(ctx, false)
}

func (s *highlightServiceImpl) GetHighlight(ctx context.Context, id int64) (*models.Highlight, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateHighlight stores a new highlight stamped with createdAt
func (s *highlightServiceImpl) CreateHighlight(ctx context.Context, h *models.Highlight) (*models.Highlight, error) {
	if err := validateHighlight(h); err != nil {
		return nil, err
	}
	h.ID = 0
	h.CreatedAt = s.now().UTC()
	h.UpdatedAt = nil
	if err := s.repo.Create(ctx, h); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("highlightID", h.ID).Str("title", h.Title).Msg("Highlight created")
	return h, nil
}

// UpdateHighlight overwrites a highlight and stamps updatedAt
func (s *highlightServiceImpl) UpdateHighlight(ctx context.Context, id int64, h *models.Highlight) (*models.Highlight, error) {
	if err := validateHighlight(h); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	h.ID = id
	h.UpdatedAt = &now
	if err := s.repo.Update(ctx, h); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("highlightID", id).Msg("Highlight updated")
	return s.repo.GetByID(ctx, id)
}

func (s *highlightServiceImpl) DeleteHighlight(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("highlightID", id).Msg("Highlight deleted")
	return nil
}
