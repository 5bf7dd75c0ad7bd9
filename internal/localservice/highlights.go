package localservice

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	"github.com/voiceofchrist/churchsite/internal/app/models"
	"github.com/voiceofchrist/churchsite/internal/app/services"
	"github.com/voiceofchrist/churchsite/internal/localstore"
	"github.com/voiceofchrist/churchsite/internal/pkg/apperrors"
)

// HighlightService implements services.HighlightService over the local store
type HighlightService struct {
	base
}

var _ services.HighlightService = (*HighlightService)(nil)

// NewHighlightService creates a local HighlightService
func NewHighlightService(store *localstore.Store, logger zerolog.Logger, opts Options) *HighlightService {
	return &HighlightService{base: newBase(store, opts, logger)}
}

// GetHighlights returns every highlight in stored order
func (s *HighlightService) GetHighlights(ctx context.Context) ([]*models.Highlight, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return s.store.GetHighlights()
}

// GetActiveHighlights returns active highlights by ascending orderIndex
func (s *HighlightService) GetActiveHighlights(ctx context.Context) ([]*models.Highlight, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	all, err := s.store.GetHighlights()
	if err != nil {
		return nil, err
	}
	active := make([]*models.Highlight, 0, len(all))
	for _, h := range all {
		if h.IsActive {
			active = append(active, h)
		}
	}
	sort.SliceStable(active, func(i, j int) bool { return active[i].OrderIndex < active[j].OrderIndex })
	return active, nil
}

func (s *HighlightService) GetHighlight(ctx context.Context, id int64) (*models.Highlight, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return s.store.GetHighlight(id)
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

func (s *HighlightService) CreateHighlight(ctx context.Context, h *models.Highlight) (*models.Highlight, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	if err := validateHighlight(h); err != nil {
		return nil, err
	}
	return s.store.AddHighlight(h)
}

func (s *HighlightService) UpdateHighlight(ctx context.Context, id int64, h *models.Highlight) (*models.Highlight, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	if err := validateHighlight(h); err != nil {
		return nil, err
	}
	return s.store.UpdateHighlight(id, h)
}

func (s *HighlightService) DeleteHighlight(ctx context.Context, id int64) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	return s.store.DeleteHighlight(id)
}
