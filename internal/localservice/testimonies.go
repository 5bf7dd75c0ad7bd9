package localservice

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/voiceofchrist/churchsite/internal/app/models"
	"github.com/voiceofchrist/churchsite/internal/app/services"
	"github.com/voiceofchrist/churchsite/internal/localstore"
	"github.com/voiceofchrist/churchsite/internal/pkg/apperrors"
	"github.com/voiceofchrist/churchsite/internal/pkg/helpers"
)

// TestimonyService implements services.TestimonyService over the local store
type TestimonyService struct {
	base
}

var _ services.TestimonyService = (*TestimonyService)(nil)

// NewTestimonyService creates a local TestimonyService
func NewTestimonyService(store *localstore.Store, logger zerolog.Logger, opts Options) *TestimonyService {
	return &TestimonyService{base: newBase(store, opts, logger)}
}

func newestFirst(items []*models.Testimony) {
	sort.SliceStable(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
}

// GetApprovedTestimonies returns approved testimonies, newest first
func (s *TestimonyService) GetApprovedTestimonies(ctx context.Context) ([]*models.Testimony, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	all, err := s.store.GetTestimonies()
	if err != nil {
		return nil, err
	}
	approved := make([]*models.Testimony, 0, len(all))
	for _, t := range all {
		if t.IsApproved {
			approved = append(approved, t)
		}
	}
	newestFirst(approved)
	return approved, nil
}

// ListTestimonies returns one page of all testimonies, newest first
func (s *TestimonyService) ListTestimonies(ctx context.Context, page, pageSize int) ([]*models.Testimony, int64, error) {
	if err := s.wait(ctx); err != nil {
		return nil, 0, err
	}
	all, err := s.store.GetTestimonies()
	if err != nil {
		return nil, 0, err
	}
	newestFirst(all)
	return helpers.Paginate(all, page, pageSize), int64(len(all)), nil
}

func (s *TestimonyService) GetTestimony(ctx context.Context, id int64) (*models.Testimony, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return s.store.GetTestimony(id)
}

// SubmitTestimony stores a visitor testimony as unapproved
func (s *TestimonyService) SubmitTestimony(ctx context.Context, t *models.Testimony) (*models.Testimony, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	text := strings.TrimSpace(t.Testimony)
	if text == "" {
		return nil, fmt.Errorf("%w: testimony text is required", apperrors.ErrValidationFailed)
	}
	submitted := &models.Testimony{Testimony: text}
	if t.Name != nil {
		if name := strings.TrimSpace(*t.Name); name != "" {
			submitted.Name = &name
		}
	}
	created, err := s.store.AddTestimony(submitted)
	if err != nil {
		return nil, err
	}
	s.logger.Debug().Int64("testimonyID", created.ID).Msg("Local testimony submitted")
	return created, nil
}

// UpdateTestimony merges patch into the stored testimony
func (s *TestimonyService) UpdateTestimony(ctx context.Context, id int64, patch models.TestimonyPatch) (*models.Testimony, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	if patch.Testimony != nil && strings.TrimSpace(*patch.Testimony) == "" {
		return nil, fmt.Errorf("%w: testimony text is required", apperrors.ErrValidationFailed)
	}
	return s.store.UpdateTestimony(id, patch)
}

// ApproveTestimony publishes a testimony
func (s *TestimonyService) ApproveTestimony(ctx context.Context, id int64) (*models.Testimony, error) {
	return s.UpdateTestimony(ctx, id, models.TestimonyPatch{Approve: true})
}

func (s *TestimonyService) DeleteTestimony(ctx context.Context, id int64) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	return s.store.DeleteTestimony(id)
}
