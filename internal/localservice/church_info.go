package localservice

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/voiceofchrist/churchsite/internal/app/models"
	"github.com/voiceofchrist/churchsite/internal/app/services"
	"github.com/voiceofchrist/churchsite/internal/localstore"
	"github.com/voiceofchrist/churchsite/internal/pkg/apperrors"
)

// ChurchInfoService implements services.ChurchInfoService over the local store
type ChurchInfoService struct {
	base
}

var _ services.ChurchInfoService = (*ChurchInfoService)(nil)

// NewChurchInfoService creates a local ChurchInfoService
func NewChurchInfoService(store *localstore.Store, logger zerolog.Logger, opts Options) *ChurchInfoService {
	return &ChurchInfoService{base: newBase(store, opts, logger)}
}

func (s *ChurchInfoService) GetChurchInfo(ctx context.Context) (*models.ChurchInfo, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return s.store.GetChurchInfo()
}

// UpdateChurchInfo replaces the church info. When a record exists, id must match it.
func (s *ChurchInfoService) UpdateChurchInfo(ctx context.Context, id int64, info *models.ChurchInfo) (*models.ChurchInfo, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	current, err := s.store.GetChurchInfo()
	switch {
	case err == nil && current.ID != id:
		return nil, apperrors.ErrChurchInfoNotFound
	case err != nil && !apperrors.Is(err, apperrors.ErrResourceNotFound):
		return nil, err
	}
	cp := *info
	cp.ID = id
	return s.store.UpdateChurchInfo(&cp)
}
