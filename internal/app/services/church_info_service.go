package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/voiceofchrist/churchsite/internal/app/models"
	"github.com/voiceofchrist/churchsite/internal/app/repositories"
)

// ChurchInfoService defines operations on the singleton church info
type ChurchInfoService interface {
	GetChurchInfo(ctx context.Context) (*models.ChurchInfo, error)
	UpdateChurchInfo(ctx context.Context, id int64, info *models.ChurchInfo) (*models.ChurchInfo, error)
}

type churchInfoServiceImpl struct {
	repo   *repositories.ChurchInfoRepository
	logger zerolog.Logger
	now    func() time.Time
}

// NewChurchInfoService creates a new ChurchInfoService
func NewChurchInfoService(repo *repositories.ChurchInfoRepository, logger zerolog.Logger) ChurchInfoService {
	return &churchInfoServiceImpl{repo: repo, logger: logger, now: time.Now}
}

func (s *churchInfoServiceImpl) GetChurchInfo(ctx context.Context) (*models.ChurchInfo, error) {
	return s.repo.Get(ctx)
}

// UpdateChurchInfo overwrites the church info and refreshes updatedAt
func (s *churchInfoServiceImpl) UpdateChurchInfo(ctx context.Context, id int64, info *models.ChurchInfo) (*models.ChurchInfo, error) {
	info.ID = id
	info.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, info); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("churchInfoID", id).Msg("Church info updated")
	return info, nil
}
