package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/voiceofchrist/churchsite/internal/app/models"
	"github.com/voiceofchrist/churchsite/internal/app/repositories"
	"github.com/voiceofchrist/churchsite/internal/pkg/apperrors"
)

// PastorService defines pastor operations
type PastorService interface {
	GetPastors(ctx context.Context) ([]*models.Pastor, error)
	GetPastor(ctx context.Context, id int64) (*models.Pastor, error)
	GetPastorsByBranch(ctx context.Context, branchID int64) ([]*models.Pastor, error)
	CreatePastor(ctx context.Context, pastor *models.Pastor) (*models.Pastor, error)
	UpdatePastor(ctx context.Context, id int64, pastor *models.Pastor) (*models.Pastor, error)
	DeletePastor(ctx context.Context, id int64) error
}

// pastorServiceImpl implements PastorService over PostgreSQL
type pastorServiceImpl struct {
	pastorRepo *repositories.PastorRepository
	branchRepo *repositories.BranchRepository
	logger     zerolog.Logger
}

// NewPastorService creates a new PastorService
func NewPastorService(pastorRepo *repositories.PastorRepository, branchRepo *repositories.BranchRepository, logger zerolog.Logger) PastorService {
	return &pastorServiceImpl{
		pastorRepo: pastorRepo,
		branchRepo: branchRepo,
		logger:     logger,
	}
}

// requireActiveBranch rejects pastors pointing at a missing or inactive branch
func (s *pastorServiceImpl) requireActiveBranch(ctx context.Context, branchID int64) error {
	active, err := s.branchRepo.IsActive(ctx, branchID)
	if err != nil {
		return fmt.Errorf("error checking branch: %w", err)
	}
	if !active {
		return apperrors.ErrBranchInactiveOrMissing
	}
	return nil
}

// GetPastors returns active pastors with their branch
func (s *pastorServiceImpl) GetPastors(ctx context.Context) ([]*models.Pastor, error) {
	pastors, err := s.pastorRepo.GetAll(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("error getting pastors: %w", err)
	}
	return pastors, nil
}

// GetPastor returns a pastor with its branch
func (s *pastorServiceImpl) GetPastor(ctx context.Context, id int64) (*models.Pastor, error) {
	return s.pastorRepo.GetByID(ctx, id)
}

// GetPastorsByBranch returns the active pastors of a branch
func (s *pastorServiceImpl) GetPastorsByBranch(ctx context.Context, branchID int64) ([]*models.Pastor, error) {
	pastors, err := s.pastorRepo.GetByBranch(ctx, branchID, true)
	if err != nil {
		return nil, fmt.Errorf("error getting branch pastors: %w", err)
	}
	return pastors, nil
}

// CreatePastor stores a new pastor under an active branch
func (s *pastorServiceImpl) CreatePastor(ctx context.Context, pastor *models.Pastor) (*models.Pastor, error) {
	if err := s.requireActiveBranch(ctx, pastor.BranchID); err != nil {
		return nil, err
	}
	pastor.ID = 0
	if err := s.pastorRepo.Create(ctx, pastor); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("pastorID", pastor.ID).Int64("branchID", pastor.BranchID).Msg("Pastor created")
	return s.pastorRepo.GetByID(ctx, pastor.ID)
}

// UpdatePastor overwrites an existing pastor
func (s *pastorServiceImpl) UpdatePastor(ctx context.Context, id int64, pastor *models.Pastor) (*models.Pastor, error) {
	if err := s.requireActiveBranch(ctx, pastor.BranchID); err != nil {
		return nil, err
	}
	pastor.ID = id
	if err := s.pastorRepo.Update(ctx, pastor); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("pastorID", id).Msg("Pastor updated")
	return s.pastorRepo.GetByID(ctx, id)
}

// DeletePastor deactivates a pastor
func (s *pastorServiceImpl) DeletePastor(ctx context.Context, id int64) error {
	if err := s.pastorRepo.SetActive(ctx, id, false); err != nil {
		return err
	}
	s.logger.Info().Int64("pastorID", id).Msg("Pastor deactivated")
	return nil
}
