package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/voiceofchrist/churchsite/internal/app/models"
	"github.com/voiceofchrist/churchsite/internal/app/repositories"
	"github.com/voiceofchrist/churchsite/internal/pkg/apperrors"
)

// BranchService defines branch operations for the public site and the back office
type BranchService interface {
	// GetBranches lists the branches visitors see, each with its pastors attached
	GetBranches(ctx context.Context) ([]*models.Branch, error)
	// GetBranch returns a branch with its pastors and events
	GetBranch(ctx context.Context, id int64) (*models.Branch, error)
	CreateBranch(ctx context.Context, branch *models.Branch) (*models.Branch, error)
	UpdateBranch(ctx context.Context, id int64, branch *models.Branch) (*models.Branch, error)
	// DeleteBranch removes a branch from the public site
	DeleteBranch(ctx context.Context, id int64) error

	// ListBranchSummaries lists every branch with relation counts
	ListBranchSummaries(ctx context.Context) ([]*models.BranchSummary, error)
	// GetBranchDetails returns any branch with all of its pastors and events
	GetBranchDetails(ctx context.Context, id int64) (*models.Branch, error)
	// PurgeBranch deletes a branch permanently when it has no active pastors
	// and no upcoming events
	PurgeBranch(ctx context.Context, id int64) error
}

// branchServiceImpl implements BranchService over PostgreSQL
type branchServiceImpl struct {
	branchRepo *repositories.BranchRepository
	pastorRepo *repositories.PastorRepository
	eventRepo  *repositories.EventRepository
	logger     zerolog.Logger
}

// NewBranchService creates a new BranchService
func NewBranchService(
	branchRepo *repositories.BranchRepository,
	pastorRepo *repositories.PastorRepository,
	eventRepo *repositories.EventRepository,
	logger zerolog.Logger,
) BranchService {
	return &branchServiceImpl{
		branchRepo: branchRepo,
		pastorRepo: pastorRepo,
		eventRepo:  eventRepo,
		logger:     logger,
	}
}

// attachPastors groups pastors onto their branches
func attachPastors(branches []*models.Branch, pastors []*models.Pastor) {
	byBranch := make(map[int64][]*models.Pastor, len(branches))
	for _, p := range pastors {
		byBranch[p.BranchID] = append(byBranch[p.BranchID], p)
	}
	for _, b := range branches {
		b.Pastors = byBranch[b.ID]
		if b.Pastors == nil {
			b.Pastors = []*models.Pastor{}
		}
	}
}

// stripPastorBranches drops the branch join from pastors nested under a branch
func stripPastorBranches(pastors []*models.Pastor) {
	for _, p := range pastors {
		p.Branch = nil
	}
}

func stripEventBranches(events []*models.Event) {
	for _, e := range events {
		e.Branch = nil
	}
}

// GetBranches returns active branches with their active pastors
func (s *branchServiceImpl) GetBranches(ctx context.Context) ([]*models.Branch, error) {
	branches, err := s.branchRepo.GetAll(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("error getting branches: %w", err)
	}
	pastors, err := s.pastorRepo.GetAll(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("error getting pastors: %w", err)
	}
	stripPastorBranches(pastors)
	attachPastors(branches, pastors)
	return branches, nil
}

// GetBranch returns a branch with its active pastors and all of its events
func (s *branchServiceImpl) GetBranch(ctx context.Context, id int64) (*models.Branch, error) {
	return s.loadBranch(ctx, id, true)
}

// GetBranchDetails returns a branch with every pastor and event
func (s *branchServiceImpl) GetBranchDetails(ctx context.Context, id int64) (*models.Branch, error) {
	return s.loadBranch(ctx, id, false)
}

func (s *branchServiceImpl) loadBranch(ctx context.Context, id int64, activePastorsOnly bool) (*models.Branch, error) {
	branch, err := s.branchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	pastors, err := s.pastorRepo.GetByBranch(ctx, id, activePastorsOnly)
	if err != nil {
		return nil, fmt.Errorf("error getting branch pastors: %w", err)
	}
	events, err := s.eventRepo.GetByBranch(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting branch events: %w", err)
	}
	stripPastorBranches(pastors)
	stripEventBranches(events)

	branch.Pastors = pastors
	branch.Events = events
	return branch, nil
}

// CreateBranch stores a new branch
func (s *branchServiceImpl) CreateBranch(ctx context.Context, branch *models.Branch) (*models.Branch, error) {
	branch.ID = 0
	if err := s.branchRepo.Create(ctx, branch); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("branchID", branch.ID).Str("name", branch.Name).Str("city", branch.City).Msg("Branch created")
	return branch, nil
}

// UpdateBranch overwrites an existing branch
func (s *branchServiceImpl) UpdateBranch(ctx context.Context, id int64, branch *models.Branch) (*models.Branch, error) {
	branch.ID = id
	if err := s.branchRepo.Update(ctx, branch); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("branchID", id).Str("name", branch.Name).Msg("Branch updated")
	return branch, nil
}

// DeleteBranch deactivates a branch. Its rows stay for history.
func (s *branchServiceImpl) DeleteBranch(ctx context.Context, id int64) error {
	if err := s.branchRepo.SetActive(ctx, id, false); err != nil {
		return err
	}
	s.logger.Info().Int64("branchID", id).Msg("Branch deactivated")
	return nil
}

// ListBranchSummaries lists all branches with pastor and event counts
func (s *branchServiceImpl) ListBranchSummaries(ctx context.Context) ([]*models.BranchSummary, error) {
	summaries, err := s.branchRepo.ListSummaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing branches: %w", err)
	}
	return summaries, nil
}

// PurgeBranch hard-deletes a branch
func (s *branchServiceImpl) PurgeBranch(ctx context.Context, id int64) error {
	if err := s.branchRepo.Delete(ctx, id); err != nil {
		if apperrors.Is(err, apperrors.ErrBranchHasRelations, apperrors.ErrBranchHasPastorRecords) {
			s.logger.Info().Int64("branchID", id).Msg("Refused to delete branch with relations")
		}
		return err
	}
	s.logger.Info().Int64("branchID", id).Msg("Branch deleted")
	return nil
}
