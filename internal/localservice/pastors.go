package localservice

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/voiceofchrist/churchsite/internal/app/models"
	"github.com/voiceofchrist/churchsite/internal/app/services"
	"github.com/voiceofchrist/churchsite/internal/localstore"
	"github.com/voiceofchrist/churchsite/internal/pkg/apperrors"
)

// PastorService implements services.PastorService over the local store
type PastorService struct {
	base
}

var _ services.PastorService = (*PastorService)(nil)

// NewPastorService creates a local PastorService
func NewPastorService(store *localstore.Store, logger zerolog.Logger, opts Options) *PastorService {
	return &PastorService{base: newBase(store, opts, logger)}
}

func (s *PastorService) joined(keep func(*models.Pastor) bool) ([]*models.Pastor, error) {
	pastors, err := s.store.GetPastors()
	if err != nil {
		return nil, err
	}
	branches, err := s.branchIndex()
	if err != nil {
		return nil, err
	}
	out := make([]*models.Pastor, 0, len(pastors))
	for _, p := range pastors {
		if keep != nil && !keep(p) {
			continue
		}
		p.Branch = branches[p.BranchID]
		out = append(out, p)
	}
	return out, nil
}

// GetPastors returns every pastor with its branch attached
func (s *PastorService) GetPastors(ctx context.Context) ([]*models.Pastor, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return s.joined(nil)
}

// GetPastor returns one pastor with its branch
func (s *PastorService) GetPastor(ctx context.Context, id int64) (*models.Pastor, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return s.getJoined(id)
}

func (s *PastorService) getJoined(id int64) (*models.Pastor, error) {
	p, err := s.store.GetPastor(id)
	if err != nil {
		return nil, err
	}
	if b, err := s.store.GetBranch(p.BranchID); err == nil {
		p.Branch = b
	}
	return p, nil
}

// GetPastorsByBranch returns the pastors of one branch
func (s *PastorService) GetPastorsByBranch(ctx context.Context, branchID int64) ([]*models.Pastor, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return s.joined(func(p *models.Pastor) bool { return p.BranchID == branchID })
}

func (s *PastorService) requireBranch(branchID int64) error {
	if _, err := s.store.GetBranch(branchID); err != nil {
		if apperrors.Is(err, apperrors.ErrResourceNotFound) {
			return apperrors.ErrBranchInactiveOrMissing
		}
		return err
	}
	return nil
}

// CreatePastor stores a new pastor under an existing branch
func (s *PastorService) CreatePastor(ctx context.Context, p *models.Pastor) (*models.Pastor, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	if err := s.requireBranch(p.BranchID); err != nil {
		return nil, err
	}
	created, err := s.store.AddPastor(p)
	if err != nil {
		return nil, err
	}
	s.logger.Debug().Int64("pastorID", created.ID).Int64("branchID", created.BranchID).Msg("Local pastor created")
	return s.getJoined(created.ID)
}

// UpdatePastor replaces a pastor
func (s *PastorService) UpdatePastor(ctx context.Context, id int64, p *models.Pastor) (*models.Pastor, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	if err := s.requireBranch(p.BranchID); err != nil {
		return nil, err
	}
	if _, err := s.store.UpdatePastor(id, p); err != nil {
		return nil, err
	}
	return s.getJoined(id)
}

// DeletePastor removes a pastor record
func (s *PastorService) DeletePastor(ctx context.Context, id int64) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	return s.store.DeletePastor(id)
}
