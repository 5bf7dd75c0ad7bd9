package localservice

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/voiceofchrist/churchsite/internal/app/models"
	"github.com/voiceofchrist/churchsite/internal/app/services"
	"github.com/voiceofchrist/churchsite/internal/localstore"
	"github.com/voiceofchrist/churchsite/internal/pkg/apperrors"
)

// BranchService implements services.BranchService over the local store
type BranchService struct {
	base
}

var _ services.BranchService = (*BranchService)(nil)

// NewBranchService creates a local BranchService
func NewBranchService(store *localstore.Store, logger zerolog.Logger, opts Options) *BranchService {
	return &BranchService{base: newBase(store, opts, logger)}
}

func pastorsOf(pastors []*models.Pastor, branchID int64) []*models.Pastor {
	out := []*models.Pastor{}
	for _, p := range pastors {
		if p.BranchID == branchID {
			out = append(out, p)
		}
	}
	return out
}

// GetBranches returns every branch with all pastors whose branchId matches
func (s *BranchService) GetBranches(ctx context.Context) ([]*models.Branch, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	branches, err := s.store.GetBranches()
	if err != nil {
		return nil, err
	}
	pastors, err := s.store.GetPastors()
	if err != nil {
		return nil, err
	}
	for _, b := range branches {
		b.Pastors = pastorsOf(pastors, b.ID)
	}
	return branches, nil
}

// GetBranch returns a branch with its pastors and events
func (s *BranchService) GetBranch(ctx context.Context, id int64) (*models.Branch, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return s.details(id)
}

// GetBranchDetails is GetBranch for the back office
func (s *BranchService) GetBranchDetails(ctx context.Context, id int64) (*models.Branch, error) {
	return s.GetBranch(ctx, id)
}

func (s *BranchService) details(id int64) (*models.Branch, error) {
	b, err := s.store.GetBranch(id)
	if err != nil {
		return nil, err
	}
	pastors, err := s.store.GetPastors()
	if err != nil {
		return nil, err
	}
	events, err := s.store.GetEvents()
	if err != nil {
		return nil, err
	}
	b.Pastors = pastorsOf(pastors, id)
	b.Events = filterEvents(events, func(e *models.Event) bool {
		return e.BranchID != nil && *e.BranchID == id
	})
	sortByDate(b.Events, true)
	return b, nil
}

// CreateBranch stores a new branch
func (s *BranchService) CreateBranch(ctx context.Context, b *models.Branch) (*models.Branch, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	created, err := s.store.AddBranch(b)
	if err != nil {
		return nil, err
	}
	s.logger.Debug().Int64("branchID", created.ID).Str("name", created.Name).Msg("Local branch created")
	return created, nil
}

// UpdateBranch replaces a branch
func (s *BranchService) UpdateBranch(ctx context.Context, id int64, b *models.Branch) (*models.Branch, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return s.store.UpdateBranch(id, b)
}

// DeleteBranch removes a branch record outright
func (s *BranchService) DeleteBranch(ctx context.Context, id int64) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	return s.store.DeleteBranch(id)
}

// ListBranchSummaries lists every branch with pastor and event counts
func (s *BranchService) ListBranchSummaries(ctx context.Context) ([]*models.BranchSummary, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	branches, err := s.store.GetBranches()
	if err != nil {
		return nil, err
	}
	pastors, err := s.store.GetPastors()
	if err != nil {
		return nil, err
	}
	events, err := s.store.GetEvents()
	if err != nil {
		return nil, err
	}

	pastorCounts := map[int64]int{}
	for _, p := range pastors {
		pastorCounts[p.BranchID]++
	}
	eventCounts := map[int64]int{}
	for _, e := range events {
		if e.BranchID != nil {
			eventCounts[*e.BranchID]++
		}
	}

	summaries := make([]*models.BranchSummary, 0, len(branches))
	for _, b := range branches {
		summaries = append(summaries, &models.BranchSummary{
			Branch:      *b,
			PastorCount: pastorCounts[b.ID],
			EventCount:  eventCounts[b.ID],
		})
	}
	return summaries, nil
}

// PurgeBranch deletes a branch that has no active pastors and no upcoming
// events. Its remaining events become church-wide; inactive pastors still
// referencing it block the delete.
func (s *BranchService) PurgeBranch(ctx context.Context, id int64) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	detached, err := s.store.PurgeBranch(id, func(pastors []*models.Pastor, events []*models.Event) error {
		for _, p := range pastors {
			if p.IsActive {
				return apperrors.ErrBranchHasRelations
			}
		}
		for _, e := range events {
			if e.Status == models.EventStatusUpcoming {
				return apperrors.ErrBranchHasRelations
			}
		}
		if len(pastors) > 0 {
			return apperrors.ErrBranchHasPastorRecords
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Debug().Int64("branchID", id).Int("detachedEvents", detached).Msg("Local branch deleted")
	return nil
}
