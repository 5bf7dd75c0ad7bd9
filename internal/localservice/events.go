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

// EventService implements services.EventService over the local store
type EventService struct {
	base
}

var _ services.EventService = (*EventService)(nil)

// NewEventService creates a local EventService
func NewEventService(store *localstore.Store, logger zerolog.Logger, opts Options) *EventService {
	return &EventService{base: newBase(store, opts, logger)}
}

// joined loads every event and attaches its branch. Church-wide events and
// events pointing at a missing branch get a nil branch.
func (s *EventService) joined() ([]*models.Event, error) {
	events, err := s.store.GetEvents()
	if err != nil {
		return nil, err
	}
	branches, err := s.branchIndex()
	if err != nil {
		return nil, err
	}
	for _, e := range events {
		joinEventBranch(e, branches)
	}
	return events, nil
}

func joinEventBranch(e *models.Event, branches map[int64]*models.Branch) {
	e.Branch = nil
	if e.BranchID != nil {
		e.Branch = branches[*e.BranchID]
	}
}

func filterEvents(events []*models.Event, keep func(*models.Event) bool) []*models.Event {
	out := make([]*models.Event, 0, len(events))
	for _, e := range events {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

func sortByDate(events []*models.Event, ascending bool) {
	sort.SliceStable(events, func(i, j int) bool {
		if ascending {
			return events[i].EventDate.Before(events[j].EventDate)
		}
		return events[i].EventDate.After(events[j].EventDate)
	})
}

// GetEvents returns every event in stored order
func (s *EventService) GetEvents(ctx context.Context) ([]*models.Event, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return s.joined()
}

// GetUpcomingEvents returns Upcoming events dated now or later, soonest first
func (s *EventService) GetUpcomingEvents(ctx context.Context) ([]*models.Event, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	events, err := s.joined()
	if err != nil {
		return nil, err
	}
	now := s.now()
	upcoming := filterEvents(events, func(e *models.Event) bool { return e.IsUpcomingAt(now) })
	sortByDate(upcoming, true)
	return upcoming, nil
}

// GetPastEvents returns completed or already dated events, latest first
func (s *EventService) GetPastEvents(ctx context.Context) ([]*models.Event, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	events, err := s.joined()
	if err != nil {
		return nil, err
	}
	now := s.now()
	past := filterEvents(events, func(e *models.Event) bool { return e.IsPastAt(now) })
	sortByDate(past, false)
	return past, nil
}

// GetEventsByYear returns the events of a calendar year, latest first
func (s *EventService) GetEventsByYear(ctx context.Context, year int) ([]*models.Event, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	events, err := s.joined()
	if err != nil {
		return nil, err
	}
	inYear := filterEvents(events, func(e *models.Event) bool { return e.EventDate.UTC().Year() == year })
	sortByDate(inYear, false)
	return inYear, nil
}

// GetEvent returns one event with its branch
func (s *EventService) GetEvent(ctx context.Context, id int64) (*models.Event, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return s.getJoined(id)
}

func (s *EventService) getJoined(id int64) (*models.Event, error) {
	e, err := s.store.GetEvent(id)
	if err != nil {
		return nil, err
	}
	branches, err := s.branchIndex()
	if err != nil {
		return nil, err
	}
	joinEventBranch(e, branches)
	return e, nil
}

func (s *EventService) validate(e *models.Event) error {
	if !e.Type.Valid() {
		return fmt.Errorf("%w: unknown event type %d", apperrors.ErrValidationFailed, e.Type)
	}
	if !e.Status.Valid() {
		return fmt.Errorf("%w: unknown event status %d", apperrors.ErrValidationFailed, e.Status)
	}
	if e.EndDate != nil && e.EndDate.Before(e.EventDate) {
		return fmt.Errorf("%w: end date is before the event date", apperrors.ErrValidationFailed)
	}
	if e.BranchID == nil {
		return nil
	}
	b, err := s.store.GetBranch(*e.BranchID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrResourceNotFound) {
			return apperrors.ErrBranchInactiveOrMissing
		}
		return err
	}
	if !b.IsActive {
		return apperrors.ErrBranchInactiveOrMissing
	}
	return nil
}

// CreateEvent stores a new event
func (s *EventService) CreateEvent(ctx context.Context, e *models.Event) (*models.Event, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	if err := s.validate(e); err != nil {
		return nil, err
	}
	created, err := s.store.AddEvent(e)
	if err != nil {
		return nil, err
	}
	s.logger.Debug().Int64("eventID", created.ID).Str("title", created.Title).Msg("Local event created")
	return s.getJoined(created.ID)
}

// UpdateEvent replaces an event
func (s *EventService) UpdateEvent(ctx context.Context, id int64, e *models.Event) (*models.Event, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	if err := s.validate(e); err != nil {
		return nil, err
	}
	if _, err := s.store.UpdateEvent(id, e); err != nil {
		return nil, err
	}
	s.logger.Debug().Int64("eventID", id).Msg("Local event updated")
	return s.getJoined(id)
}

// UpdateEventStatus moves an event to any status
func (s *EventService) UpdateEventStatus(ctx context.Context, id int64, status models.EventStatus) (*models.Event, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown event status %d", apperrors.ErrValidationFailed, status)
	}
	e, err := s.store.GetEvent(id)
	if err != nil {
		return nil, err
	}
	e.Status = status
	if _, err := s.store.UpdateEvent(id, e); err != nil {
		return nil, err
	}
	s.logger.Debug().Int64("eventID", id).Stringer("status", status).Msg("Local event status updated")
	return s.getJoined(id)
}

// DeleteEvent removes an event
func (s *EventService) DeleteEvent(ctx context.Context, id int64) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	return s.store.DeleteEvent(id)
}

// ListEventsForAdmin lists events soonest first with branch names
func (s *EventService) ListEventsForAdmin(ctx context.Context, branchID *int64) ([]*models.Event, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	events, err := s.joined()
	if err != nil {
		return nil, err
	}
	if branchID != nil {
		events = filterEvents(events, func(e *models.Event) bool {
			return e.BranchID != nil && *e.BranchID == *branchID
		})
	}
	sortByDate(events, true)
	for _, e := range events {
		if e.Branch != nil {
			name := e.Branch.Name
			e.BranchName = &name
		}
	}
	return events, nil
}
