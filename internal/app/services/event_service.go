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

// EventService defines event operations
type EventService interface {
	GetEvents(ctx context.Context) ([]*models.Event, error)
	GetUpcomingEvents(ctx context.Context) ([]*models.Event, error)
	GetPastEvents(ctx context.Context) ([]*models.Event, error)
	GetEventsByYear(ctx context.Context, year int) ([]*models.Event, error)
	GetEvent(ctx context.Context, id int64) (*models.Event, error)
	CreateEvent(ctx context.Context, event *models.Event) (*models.Event, error)
	UpdateEvent(ctx context.Context, id int64, event *models.Event) (*models.Event, error)
	UpdateEventStatus(ctx context.Context, id int64, status models.EventStatus) (*models.Event, error)
	DeleteEvent(ctx context.Context, id int64) error
	// ListEventsForAdmin lists events in date order with branch names,
	// optionally restricted to one branch
	ListEventsForAdmin(ctx context.Context, branchID *int64) ([]*models.Event, error)
}

// eventServiceImpl implements EventService over PostgreSQL
type eventServiceImpl struct {
	eventRepo  *repositories.EventRepository
	branchRepo *repositories.BranchRepository
	logger     zerolog.Logger
	now        func() time.Time
}

// NewEventService creates a new EventService
func NewEventService(eventRepo *repositories.EventRepository, branchRepo *repositories.BranchRepository, logger zerolog.Logger) EventService {
	return &eventServiceImpl{
		eventRepo:  eventRepo,
		branchRepo: branchRepo,
		logger:     logger,
		now:        time.Now,
	}
}

// validateEvent checks enum values and the optional branch reference
func (s *eventServiceImpl) validateEvent(ctx context.Context, event *models.Event) error {
	if !event.Type.Valid() {
		return fmt.Errorf("%w: unknown event type %d", apperrors.ErrValidationFailed, event.Type)
	}
	if !event.Status.Valid() {
		return fmt.Errorf("%w: unknown event status %d", apperrors.ErrValidationFailed, event.Status)
	}
	if event.EndDate != nil && event.EndDate.Before(event.EventDate) {
		return fmt.Errorf("%w: end date is before the event date", apperrors.ErrValidationFailed)
	}
	if event.BranchID == nil {
		return nil
	}
	active, err := s.branchRepo.IsActive(ctx, *event.BranchID)
	if err != nil {
		return fmt.Errorf("error checking branch: %w", err)
	}
	if !active {
		return apperrors.ErrBranchInactiveOrMissing
	}
	return nil
}

// GetEvents returns every event, newest first
func (s *eventServiceImpl) GetEvents(ctx context.Context) ([]*models.Event, error) {
	return s.eventRepo.GetAll(ctx)
}

// GetUpcomingEvents returns upcoming events in date order
func (s *eventServiceImpl) GetUpcomingEvents(ctx context.Context) ([]*models.Event, error) {
	return s.eventRepo.GetUpcoming(ctx, s.now().UTC())
}

// GetPastEvents returns past events, most recent first
func (s *eventServiceImpl) GetPastEvents(ctx context.Context) ([]*models.Event, error) {
	return s.eventRepo.GetPast(ctx, s.now().UTC())
}

// GetEventsByYear returns the events of a calendar year in date order
func (s *eventServiceImpl) GetEventsByYear(ctx context.Context, year int) ([]*models.Event, error) {
	return s.eventRepo.GetByYear(ctx, year)
}

// GetEvent returns an event with its branch
func (s *eventServiceImpl) GetEvent(ctx context.Context, id int64) (*models.Event, error) {
	return s.eventRepo.GetByID(ctx, id)
}

// CreateEvent stores a new event stamped with createdAt
func (s *eventServiceImpl) CreateEvent(ctx context.Context, event *models.Event) (*models.Event, error) {
	if err := s.validateEvent(ctx, event); err != nil {
		return nil, err
	}
	event.ID = 0
	event.CreatedAt = s.now().UTC()
	event.UpdatedAt = nil
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("eventID", event.ID).Str("title", event.Title).Time("eventDate", event.EventDate).Msg("Event created")
	return s.eventRepo.GetByID(ctx, event.ID)
}

// UpdateEvent overwrites an event and stamps updatedAt
func (s *eventServiceImpl) UpdateEvent(ctx context.Context, id int64, event *models.Event) (*models.Event, error) {
	if err := s.validateEvent(ctx, event); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	event.ID = id
	event.UpdatedAt = &now
	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("eventID", id).Str("title", event.Title).Msg("Event updated")
	return s.eventRepo.GetByID(ctx, id)
}

// UpdateEventStatus moves an event to any status
func (s *eventServiceImpl) UpdateEventStatus(ctx context.Context, id int64, status models.EventStatus) (*models.Event, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown event status %d", apperrors.ErrValidationFailed, status)
	}
	if err := s.eventRepo.UpdateStatus(ctx, id, status, s.now().UTC()); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("eventID", id).Stringer("status", status).Msg("Event status updated")
	return s.eventRepo.GetByID(ctx, id)
}

// DeleteEvent removes an event permanently
func (s *eventServiceImpl) DeleteEvent(ctx context.Context, id int64) error {
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("eventID", id).Msg("Event deleted")
	return nil
}

// ListEventsForAdmin lists events for the back office
func (s *eventServiceImpl) ListEventsForAdmin(ctx context.Context, branchID *int64) ([]*models.Event, error) {
	events, err := s.eventRepo.ListForAdmin(ctx, branchID)
	if err != nil {
		return nil, fmt.Errorf("error listing events: %w", err)
	}
	return events, nil
}
