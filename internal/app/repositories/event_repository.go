package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/voiceofchrist/churchsite/internal/app/models"
	"github.com/voiceofchrist/churchsite/internal/pkg/apperrors"
	"github.com/voiceofchrist/churchsite/internal/pkg/dberrors"
	"github.com/voiceofchrist/churchsite/internal/pkg/helpers"
	"github.com/voiceofchrist/churchsite/internal/pkg/logger"
)

var eventColumns = []string{
	"e.id", "e.title", "e.description", "e.event_date", "e.end_date", "e.location",
	"e.image_url", "e.type", "e.status", "e.created_at", "e.updated_at", "e.branch_id",
}

// EventRepository handles event database operations
type EventRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{
		db: db,
		sb: statementBuilder(),
	}
}

func (r *EventRepository) selectWithBranch() squirrel.SelectBuilder {
	cols := append([]string{}, eventColumns...)
	cols = append(cols, branchColumns...)
	return r.sb.Select(cols...).
		From("events e").
		LeftJoin("branches b ON b.id = e.branch_id")
}

func scanEvent(row pgx.Row) (*models.Event, error) {
	e := &models.Event{}
	var jb joinedBranch
	dest := []interface{}{&e.ID, &e.Title, &e.Description, &e.EventDate, &e.EndDate, &e.Location,
		&e.ImageURL, &e.Type, &e.Status, &e.CreatedAt, &e.UpdatedAt, &e.BranchID}
	if err := row.Scan(append(dest, jb.dest()...)...); err != nil {
		return nil, err
	}
	e.Branch = jb.model()
	return e, nil
}

func (r *EventRepository) query(ctx context.Context, q squirrel.SelectBuilder) ([]*models.Event, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get events SQL")
		return nil, fmt.Errorf("failed to build get events query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get events query")
		return nil, fmt.Errorf("error querying events: %w", err)
	}
	defer rows.Close()

	events := []*models.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning event row")
			return nil, fmt.Errorf("error scanning event row: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating event rows")
		return nil, fmt.Errorf("error iterating event rows: %w", err)
	}
	return events, nil
}

func (r *EventRepository) allQuery() squirrel.SelectBuilder {
	return r.selectWithBranch().OrderBy("e.event_date DESC")
}

func (r *EventRepository) upcomingQuery(now time.Time) squirrel.SelectBuilder {
	return r.selectWithBranch().
		Where(squirrel.Eq{"e.status": models.EventStatusUpcoming}).
		Where(squirrel.GtOrEq{"e.event_date": now}).
		OrderBy("e.event_date ASC")
}

func (r *EventRepository) pastQuery(now time.Time) squirrel.SelectBuilder {
	return r.selectWithBranch().
		Where(squirrel.Or{
			squirrel.Eq{"e.status": models.EventStatusCompleted},
			squirrel.Lt{"e.event_date": now},
		}).
		OrderBy("e.event_date DESC")
}

func (r *EventRepository) yearQuery(year int) squirrel.SelectBuilder {
	start, end := helpers.YearBounds(year, time.UTC)
	return r.selectWithBranch().
		Where(squirrel.GtOrEq{"e.event_date": start}).
		Where(squirrel.Lt{"e.event_date": end}).
		OrderBy("e.event_date ASC")
}

func (r *EventRepository) adminQuery(branchID *int64) squirrel.SelectBuilder {
	q := r.selectWithBranch().OrderBy("e.event_date ASC")
	if branchID != nil {
		q = q.Where(squirrel.Eq{"e.branch_id": *branchID})
	}
	return q
}

// GetAll retrieves all events, newest first
func (r *EventRepository) GetAll(ctx context.Context) ([]*models.Event, error) {
	return r.query(ctx, r.allQuery())
}

// GetUpcoming retrieves events still marked Upcoming that start at or after now
func (r *EventRepository) GetUpcoming(ctx context.Context, now time.Time) ([]*models.Event, error) {
	return r.query(ctx, r.upcomingQuery(now))
}

// GetPast retrieves completed events and events dated before now
func (r *EventRepository) GetPast(ctx context.Context, now time.Time) ([]*models.Event, error) {
	return r.query(ctx, r.pastQuery(now))
}

// GetByYear retrieves the events of a calendar year in date order
func (r *EventRepository) GetByYear(ctx context.Context, year int) ([]*models.Event, error) {
	return r.query(ctx, r.yearQuery(year))
}

// GetByBranch retrieves the events of one branch in date order
func (r *EventRepository) GetByBranch(ctx context.Context, branchID int64) ([]*models.Event, error) {
	return r.query(ctx, r.adminQuery(&branchID))
}

// ListForAdmin retrieves events in date order with their branch name filled in
func (r *EventRepository) ListForAdmin(ctx context.Context, branchID *int64) ([]*models.Event, error) {
	events, err := r.query(ctx, r.adminQuery(branchID))
	if err != nil {
		return nil, err
	}
	for _, e := range events {
		if e.Branch != nil {
			name := e.Branch.Name
			e.BranchName = &name
		}
	}
	return events, nil
}

// GetByID retrieves an event with its branch
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	sql, args, err := r.selectWithBranch().
		Where(squirrel.Eq{"e.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get event by ID SQL")
		return nil, fmt.Errorf("failed to build get event query: %w", err)
	}

	e, err := scanEvent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		logger.Error().Err(err).Int64("eventID", id).Msg("Error scanning event row")
		return nil, fmt.Errorf("error getting event by ID: %w", err)
	}
	return e, nil
}

// Create inserts an event and sets its ID
func (r *EventRepository) Create(ctx context.Context, e *models.Event) error {
	sql, args, err := r.sb.Insert("events").
		Columns("title", "description", "event_date", "end_date", "location", "image_url",
			"type", "status", "created_at", "branch_id").
		Values(e.Title, e.Description, e.EventDate, e.EndDate, e.Location, e.ImageURL,
			e.Type, e.Status, e.CreatedAt, e.BranchID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create event SQL")
		return fmt.Errorf("failed to build create event query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&e.ID); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrBranchInactiveOrMissing
		}
		logger.Error().Err(err).Msg("Error executing create event query")
		return fmt.Errorf("error creating event: %w", err)
	}
	return nil
}

// Update overwrites every editable column of an event; created_at is kept
func (r *EventRepository) Update(ctx context.Context, e *models.Event) error {
	sql, args, err := r.sb.Update("events").
		SetMap(map[string]interface{}{
			"title":       e.Title,
			"description": e.Description,
			"event_date":  e.EventDate,
			"end_date":    e.EndDate,
			"location":    e.Location,
			"image_url":   e.ImageURL,
			"type":        e.Type,
			"status":      e.Status,
			"updated_at":  e.UpdatedAt,
			"branch_id":   e.BranchID,
		}).
		Where(squirrel.Eq{"id": e.ID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update event SQL")
		return fmt.Errorf("failed to build update event query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrBranchInactiveOrMissing
		}
		logger.Error().Err(err).Int64("eventID", e.ID).Msg("Error executing update event query")
		return fmt.Errorf("error updating event: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return resolveNoRowsAffected(ctx, r.db, r.sb, "events", e.ID, apperrors.ErrEventNotFound)
	}
	return nil
}

// UpdateStatus changes only the status and updated_at of an event
func (r *EventRepository) UpdateStatus(ctx context.Context, id int64, status models.EventStatus, at time.Time) error {
	sql, args, err := r.sb.Update("events").
		Set("status", status).
		Set("updated_at", at).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update event status SQL")
		return fmt.Errorf("failed to build update event status query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("eventID", id).Msg("Error executing update event status query")
		return fmt.Errorf("error updating event status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}

// Delete removes an event permanently
func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("events").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete event SQL")
		return fmt.Errorf("failed to build delete event query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("eventID", id).Msg("Error executing delete event query")
		return fmt.Errorf("error deleting event: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}
