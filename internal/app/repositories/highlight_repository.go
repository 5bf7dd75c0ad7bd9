package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/voiceofchrist/churchsite/internal/app/models"
	"github.com/voiceofchrist/churchsite/internal/pkg/apperrors"
	"github.com/voiceofchrist/churchsite/internal/pkg/logger"
)

var highlightColumns = []string{
	"id", "title", "description", "type", "media_url", "thumbnail_url",
	"order_index", "is_active", "created_at", "updated_at",
}

// HighlightRepository handles highlight database operations
type HighlightRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewHighlightRepository creates a new HighlightRepository
func NewHighlightRepository(db *pgxpool.Pool) *HighlightRepository {
	return &HighlightRepository{
		db: db,
		sb: statementBuilder(),
	}
}

func scanHighlight(row pgx.Row, h *models.Highlight) error {
	return row.Scan(&h.ID, &h.Title, &h.Description, &h.Type, &h.MediaURL, &h.ThumbnailURL,
		&h.OrderIndex, &h.IsActive, &h.CreatedAt, &h.UpdatedAt)
}

func (r *HighlightRepository) listQuery(activeOnly bool) squirrel.SelectBuilder {
	q := r.sb.Select(highlightColumns...).From("highlights").OrderBy("order_index ASC", "id ASC")
	if activeOnly {
		q = q.Where(squirrel.Eq{"is_active": true})
	}
	return q
}

// GetAll retrieves highlights ordered by orderIndex, optionally only active ones
func (r *HighlightRepository) GetAll(ctx context.Context, activeOnly bool) ([]*models.Highlight, error) {
	sql, args, err := r.listQuery(activeOnly).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get highlights SQL")
		return nil, fmt.Errorf("failed to build get highlights query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get highlights query")
		return nil, fmt.Errorf("error querying highlights: %w", err)
	}
	defer rows.Close()

	highlights := []*models.Highlight{}
	for rows.Next() {
		h := &models.Highlight{}
		if err := scanHighlight(rows, h); err != nil {
			logger.Error().Err(err).Msg("Error scanning highlight row")
			return nil, fmt.Errorf("error scanning highlight row: %w", err)
		}
		highlights = append(highlights, h)
	}
	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating highlight rows")
		return nil, fmt.Errorf("error iterating highlight rows: %w", err)
	}
	return highlights, nil
}

// GetByID retrieves a highlight
func (r *HighlightRepository) GetByID(ctx context.Context, id int64) (*models.Highlight, error) {
	sql, args, err := r.sb.Select(highlightColumns...).
		From("highlights").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get highlight by ID SQL")
		return nil, fmt.Errorf("failed to build get highlight query: %w", err)
	}

	h := &models.Highlight{}
	if err := scanHighlight(r.db.QueryRow(ctx, sql, args...), h); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrHighlightNotFound
		}
		logger.Error().Err(err).Int64("highlightID", id).Msg("Error scanning highlight row")
		return nil, fmt.Errorf("error getting highlight by ID: %w", err)
	}
	return h, nil
}

// Create inserts a highlight and sets its ID
func (r *HighlightRepository) Create(ctx context.Context, h *models.Highlight) error {
	sql, args, err := r.sb.Insert("highlights").
		Columns("title", "description", "type", "media_url", "thumbnail_url", "order_index", "is_active", "created_at").
		Values(h.Title, h.Description, h.Type, h.MediaURL, h.ThumbnailURL, h.OrderIndex, h.IsActive, h.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create highlight SQL")
		return fmt.Errorf("failed to build create highlight query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&h.ID); err != nil {
		logger.Error().Err(err).Msg("Error executing create highlight query")
		return fmt.Errorf("error creating highlight: %w", err)
	}
	return nil
}

// Update overwrites every editable column of a highlight; created_at is kept
func (r *HighlightRepository) Update(ctx context.Context, h *models.Highlight) error {
	sql, args, err := r.sb.Update("highlights").
		SetMap(map[string]interface{}{
			"title":         h.Title,
			"description":   h.Description,
			"type":          h.Type,
			"media_url":     h.MediaURL,
			"thumbnail_url": h.ThumbnailURL,
			"order_index":   h.OrderIndex,
			"is_active":     h.IsActive,
			"updated_at":    h.UpdatedAt,
		}).
		Where(squirrel.Eq{"id": h.ID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update highlight SQL")
		return fmt.Errorf("failed to build update highlight query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("highlightID", h.ID).Msg("Error executing update highlight query")
		return fmt.Errorf("error updating highlight: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return resolveNoRowsAffected(ctx, r.db, r.sb, "highlights", h.ID, apperrors.ErrHighlightNotFound)
	}
	return nil
}

// Delete removes a highlight permanently
func (r *HighlightRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("highlights").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete highlight SQL")
		return fmt.Errorf("failed to build delete highlight query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("highlightID", id).Msg("Error executing delete highlight query")
		return fmt.Errorf("error deleting highlight: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrHighlightNotFound
	}
	return nil
}
