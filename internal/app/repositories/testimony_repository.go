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

var testimonyColumns = []string{"id", "name", "testimony", "is_approved", "created_at", "updated_at"}

// TestimonyRepository handles testimony database operations
type TestimonyRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTestimonyRepository creates a new TestimonyRepository
func NewTestimonyRepository(db *pgxpool.Pool) *TestimonyRepository {
	return &TestimonyRepository{
		db: db,
		sb: statementBuilder(),
	}
}

func scanTestimony(row pgx.Row, t *models.Testimony) error {
	return row.Scan(&t.ID, &t.Name, &t.Testimony, &t.IsApproved, &t.CreatedAt, &t.UpdatedAt)
}

func (r *TestimonyRepository) query(ctx context.Context, q squirrel.SelectBuilder) ([]*models.Testimony, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get testimonies SQL")
		return nil, fmt.Errorf("failed to build get testimonies query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get testimonies query")
		return nil, fmt.Errorf("error querying testimonies: %w", err)
	}
	defer rows.Close()

	testimonies := []*models.Testimony{}
	for rows.Next() {
		t := &models.Testimony{}
		if err := scanTestimony(rows, t); err != nil {
			logger.Error().Err(err).Msg("Error scanning testimony row")
			return nil, fmt.Errorf("error scanning testimony row: %w", err)
		}
		testimonies = append(testimonies, t)
	}
	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating testimony rows")
		return nil, fmt.Errorf("error iterating testimony rows: %w", err)
	}
	return testimonies, nil
}

func (r *TestimonyRepository) approvedQuery() squirrel.SelectBuilder {
	return r.sb.Select(testimonyColumns...).
		From("testimonies").
		Where(squirrel.Eq{"is_approved": true}).
		OrderBy("created_at DESC", "id DESC")
}

func (r *TestimonyRepository) pageQuery(offset uint64, limit int) squirrel.SelectBuilder {
	return r.sb.Select(testimonyColumns...).
		From("testimonies").
		OrderBy("created_at DESC", "id DESC").
		Offset(offset).
		Limit(uint64(limit))
}

// GetApproved retrieves approved testimonies, newest first
func (r *TestimonyRepository) GetApproved(ctx context.Context) ([]*models.Testimony, error) {
	return r.query(ctx, r.approvedQuery())
}

// List retrieves one page of all testimonies, newest first, and the total count
func (r *TestimonyRepository) List(ctx context.Context, offset uint64, limit int) ([]*models.Testimony, int64, error) {
	countSQL, countArgs, err := r.sb.Select("COUNT(*)").From("testimonies").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count testimonies SQL")
		return nil, 0, fmt.Errorf("failed to build count testimonies query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting testimonies")
		return nil, 0, fmt.Errorf("error counting testimonies: %w", err)
	}

	testimonies, err := r.query(ctx, r.pageQuery(offset, limit))
	if err != nil {
		return nil, 0, err
	}
	return testimonies, total, nil
}

// GetByID retrieves a testimony
func (r *TestimonyRepository) GetByID(ctx context.Context, id int64) (*models.Testimony, error) {
	sql, args, err := r.sb.Select(testimonyColumns...).
		From("testimonies").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get testimony by ID SQL")
		return nil, fmt.Errorf("failed to build get testimony query: %w", err)
	}

	t := &models.Testimony{}
	if err := scanTestimony(r.db.QueryRow(ctx, sql, args...), t); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTestimonyNotFound
		}
		logger.Error().Err(err).Int64("testimonyID", id).Msg("Error scanning testimony row")
		return nil, fmt.Errorf("error getting testimony by ID: %w", err)
	}
	return t, nil
}

// Create inserts a testimony and sets its ID
func (r *TestimonyRepository) Create(ctx context.Context, t *models.Testimony) error {
	sql, args, err := r.sb.Insert("testimonies").
		Columns("name", "testimony", "is_approved", "created_at").
		Values(t.Name, t.Testimony, t.IsApproved, t.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create testimony SQL")
		return fmt.Errorf("failed to build create testimony query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&t.ID); err != nil {
		logger.Error().Err(err).Msg("Error executing create testimony query")
		return fmt.Errorf("error creating testimony: %w", err)
	}
	return nil
}

// Update overwrites the editable columns of a testimony
func (r *TestimonyRepository) Update(ctx context.Context, t *models.Testimony) error {
	sql, args, err := r.sb.Update("testimonies").
		SetMap(map[string]interface{}{
			"name":        t.Name,
			"testimony":   t.Testimony,
			"is_approved": t.IsApproved,
			"updated_at":  t.UpdatedAt,
		}).
		Where(squirrel.Eq{"id": t.ID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update testimony SQL")
		return fmt.Errorf("failed to build update testimony query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("testimonyID", t.ID).Msg("Error executing update testimony query")
		return fmt.Errorf("error updating testimony: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return resolveNoRowsAffected(ctx, r.db, r.sb, "testimonies", t.ID, apperrors.ErrTestimonyNotFound)
	}
	return nil
}

// Delete removes a testimony permanently
func (r *TestimonyRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("testimonies").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete testimony SQL")
		return fmt.Errorf("failed to build delete testimony query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("testimonyID", id).Msg("Error executing delete testimony query")
		return fmt.Errorf("error deleting testimony: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTestimonyNotFound
	}
	return nil
}
