package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/voiceofchrist/churchsite/internal/app/models"
	"github.com/voiceofchrist/churchsite/internal/db"
	"github.com/voiceofchrist/churchsite/internal/pkg/apperrors"
	"github.com/voiceofchrist/churchsite/internal/pkg/dberrors"
	"github.com/voiceofchrist/churchsite/internal/pkg/logger"
)

var branchColumns = []string{
	"b.id", "b.name", "b.address", "b.city", "b.province", "b.phone_number",
	"b.email", "b.established_date", "b.is_active",
}

// BranchRepository handles branch database operations
type BranchRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewBranchRepository creates a new BranchRepository
func NewBranchRepository(db *pgxpool.Pool) *BranchRepository {
	return &BranchRepository{
		db: db,
		sb: statementBuilder(),
	}
}

func scanBranch(row pgx.Row, b *models.Branch) error {
	return row.Scan(&b.ID, &b.Name, &b.Address, &b.City, &b.Province, &b.PhoneNumber,
		&b.Email, &b.EstablishedDate, &b.IsActive)
}

func (r *BranchRepository) listQuery(activeOnly bool) squirrel.SelectBuilder {
	q := r.sb.Select(branchColumns...).From("branches b").OrderBy("b.id ASC")
	if activeOnly {
		q = q.Where(squirrel.Eq{"b.is_active": true})
	}
	return q
}

// GetAll retrieves branches, optionally only the active ones
func (r *BranchRepository) GetAll(ctx context.Context, activeOnly bool) ([]*models.Branch, error) {
	sql, args, err := r.listQuery(activeOnly).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get branches SQL")
		return nil, fmt.Errorf("failed to build get branches query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get branches query")
		return nil, fmt.Errorf("error querying branches: %w", err)
	}
	defer rows.Close()

	branches := []*models.Branch{}
	for rows.Next() {
		b := &models.Branch{}
		if err := scanBranch(rows, b); err != nil {
			logger.Error().Err(err).Msg("Error scanning branch row")
			return nil, fmt.Errorf("error scanning branch row: %w", err)
		}
		branches = append(branches, b)
	}
	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating branch rows")
		return nil, fmt.Errorf("error iterating branch rows: %w", err)
	}
	return branches, nil
}

// GetByID retrieves a branch regardless of its active flag
func (r *BranchRepository) GetByID(ctx context.Context, id int64) (*models.Branch, error) {
	sql, args, err := r.sb.Select(branchColumns...).
		From("branches b").
		Where(squirrel.Eq{"b.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get branch by ID SQL")
		return nil, fmt.Errorf("failed to build get branch query: %w", err)
	}

	b := &models.Branch{}
	if err := scanBranch(r.db.QueryRow(ctx, sql, args...), b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrBranchNotFound
		}
		logger.Error().Err(err).Int64("branchID", id).Msg("Error scanning branch row")
		return nil, fmt.Errorf("error getting branch by ID: %w", err)
	}
	return b, nil
}

// Exists reports whether a branch with id exists
func (r *BranchRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return rowExists(ctx, r.db, r.sb, "branches", id)
}

// IsActive reports whether a branch with id exists and is active
func (r *BranchRepository) IsActive(ctx context.Context, id int64) (bool, error) {
	sql, args, err := existsQuery(r.sb, "branches", squirrel.Eq{"id": id, "is_active": true}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building active branch SQL")
		return false, fmt.Errorf("failed to build active branch query: %w", err)
	}

	var active bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&active); err != nil {
		logger.Error().Err(err).Int64("branchID", id).Msg("Error checking active branch")
		return false, fmt.Errorf("error checking active branch: %w", err)
	}
	return active, nil
}

// Create inserts a branch and sets its ID
func (r *BranchRepository) Create(ctx context.Context, b *models.Branch) error {
	sql, args, err := r.sb.Insert("branches").
		Columns("name", "address", "city", "province", "phone_number", "email", "established_date", "is_active").
		Values(b.Name, b.Address, b.City, b.Province, b.PhoneNumber, b.Email, b.EstablishedDate, b.IsActive).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create branch SQL")
		return fmt.Errorf("failed to build create branch query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&b.ID); err != nil {
		logger.Error().Err(err).Str("name", b.Name).Msg("Error executing create branch query")
		return fmt.Errorf("error creating branch: %w", err)
	}
	return nil
}

func (r *BranchRepository) updateQuery(b *models.Branch) squirrel.UpdateBuilder {
	return r.sb.Update("branches").
		SetMap(map[string]interface{}{
			"name":             b.Name,
			"address":          b.Address,
			"city":             b.City,
			"province":         b.Province,
			"phone_number":     b.PhoneNumber,
			"email":            b.Email,
			"established_date": b.EstablishedDate,
			"is_active":        b.IsActive,
		}).
		Where(squirrel.Eq{"id": b.ID})
}

// Update overwrites every column of an existing branch
func (r *BranchRepository) Update(ctx context.Context, b *models.Branch) error {
	sql, args, err := r.updateQuery(b).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update branch SQL")
		return fmt.Errorf("failed to build update branch query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("branchID", b.ID).Msg("Error executing update branch query")
		return fmt.Errorf("error updating branch: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return resolveNoRowsAffected(ctx, r.db, r.sb, "branches", b.ID, apperrors.ErrBranchNotFound)
	}
	return nil
}

// SetActive flips the active flag, used for soft deletes
func (r *BranchRepository) SetActive(ctx context.Context, id int64, active bool) error {
	sql, args, err := r.sb.Update("branches").
		Set("is_active", active).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building set branch active SQL")
		return fmt.Errorf("failed to build set branch active query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("branchID", id).Msg("Error executing set branch active query")
		return fmt.Errorf("error updating branch status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrBranchNotFound
	}
	return nil
}

func (r *BranchRepository) summaryQuery() squirrel.SelectBuilder {
	cols := append([]string{}, branchColumns...)
	cols = append(cols,
		"(SELECT COUNT(*) FROM pastors p WHERE p.branch_id = b.id) AS pastor_count",
		"(SELECT COUNT(*) FROM events e WHERE e.branch_id = b.id) AS event_count",
	)
	return r.sb.Select(cols...).From("branches b").OrderBy("b.id ASC")
}

// ListSummaries returns every branch, active or not, with pastor and event counts
func (r *BranchRepository) ListSummaries(ctx context.Context) ([]*models.BranchSummary, error) {
	sql, args, err := r.summaryQuery().ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building branch summaries SQL")
		return nil, fmt.Errorf("failed to build branch summaries query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing branch summaries query")
		return nil, fmt.Errorf("error querying branch summaries: %w", err)
	}
	defer rows.Close()

	summaries := []*models.BranchSummary{}
	for rows.Next() {
		s := &models.BranchSummary{}
		b := &s.Branch
		if err := rows.Scan(&b.ID, &b.Name, &b.Address, &b.City, &b.Province, &b.PhoneNumber,
			&b.Email, &b.EstablishedDate, &b.IsActive, &s.PastorCount, &s.EventCount); err != nil {
			logger.Error().Err(err).Msg("Error scanning branch summary row")
			return nil, fmt.Errorf("error scanning branch summary row: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating branch summary rows")
		return nil, fmt.Errorf("error iterating branch summary rows: %w", err)
	}
	return summaries, nil
}

// relationsQuery checks for active pastors or upcoming events on a branch
func (r *BranchRepository) relationsQuery(id int64) squirrel.SelectBuilder {
	return r.sb.Select().
		Column(squirrel.Expr("EXISTS (SELECT 1 FROM pastors WHERE branch_id = ? AND is_active = TRUE)", id)).
		Column(squirrel.Expr("EXISTS (SELECT 1 FROM events WHERE branch_id = ? AND status = ?)", id, models.EventStatusUpcoming))
}

// Delete removes a branch permanently. Branches with active pastors or upcoming
// events are refused with ErrBranchHasRelations. Events of the branch become
// church-wide; remaining inactive pastors block the delete.
func (r *BranchRepository) Delete(ctx context.Context, id int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		lockSQL, lockArgs, err := r.sb.Select("id").
			From("branches").
			Where(squirrel.Eq{"id": id}).
			Suffix("FOR UPDATE").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build lock branch query: %w", err)
		}
		var lockedID int64
		if err := tx.QueryRow(ctx, lockSQL, lockArgs...).Scan(&lockedID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrBranchNotFound
			}
			logger.Error().Err(err).Int64("branchID", id).Msg("Error locking branch for delete")
			return fmt.Errorf("error locking branch: %w", err)
		}

		relSQL, relArgs, err := r.relationsQuery(id).ToSql()
		if err != nil {
			return fmt.Errorf("failed to build branch relations query: %w", err)
		}
		var hasActivePastors, hasUpcomingEvents bool
		if err := tx.QueryRow(ctx, relSQL, relArgs...).Scan(&hasActivePastors, &hasUpcomingEvents); err != nil {
			logger.Error().Err(err).Int64("branchID", id).Msg("Error checking branch relations")
			return fmt.Errorf("error checking branch relations: %w", err)
		}
		if hasActivePastors || hasUpcomingEvents {
			return apperrors.ErrBranchHasRelations
		}

		delSQL, delArgs, err := r.sb.Delete("branches").Where(squirrel.Eq{"id": id}).ToSql()
		if err != nil {
			return fmt.Errorf("failed to build delete branch query: %w", err)
		}
		if _, err := tx.Exec(ctx, delSQL, delArgs...); err != nil {
			if dberrors.IsForeignKeyViolation(err) {
				return apperrors.ErrBranchHasPastorRecords
			}
			logger.Error().Err(err).Int64("branchID", id).Msg("Error executing delete branch query")
			return fmt.Errorf("error deleting branch: %w", err)
		}
		return nil
	})
}
