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
	"github.com/voiceofchrist/churchsite/internal/pkg/logger"
)

var pastorColumns = []string{
	"p.id", "p.first_name", "p.last_name", "p.title", "p.bio", "p.email", "p.phone_number",
	"p.photo_url", "p.ordained_date", "p.is_active", "p.branch_id",
}

// PastorRepository handles pastor database operations
type PastorRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPastorRepository creates a new PastorRepository
func NewPastorRepository(db *pgxpool.Pool) *PastorRepository {
	return &PastorRepository{
		db: db,
		sb: statementBuilder(),
	}
}

// joinedBranch holds the nullable columns of a LEFT JOINed branch
type joinedBranch struct {
	id              *int64
	name            *string
	address         *string
	city            *string
	province        *string
	phoneNumber     *string
	email           *string
	establishedDate *time.Time
	isActive        *bool
}

func (j *joinedBranch) dest() []interface{} {
	return []interface{}{&j.id, &j.name, &j.address, &j.city, &j.province, &j.phoneNumber,
		&j.email, &j.establishedDate, &j.isActive}
}

func (j *joinedBranch) model() *models.Branch {
	if j.id == nil {
		return nil
	}
	b := &models.Branch{
		ID:          *j.id,
		Province:    j.province,
		PhoneNumber: j.phoneNumber,
		Email:       j.email,
	}
	if j.name != nil {
		b.Name = *j.name
	}
	if j.address != nil {
		b.Address = *j.address
	}
	if j.city != nil {
		b.City = *j.city
	}
	if j.establishedDate != nil {
		b.EstablishedDate = *j.establishedDate
	}
	if j.isActive != nil {
		b.IsActive = *j.isActive
	}
	return b
}

func (r *PastorRepository) selectWithBranch() squirrel.SelectBuilder {
	cols := append([]string{}, pastorColumns...)
	cols = append(cols, branchColumns...)
	return r.sb.Select(cols...).
		From("pastors p").
		LeftJoin("branches b ON b.id = p.branch_id")
}

func scanPastor(row pgx.Row) (*models.Pastor, error) {
	p := &models.Pastor{}
	var jb joinedBranch
	dest := []interface{}{&p.ID, &p.FirstName, &p.LastName, &p.Title, &p.Bio, &p.Email,
		&p.PhoneNumber, &p.PhotoURL, &p.OrdainedDate, &p.IsActive, &p.BranchID}
	if err := row.Scan(append(dest, jb.dest()...)...); err != nil {
		return nil, err
	}
	p.Branch = jb.model()
	return p, nil
}

func (r *PastorRepository) query(ctx context.Context, q squirrel.SelectBuilder) ([]*models.Pastor, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get pastors SQL")
		return nil, fmt.Errorf("failed to build get pastors query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get pastors query")
		return nil, fmt.Errorf("error querying pastors: %w", err)
	}
	defer rows.Close()

	pastors := []*models.Pastor{}
	for rows.Next() {
		p, err := scanPastor(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning pastor row")
			return nil, fmt.Errorf("error scanning pastor row: %w", err)
		}
		pastors = append(pastors, p)
	}
	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating pastor rows")
		return nil, fmt.Errorf("error iterating pastor rows: %w", err)
	}
	return pastors, nil
}

func (r *PastorRepository) listQuery(activeOnly bool) squirrel.SelectBuilder {
	q := r.selectWithBranch().OrderBy("p.id ASC")
	if activeOnly {
		q = q.Where(squirrel.Eq{"p.is_active": true})
	}
	return q
}

// GetAll retrieves pastors with their branch, optionally only active ones
func (r *PastorRepository) GetAll(ctx context.Context, activeOnly bool) ([]*models.Pastor, error) {
	return r.query(ctx, r.listQuery(activeOnly))
}

func (r *PastorRepository) byBranchQuery(branchID int64, activeOnly bool) squirrel.SelectBuilder {
	return r.listQuery(activeOnly).Where(squirrel.Eq{"p.branch_id": branchID})
}

// GetByBranch retrieves the pastors of one branch
func (r *PastorRepository) GetByBranch(ctx context.Context, branchID int64, activeOnly bool) ([]*models.Pastor, error) {
	return r.query(ctx, r.byBranchQuery(branchID, activeOnly))
}

// GetByID retrieves a pastor with its branch
func (r *PastorRepository) GetByID(ctx context.Context, id int64) (*models.Pastor, error) {
	sql, args, err := r.selectWithBranch().
		Where(squirrel.Eq{"p.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get pastor by ID SQL")
		return nil, fmt.Errorf("failed to build get pastor query: %w", err)
	}

	p, err := scanPastor(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPastorNotFound
		}
		logger.Error().Err(err).Int64("pastorID", id).Msg("Error scanning pastor row")
		return nil, fmt.Errorf("error getting pastor by ID: %w", err)
	}
	return p, nil
}

// Create inserts a pastor and sets its ID
func (r *PastorRepository) Create(ctx context.Context, p *models.Pastor) error {
	sql, args, err := r.sb.Insert("pastors").
		Columns("first_name", "last_name", "title", "bio", "email", "phone_number",
			"photo_url", "ordained_date", "is_active", "branch_id").
		Values(p.FirstName, p.LastName, p.Title, p.Bio, p.Email, p.PhoneNumber,
			p.PhotoURL, p.OrdainedDate, p.IsActive, p.BranchID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create pastor SQL")
		return fmt.Errorf("failed to build create pastor query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&p.ID); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrBranchInactiveOrMissing
		}
		logger.Error().Err(err).Msg("Error executing create pastor query")
		return fmt.Errorf("error creating pastor: %w", err)
	}
	return nil
}

// Update overwrites every column of an existing pastor
func (r *PastorRepository) Update(ctx context.Context, p *models.Pastor) error {
	sql, args, err := r.sb.Update("pastors").
		SetMap(map[string]interface{}{
			"first_name":    p.FirstName,
			"last_name":     p.LastName,
			"title":         p.Title,
			"bio":           p.Bio,
			"email":         p.Email,
			"phone_number":  p.PhoneNumber,
			"photo_url":     p.PhotoURL,
			"ordained_date": p.OrdainedDate,
			"is_active":     p.IsActive,
			"branch_id":     p.BranchID,
		}).
		Where(squirrel.Eq{"id": p.ID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update pastor SQL")
		return fmt.Errorf("failed to build update pastor query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrBranchInactiveOrMissing
		}
		logger.Error().Err(err).Int64("pastorID", p.ID).Msg("Error executing update pastor query")
		return fmt.Errorf("error updating pastor: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return resolveNoRowsAffected(ctx, r.db, r.sb, "pastors", p.ID, apperrors.ErrPastorNotFound)
	}
	return nil
}

// SetActive flips the active flag, used for soft deletes
func (r *PastorRepository) SetActive(ctx context.Context, id int64, active bool) error {
	sql, args, err := r.sb.Update("pastors").
		Set("is_active", active).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building set pastor active SQL")
		return fmt.Errorf("failed to build set pastor active query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("pastorID", id).Msg("Error executing set pastor active query")
		return fmt.Errorf("error updating pastor status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrPastorNotFound
	}
	return nil
}
