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

var adminColumns = []string{"id", "username", "password_hash", "email", "full_name", "is_active", "created_at", "last_login_at"}

// AdminRepository handles back-office account database operations
type AdminRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAdminRepository creates a new AdminRepository
func NewAdminRepository(db *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{
		db: db,
		sb: statementBuilder(),
	}
}

func (r *AdminRepository) getBy(ctx context.Context, pred squirrel.Sqlizer) (*models.Admin, error) {
	sql, args, err := r.sb.Select(adminColumns...).
		From("admins").
		Where(pred).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get admin SQL")
		return nil, fmt.Errorf("failed to build get admin query: %w", err)
	}

	a := &models.Admin{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.Email,
		&a.FullName, &a.IsActive, &a.CreatedAt, &a.LastLoginAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAdminNotFound
		}
		logger.Error().Err(err).Msg("Error scanning admin row")
		return nil, fmt.Errorf("error getting admin: %w", err)
	}
	return a, nil
}

// GetByUsername retrieves an admin by username, active or not
func (r *AdminRepository) GetByUsername(ctx context.Context, username string) (*models.Admin, error) {
	return r.getBy(ctx, squirrel.Eq{"username": username})
}

// GetByID retrieves an admin by ID
func (r *AdminRepository) GetByID(ctx context.Context, id int64) (*models.Admin, error) {
	return r.getBy(ctx, squirrel.Eq{"id": id})
}

// Create inserts an admin and sets its ID
func (r *AdminRepository) Create(ctx context.Context, a *models.Admin) error {
	sql, args, err := r.sb.Insert("admins").
		Columns("username", "password_hash", "email", "full_name", "is_active", "created_at").
		Values(a.Username, a.PasswordHash, a.Email, a.FullName, a.IsActive, a.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create admin SQL")
		return fmt.Errorf("failed to build create admin query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&a.ID); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrAdminAlreadyExists
		}
		logger.Error().Err(err).Str("username", a.Username).Msg("Error executing create admin query")
		return fmt.Errorf("error creating admin: %w", err)
	}
	return nil
}

// UpdateLastLogin stamps last_login_at
func (r *AdminRepository) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	sql, args, err := r.sb.Update("admins").
		Set("last_login_at", at).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update last login SQL")
		return fmt.Errorf("failed to build update last login query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("adminID", id).Msg("Error executing update last login query")
		return fmt.Errorf("error updating last login: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAdminNotFound
	}
	return nil
}

// Count returns the number of admin accounts
func (r *AdminRepository) Count(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").From("admins").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count admins query: %w", err)
	}
	var n int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		logger.Error().Err(err).Msg("Error counting admins")
		return 0, fmt.Errorf("error counting admins: %w", err)
	}
	return n, nil
}
