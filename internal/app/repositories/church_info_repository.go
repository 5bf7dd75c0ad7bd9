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

// ChurchInfoRepository handles the singleton church_info row
type ChurchInfoRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewChurchInfoRepository creates a new ChurchInfoRepository
func NewChurchInfoRepository(db *pgxpool.Pool) *ChurchInfoRepository {
	return &ChurchInfoRepository{
		db: db,
		sb: statementBuilder(),
	}
}

// Get returns the first church info row
func (r *ChurchInfoRepository) Get(ctx context.Context) (*models.ChurchInfo, error) {
	sql, args, err := r.sb.Select("id", "mission", "vision", "beliefs", "history", "contact_email",
		"contact_phone", "founded_date", "hero_video_url", "updated_at").
		From("church_info").
		OrderBy("id ASC").
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get church info SQL")
		return nil, fmt.Errorf("failed to build get church info query: %w", err)
	}

	info := &models.ChurchInfo{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&info.ID, &info.Mission, &info.Vision, &info.Beliefs,
		&info.History, &info.ContactEmail, &info.ContactPhone, &info.FoundedDate, &info.HeroVideoURL, &info.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrChurchInfoNotFound
		}
		logger.Error().Err(err).Msg("Error scanning church info row")
		return nil, fmt.Errorf("error getting church info: %w", err)
	}
	return info, nil
}

// Create inserts the church info row and sets its ID
func (r *ChurchInfoRepository) Create(ctx context.Context, info *models.ChurchInfo) error {
	sql, args, err := r.sb.Insert("church_info").
		Columns("mission", "vision", "beliefs", "history", "contact_email", "contact_phone",
			"founded_date", "hero_video_url", "updated_at").
		Values(info.Mission, info.Vision, info.Beliefs, info.History, info.ContactEmail, info.ContactPhone,
			info.FoundedDate, info.HeroVideoURL, info.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create church info SQL")
		return fmt.Errorf("failed to build create church info query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&info.ID); err != nil {
		logger.Error().Err(err).Msg("Error executing create church info query")
		return fmt.Errorf("error creating church info: %w", err)
	}
	return nil
}

// Update overwrites the church info row with info.ID
func (r *ChurchInfoRepository) Update(ctx context.Context, info *models.ChurchInfo) error {
	sql, args, err := r.sb.Update("church_info").
		SetMap(map[string]interface{}{
			"mission":        info.Mission,
			"vision":         info.Vision,
			"beliefs":        info.Beliefs,
			"history":        info.History,
			"contact_email":  info.ContactEmail,
			"contact_phone":  info.ContactPhone,
			"founded_date":   info.FoundedDate,
			"hero_video_url": info.HeroVideoURL,
			"updated_at":     info.UpdatedAt,
		}).
		Where(squirrel.Eq{"id": info.ID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update church info SQL")
		return fmt.Errorf("failed to build update church info query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("churchInfoID", info.ID).Msg("Error executing update church info query")
		return fmt.Errorf("error updating church info: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return resolveNoRowsAffected(ctx, r.db, r.sb, "church_info", info.ID, apperrors.ErrChurchInfoNotFound)
	}
	return nil
}
