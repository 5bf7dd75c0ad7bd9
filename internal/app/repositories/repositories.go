package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/voiceofchrist/churchsite/internal/pkg/apperrors"
	"github.com/voiceofchrist/churchsite/internal/pkg/logger"
)

// Repositories holds all the repository instances
type Repositories struct {
	BranchRepository     *BranchRepository
	PastorRepository     *PastorRepository
	EventRepository      *EventRepository
	ChurchInfoRepository *ChurchInfoRepository
	HighlightRepository  *HighlightRepository
	TestimonyRepository  *TestimonyRepository
	AdminRepository      *AdminRepository
	StatisticsRepository *StatisticsRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		BranchRepository:     NewBranchRepository(db),
		PastorRepository:     NewPastorRepository(db),
		EventRepository:      NewEventRepository(db),
		ChurchInfoRepository: NewChurchInfoRepository(db),
		HighlightRepository:  NewHighlightRepository(db),
		TestimonyRepository:  NewTestimonyRepository(db),
		AdminRepository:      NewAdminRepository(db),
		StatisticsRepository: NewStatisticsRepository(db),
	}
}

// statementBuilder returns a squirrel builder using PostgreSQL placeholders
func statementBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// existsQuery builds SELECT EXISTS (SELECT 1 FROM table WHERE pred)
func existsQuery(sb squirrel.StatementBuilderType, table string, pred interface{}) squirrel.SelectBuilder {
	return sb.Select("1").
		From(table).
		Where(pred).
		Prefix("SELECT EXISTS (").
		Suffix(")")
}

func rowExists(ctx context.Context, db *pgxpool.Pool, sb squirrel.StatementBuilderType, table string, id int64) (bool, error) {
	sql, args, err := existsQuery(sb, table, squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Str("table", table).Msg("Error building exists SQL")
		return false, fmt.Errorf("failed to build exists query: %w", err)
	}

	var exists bool
	if err := db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		logger.Error().Err(err).Str("table", table).Int64("id", id).Msg("Error checking row existence")
		return false, fmt.Errorf("error checking %s existence: %w", table, err)
	}
	return exists, nil
}

// resolveNoRowsAffected decides what an UPDATE that touched nothing means:
// the row is gone (notFound) or it is still there and was changed under us (conflict).
func resolveNoRowsAffected(ctx context.Context, db *pgxpool.Pool, sb squirrel.StatementBuilderType, table string, id int64, notFound error) error {
	exists, err := rowExists(ctx, db, sb, table, id)
	if err != nil {
		return err
	}
	if !exists {
		return notFound
	}
	logger.Warn().Str("table", table).Int64("id", id).Msg("Update affected no rows although the record exists")
	return apperrors.NewConflictError(fmt.Sprintf("%s record %d was modified concurrently, reload and retry", table, id))
}
