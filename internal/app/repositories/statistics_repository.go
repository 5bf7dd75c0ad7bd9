package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/voiceofchrist/churchsite/internal/app/models"
	"github.com/voiceofchrist/churchsite/internal/pkg/logger"
)

// StatisticsRepository runs the counting queries behind the dashboard
type StatisticsRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStatisticsRepository creates a new StatisticsRepository
func NewStatisticsRepository(db *pgxpool.Pool) *StatisticsRepository {
	return &StatisticsRepository{
		db: db,
		sb: statementBuilder(),
	}
}

func (r *StatisticsRepository) countQuery(table string, pred interface{}) squirrel.SelectBuilder {
	q := r.sb.Select("COUNT(*)").From(table)
	if pred != nil {
		q = q.Where(pred)
	}
	return q
}

func (r *StatisticsRepository) count(ctx context.Context, table string, pred interface{}) (int, error) {
	sql, args, err := r.countQuery(table, pred).ToSql()
	if err != nil {
		logger.Error().Err(err).Str("table", table).Msg("Error building count SQL")
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}
	var n int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		logger.Error().Err(err).Str("table", table).Msg("Error executing count query")
		return 0, fmt.Errorf("error counting %s: %w", table, err)
	}
	return n, nil
}

// CountActiveBranches counts branches with is_active set
func (r *StatisticsRepository) CountActiveBranches(ctx context.Context) (int, error) {
	return r.count(ctx, "branches", squirrel.Eq{"is_active": true})
}

// CountActivePastors counts pastors with is_active set
func (r *StatisticsRepository) CountActivePastors(ctx context.Context) (int, error) {
	return r.count(ctx, "pastors", squirrel.Eq{"is_active": true})
}

// CountEvents counts every event
func (r *StatisticsRepository) CountEvents(ctx context.Context) (int, error) {
	return r.count(ctx, "events", nil)
}

// CountEventsByStatus counts events with the given status
func (r *StatisticsRepository) CountEventsByStatus(ctx context.Context, status models.EventStatus) (int, error) {
	return r.count(ctx, "events", squirrel.Eq{"status": status})
}

// CountEventsCreatedSince counts events created at or after since
func (r *StatisticsRepository) CountEventsCreatedSince(ctx context.Context, since time.Time) (int, error) {
	return r.count(ctx, "events", squirrel.GtOrEq{"created_at": since})
}
