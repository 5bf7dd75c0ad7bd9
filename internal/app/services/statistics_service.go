package services

import (
	"context"
	"fmt"
	"time"

	"github.com/voiceofchrist/churchsite/internal/app/models"
	"github.com/voiceofchrist/churchsite/internal/app/repositories"
	"golang.org/x/sync/errgroup"
)

// StatisticsService computes the back-office dashboard numbers
type StatisticsService interface {
	GetStatistics(ctx context.Context) (*models.Statistics, error)
}

type statisticsServiceImpl struct {
	repo *repositories.StatisticsRepository
	now  func() time.Time
}

// NewStatisticsService creates a new StatisticsService
func NewStatisticsService(repo *repositories.StatisticsRepository) StatisticsService {
	return &statisticsServiceImpl{repo: repo, now: time.Now}
}

// GetStatistics runs the six counts concurrently
func (s *statisticsServiceImpl) GetStatistics(ctx context.Context) (*models.Statistics, error) {
	stats := &models.Statistics{}
	since := s.now().UTC().Add(-models.RecentEventsWindow)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.TotalBranches, err = s.repo.CountActiveBranches(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalPastors, err = s.repo.CountActivePastors(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalEvents, err = s.repo.CountEvents(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.UpcomingEvents, err = s.repo.CountEventsByStatus(gctx, models.EventStatusUpcoming)
		return err
	})
	g.Go(func() (err error) {
		stats.CompletedEvents, err = s.repo.CountEventsByStatus(gctx, models.EventStatusCompleted)
		return err
	})
	g.Go(func() (err error) {
		stats.RecentEvents, err = s.repo.CountEventsCreatedSince(gctx, since)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("error computing statistics: %w", err)
	}
	return stats, nil
}
