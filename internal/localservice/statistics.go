package localservice

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/voiceofchrist/churchsite/internal/app/models"
	"github.com/voiceofchrist/churchsite/internal/app/services"
	"github.com/voiceofchrist/churchsite/internal/localstore"
)

// StatisticsService implements services.StatisticsService over the local store
type StatisticsService struct {
	base
}

var _ services.StatisticsService = (*StatisticsService)(nil)

// NewStatisticsService creates a local StatisticsService
func NewStatisticsService(store *localstore.Store, logger zerolog.Logger, opts Options) *StatisticsService {
	return &StatisticsService{base: newBase(store, opts, logger)}
}

// GetStatistics counts with the same rules as the database dashboard
func (s *StatisticsService) GetStatistics(ctx context.Context) (*models.Statistics, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	branches, err := s.store.GetBranches()
	if err != nil {
		return nil, err
	}
	pastors, err := s.store.GetPastors()
	if err != nil {
		return nil, err
	}
	events, err := s.store.GetEvents()
	if err != nil {
		return nil, err
	}

	stats := &models.Statistics{TotalEvents: len(events)}
	for _, b := range branches {
		if b.IsActive {
			stats.TotalBranches++
		}
	}
	for _, p := range pastors {
		if p.IsActive {
			stats.TotalPastors++
		}
	}
	since := s.now().Add(-models.RecentEventsWindow)
	for _, e := range events {
		switch e.Status {
		case models.EventStatusUpcoming:
			stats.UpcomingEvents++
		case models.EventStatusCompleted:
			stats.CompletedEvents++
		}
		if !e.CreatedAt.Before(since) {
			stats.RecentEvents++
		}
	}
	return stats, nil
}
