// Package localservice serves the site's entity services from the key-value
// emulator in internal/localstore. Results are shaped and joined in memory the
// way the public site expects them.
package localservice

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/voiceofchrist/churchsite/internal/app/models"
	"github.com/voiceofchrist/churchsite/internal/app/services"
	"github.com/voiceofchrist/churchsite/internal/localstore"
	"github.com/voiceofchrist/churchsite/internal/pkg/auth"
)

// Options tunes the local services
type Options struct {
	// Latency is waited out before every call resolves. Zero disables it.
	Latency time.Duration
	// Now is the clock used for upcoming/past shaping and statistics.
	// Defaults to the store clock.
	Now func() time.Time
}

// base is embedded by every local service
type base struct {
	store  *localstore.Store
	opts   Options
	logger zerolog.Logger
}

func newBase(store *localstore.Store, opts Options, logger zerolog.Logger) base {
	if opts.Now == nil {
		opts.Now = store.Now
	}
	return base{store: store, opts: opts, logger: logger}
}

// wait applies the configured latency, returning early when ctx is done
func (b *base) wait(ctx context.Context) error {
	if b.opts.Latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(b.opts.Latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (b *base) now() time.Time {
	return b.opts.Now()
}

// branchIndex maps branch ids to branches for join lookups
func (b *base) branchIndex() (map[int64]*models.Branch, error) {
	branches, err := b.store.GetBranches()
	if err != nil {
		return nil, err
	}
	idx := make(map[int64]*models.Branch, len(branches))
	for _, br := range branches {
		idx[br.ID] = br
	}
	return idx, nil
}

// NewServices builds the full service set over store. Login is served by admins.
func NewServices(store *localstore.Store, admins *StaticAdmins, jwtService *auth.JWTService, logger zerolog.Logger, opts Options) *services.Services {
	return &services.Services{
		Auth:       services.NewAuthService(admins, jwtService, logger),
		Branch:     NewBranchService(store, logger, opts),
		Pastor:     NewPastorService(store, logger, opts),
		Event:      NewEventService(store, logger, opts),
		ChurchInfo: NewChurchInfoService(store, logger, opts),
		Highlight:  NewHighlightService(store, logger, opts),
		Testimony:  NewTestimonyService(store, logger, opts),
		Statistics: NewStatisticsService(store, logger, opts),
	}
}
