package services

import (
	"github.com/rs/zerolog"
	"github.com/voiceofchrist/churchsite/internal/app/repositories"
	"github.com/voiceofchrist/churchsite/internal/pkg/auth"
)

// Services groups the service implementations the controllers depend on.
// The PostgreSQL implementations live in this package; the key-value
// emulator in internal/localservice satisfies the same interfaces.
type Services struct {
	Auth       *AuthService
	Branch     BranchService
	Pastor     PastorService
	Event      EventService
	ChurchInfo ChurchInfoService
	Highlight  HighlightService
	Testimony  TestimonyService
	Statistics StatisticsService
}

// NewPostgresServices wires every service to the PostgreSQL repositories
func NewPostgresServices(repos *repositories.Repositories, jwtService *auth.JWTService, logger zerolog.Logger) *Services {
	return &Services{
		Auth:       NewAuthService(repos.AdminRepository, jwtService, logger),
		Branch:     NewBranchService(repos.BranchRepository, repos.PastorRepository, repos.EventRepository, logger),
		Pastor:     NewPastorService(repos.PastorRepository, repos.BranchRepository, logger),
		Event:      NewEventService(repos.EventRepository, repos.BranchRepository, logger),
		ChurchInfo: NewChurchInfoService(repos.ChurchInfoRepository, logger),
		Highlight:  NewHighlightService(repos.HighlightRepository, logger),
		Testimony:  NewTestimonyService(repos.TestimonyRepository, logger),
		Statistics: NewStatisticsService(repos.StatisticsRepository),
	}
}
