package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/voiceofchrist/churchsite/internal/app/controllers"
	appMigrations "github.com/voiceofchrist/churchsite/internal/app/migrations"
	appRepos "github.com/voiceofchrist/churchsite/internal/app/repositories"
	appRoutes "github.com/voiceofchrist/churchsite/internal/app/routes"
	appServices "github.com/voiceofchrist/churchsite/internal/app/services"
	"github.com/voiceofchrist/churchsite/internal/config"
	"github.com/voiceofchrist/churchsite/internal/db"
	"github.com/voiceofchrist/churchsite/internal/localservice"
	"github.com/voiceofchrist/churchsite/internal/localstore"
	appMiddleware "github.com/voiceofchrist/churchsite/internal/middleware"
	pkgAuth "github.com/voiceofchrist/churchsite/internal/pkg/auth"
	"github.com/voiceofchrist/churchsite/internal/pkg/filestorage"
	"github.com/voiceofchrist/churchsite/internal/pkg/helpers"
	"github.com/voiceofchrist/churchsite/internal/pkg/logger"
	"github.com/voiceofchrist/churchsite/internal/pkg/validation"
	"github.com/voiceofchrist/churchsite/internal/seed"
)

// DefaultConfigPath is where the server and CLI look for the config file
var DefaultConfigPath = filepath.Join("configs", "config.yaml")

// Dependencies holds all the application dependencies
type Dependencies struct {
	Config         *config.Config
	Logger         zerolog.Logger
	DB             *db.PostgresDB    // nil in local mode
	Store          *localstore.Store // nil in postgres mode
	Services       *appServices.Services
	JWTService     *pkgAuth.JWTService
	AuthMiddleware *appMiddleware.AuthMiddleware
	FileStorage    *filestorage.LocalStorage
	Controllers    *appRoutes.Controllers
}

// Close releases the database pool, if any
func (d *Dependencies) Close() {
	if d.DB != nil {
		d.DB.Close()
	}
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase connects to PostgreSQL, applies migrations and seeds the
// default content when the tables are empty.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	if err := appMigrations.NewMigrator(database.Pool, logger.Component("migrations")).Migrate(ctx); err != nil {
		database.Close()
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if cfg.Database.SeedDefaults {
		repos := appRepos.NewRepositories(database.Pool)
		if err := seed.CreateDefaultData(ctx, repos, AdminFromConfig(cfg), time.Now().UTC(), lgr); err != nil {
			// seeding is best effort; the API works on whatever is present
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	return database, nil
}

// SetupLocalStore opens the key-value emulator. An empty storage.local_dir
// keeps it in memory for the lifetime of the process.
func SetupLocalStore(cfg *config.Config, lgr zerolog.Logger) (*localstore.Store, error) {
	var kv localstore.KV
	if dir := cfg.Storage.LocalDir; dir != "" {
		fileKV, err := localstore.NewFileKV(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to open local store at %s: %w", dir, err)
		}
		kv = fileKV
		lgr.Info().Str("dir", dir).Msg("Local store backed by files")
	} else {
		kv = localstore.NewMemoryKV()
		lgr.Warn().Msg("Local store kept in memory, changes are lost on restart")
	}

	store := localstore.New(kv, localstore.Options{})
	if err := store.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize local store: %w", err)
	}
	return store, nil
}

// AdminFromConfig returns the configured bootstrap admin
func AdminFromConfig(cfg *config.Config) seed.Admin {
	return seed.Admin{
		Username: cfg.Admin.Username,
		Password: cfg.Admin.Password,
		Email:    cfg.Admin.Email,
		FullName: cfg.Admin.FullName,
	}
}

// NewJWTService builds the token service from the jwt config section
func NewJWTService(cfg *config.Config) *pkgAuth.JWTService {
	return pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 24*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
		TokenAudience:  cfg.JWT.Audience,
	})
}

// BuildDependencies wires the configured storage backend to services and controllers.
func BuildDependencies(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Config: cfg, Logger: lgr}

	if err := validation.RegisterCustomValidations(); err != nil {
		return nil, fmt.Errorf("failed to register validations: %w", err)
	}

	deps.JWTService = NewJWTService(cfg)

	var ping func(ctx context.Context) error
	switch cfg.Storage.Backend {
	case config.BackendLocal:
		store, err := SetupLocalStore(cfg, lgr)
		if err != nil {
			return nil, err
		}
		admins, err := localservice.NewStaticAdmins(pkgAuth.BcryptCost, time.Now().UTC(), localservice.AdminAccount{
			Username: cfg.Admin.Username,
			Password: cfg.Admin.Password,
			Email:    cfg.Admin.Email,
			FullName: cfg.Admin.FullName,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to set up local admin: %w", err)
		}
		deps.Store = store
		deps.Services = localservice.NewServices(store, admins, deps.JWTService, logger.Component("localservice"), localservice.Options{
			Latency: helpers.ParseDuration(cfg.Storage.LocalLatency, 0),
		})
	default:
		database, err := SetupDatabase(ctx, cfg, lgr)
		if err != nil {
			return nil, err
		}
		deps.DB = database
		deps.Services = appServices.NewPostgresServices(appRepos.NewRepositories(database.Pool), deps.JWTService, lgr)
		ping = database.Pool.Ping
	}

	fileStorage, err := filestorage.NewLocalStorage(cfg.Server.StoragePath, mediaBaseURL(cfg), int64(cfg.Server.MaxUploadMB)<<20)
	if err != nil {
		deps.Close()
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}
	deps.FileStorage = fileStorage

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)
	deps.Controllers = NewControllers(deps.Services, fileStorage, cfg.Storage.Backend, ping)

	return deps, nil
}

// mediaBaseURL falls back to localhost when no public URL is configured
func mediaBaseURL(cfg *config.Config) string {
	if cfg.Server.PublicBaseURL == "" {
		return "http://localhost:" + cfg.Server.Port + "/uploads"
	}
	return cfg.MediaBaseURL()
}

// NewControllers builds every controller over svc
func NewControllers(svc *appServices.Services, storage filestorage.MediaStorage, backend string, ping func(ctx context.Context) error) *appRoutes.Controllers {
	return &appRoutes.Controllers{
		Auth:       appControllers.NewAuthController(svc.Auth),
		Branch:     appControllers.NewBranchController(svc.Branch),
		Pastor:     appControllers.NewPastorController(svc.Pastor),
		Event:      appControllers.NewEventController(svc.Event),
		ChurchInfo: appControllers.NewChurchInfoController(svc.ChurchInfo),
		Highlight:  appControllers.NewHighlightController(svc.Highlight),
		Testimony:  appControllers.NewTestimonyController(svc.Testimony),
		Admin:      appControllers.NewAdminController(svc.Branch, svc.Event, svc.Statistics),
		Media:      appControllers.NewMediaController(storage),
		Health:     appControllers.NewHealthController(backend, ping),
	}
}

// NewRouter builds a gin engine with the common middleware and every route
func NewRouter(cfg *config.Config, controllers *appRoutes.Controllers, authMiddleware *appMiddleware.AuthMiddleware) *gin.Engine {
	router := gin.New()
	// handlers pass *gin.Context to services as their context.Context
	router.ContextWithFallback = true
	router.Use(appMiddleware.Recovery(), appMiddleware.RequestLogger(), appMiddleware.CORS(cfg.Server.CORSOrigins))

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, controllers, authMiddleware)
	return router
}

// SetupRouter configures the Gin engine with middleware, routes and static uploads.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := NewRouter(cfg, deps.Controllers, deps.AuthMiddleware)
	setupStaticFileServing(router, cfg, lgr)
	return router
}

// setupStaticFileServing serves uploaded media under /uploads
func setupStaticFileServing(router *gin.Engine, cfg *config.Config, lgr zerolog.Logger) {
	uploadPath := cfg.Server.StoragePath

	if err := os.MkdirAll(uploadPath, os.ModePerm); err != nil {
		lgr.Error().Err(err).Str("path", uploadPath).Msg("Failed to create uploads directory")
		return
	}

	router.Static("/uploads", uploadPath)
	lgr.Info().Str("path", uploadPath).Msg("Static file serving configured for uploads directory")
}
