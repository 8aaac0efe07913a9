package bootstrap

import (
	"context"
	"fmt"
	"strings"
	"time"

	appControllers "github.com/campulist/campulist/internal/app/controllers"
	appRepos "github.com/campulist/campulist/internal/app/repositories"
	appRoutes "github.com/campulist/campulist/internal/app/routes"
	appServices "github.com/campulist/campulist/internal/app/services"
	"github.com/campulist/campulist/internal/config"
	"github.com/campulist/campulist/internal/db"
	appMiddleware "github.com/campulist/campulist/internal/middleware"
	pkgAuth "github.com/campulist/campulist/internal/pkg/auth"
	"github.com/campulist/campulist/internal/pkg/logger"
	"github.com/campulist/campulist/internal/pkg/websocket"
	"github.com/campulist/campulist/internal/seed"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// DefaultConfigPath is used when no --config flag is given
const DefaultConfigPath = "configs/config.yaml"

// Dependencies holds all the application dependencies
type Dependencies struct {
	Store             *appRepos.Store
	Repos             *appRepos.Repositories
	SessionService    appServices.SessionService
	ProviderService   appServices.ProviderService
	API               *appServices.API
	Hub               *websocket.Hub
	JWTService        *pkgAuth.JWTService
	AuthMiddleware    *appMiddleware.AuthMiddleware
	HealthController  *appControllers.HealthController
	CampusController  *appControllers.CampusController
	SessionController *appControllers.SessionController
	PostController    *appControllers.PostController
	ChatController    *appControllers.ChatController
	ReportController  *appControllers.ReportController

	// Database is nil unless the postgres provider was requested and enabled
	Database *db.PostgresDB
	Logger   zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	lgr := logger.New(logger.Config{
		Level:  logger.LogLevel(strings.ToLower(cfg.Logging.Level)),
		Format: cfg.Logging.Format,
	})
	lgr.Info().
		Str("logLevel", cfg.Logging.Level).
		Str("logFormat", cfg.Logging.Format).
		Str("provider", cfg.Storage.Provider).
		Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase opens the postgres pool when the postgres provider is
// requested, configured and enabled. Otherwise it returns nil.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	if cfg.Storage.Provider != config.ProviderPostgres {
		return nil, nil
	}
	if !cfg.DatabaseConfigured() || !cfg.Storage.RepositoryReady {
		lgr.Warn().Msg("Postgres provider requested but not enabled, serving from memory")
		return nil, nil
	}

	lgr.Info().Str("host", cfg.Database.Host).Str("dbname", cfg.Database.DBName).Msg("Opening database pool...")
	database, err := db.NewPostgresDB(ctx, cfg, logger.Component(lgr, "db"))
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to open database pool")
		return nil, err
	}
	if err := database.Ping(ctx); err != nil {
		// The health endpoint keeps reporting this until the database is reachable
		lgr.Warn().Err(err).Msg("Database is not reachable yet")
	}
	return database, nil
}

// BuildDependencies seeds the store and wires repositories, services and
// controllers. database may be nil.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Database: database, Logger: lgr}

	dataset, err := seed.Load(cfg.Seed.Path, time.Now())
	if err != nil {
		lgr.Error().Err(err).Str("path", cfg.Seed.Path).Msg("Failed to load seed data")
		return nil, fmt.Errorf("failed to load seed data: %w", err)
	}

	deps.Store = appRepos.NewStore()
	if err := deps.Store.Load(dataset); err != nil {
		return nil, fmt.Errorf("failed to load seed data into store: %w", err)
	}
	summary := seed.Summarize(dataset)
	lgr.Info().
		Int("campuses", summary.Campuses).
		Int("users", summary.Users).
		Int("posts", summary.Posts).
		Int("chatThreads", summary.ChatThreads).
		Int("reports", summary.Reports).
		Msg("Seed data loaded")

	deps.Repos = appRepos.NewRepositories(deps.Store, logger.Component(lgr, "repositories"))

	var pinger appServices.Pinger
	if database != nil {
		pinger = database
	}
	deps.ProviderService = appServices.NewProviderService(cfg, pinger, logger.Component(lgr, "provider"))
	deps.SessionService = appServices.NewSessionService(deps.Repos.UserRepository, logger.Component(lgr, "session"))

	deps.Hub = websocket.NewHub(logger.Component(lgr, "websocket"))
	deps.API = appServices.NewAPI(deps.Repos, deps.SessionService, deps.Hub, lgr)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.Session.Secret,
		TokenTTL:    cfg.SessionTTL(),
		TokenIssuer: cfg.Session.Issuer,
	})
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, cfg.Session.CookieName, logger.Component(lgr, "auth"))

	wsHandler := websocket.NewHandler(deps.Hub, deps.API, logger.Component(lgr, "websocket"))

	deps.HealthController = appControllers.NewHealthController(deps.ProviderService)
	deps.CampusController = appControllers.NewCampusController(deps.API)
	deps.SessionController = appControllers.NewSessionController(
		deps.API,
		deps.JWTService,
		cfg.Session.CookieName,
		isRelease(cfg),
		logger.Component(lgr, "session"),
	)
	deps.PostController = appControllers.NewPostController(deps.API)
	deps.ChatController = appControllers.NewChatController(deps.API, wsHandler, logger.Component(lgr, "chat"))
	deps.ReportController = appControllers.NewReportController(deps.API)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if isRelease(cfg) {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else if strings.EqualFold(cfg.Server.Mode, gin.TestMode) {
		gin.SetMode(gin.TestMode)
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	appMiddleware.ConfigureValidator()

	router := gin.New()
	router.Use(appMiddleware.Recovery(lgr), appMiddleware.RequestLogger(logger.Component(lgr, "http")))
	router.NoRoute(appMiddleware.NoRoute)

	appRoutes.SetupRouter(router,
		deps.HealthController,
		deps.CampusController,
		deps.SessionController,
		deps.PostController,
		deps.ChatController,
		deps.ReportController,
		deps.AuthMiddleware,
	)

	return router
}

func isRelease(cfg *config.Config) bool {
	mode := strings.ToLower(cfg.Server.Mode)
	return mode == "production" || mode == gin.ReleaseMode
}
