package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/emrekoch/skillbridge/internal/app/controllers"
	appMigrations "github.com/emrekoch/skillbridge/internal/app/migrations"
	"github.com/emrekoch/skillbridge/internal/app/models"
	appRepos "github.com/emrekoch/skillbridge/internal/app/repositories"
	appRoutes "github.com/emrekoch/skillbridge/internal/app/routes"
	appServices "github.com/emrekoch/skillbridge/internal/app/services"
	"github.com/emrekoch/skillbridge/internal/config"
	"github.com/emrekoch/skillbridge/internal/db"
	"github.com/emrekoch/skillbridge/internal/events"
	appMiddleware "github.com/emrekoch/skillbridge/internal/middleware"
	pkgAuth "github.com/emrekoch/skillbridge/internal/pkg/auth"
	"github.com/emrekoch/skillbridge/internal/pkg/logger"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos               *appRepos.Repositories
	ProfileService      *appServices.ProfileService
	MatchService        *appServices.MatchService
	DiscoveryService    *appServices.DiscoveryService
	RequestService      *appServices.RequestService
	ReviewService       *appServices.ReviewService
	ChallengeService    *appServices.ChallengeService
	SessionService      *appServices.SessionService
	ReportService       *appServices.ReportService
	ProfileController   *appControllers.ProfileController
	MatchController     *appControllers.MatchController
	DiscoveryController *appControllers.DiscoveryController
	RequestController   *appControllers.RequestController
	ReviewController    *appControllers.ReviewController
	ChallengeController *appControllers.ChallengeController
	SessionController   *appControllers.SessionController
	ReportController    *appControllers.ReportController
	AuthMiddleware      *appMiddleware.AuthMiddleware
	JWTService          *pkgAuth.JWTService
	Publisher           events.Publisher
	RedisClient         *redis.Client
	Logger              zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")
	return dbPool, nil
}

// SetupEventBus connects to Redis for change-notification publishing. A
// missing Redis is downgraded to a no-op publisher so the primary flows
// still work.
func SetupEventBus(cfg *config.Config, lgr zerolog.Logger) (events.Publisher, *redis.Client) {
	if !cfg.Redis.Enabled {
		lgr.Info().Msg("Redis disabled, change notifications off")
		return events.NopPublisher{}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		lgr.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis unavailable, change notifications disabled")
		_ = client.Close()
		return events.NopPublisher{}, nil
	}

	lgr.Info().Str("addr", cfg.Redis.Addr).Msg("Redis event bus connected")
	return events.NewRedisBus(client, lgr), client
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)
	deps.Publisher, deps.RedisClient = SetupEventBus(cfg, lgr)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: cfg.AccessTokenExp(),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	thresholds := models.HealthThresholds{
		DormantAfter:  cfg.DormantAfter(),
		InactiveAfter: cfg.InactiveAfter(),
	}

	deps.ProfileService = appServices.NewProfileService(deps.Repos.ProfileRepository)
	deps.MatchService = appServices.NewMatchService(deps.Repos.MatchRepository, deps.Publisher, thresholds, lgr)
	deps.DiscoveryService = appServices.NewDiscoveryService(
		deps.Repos.ProfileRepository,
		deps.Repos.RequestRepository,
		deps.Repos.MatchRepository,
		deps.Publisher,
		cfg,
		lgr,
	)
	deps.RequestService = appServices.NewRequestService(deps.Repos.RequestRepository)
	deps.ReviewService = appServices.NewReviewService(
		deps.Repos.ReviewRepository,
		deps.Repos.MatchRepository,
		deps.Repos.ProfileRepository,
		lgr,
	)
	deps.ChallengeService = appServices.NewChallengeService(
		deps.Repos.ChallengeRepository,
		deps.Publisher,
		cfg.Challenge.DailyPoints,
		lgr,
	)
	deps.SessionService = appServices.NewSessionService(
		deps.Repos.SessionRepository,
		deps.Repos.MessageRepository,
		deps.Repos.MatchRepository,
		deps.Publisher,
		lgr,
	)
	deps.ReportService = appServices.NewReportService(deps.Repos.ReportRepository)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.ProfileController = appControllers.NewProfileController(deps.ProfileService)
	deps.MatchController = appControllers.NewMatchController(deps.MatchService)
	deps.DiscoveryController = appControllers.NewDiscoveryController(deps.DiscoveryService, thresholds)
	deps.RequestController = appControllers.NewRequestController(deps.RequestService)
	deps.ReviewController = appControllers.NewReviewController(deps.ReviewService)
	deps.ChallengeController = appControllers.NewChallengeController(deps.ChallengeService)
	deps.SessionController = appControllers.NewSessionController(deps.SessionService)
	deps.ReportController = appControllers.NewReportController(deps.ReportService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())
	router.Use(appMiddleware.CORS())

	appRoutes.SetupRouter(router,
		deps.ProfileController,
		deps.MatchController,
		deps.DiscoveryController,
		deps.RequestController,
		deps.ReviewController,
		deps.ChallengeController,
		deps.SessionController,
		deps.ReportController,
		deps.AuthMiddleware,
	)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}
