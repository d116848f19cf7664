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
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/hopebridge/eventhub/internal/app/controllers"
	appMigrations "github.com/hopebridge/eventhub/internal/app/migrations"
	appRepos "github.com/hopebridge/eventhub/internal/app/repositories"
	appRoutes "github.com/hopebridge/eventhub/internal/app/routes"
	appServices "github.com/hopebridge/eventhub/internal/app/services"
	"github.com/hopebridge/eventhub/internal/config"
	"github.com/hopebridge/eventhub/internal/db"
	appMiddleware "github.com/hopebridge/eventhub/internal/middleware"
	pkgAuth "github.com/hopebridge/eventhub/internal/pkg/auth"
	"github.com/hopebridge/eventhub/internal/pkg/helpers"
	"github.com/hopebridge/eventhub/internal/pkg/logger"
	"github.com/hopebridge/eventhub/internal/pkg/messaging"
	"github.com/hopebridge/eventhub/internal/pkg/renderer"
	"github.com/hopebridge/eventhub/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	EventService          appServices.EventService
	CertificateService    appServices.CertificateService
	ReminderScheduler     *appServices.ReminderScheduler
	EventController       *appControllers.EventController
	CertificateController *appControllers.CertificateController
	AuthMiddleware        *appMiddleware.AuthMiddleware
	Repos                 *appRepos.Repositories
	JWTService            *pkgAuth.JWTService
	MessageSender         messaging.Sender
	Logger                zerolog.Logger
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

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenIssuer: cfg.JWT.Issuer,
	})

	sender, err := messaging.NewSender(messaging.Config{
		Provider:   cfg.Messaging.Provider,
		AccountSID: cfg.Messaging.AccountSID,
		AuthToken:  cfg.Messaging.AuthToken,
		FromNumber: cfg.Messaging.FromNumber,
	})
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize message sender")
		return nil, fmt.Errorf("failed to initialize message sender: %w", err)
	}
	deps.MessageSender = sender

	deps.EventService = appServices.NewEventService(
		deps.Repos.EventRepository,
		deps.Repos.RegistrationRepository,
		lgr,
	)
	deps.CertificateService = appServices.NewCertificateService(
		deps.Repos.CertificateRepository,
		deps.Repos.EventRepository,
		deps.Repos.RegistrationRepository,
		deps.Repos.UserRepository,
		cfg.Certificate.NumberPrefix,
		lgr,
	)
	deps.ReminderScheduler = appServices.NewReminderScheduler(
		deps.Repos.RegistrationRepository,
		deps.MessageSender,
		appServices.ReminderConfig{
			Interval:   helpers.ParseDuration(cfg.Reminder.Interval, time.Minute),
			AnchorHour: cfg.Reminder.AnchorHour,
			Window:     helpers.ParseDuration(cfg.Reminder.Window, time.Minute),
		},
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	certRenderer := renderer.NewTextRenderer(renderer.Options{
		DirectorName:        cfg.Certificate.DirectorName,
		CoordinatorName:     cfg.Certificate.CoordinatorName,
		VerificationBaseURL: cfg.Certificate.VerificationBaseURL,
	})

	deps.EventController = appControllers.NewEventController(deps.EventService)
	deps.CertificateController = appControllers.NewCertificateController(deps.CertificateService, certRenderer)

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
	router.Use(appMiddleware.RequestID())
	router.Use(appMiddleware.RequestLogger(lgr))

	appRoutes.SetupRouter(router,
		deps.EventController,
		deps.CertificateController,
		deps.AuthMiddleware,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
